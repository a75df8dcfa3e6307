package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seshatlabs/seshat/internal/config"
	"github.com/seshatlabs/seshat/internal/update"
)

func updateCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Check whether a newer release is available",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			info, err := update.Check(version, force, cfg.ConfigDir)
			if err != nil {
				return fmt.Errorf("checking for updates: %w", err)
			}

			if info == nil {
				fmt.Printf("seshat %s is up to date.\n", version)
				return nil
			}
			if info.IsDevBuild {
				fmt.Printf("Running dev build (%s). Latest release: %s\n",
					info.CurrentVersion, info.LatestVersion)
				return nil
			}
			fmt.Printf("Update available: %s -> %s\n",
				info.CurrentVersion, info.LatestVersion)
			return nil
		},
	}

	cmd.Flags().BoolVar(
		&force, "force", false,
		"Force check (ignore the hourly cache)",
	)

	return cmd
}
