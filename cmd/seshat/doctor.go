package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seshatlabs/seshat/internal/config"
	"github.com/seshatlabs/seshat/internal/scan"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Self-check: verify config, targets, and scan health",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			fmt.Println("=== Config ===")
			fmt.Printf("  Dir:            %s\n", cfg.ConfigDir)
			fmt.Printf("  Resume command: %s\n", cfg.ResumeCommand)
			if cfg.Workers > 0 {
				fmt.Printf("  Workers:        %d\n", cfg.Workers)
			}

			fmt.Println("\n=== Targets ===")
			for _, t := range cfg.Targets {
				files, warns := scan.ExpandTargets([]string{t})
				switch {
				case len(warns) > 0:
					fmt.Printf("  %s: %v\n", t, warns[0].Err)
				case len(files) == 0:
					fmt.Printf("  %s: no transcripts\n", t)
				default:
					fmt.Printf("  %s: %d transcripts\n", t, len(files))
				}
			}

			sessions, warnings := scan.NewScanner(
				cfg.Targets, cfg.Workers,
			).Scan()

			withCwd := 0
			for _, s := range sessions {
				if s.Cwd != "" {
					withCwd++
				}
			}

			fmt.Println("\n=== Scan ===")
			fmt.Printf("  Sessions: %d\n", len(sessions))
			fmt.Printf("  With cwd: %d\n", withCwd)
			fmt.Printf("  Warnings: %d\n", len(warnings))
			for _, w := range warnings {
				fmt.Printf("    %s\n", w)
			}
			return nil
		},
	}
}
