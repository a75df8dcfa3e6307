package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/seshatlabs/seshat/internal/resume"
)

func resumeCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "resume <session>",
		Short: "Reopen a session in the CLI that recorded it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, snap, err := loadAndScan(nil)
			if err != nil {
				return err
			}
			s, err := findSession(snap.Sessions, args[0])
			if err != nil {
				return err
			}

			argv, err := resume.Argv(cfg.ResumeCommand, s)
			if err != nil {
				return err
			}
			if dryRun {
				fmt.Println(strings.Join(argv, " "))
				return nil
			}

			bin, err := exec.LookPath(argv[0])
			if err != nil {
				return fmt.Errorf("%s not found on PATH", argv[0])
			}
			run := exec.Command(bin, argv[1:]...)
			run.Stdin = os.Stdin
			run.Stdout = os.Stdout
			run.Stderr = os.Stderr
			return run.Run()
		},
	}

	cmd.Flags().BoolVar(
		&dryRun, "dry-run", false,
		"Print the command instead of running it",
	)

	return cmd
}
