package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/seshatlabs/seshat/internal/resume"
	"github.com/seshatlabs/seshat/internal/timeutil"
)

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <session>",
		Short: "Show one session in full",
		Long: `Print everything known about one session. The session may be named
by its exact id, a unique id prefix, or the transcript path.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, snap, err := loadAndScan(nil)
			if err != nil {
				return err
			}
			reportWarnings(snap.Warnings)

			s, err := findSession(snap.Sessions, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("ID:       %s\n", s.ID)
			fmt.Printf("Path:     %s\n", s.Path)
			fmt.Printf("Cwd:      %s\n", orDash(s.Cwd))
			fmt.Printf("Modified: %s (%s)\n",
				timeutil.Format(s.ModifiedAt),
				timeutil.Relative(s.ModifiedAt, time.Now()))
			fmt.Printf("Records:  %d\n", s.RecordCount)
			if s.CLIVersion != "" {
				fmt.Printf("CLI:      %s\n", s.CLIVersion)
			}
			fmt.Printf("First:    %s\n", snippetLine(s.FirstRole, s.FirstSnippet))
			fmt.Printf("Last:     %s\n", snippetLine(s.LastRole, s.LastSnippet))

			preview, err := resume.Preview(cfg.ResumeCommand, s)
			if err != nil {
				return err
			}
			fmt.Printf("Resume:   %s\n", preview)
			return nil
		},
	}
}

func snippetLine(role, snippet string) string {
	if snippet == "" {
		return "-"
	}
	if role == "" {
		return snippet
	}
	return fmt.Sprintf("[%s] %s", role, snippet)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
