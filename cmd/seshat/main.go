package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/seshatlabs/seshat/internal/config"
	"github.com/seshatlabs/seshat/internal/parser"
	"github.com/seshatlabs/seshat/internal/scan"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "seshat",
		Short:   "Browse, search, and resume coding-agent session transcripts",
		Version: version,
	}

	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(resumeCmd())
	rootCmd.AddCommand(watchCmd())
	rootCmd.AddCommand(doctorCmd())
	rootCmd.AddCommand(updateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadAndScan loads the config and runs one scan over the given
// targets, or the configured ones when none are given.
func loadAndScan(args []string) (config.Config, *scan.Snapshot, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	targets := cfg.Targets
	if len(args) > 0 {
		targets = args
	}
	refresher := scan.NewRefresher(scan.NewScanner(targets, cfg.Workers))
	return cfg, refresher.Refresh(), nil
}

func reportWarnings(warnings []scan.Warning) {
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
}

// findSession resolves a session reference: an exact id, a
// unique id prefix, or the transcript path.
func findSession(sessions []parser.Session, key string) (parser.Session, error) {
	abs, _ := filepath.Abs(key)
	var prefix []parser.Session
	for _, s := range sessions {
		if s.ID == key || s.Path == key || s.Path == abs {
			return s, nil
		}
		if strings.HasPrefix(s.ID, key) {
			prefix = append(prefix, s)
		}
	}
	switch len(prefix) {
	case 0:
		return parser.Session{}, fmt.Errorf("no session matches %q", key)
	case 1:
		return prefix[0], nil
	}
	return parser.Session{}, fmt.Errorf(
		"%q is ambiguous: %d sessions match", key, len(prefix),
	)
}
