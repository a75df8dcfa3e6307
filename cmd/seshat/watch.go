package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/seshatlabs/seshat/internal/config"
	"github.com/seshatlabs/seshat/internal/scan"
)

func watchCmd() *cobra.Command {
	var debounceMS int

	cmd := &cobra.Command{
		Use:   "watch [targets...]",
		Short: "Rescan and report as transcripts change",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			targets := cfg.Targets
			if len(args) > 0 {
				targets = args
			}

			refresher := scan.NewRefresher(
				scan.NewScanner(targets, cfg.Workers),
			)
			report := func(changed int) {
				snap := refresher.Refresh()
				line := fmt.Sprintf("%s  %d sessions, %d warnings",
					snap.ScannedAt.Format("15:04:05"),
					len(snap.Sessions), len(snap.Warnings))
				if changed > 0 {
					line += fmt.Sprintf(" (%d files changed)", changed)
				}
				fmt.Println(line)
			}
			report(0)

			debounce := time.Duration(debounceMS) * time.Millisecond
			watcher, err := scan.NewWatcher(debounce, func(paths []string) {
				report(len(paths))
			})
			if err != nil {
				return err
			}
			watched := watcher.WatchTargets(targets)
			watcher.Start()
			defer watcher.Stop()
			if watched == 0 {
				return fmt.Errorf("nothing to watch under the given targets")
			}

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			<-sig
			fmt.Fprintln(os.Stderr, "stopping")
			return nil
		},
	}

	cmd.Flags().IntVar(
		&debounceMS, "debounce", 500,
		"Settle window in milliseconds before rescanning",
	)

	return cmd
}
