package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/seshatlabs/seshat/internal/parser"
	"github.com/seshatlabs/seshat/internal/search"
	"github.com/seshatlabs/seshat/internal/timeutil"
)

const (
	colorReset = "\033[0m"
	colorDim   = "\033[2m"
)

func listCmd() *cobra.Command {
	var keywords []string
	var matchAny bool
	var cwd string
	var sortName string

	cmd := &cobra.Command{
		Use:   "list [targets...]",
		Short: "List sessions, newest first",
		Long: `Scan the configured targets (or the ones given as arguments) and
print one row per session: relative time, id, working directory,
first snippet. Output is TSV when stdout is not a terminal, so it
pipes cleanly into fzf or awk.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, snap, err := loadAndScan(args)
			if err != nil {
				return err
			}
			reportWarnings(snap.Warnings)

			sortKey, err := search.ParseSort(sortName)
			if err != nil {
				return err
			}
			mode := search.MatchAll
			if matchAny {
				mode = search.MatchAny
			}
			sessions := search.Filter(snap.Sessions, search.Query{
				Keywords: keywords,
				Mode:     mode,
				Cwd:      cwd,
				Sort:     sortKey,
			})

			if len(sessions) == 0 {
				fmt.Fprintln(os.Stderr, "No sessions found.")
				return nil
			}
			printSessions(sessions)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(
		&keywords, "keyword", "k", nil,
		"Require this keyword (repeatable)",
	)
	cmd.Flags().BoolVar(
		&matchAny, "match-any", false,
		"Match any keyword instead of all of them",
	)
	cmd.Flags().StringVar(
		&cwd, "cwd", "",
		"Only sessions recorded in this working directory",
	)
	cmd.Flags().StringVar(
		&sortName, "sort", "time",
		"Sort order: time, path, or id",
	)

	return cmd
}

func printSessions(sessions []parser.Session) {
	now := time.Now()
	home, _ := os.UserHomeDir()
	tty := term.IsTerminal(int(os.Stdout.Fd()))

	for _, s := range sessions {
		rel := timeutil.Relative(s.ModifiedAt, now)
		if !tty {
			fmt.Printf("%s\t%s\t%s\t%s\n",
				rel, s.ID, s.Cwd, s.FirstSnippet)
			continue
		}
		fmt.Printf("%s%-8s %-10s%s %-28s %s\n",
			colorDim, rel, shortID(s.ID), colorReset,
			displayCwd(s.Cwd, home), s.FirstSnippet)
	}
}

func shortID(id string) string {
	if len(id) > 10 {
		return id[:10]
	}
	return id
}

// displayCwd abbreviates the home directory to ~ and stands in a
// dash for sessions whose cwd is unknown.
func displayCwd(cwd, home string) string {
	if cwd == "" {
		return "-"
	}
	if home != "" {
		if cwd == home {
			return "~"
		}
		if strings.HasPrefix(cwd, home+string(os.PathSeparator)) {
			return "~" + cwd[len(home):]
		}
	}
	return cwd
}
