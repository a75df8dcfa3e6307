// Package scan turns transcript files on disk into session
// catalogs. A scan expands targets to files, loads every file
// independently on a worker pool, and reports per-file problems
// as warnings instead of failing the run.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/seshatlabs/seshat/internal/parser"
)

const maxWorkers = 8

// Warning reports a non-fatal problem with one path. Warnings
// never abort a scan; the affected file simply contributes no
// session.
type Warning struct {
	Path string
	Err  error
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %v", w.Path, w.Err)
}

// Scanner loads transcript files from a set of targets. Each
// target may be an existing file, an existing directory (walked
// recursively for *.jsonl), or a glob pattern (** supported).
type Scanner struct {
	targets []string
	workers int
}

// NewScanner returns a scanner over the given targets. workers <= 0
// selects a pool size from the CPU count.
func NewScanner(targets []string, workers int) *Scanner {
	return &Scanner{targets: targets, workers: workers}
}

// Scan expands the targets and builds a session per readable file.
// Output follows file enumeration order regardless of worker
// completion order, so unchanged inputs always produce an equal
// catalog.
func (s *Scanner) Scan() ([]parser.Session, []Warning) {
	paths, warnings := ExpandTargets(s.targets)
	if len(paths) == 0 {
		return nil, warnings
	}

	results := s.startWorkers(paths)

	slots := make([]scanResult, len(paths))
	for range paths {
		r := <-results
		slots[r.index] = r
	}

	sessions := make([]parser.Session, 0, len(paths))
	for i, r := range slots {
		if r.err != nil {
			warnings = append(warnings, Warning{Path: paths[i], Err: r.err})
			continue
		}
		sessions = append(sessions, r.sess)
	}
	return sessions, warnings
}

type scanJob struct {
	index int
	path  string
}

type scanResult struct {
	index int
	sess  parser.Session
	err   error
}

// startWorkers fans file loading out across a bounded pool and
// returns the results channel. Results carry their enumeration
// index so the collector can restore input order.
func (s *Scanner) startWorkers(paths []string) <-chan scanResult {
	workers := s.workers
	if workers <= 0 {
		workers = min(max(runtime.NumCPU(), 2), maxWorkers)
	}

	jobs := make(chan scanJob, len(paths))
	results := make(chan scanResult, len(paths))

	for range workers {
		go func() {
			for job := range jobs {
				sess, err := parser.LoadSession(job.path)
				results <- scanResult{
					index: job.index,
					sess:  sess,
					err:   err,
				}
			}
		}()
	}

	for i, p := range paths {
		jobs <- scanJob{index: i, path: p}
	}
	close(jobs)
	return results
}

// ExpandTargets resolves targets to transcript file paths in a
// deterministic order: targets in argument order, matches within
// a target sorted, duplicates dropped on first occurrence.
func ExpandTargets(targets []string) ([]string, []Warning) {
	var (
		paths    []string
		warnings []Warning
		seen     = make(map[string]struct{})
	)

	record := func(path string) {
		key := path
		if resolved, err := filepath.EvalSymlinks(path); err == nil {
			key = resolved
		}
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		paths = append(paths, path)
	}

	for _, target := range targets {
		expanded := expandHome(target)

		if info, err := os.Stat(expanded); err == nil {
			if info.IsDir() {
				for _, p := range transcriptsUnder(expanded) {
					record(p)
				}
			} else {
				record(expanded)
			}
			continue
		}

		matches, err := doublestar.FilepathGlob(expanded)
		if err != nil {
			warnings = append(warnings, Warning{
				Path: target,
				Err:  fmt.Errorf("bad glob pattern: %w", err),
			})
			continue
		}
		sort.Strings(matches)
		for _, m := range matches {
			if info, err := os.Stat(m); err == nil && !info.IsDir() {
				record(m)
			}
		}
	}
	return paths, warnings
}

// transcriptsUnder walks a directory tree and returns all *.jsonl
// files, sorted. Inaccessible subtrees are skipped.
func transcriptsUnder(root string) []string {
	var found []string
	_ = filepath.WalkDir(root,
		func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if !d.IsDir() && strings.HasSuffix(path, ".jsonl") {
				found = append(found, path)
			}
			return nil
		})
	sort.Strings(found)
	return found
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
