// Package search filters and orders session catalogs. Filtering
// is pure: the catalog produced by a scan is never modified, so
// the same snapshot can be re-filtered on every keystroke.
package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/seshatlabs/seshat/internal/parser"
)

// Mode selects how multiple keywords combine.
type Mode int

const (
	MatchAll Mode = iota // every keyword must appear
	MatchAny             // at least one keyword must appear
)

// Sort selects the ordering of a filtered view.
type Sort int

const (
	SortNewestFirst Sort = iota // ModifiedAt descending, ties by path
	SortPath                    // path ascending
	SortSessionID               // id ascending, ties by path
)

// ParseSort maps the CLI sort names onto Sort values.
func ParseSort(name string) (Sort, error) {
	switch name {
	case "time":
		return SortNewestFirst, nil
	case "path":
		return SortPath, nil
	case "id":
		return SortSessionID, nil
	}
	return 0, fmt.Errorf("unknown sort %q (want time, path, or id)", name)
}

// Query holds one filter invocation's parameters.
type Query struct {
	Keywords []string
	Mode     Mode
	Cwd      string // exact match; empty imposes no constraint
	Sort     Sort
}

// Filter returns the sessions matching q, ordered by q.Sort. The
// input slice is left untouched; the result is a fresh slice.
func Filter(sessions []parser.Session, q Query) []parser.Session {
	keywords := foldKeywords(q.Keywords)

	out := make([]parser.Session, 0, len(sessions))
	for _, s := range sessions {
		if matches(s, keywords, q) {
			out = append(out, s)
		}
	}
	sortSessions(out, q.Sort)
	return out
}

func matches(s parser.Session, keywords []string, q Query) bool {
	// A session whose cwd could not be determined never matches
	// a concrete filter.
	if q.Cwd != "" && s.Cwd != q.Cwd {
		return false
	}
	if len(keywords) == 0 {
		return true
	}
	if q.Mode == MatchAny {
		for _, kw := range keywords {
			if sessionContains(s, kw) {
				return true
			}
		}
		return false
	}
	for _, kw := range keywords {
		if !sessionContains(s, kw) {
			return false
		}
	}
	return true
}

// sessionContains reports whether one already-folded keyword
// appears in any searchable field. SearchText is stored folded;
// the short fields are folded per call.
func sessionContains(s parser.Session, keyword string) bool {
	if strings.Contains(s.SearchText, keyword) {
		return true
	}
	for _, field := range [...]string{
		s.FirstSnippet, s.LastSnippet, s.ID, s.Path,
	} {
		if strings.Contains(strings.ToLower(field), keyword) {
			return true
		}
	}
	return false
}

// foldKeywords lowercases keywords once per call and drops empty
// strings, which would match everything.
func foldKeywords(keywords []string) []string {
	folded := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		folded = append(folded, strings.ToLower(kw))
	}
	return folded
}

func sortSessions(sessions []parser.Session, key Sort) {
	switch key {
	case SortPath:
		sort.Slice(sessions, func(i, j int) bool {
			return sessions[i].Path < sessions[j].Path
		})
	case SortSessionID:
		sort.Slice(sessions, func(i, j int) bool {
			if sessions[i].ID != sessions[j].ID {
				return sessions[i].ID < sessions[j].ID
			}
			return sessions[i].Path < sessions[j].Path
		})
	default:
		sort.Slice(sessions, func(i, j int) bool {
			ti, tj := sessions[i].ModifiedAt, sessions[j].ModifiedAt
			if !ti.Equal(tj) {
				return ti.After(tj)
			}
			return sessions[i].Path < sessions[j].Path
		})
	}
}
