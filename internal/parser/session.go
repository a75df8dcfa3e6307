package parser

import (
	"path/filepath"
	"strings"
	"time"
)

const (
	// snippetMaxLen bounds display snippets after whitespace
	// collapsing, measured in runes.
	snippetMaxLen = 280

	// fragmentSeparator joins fragments into SearchText. Keyword
	// input cannot contain a newline, so no match can straddle two
	// unrelated fragments.
	fragmentSeparator = "\n"
)

// metaPrefixes identify instruction/environment wrapper blocks
// injected by the CLI. They make useless first snippets.
var metaPrefixes = [...]string{
	"<environment_context>",
	"<user_instructions>",
	"<developer_instructions>",
	"<system_message>",
}

// Session is the normalized summary of one transcript file. It is
// immutable once built; the scanner replaces whole catalogs rather
// than patching sessions in place.
type Session struct {
	ID           string
	Path         string
	Cwd          string // empty when no strategy found one
	ModifiedAt   time.Time
	FirstSnippet string
	LastSnippet  string
	FirstRole    string
	LastRole     string
	SearchText   string
	RecordCount  int
	CLIVersion   string
}

// ResumeTarget returns what an external resume command should be
// handed: the session id when one exists, else the file path.
func (s Session) ResumeTarget() string {
	if s.ID != "" {
		return s.ID
	}
	return s.Path
}

// BuildSession folds a file's decoded records into a Session.
// A file with no metadata and no text still yields a usable
// Session: the id falls back to the path stem and both snippets
// stay empty.
func BuildSession(path string, records []Record, modifiedAt time.Time) Session {
	sess := Session{
		Path:        path,
		ModifiedAt:  modifiedAt,
		RecordCount: len(records),
	}

	var parts []string
	var first, firstAny, last fragment
	for _, rec := range records {
		if rec.Kind == KindSessionMeta {
			if sess.ID == "" {
				sess.ID = rec.SessionID
			}
			if sess.CLIVersion == "" {
				sess.CLIVersion = rec.CLIVersion
			}
			continue
		}
		for _, text := range rec.Fragments {
			parts = append(parts, text)
			if strings.TrimSpace(text) == "" {
				continue
			}
			if firstAny.text == "" {
				firstAny = fragment{text, rec.Role}
			}
			if first.text == "" && !isMetaText(text) {
				first = fragment{text, rec.Role}
			}
			last = fragment{text, rec.Role}
		}
	}

	// Every fragment was a meta wrapper: better to show it than
	// nothing, and a single-fragment file keeps both snippets equal.
	if first.text == "" {
		first = firstAny
	}

	sess.FirstSnippet = formatSnippet(first.text)
	sess.FirstRole = first.role
	sess.LastSnippet = formatSnippet(last.text)
	sess.LastRole = last.role
	sess.SearchText = strings.ToLower(
		strings.Join(parts, fragmentSeparator),
	)
	sess.Cwd = ExtractCwd(records)

	if sess.ID == "" {
		sess.ID = pathStem(path)
	}
	return sess
}

type fragment struct {
	text string
	role string
}

// formatSnippet collapses runs of whitespace and truncates to the
// display budget, rune-safe.
func formatSnippet(text string) string {
	cleaned := strings.Join(strings.Fields(text), " ")
	runes := []rune(cleaned)
	if len(runes) <= snippetMaxLen {
		return cleaned
	}
	return strings.TrimRight(string(runes[:snippetMaxLen]), " ") + "…"
}

// isMetaText reports whether a fragment is a CLI-injected wrapper
// block rather than conversation text.
func isMetaText(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return true
	}
	for _, prefix := range metaPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}

func pathStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
