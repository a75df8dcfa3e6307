package parser

import (
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	cwdTagPattern = regexp.MustCompile(`(?is)<cwd>(.*?)</cwd>`)
	// The capture runs over the raw JSON line. Doubled backslashes
	// (escaped Windows separators) stay in the path; a quote or any
	// other escape sequence ends it.
	cwdSentencePattern = regexp.MustCompile(
		`(?i)Current working directory:\s*((?:[^\n"\\]|\\\\)+)`,
	)
)

// cwdStrategies are tried in priority order: structured fields
// from the newest format first, then tag-delimited text, then the
// legacy sentence form. Adding a future encoding means appending
// here.
var cwdStrategies = []func([]Record) string{
	cwdFromStructured,
	cwdFromTag,
	cwdFromSentence,
}

// ExtractCwd resolves the working directory a session ran in.
// Returns "" when no strategy yields a plausible path; the first
// strategy that matches wins and later ones are not consulted.
func ExtractCwd(records []Record) string {
	for _, strategy := range cwdStrategies {
		if cwd := strategy(records); cwd != "" {
			return cwd
		}
	}
	return ""
}

// cwdFromStructured scans session metadata and opaque records for
// payload.cwd / payload.turn_context.cwd, in file order. Both
// fields are checked on both kinds: session_meta lines can carry
// the directory nested under turn_context instead of payload.cwd.
func cwdFromStructured(records []Record) string {
	for _, rec := range records {
		if rec.Kind != KindSessionMeta && rec.Kind != KindOpaque {
			continue
		}
		if cwd := plausibleCwd(rec.Cwd); cwd != "" {
			return cwd
		}
		if rec.Raw == "" {
			continue
		}
		for _, path := range []string{"payload.cwd", "payload.turn_context.cwd"} {
			if cwd := plausibleCwd(gjson.Get(rec.Raw, path).Str); cwd != "" {
				return cwd
			}
		}
	}
	return ""
}

// cwdFromTag finds <cwd>...</cwd> anywhere in a record's raw text.
// Within a record the last plausible tag wins: instruction blobs
// restate the tag and the final occurrence is the effective one.
func cwdFromTag(records []Record) string {
	for _, rec := range records {
		var found string
		for _, m := range cwdTagPattern.FindAllStringSubmatch(rec.Raw, -1) {
			if cwd := plausibleCwd(unescapeBackslashes(m[1])); cwd != "" {
				found = cwd
			}
		}
		if found != "" {
			return found
		}
	}
	return ""
}

// cwdFromSentence matches the legacy "Current working directory:"
// sentence in a record's raw text.
func cwdFromSentence(records []Record) string {
	for _, rec := range records {
		for _, m := range cwdSentencePattern.FindAllStringSubmatch(rec.Raw, -1) {
			if cwd := plausibleCwd(unescapeBackslashes(m[1])); cwd != "" {
				return cwd
			}
		}
	}
	return ""
}

// unescapeBackslashes restores literal backslashes in a capture
// taken from the raw JSON line, where Windows separators arrive
// doubled.
func unescapeBackslashes(s string) string {
	return strings.ReplaceAll(s, `\\`, `\`)
}

// plausibleCwd trims a candidate and keeps it only if it looks
// like a filesystem path: absolute, home-relative, or a Windows
// drive prefix. Everything else is noise from prose that happened
// to match a pattern.
func plausibleCwd(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if value[0] == '/' || value[0] == '~' {
		return value
	}
	if len(value) >= 2 && value[1] == ':' && isASCIILetter(value[0]) {
		return value
	}
	return ""
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
