package parser

import (
	"github.com/tidwall/gjson"
)

// Transcript record type tags. Newer Codex-style files wrap
// everything in typed envelopes; older files put role/content at
// the top level.
const (
	typeSessionMeta  = "session_meta"
	typeResponseItem = "response_item"
	typeMessage      = "message"
)

// TagOversized marks a line that exceeded maxRecordBytes. The line
// still counts toward the record total but its text is not kept.
const TagOversized = "oversized"

// Kind classifies one decoded transcript record.
type Kind string

const (
	KindSessionMeta   Kind = "session_meta"
	KindResponseItem  Kind = "response_item"
	KindLegacyMessage Kind = "legacy_message"
	KindOpaque        Kind = "opaque"
)

// Record is the normalized form of one non-blank transcript line.
// Exactly one Record exists per line: decoding never fails, it
// degrades to KindOpaque with the raw text preserved.
type Record struct {
	Kind Kind

	// Session metadata (KindSessionMeta).
	SessionID    string
	Cwd          string
	CLIVersion   string
	Instructions string

	// Extracted text (KindResponseItem, KindLegacyMessage).
	Role      string
	Fragments []string

	// Tag carries the original type (or record_type) value for
	// opaque records; empty when the line was not a JSON object.
	Tag string

	// Raw is the original line, retained for working-directory
	// scanning across all kinds.
	Raw string
}

// DecodeRecord classifies one line of a transcript file. Malformed
// JSON, non-object documents, and unrecognized envelopes all come
// back as KindOpaque rather than an error.
func DecodeRecord(line string) Record {
	rec := Record{Kind: KindOpaque, Raw: line}
	if !gjson.Valid(line) {
		return rec
	}
	root := gjson.Parse(line)
	if !root.IsObject() {
		return rec
	}

	switch root.Get("type").Str {
	case typeSessionMeta:
		payload := root.Get("payload")
		rec.Kind = KindSessionMeta
		rec.SessionID = payload.Get("id").Str
		rec.Cwd = payload.Get("cwd").Str
		rec.CLIVersion = payload.Get("cli_version").Str
		rec.Instructions = payload.Get("instructions").Str
		return rec
	case typeResponseItem:
		rec.Kind = KindResponseItem
		rec.Role = root.Get("payload.role").Str
		rec.Fragments = responseTexts(root.Get("payload.content"))
		return rec
	case typeMessage:
		rec.Kind = KindLegacyMessage
		rec.Role = root.Get("role").Str
		rec.Fragments = legacyTexts(root.Get("content"))
		return rec
	}

	if root.Get("role").Exists() && root.Get("content").Exists() {
		rec.Kind = KindLegacyMessage
		rec.Role = root.Get("role").Str
		rec.Fragments = legacyTexts(root.Get("content"))
		return rec
	}

	rec.Tag = root.Get("type").Str
	if rec.Tag == "" {
		rec.Tag = root.Get("record_type").Str
	}
	return rec
}

// responseTexts collects the text field of each content element.
// Elements without one (images, tool blobs) contribute nothing.
func responseTexts(content gjson.Result) []string {
	var texts []string
	content.ForEach(func(_, block gjson.Result) bool {
		if t := block.Get("text").Str; t != "" {
			texts = append(texts, t)
		}
		return true
	})
	return texts
}

// legacyTexts collects text from an old-style content value:
// string entries directly, object entries via their text field.
// A bare string yields a single fragment.
func legacyTexts(content gjson.Result) []string {
	var texts []string
	content.ForEach(func(_, block gjson.Result) bool {
		if block.Type == gjson.String {
			if block.Str != "" {
				texts = append(texts, block.Str)
			}
		} else if t := block.Get("text").Str; t != "" {
			texts = append(texts, t)
		}
		return true
	})
	return texts
}
