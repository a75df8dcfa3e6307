// Package testjsonl provides shared JSONL fixture builders for
// transcript test data. Used by the parser, scan, and search test
// packages.
package testjsonl

import (
	"encoding/json"
	"strings"
)

// SessionMetaJSON returns a session_meta line as a JSON string.
func SessionMetaJSON(id, cwd, timestamp string) string {
	return SessionMetaOptsJSON(id, cwd, timestamp, MetaOpts{})
}

// MetaOpts holds optional session_meta payload fields.
type MetaOpts struct {
	CLIVersion   string
	Instructions string
	Originator   string
}

// SessionMetaOptsJSON returns a session_meta line with optional
// payload fields as a JSON string.
func SessionMetaOptsJSON(
	id, cwd, timestamp string, opts MetaOpts,
) string {
	payload := map[string]any{
		"id":  id,
		"cwd": cwd,
	}
	if opts.CLIVersion != "" {
		payload["cli_version"] = opts.CLIVersion
	}
	if opts.Instructions != "" {
		payload["instructions"] = opts.Instructions
	}
	if opts.Originator != "" {
		payload["originator"] = opts.Originator
	}
	m := map[string]any{
		"type":      "session_meta",
		"timestamp": timestamp,
		"payload":   payload,
	}
	return mustMarshal(m)
}

// ResponseItemJSON returns a response_item message line as a JSON
// string, with the content type matching the role.
func ResponseItemJSON(role, text, timestamp string) string {
	contentType := "output_text"
	if role == "user" {
		contentType = "input_text"
	}
	m := map[string]any{
		"type":      "response_item",
		"timestamp": timestamp,
		"payload": map[string]any{
			"type": "message",
			"role": role,
			"content": []map[string]string{
				{
					"type": contentType,
					"text": text,
				},
			},
		},
	}
	return mustMarshal(m)
}

// ResponseItemBlocksJSON returns a response_item line whose
// content is the given blocks verbatim.
func ResponseItemBlocksJSON(
	role string, blocks []map[string]any, timestamp string,
) string {
	m := map[string]any{
		"type":      "response_item",
		"timestamp": timestamp,
		"payload": map[string]any{
			"role":    role,
			"content": blocks,
		},
	}
	return mustMarshal(m)
}

// LegacyMessageJSON returns an old-style typed message line with
// role and content at the top level.
func LegacyMessageJSON(role string, content any) string {
	m := map[string]any{
		"type":    "message",
		"role":    role,
		"content": content,
	}
	return mustMarshal(m)
}

// RoleContentJSON returns an untyped legacy line carrying only
// role and content.
func RoleContentJSON(role string, content any) string {
	m := map[string]any{
		"role":    role,
		"content": content,
	}
	return mustMarshal(m)
}

// ReasoningJSON returns a reasoning line, opaque to the decoder.
func ReasoningJSON(summary, timestamp string) string {
	m := map[string]any{
		"type":      "reasoning",
		"timestamp": timestamp,
		"payload": map[string]any{
			"summary": summary,
		},
	}
	return mustMarshal(m)
}

// FunctionCallJSON returns a function_call line, opaque to the
// decoder.
func FunctionCallJSON(name, arguments, timestamp string) string {
	m := map[string]any{
		"type":      "function_call",
		"timestamp": timestamp,
		"name":      name,
		"arguments": arguments,
		"call_id":   "call_test",
	}
	return mustMarshal(m)
}

// TurnContextJSON returns a turn_context line carrying a cwd in
// its payload.
func TurnContextJSON(cwd, timestamp string) string {
	m := map[string]any{
		"type":      "turn_context",
		"timestamp": timestamp,
		"payload": map[string]any{
			"cwd":             cwd,
			"approval_policy": "on-request",
		},
	}
	return mustMarshal(m)
}

// StateJSON returns a record_type state line, opaque to the
// decoder.
func StateJSON(timestamp string) string {
	m := map[string]any{
		"record_type": "state",
		"timestamp":   timestamp,
	}
	return mustMarshal(m)
}

// JoinJSONL joins JSON lines with newlines and appends a trailing
// newline.
func JoinJSONL(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

// TranscriptBuilder constructs JSONL transcript content using a
// fluent API.
type TranscriptBuilder struct {
	lines []string
}

// NewTranscriptBuilder returns a new empty TranscriptBuilder.
func NewTranscriptBuilder() *TranscriptBuilder {
	return &TranscriptBuilder{}
}

// AddMeta appends a session_meta line.
func (b *TranscriptBuilder) AddMeta(
	timestamp, id, cwd string,
) *TranscriptBuilder {
	b.lines = append(b.lines, SessionMetaJSON(id, cwd, timestamp))
	return b
}

// AddUser appends a user response_item line.
func (b *TranscriptBuilder) AddUser(
	timestamp, text string,
) *TranscriptBuilder {
	b.lines = append(b.lines, ResponseItemJSON("user", text, timestamp))
	return b
}

// AddAssistant appends an assistant response_item line.
func (b *TranscriptBuilder) AddAssistant(
	timestamp, text string,
) *TranscriptBuilder {
	b.lines = append(
		b.lines, ResponseItemJSON("assistant", text, timestamp),
	)
	return b
}

// AddLegacy appends an old-style typed message line.
func (b *TranscriptBuilder) AddLegacy(
	role string, content any,
) *TranscriptBuilder {
	b.lines = append(b.lines, LegacyMessageJSON(role, content))
	return b
}

// AddReasoning appends a reasoning line.
func (b *TranscriptBuilder) AddReasoning(
	timestamp, summary string,
) *TranscriptBuilder {
	b.lines = append(b.lines, ReasoningJSON(summary, timestamp))
	return b
}

// AddTurnContext appends a turn_context line.
func (b *TranscriptBuilder) AddTurnContext(
	timestamp, cwd string,
) *TranscriptBuilder {
	b.lines = append(b.lines, TurnContextJSON(cwd, timestamp))
	return b
}

// AddRaw appends an arbitrary raw line.
func (b *TranscriptBuilder) AddRaw(line string) *TranscriptBuilder {
	b.lines = append(b.lines, line)
	return b
}

// String returns the JSONL content with a trailing newline.
func (b *TranscriptBuilder) String() string {
	return strings.Join(b.lines, "\n") + "\n"
}

// mustMarshal encodes without HTML escaping so fixtures carry
// literal <cwd> tags the way real transcript writers emit them.
func mustMarshal(v any) string {
	var sb strings.Builder
	enc := json.NewEncoder(&sb)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		panic(err)
	}
	return strings.TrimRight(sb.String(), "\n")
}
