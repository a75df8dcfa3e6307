package parser

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/seshatlabs/seshat/internal/testjsonl"
)

func TestDecodeRecord_SessionMeta(t *testing.T) {
	line := testjsonl.SessionMetaOptsJSON(
		"abc-123", "/home/u/proj", tsEarly,
		testjsonl.MetaOpts{
			CLIVersion:   "0.21.0",
			Instructions: "You are a coding agent.",
			Originator:   "codex_cli_rs",
		},
	)
	rec := DecodeRecord(line)

	assert.Equal(t, KindSessionMeta, rec.Kind)
	assert.Equal(t, "abc-123", rec.SessionID)
	assert.Equal(t, "/home/u/proj", rec.Cwd)
	assert.Equal(t, "0.21.0", rec.CLIVersion)
	assert.Equal(t, "You are a coding agent.", rec.Instructions)
	assert.Equal(t, line, rec.Raw)
}

func TestDecodeRecord_ResponseItem(t *testing.T) {
	t.Run("single text block", func(t *testing.T) {
		rec := DecodeRecord(
			testjsonl.ResponseItemJSON("user", "fix the tests", tsEarlyS1),
		)
		assert.Equal(t, KindResponseItem, rec.Kind)
		assert.Equal(t, "user", rec.Role)
		assert.Equal(t, []string{"fix the tests"}, rec.Fragments)
	})

	t.Run("multiple blocks keep order", func(t *testing.T) {
		rec := DecodeRecord(testjsonl.ResponseItemBlocksJSON(
			"assistant",
			[]map[string]any{
				{"type": "output_text", "text": "first"},
				{"type": "output_text", "text": "second"},
			},
			tsEarlyS1,
		))
		assert.Equal(t, []string{"first", "second"}, rec.Fragments)
		assert.Equal(t, "assistant", rec.Role)
	})

	t.Run("textless blocks contribute nothing", func(t *testing.T) {
		rec := DecodeRecord(testjsonl.ResponseItemBlocksJSON(
			"user",
			[]map[string]any{
				{"type": "input_image", "image_url": "data:..."},
				{"type": "input_text", "text": "look at this"},
				{"type": "input_text", "text": ""},
			},
			tsEarlyS1,
		))
		assert.Equal(t, []string{"look at this"}, rec.Fragments)
	})

	t.Run("missing content yields no fragments", func(t *testing.T) {
		rec := DecodeRecord(
			`{"type":"response_item","payload":{"type":"message","role":"assistant"}}`,
		)
		assert.Equal(t, KindResponseItem, rec.Kind)
		assert.Empty(t, rec.Fragments)
	})
}

func TestDecodeRecord_LegacyMessage(t *testing.T) {
	t.Run("typed message with block list", func(t *testing.T) {
		rec := DecodeRecord(testjsonl.LegacyMessageJSON("user", []any{
			map[string]any{"type": "text", "text": "hello"},
			"plain string block",
		}))
		assert.Equal(t, KindLegacyMessage, rec.Kind)
		assert.Equal(t, "user", rec.Role)
		assert.Equal(t, []string{"hello", "plain string block"}, rec.Fragments)
	})

	t.Run("bare role and content string", func(t *testing.T) {
		rec := DecodeRecord(
			testjsonl.RoleContentJSON("assistant", "done"),
		)
		assert.Equal(t, KindLegacyMessage, rec.Kind)
		assert.Equal(t, "assistant", rec.Role)
		assert.Equal(t, []string{"done"}, rec.Fragments)
	})

	t.Run("bare role and content blocks", func(t *testing.T) {
		rec := DecodeRecord(testjsonl.RoleContentJSON("user", []any{
			map[string]any{"type": "input_text", "text": "try again"},
		}))
		assert.Equal(t, []string{"try again"}, rec.Fragments)
	})
}

func TestDecodeRecord_Opaque(t *testing.T) {
	t.Run("reasoning keeps its type tag", func(t *testing.T) {
		rec := DecodeRecord(testjsonl.ReasoningJSON("thinking...", tsEarlyS1))
		assert.Equal(t, KindOpaque, rec.Kind)
		assert.Equal(t, "reasoning", rec.Tag)
	})

	t.Run("function_call keeps its type tag", func(t *testing.T) {
		rec := DecodeRecord(
			testjsonl.FunctionCallJSON("shell", `{"command":["ls"]}`, tsEarlyS1),
		)
		assert.Equal(t, KindOpaque, rec.Kind)
		assert.Equal(t, "function_call", rec.Tag)
	})

	t.Run("record_type fallback tag", func(t *testing.T) {
		rec := DecodeRecord(testjsonl.StateJSON(tsEarlyS1))
		assert.Equal(t, KindOpaque, rec.Kind)
		assert.Equal(t, "state", rec.Tag)
	})

	t.Run("turn_context is opaque but raw survives", func(t *testing.T) {
		line := testjsonl.TurnContextJSON("/srv/app", tsEarlyS1)
		rec := DecodeRecord(line)
		assert.Equal(t, KindOpaque, rec.Kind)
		assert.Equal(t, "turn_context", rec.Tag)
		assert.Equal(t, line, rec.Raw)
	})
}

func TestDecodeRecord_NeverFails(t *testing.T) {
	lines := []string{
		`not json at all`,
		`{"truncated": `,
		`{}`,
		`[]`,
		`[1,2,3]`,
		`"just a string"`,
		`42`,
		`null`,
		`true`,
		`{"type":"something_new","payload":{"x":1}}`,
		`{"content":"no role here"}`,
		`{"role":"user"}`,
		"\x00\x01binary garbage",
	}
	for _, line := range lines {
		rec := DecodeRecord(line)
		assert.Equal(t, KindOpaque, rec.Kind, "line %q", line)
		assert.Equal(t, line, rec.Raw, "line %q", line)
		assert.Empty(t, rec.Fragments, "line %q", line)
	}

	// Fixed seed keeps the byte strings reproducible across runs.
	rng := rand.New(rand.NewSource(42))
	for range 200 {
		buf := make([]byte, rng.Intn(120))
		for i := range buf {
			buf[i] = byte(rng.Intn(256))
		}
		line := string(buf)
		rec := DecodeRecord(line)
		assert.Equal(t, KindOpaque, rec.Kind, "bytes %q", line)
		assert.Equal(t, line, rec.Raw, "bytes %q", line)
	}
}
