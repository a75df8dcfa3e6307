package resume

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seshatlabs/seshat/internal/parser"
)

func TestArgv(t *testing.T) {
	withID := parser.Session{ID: "abc-123", Path: "/logs/abc-123.jsonl"}
	pathOnly := parser.Session{Path: "/logs/rollout.jsonl"}

	cases := []struct {
		name     string
		template string
		session  parser.Session
		want     []string
	}{
		{
			name:     "plain command",
			template: "codex resume",
			session:  withID,
			want:     []string{"codex", "resume", "abc-123"},
		},
		{
			name:     "quoted argument stays one token",
			template: `codex resume --profile "my profile"`,
			session:  withID,
			want:     []string{"codex", "resume", "--profile", "my profile", "abc-123"},
		},
		{
			name:     "path target when the session has no id",
			template: "codex resume",
			session:  pathOnly,
			want:     []string{"codex", "resume", "/logs/rollout.jsonl"},
		},
		{
			name:     "single word command",
			template: "reopen",
			session:  withID,
			want:     []string{"reopen", "abc-123"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Argv(tc.template, tc.session)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestArgvEmptyTemplate(t *testing.T) {
	for _, template := range []string{"", "   "} {
		_, err := Argv(template, parser.Session{ID: "x"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "resume command is empty")
	}
}

func TestArgvUnparsableTemplate(t *testing.T) {
	_, err := Argv(`codex resume "unterminated`, parser.Session{ID: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse resume command")
}

func TestPreview(t *testing.T) {
	got, err := Preview("codex resume", parser.Session{ID: "abc-123"})
	require.NoError(t, err)
	assert.Equal(t, "codex resume abc-123", got)

	_, err = Preview("", parser.Session{ID: "abc-123"})
	require.Error(t, err)
}
