package parser

import (
	"os"
	"path/filepath"
	"testing"
)

// Timestamp constants for test data.
const (
	tsEarly   = "2024-01-01T10:00:00Z"
	tsEarlyS1 = "2024-01-01T10:00:01Z"
	tsEarlyS2 = "2024-01-01T10:00:02Z"
	tsLate    = "2024-01-01T10:01:00Z"
)

func createTestFile(
	t *testing.T, name, content string,
) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(
		path, []byte(content), 0o644,
	); err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	return path
}
