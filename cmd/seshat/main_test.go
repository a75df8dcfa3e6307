package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/seshatlabs/seshat/internal/parser"
	"github.com/seshatlabs/seshat/internal/scan"
	"github.com/seshatlabs/seshat/internal/search"
	"github.com/seshatlabs/seshat/internal/testjsonl"
)

func TestFindSession(t *testing.T) {
	sessions := []parser.Session{
		{ID: "abc-111", Path: "/logs/abc-111.jsonl"},
		{ID: "abc-222", Path: "/logs/abc-222.jsonl"},
		{ID: "xyz-333", Path: "/logs/xyz-333.jsonl"},
	}

	tests := []struct {
		name    string
		key     string
		wantID  string
		wantErr string
	}{
		{name: "exact id", key: "abc-111", wantID: "abc-111"},
		{name: "path", key: "/logs/xyz-333.jsonl", wantID: "xyz-333"},
		{name: "unique prefix", key: "xyz", wantID: "xyz-333"},
		{name: "ambiguous prefix", key: "abc", wantErr: "ambiguous"},
		{name: "no match", key: "nope", wantErr: "no session matches"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := findSession(sessions, tt.key)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("err = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("findSession: %v", err)
			}
			if got.ID != tt.wantID {
				t.Errorf("ID = %q, want %q", got.ID, tt.wantID)
			}
		})
	}
}

func TestFindSessionRelativePath(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	sessions := []parser.Session{
		{ID: "rel-1", Path: filepath.Join(wd, "logs", "rel.jsonl")},
	}

	got, err := findSession(sessions, filepath.Join("logs", "rel.jsonl"))
	if err != nil {
		t.Fatalf("findSession: %v", err)
	}
	if got.ID != "rel-1" {
		t.Errorf("ID = %q, want rel-1", got.ID)
	}
}

func TestShortID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"short", "short"},
		{"exactly-10", "exactly-10"},
		{"0199a213-81a8-7800-8a4b-x", "0199a213-8"},
	}
	for _, tt := range tests {
		if got := shortID(tt.in); got != tt.want {
			t.Errorf("shortID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDisplayCwd(t *testing.T) {
	tests := []struct {
		name string
		cwd  string
		home string
		want string
	}{
		{"unknown", "", "/home/u", "-"},
		{"home itself", "/home/u", "/home/u", "~"},
		{"under home", "/home/u/proj", "/home/u", "~/proj"},
		{"outside home", "/srv/data", "/home/u", "/srv/data"},
		{"home prefix but not a child", "/home/uu/proj", "/home/u", "/home/uu/proj"},
		{"no home known", "/srv/data", "", "/srv/data"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := displayCwd(tt.cwd, tt.home); got != tt.want {
				t.Errorf("displayCwd(%q, %q) = %q, want %q",
					tt.cwd, tt.home, got, tt.want)
			}
		})
	}
}

func TestSnippetLine(t *testing.T) {
	tests := []struct {
		role    string
		snippet string
		want    string
	}{
		{"user", "fix the build", "[user] fix the build"},
		{"", "fix the build", "fix the build"},
		{"user", "", "-"},
		{"", "", "-"},
	}
	for _, tt := range tests {
		if got := snippetLine(tt.role, tt.snippet); got != tt.want {
			t.Errorf("snippetLine(%q, %q) = %q, want %q",
				tt.role, tt.snippet, got, tt.want)
		}
	}
}

// Whole pipeline: two files on disk, one structured cwd and one
// legacy sentence cwd, scanned and then narrowed by cwd filter.
func TestScanThenFilterByCwd(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(
			filepath.Join(dir, name), []byte(content), 0o644,
		); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}
	write("a.jsonl", testjsonl.JoinJSONL(
		testjsonl.SessionMetaJSON("sess-a", "/a", "2025-06-01T10:00:00Z"),
		testjsonl.ResponseItemJSON("user", "deploy the service", "2025-06-01T10:00:05Z"),
	))
	write("b.jsonl", testjsonl.JoinJSONL(
		testjsonl.ResponseItemJSON("user",
			"Current working directory: /b", "2025-06-02T09:00:00Z"),
		testjsonl.ResponseItemJSON("assistant", "rolled back", "2025-06-02T09:00:10Z"),
	))

	sessions, warnings := scan.NewScanner([]string{dir}, 0).Scan()
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(sessions) != 2 {
		t.Fatalf("got %d sessions, want 2", len(sessions))
	}

	got := search.Filter(sessions, search.Query{Cwd: "/b"})
	if len(got) != 1 || got[0].Cwd != "/b" || got[0].ID != "b" {
		t.Fatalf("cwd filter /b returned %+v, want only the sentence-cwd session", got)
	}

	got = search.Filter(sessions, search.Query{
		Keywords: []string{"rolled", "back"},
		Mode:     search.MatchAll,
	})
	if len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("keyword filter returned %+v, want only session b", got)
	}
}
