// Command testfixture writes a tree of synthetic transcripts for
// exercising seshat by hand: every metadata style the parser
// understands, laid out in dated subdirectories the way codex
// writes its session logs.
//
//	go run ./cmd/testfixture -out /tmp/sessions
//	go run ./cmd/seshat list /tmp/sessions
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/seshatlabs/seshat/internal/testjsonl"
)

type fixtureSpec struct {
	name     string
	style    string
	msgCount int
}

var specs = []fixtureSpec{
	{"meta-small", "meta", 2},
	{"meta-medium", "meta", 8},
	{"tag-cwd", "tag", 3},
	{"sentence-cwd", "sentence", 4},
	{"legacy-roles", "legacy", 6},
	{"opaque-heavy", "opaque", 10},
	{"mixed-content", "mixed", 6},
	{"meta-large", "meta", 200},
}

func main() {
	out := flag.String("out", "", "output sessions directory")
	flag.Parse()
	if *out == "" {
		fmt.Fprintln(os.Stderr, "usage: testfixture -out <dir>")
		os.Exit(1)
	}

	base := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

	for i, spec := range specs {
		path, err := writeFixture(*out, spec, i, base)
		if err != nil {
			log.Fatalf("creating fixture %s: %v", spec.name, err)
		}
		fmt.Printf("  %s (%s, %d records)\n", path, spec.style, spec.msgCount)
	}

	fmt.Printf("Fixtures written under %s\n", *out)
}

func writeFixture(
	root string, spec fixtureSpec, index int, base time.Time,
) (string, error) {
	start := base.Add(time.Duration(index) * 24 * time.Hour)

	dir := filepath.Join(
		root,
		start.Format("2006"), start.Format("01"), start.Format("02"),
	)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	id := "test-session-" + spec.name
	path := filepath.Join(
		dir,
		fmt.Sprintf("rollout-%s-%s.jsonl", start.Format("2006-01-02"), id),
	)

	content := buildTranscript(spec, id, start)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func buildTranscript(spec fixtureSpec, id string, start time.Time) string {
	cwd := "/work/" + spec.name
	ts := func(i int) string {
		return start.Add(time.Duration(i) * time.Minute).
			UTC().Format(time.RFC3339Nano)
	}

	b := testjsonl.NewTranscriptBuilder()

	switch spec.style {
	case "meta":
		b.AddMeta(ts(0), id, cwd)
		addTurns(b, ts, 1, spec.msgCount)

	case "tag":
		b.AddUser(ts(0), fmt.Sprintf(
			"<user_instructions>\nYou are pairing on a repo at <cwd>%s</cwd>.\n</user_instructions>",
			cwd,
		))
		addTurns(b, ts, 1, spec.msgCount)

	case "sentence":
		b.AddUser(ts(0), fmt.Sprintf(
			"<environment_context>\nCurrent working directory: %s\nShell: bash\n</environment_context>",
			cwd,
		))
		addTurns(b, ts, 1, spec.msgCount)

	case "legacy":
		b.AddLegacy("user", "Help me read a file")
		b.AddLegacy("assistant", []map[string]any{
			{"type": "output_text", "text": "Here is my analysis."},
		})
		for i := 2; i < spec.msgCount; i++ {
			b.AddLegacy(roleFor(i), turnText(roleFor(i), i, spec.msgCount))
		}

	case "opaque":
		b.AddMeta(ts(0), id, cwd)
		for i := range spec.msgCount {
			switch i % 3 {
			case 0:
				b.AddReasoning(ts(i+1), fmt.Sprintf("Weighing option %d", i))
			case 1:
				b.AddRaw(testjsonl.FunctionCallJSON(
					"shell",
					fmt.Sprintf(`{"command":["ls","step-%d"]}`, i),
					ts(i+1),
				))
			default:
				b.AddUser(ts(i+1), turnText("user", i, spec.msgCount))
			}
		}
		b.AddRaw(testjsonl.StateJSON(ts(spec.msgCount + 1)))

	case "mixed":
		b.AddMeta(ts(0), id, cwd)
		b.AddUser(ts(1), "Now check the directory")
		b.AddReasoning(ts(2), "The directory listing should come first")
		b.AddAssistant(ts(3), "[Bash]\nls -la /src")
		b.AddRaw("not json at all")
		b.AddTurnContext(ts(4), cwd)
		addTurns(b, ts, 5, spec.msgCount)
	}

	return b.String()
}

func addTurns(
	b *testjsonl.TranscriptBuilder, ts func(int) string, from, count int,
) {
	for i := range count {
		role := roleFor(i)
		text := turnText(role, i, count)
		if role == "user" {
			b.AddUser(ts(from+i), text)
		} else {
			b.AddAssistant(ts(from+i), text)
		}
	}
}

func roleFor(i int) string {
	if i%2 == 0 {
		return "user"
	}
	return "assistant"
}

func turnText(role string, idx, total int) string {
	if role == "user" {
		return fmt.Sprintf(
			"User message %d of %d. "+
				"Please help me with this task. "+
				"I need to understand how the code works.",
			idx, total,
		)
	}
	return fmt.Sprintf(
		"Assistant response %d of %d. "+
			"Here is my analysis of the code. "+
			"The implementation follows standard patterns "+
			"and uses well-known libraries.",
		idx, total,
	)
}
