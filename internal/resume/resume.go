// Package resume builds the command line that reopens a session
// in the CLI that recorded it.
package resume

import (
	"fmt"
	"strings"

	"github.com/google/shlex"

	"github.com/seshatlabs/seshat/internal/parser"
)

// Argv splits cmdTemplate shell-style and appends the session's
// resume target, the session id when one is known and the
// transcript path otherwise.
func Argv(cmdTemplate string, s parser.Session) ([]string, error) {
	args, err := shlex.Split(cmdTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse resume command %q: %w", cmdTemplate, err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("resume command is empty")
	}
	return append(args, s.ResumeTarget()), nil
}

// Preview renders the argv for display without running anything.
func Preview(cmdTemplate string, s parser.Session) (string, error) {
	args, err := Argv(cmdTemplate, s)
	if err != nil {
		return "", err
	}
	return strings.Join(args, " "), nil
}
