package summary

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrEmptyCommand is returned by NewCommandSummarizer for a blank command line.
var ErrEmptyCommand = errors.New("summarizer command is empty")

// CommandSummarizer runs an external program per contributor. The subjects
// are written to its stdin one per line and its trimmed stdout is the summary.
type CommandSummarizer struct {
	name string
	args []string
}

// NewCommandSummarizer splits line on whitespace into a program and its arguments.
func NewCommandSummarizer(line string) (*CommandSummarizer, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, ErrEmptyCommand
	}
	return &CommandSummarizer{name: fields[0], args: fields[1:]}, nil
}

// Summarize runs the command with subjects on stdin.
func (s *CommandSummarizer) Summarize(ctx context.Context, subjects []string) (string, error) {
	cmd := exec.CommandContext(ctx, s.name, s.args...)
	cmd.Stdin = strings.NewReader(strings.Join(subjects, "\n") + "\n")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s: %w: %s", s.name, err, msg)
		}
		return "", fmt.Errorf("%s: %w", s.name, err)
	}
	return strings.TrimSpace(stdout.String()), nil
}
