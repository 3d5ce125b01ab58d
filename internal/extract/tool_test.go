package extract

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestToolStrategyNotFound(t *testing.T) {
	s := &toolStrategy{
		name:    "definitely-missing",
		command: "ymmod-test-no-such-tool",
		args: func(input, output string) []string {
			return []string{input, output}
		},
	}

	err := s.Extract(context.Background(), "in", "out")
	var nf *notFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("error type = %T, want *notFoundError (err = %v)", err, err)
	}
}

func TestToolStrategyNonZeroExit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	// A tool that is present but always rejects its input.
	dir := t.TempDir()
	script := filepath.Join(dir, "rejecting-tool")
	content := "#!/bin/sh\necho 'unsupported archive' >&2\nexit 2\n"
	if err := os.WriteFile(script, []byte(content), 0755); err != nil {
		t.Fatalf("write script: %v", err)
	}

	s := &toolStrategy{
		name:    "rejecting-tool",
		command: script,
		args: func(input, output string) []string {
			return []string{input, output}
		},
	}

	err := s.Extract(context.Background(), "in", "out")
	var te *toolError
	if !errors.As(err, &te) {
		t.Fatalf("error type = %T, want *toolError (err = %v)", err, err)
	}
	if te.output != "unsupported archive" {
		t.Errorf("captured output = %q, want %q", te.output, "unsupported archive")
	}
}

func TestTrimOutput(t *testing.T) {
	long := make([]byte, maxToolOutput+100)
	for i := range long {
		long[i] = 'x'
	}
	if got := trimOutput(long); len(got) != maxToolOutput+3 {
		t.Errorf("trimmed length = %d, want %d", len(got), maxToolOutput+3)
	}
	if got := trimOutput([]byte("line1\nline2\n")); got != "line1 | line2" {
		t.Errorf("trimOutput = %q", got)
	}
}
