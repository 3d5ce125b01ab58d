package extract

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// maxToolOutput caps how much captured tool output is kept for diagnostics.
const maxToolOutput = 400

// notFoundError marks a candidate whose executable is not installed.
type notFoundError struct {
	command string
	err     error
}

func (e *notFoundError) Error() string {
	return fmt.Sprintf("%s not found in PATH: %v", e.command, e.err)
}

func (e *notFoundError) Unwrap() error { return e.err }

// toolError marks a candidate that ran but exited non-zero.
type toolError struct {
	command string
	err     error
	output  string
}

func (e *toolError) Error() string {
	return fmt.Sprintf("%s exited with error: %v", e.command, e.err)
}

func (e *toolError) Unwrap() error { return e.err }

// toolStrategy invokes an external extraction tool as a child process.
// Success is determined purely by exit status; output is captured only
// for diagnostics.
type toolStrategy struct {
	name    string
	command string
	// args builds the argument list for one invocation. Tools disagree on
	// extract-to-directory flags, so each candidate carries its own builder.
	args func(inputPath, outputDir string) []string
}

func (t *toolStrategy) Name() string { return t.name }

func (t *toolStrategy) Extract(ctx context.Context, inputPath, outputDir string) error {
	cmd := exec.CommandContext(ctx, t.command, t.args(inputPath, outputDir)...)

	out, err := cmd.CombinedOutput()
	if err == nil {
		return nil
	}

	if errors.Is(err, exec.ErrNotFound) {
		return &notFoundError{command: t.command, err: err}
	}
	return &toolError{command: t.command, err: err, output: trimOutput(out)}
}

// trimOutput collapses tool output into a single bounded diagnostic line.
func trimOutput(out []byte) string {
	s := strings.TrimSpace(string(out))
	s = strings.ReplaceAll(s, "\n", " | ")
	if len(s) > maxToolOutput {
		s = s[:maxToolOutput] + "..."
	}
	return s
}

// installerToolChain returns the external candidates for installer
// containers, in preference order. The built-in ZIP decoder is appended
// separately by the Extractor.
func installerToolChain() []Strategy {
	return []Strategy{
		&toolStrategy{
			name:    "7z",
			command: "7z",
			args: func(input, output string) []string {
				return []string{"x", "-y", "-o" + output, input}
			},
		},
		&toolStrategy{
			name:    "7zz",
			command: "7zz",
			args: func(input, output string) []string {
				return []string{"x", "-y", "-o" + output, input}
			},
		},
		&toolStrategy{
			name:    "p7zip",
			command: "p7zip",
			args: func(input, output string) []string {
				return []string{"-d", "-k", input}
			},
		},
	}
}

// resourceToolChain returns the external candidates for app.asar archives.
func resourceToolChain() []Strategy {
	return []Strategy{
		&toolStrategy{
			name:    "asar",
			command: "asar",
			args: func(input, output string) []string {
				return []string{"extract", input, output}
			},
		},
		&toolStrategy{
			name:    "npx asar",
			command: "npx",
			args: func(input, output string) []string {
				return []string{"asar", "extract", input, output}
			},
		},
	}
}
