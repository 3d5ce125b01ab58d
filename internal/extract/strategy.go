package extract

import (
	"context"
	"fmt"
	"strings"
)

// Kind selects which fallback chain handles an archive.
type Kind string

const (
	// KindInstaller is the downloaded installer container (7-Zip family).
	KindInstaller Kind = "installer"
	// KindResource is the app.asar resource archive.
	KindResource Kind = "resource"
)

// Strategy is one candidate mechanism for unpacking an archive into a
// directory. Strategies are stateless; a chain is an ordered slice of them
// and the order encodes preference.
type Strategy interface {
	// Name identifies the candidate in diagnostics, e.g. "7z" or "asar (built-in)".
	Name() string
	// Extract unpacks inputPath into outputDir.
	Extract(ctx context.Context, inputPath, outputDir string) error
}

// Attempt records the outcome of one failed candidate.
type Attempt struct {
	Candidate string // strategy name
	Err       error  // underlying failure
	NotFound  bool   // true when the external tool is not installed
	Output    string // captured stdout/stderr, trimmed, for diagnostics
}

// ChainError reports that every candidate in a chain failed.
//
// A candidate that was present but rejected the input is reported
// differently from one that was not installed: the former usually means a
// corrupt download, the latter a missing dependency.
type ChainError struct {
	Kind     Kind
	Input    string
	Attempts []Attempt
	Guidance string
}

// Error lists every attempted candidate and its failure reason.
func (e *ChainError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "failed to extract %s archive %s; tried %d candidate(s):", e.Kind, e.Input, len(e.Attempts))
	for _, a := range e.Attempts {
		if a.NotFound {
			fmt.Fprintf(&b, "\n  %s: not installed", a.Candidate)
			continue
		}
		fmt.Fprintf(&b, "\n  %s: ran but rejected the input: %v", a.Candidate, a.Err)
		if a.Output != "" {
			fmt.Fprintf(&b, " (%s)", a.Output)
		}
	}
	if e.Guidance != "" {
		fmt.Fprintf(&b, "\n%s", e.Guidance)
	}
	return b.String()
}

// Unwrap exposes the last attempt's error for errors.Is/As checks.
func (e *ChainError) Unwrap() error {
	if len(e.Attempts) == 0 {
		return nil
	}
	return e.Attempts[len(e.Attempts)-1].Err
}
