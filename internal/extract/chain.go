package extract

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhon-crow/ymmod/internal/platform"
)

// Extractor drives the fallback chains. Candidates are tried strictly in
// order and never in parallel: a failed concurrent attempt could leave a
// partially-written output directory that corrupts a later attempt.
type Extractor struct {
	chains map[Kind][]Strategy
	info   *platform.Info
}

// NewExtractor builds an extractor with the fixed chains for both archive
// kinds. info may be nil; it only shapes the install-guidance text shown
// when a whole chain fails.
func NewExtractor(info *platform.Info) *Extractor {
	return &Extractor{
		chains: map[Kind][]Strategy{
			KindInstaller: append(installerToolChain(), &zipStrategy{}),
			KindResource:  append(resourceToolChain(), &asarStrategy{}),
		},
		info: info,
	}
}

// Extract unpacks inputPath into outputDir using the chain for kind.
// The first succeeding candidate short-circuits the chain; if every
// candidate fails the returned error is a *ChainError naming them all.
func (e *Extractor) Extract(ctx context.Context, kind Kind, inputPath, outputDir string) error {
	chain, ok := e.chains[kind]
	if !ok {
		return fmt.Errorf("unknown archive kind: %s", kind)
	}

	var attempts []Attempt
	for _, strategy := range chain {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := strategy.Extract(ctx, inputPath, outputDir)
		if err == nil {
			return nil
		}

		attempt := Attempt{Candidate: strategy.Name(), Err: err}
		var nf *notFoundError
		if errors.As(err, &nf) {
			attempt.NotFound = true
		}
		var te *toolError
		if errors.As(err, &te) {
			attempt.Output = te.output
		}
		attempts = append(attempts, attempt)
	}

	return &ChainError{
		Kind:     kind,
		Input:    inputPath,
		Attempts: attempts,
		Guidance: installGuidance(kind, e.info),
	}
}

// installGuidance names the external tools that would resolve a failed
// chain, phrased for the operator's platform.
func installGuidance(kind Kind, info *platform.Info) string {
	switch kind {
	case KindInstaller:
		switch {
		case info == nil:
			return "Install 7-Zip (7z/7zz/p7zip) and ensure it is in PATH."
		case info.IsWindows():
			return "Install 7-Zip from https://www.7-zip.org/ and ensure 7z is in PATH."
		case info.IsMacOS():
			return "Install 7-Zip: brew install p7zip"
		case info.IsDebianFamily():
			return "Install 7-Zip: apt install p7zip-full"
		default:
			return "Install 7-Zip (p7zip) via your package manager and ensure it is in PATH."
		}
	case KindResource:
		return "Install the asar CLI (npm install -g @electron/asar) or ensure Node.js/npx is in PATH."
	default:
		return ""
	}
}
