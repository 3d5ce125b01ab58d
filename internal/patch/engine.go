package patch

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Status classifies the outcome of one rule.
type Status string

const (
	// StatusApplied means the rule ran and modified the tree.
	StatusApplied Status = "applied"
	// StatusSkipped means the rule's target does not exist in this build
	// variant; non-fatal for every kind except KindJSONMutation.
	StatusSkipped Status = "skipped_missing"
	// StatusFailed means the rule ran and failed; fatal to the whole run.
	StatusFailed Status = "failed"
)

// Outcome is the per-rule result reported by Apply.
type Outcome struct {
	Target string
	Kind   Kind
	Status Status
	Err    error
}

// Engine interprets rule tables against a file tree.
type Engine struct{}

// NewEngine creates a patch engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Apply runs every rule in declaration order against the tree rooted at
// root. Later rules may assume earlier ones already ran. The returned
// outcomes cover every rule attempted; a failed rule aborts the remainder
// and is returned as the error alongside the outcomes so far.
func (e *Engine) Apply(root string, rules []Rule) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(rules))
	for i := range rules {
		rule := &rules[i]
		outcome := e.applyRule(root, rule)
		outcomes = append(outcomes, outcome)
		if outcome.Status == StatusFailed {
			return outcomes, fmt.Errorf("patch %s: %w", rule.Target, outcome.Err)
		}
	}
	return outcomes, nil
}

func (e *Engine) applyRule(root string, rule *Rule) Outcome {
	target := filepath.Join(root, filepath.FromSlash(rule.Target))
	outcome := Outcome{Target: rule.Target, Kind: rule.Kind}

	switch rule.Kind {
	case KindJSONMutation:
		outcome.Status, outcome.Err = applyJSONMutation(target, rule.JSON)
	case KindTextReplace:
		outcome.Status, outcome.Err = applyTextReplace(target, rule.Text)
	case KindTextAppend:
		outcome.Status, outcome.Err = applyTextAppend(target, rule.Text)
	case KindTreeRewrite:
		outcome.Status, outcome.Err = applyTreeRewrite(target, rule.Tree)
	case KindDirectoryRemoval:
		outcome.Status, outcome.Err = applyDirectoryRemoval(target)
	default:
		outcome.Status = StatusFailed
		outcome.Err = fmt.Errorf("unknown rule kind: %s", rule.Kind)
	}
	return outcome
}

// applyJSONMutation rewrites a JSON document. The target's shape is
// load-bearing for the produced application, so a missing or unparseable
// file fails the run instead of being skipped.
func applyJSONMutation(target string, ops []JSONOp) (Status, error) {
	raw, err := os.ReadFile(target)
	if err != nil {
		return StatusFailed, fmt.Errorf("read required file: %w", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return StatusFailed, fmt.Errorf("parse json: %w", err)
	}

	applyJSONOps(doc, ops)

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return StatusFailed, fmt.Errorf("encode json: %w", err)
	}
	if err := os.WriteFile(target, append(out, '\n'), 0644); err != nil {
		return StatusFailed, fmt.Errorf("write file: %w", err)
	}
	return StatusApplied, nil
}

func applyTextReplace(target string, patch *TextPatch) (Status, error) {
	raw, err := os.ReadFile(target)
	if os.IsNotExist(err) {
		return StatusSkipped, nil
	}
	if err != nil {
		return StatusFailed, fmt.Errorf("read file: %w", err)
	}

	content := replaceGuarded(string(raw), patch.Replacements)
	if patch.Prologue != "" && !strings.Contains(content, patch.Prologue) {
		content = patch.Prologue + "\n" + content
	}

	if err := os.WriteFile(target, []byte(content), 0644); err != nil {
		return StatusFailed, fmt.Errorf("write file: %w", err)
	}
	return StatusApplied, nil
}

func applyTextAppend(target string, patch *TextPatch) (Status, error) {
	raw, err := os.ReadFile(target)
	if os.IsNotExist(err) {
		return StatusSkipped, nil
	}
	if err != nil {
		return StatusFailed, fmt.Errorf("read file: %w", err)
	}

	content := replaceGuarded(string(raw), patch.Replacements)
	content += patch.Separator + patch.Block

	if err := os.WriteFile(target, []byte(content), 0644); err != nil {
		return StatusFailed, fmt.Errorf("write file: %w", err)
	}
	return StatusApplied, nil
}

func applyTreeRewrite(target string, patch *TreePatch) (Status, error) {
	info, err := os.Stat(target)
	if os.IsNotExist(err) {
		return StatusSkipped, nil
	}
	if err != nil {
		return StatusFailed, fmt.Errorf("stat subtree: %w", err)
	}
	if !info.IsDir() {
		return StatusFailed, fmt.Errorf("tree rewrite target is not a directory")
	}

	err = filepath.WalkDir(target, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), patch.Ext) {
			return nil
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		content := replaceGuarded(string(raw), []Replacement{patch.Replacement})
		if content == string(raw) {
			return nil
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return StatusFailed, err
	}
	return StatusApplied, nil
}

func applyDirectoryRemoval(target string) (Status, error) {
	if _, err := os.Stat(target); os.IsNotExist(err) {
		return StatusSkipped, nil
	}
	if err := os.RemoveAll(target); err != nil {
		return StatusFailed, fmt.Errorf("remove directory: %w", err)
	}
	return StatusApplied, nil
}

// replaceGuarded applies replacements in order. A replacement whose New
// text embeds its own Old pattern would grow on every pass, so those skip
// once the content carries the New text. Every other replacement runs
// unconditionally: a second pass finds no Old occurrences, and a build
// variant that ships the New text in one place still gets its remaining
// Old occurrences rewritten.
func replaceGuarded(content string, replacements []Replacement) string {
	for _, r := range replacements {
		if r.New != r.Old && strings.Contains(r.New, r.Old) && strings.Contains(content, r.New) {
			continue
		}
		content = strings.ReplaceAll(content, r.Old, r.New)
	}
	return content
}
