package patch

// Kind tags a rule with the transformation the engine must perform.
type Kind string

const (
	// KindJSONMutation parses the target as JSON and applies a declarative
	// op list. The target file is load-bearing: absence or a parse failure
	// fails the whole run.
	KindJSONMutation Kind = "json_mutation"
	// KindTextReplace applies ordered literal substring replacements, with
	// an optional prologue block prepended once. Re-applying is a no-op.
	KindTextReplace Kind = "text_replace"
	// KindTextAppend appends an opaque block after optional replacements.
	// Appending is deliberately unconditional; re-running appends again.
	KindTextAppend Kind = "text_append"
	// KindTreeRewrite walks a subtree and applies a guarded replacement to
	// every file matching an extension predicate.
	KindTreeRewrite Kind = "tree_rewrite"
	// KindDirectoryRemoval deletes the target directory recursively.
	// A missing directory is a no-op.
	KindDirectoryRemoval Kind = "directory_removal"
)

// Replacement is one exact-match literal substitution. Absence of the
// pattern is never an error: the pattern may already be applied, or may not
// exist in a particular build variant.
type Replacement struct {
	Old string
	New string
}

// TextPatch is the payload for KindTextReplace and KindTextAppend rules.
type TextPatch struct {
	// Prologue is prepended to the file once; skipped when the file
	// already contains it, which keeps re-application stable.
	Prologue string
	// Replacements run in order. A replacement whose New text is already
	// present is skipped, so even a replacement that embeds its own
	// pattern cannot double-insert.
	Replacements []Replacement
	// Separator and Block are KindTextAppend only: Separator + Block is
	// appended to the file unconditionally.
	Separator string
	Block     string
}

// TreePatch is the payload for KindTreeRewrite rules.
type TreePatch struct {
	// Ext selects files by extension, e.g. ".html".
	Ext string
	// Replacement is applied to every selected file, guarded the same way
	// as TextPatch replacements (at most one injection per file).
	Replacement Replacement
}

// Rule describes one file-level transformation. Target is slash-separated
// and relative to the working tree root; no two rules in a table may name
// the same target.
type Rule struct {
	Target string
	Kind   Kind

	JSON []JSONOp   // KindJSONMutation
	Text *TextPatch // KindTextReplace, KindTextAppend
	Tree *TreePatch // KindTreeRewrite
}
