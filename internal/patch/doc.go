// Package patch declares the fixed table of file transformations applied to
// the extracted Yandex Music application tree and the engine that interprets
// it.
//
// The table is data, not behavior: each Rule names a file relative to the
// working tree and tags it with a transformation kind (JSON mutation, literal
// text replacement, text append, recursive tree rewrite, directory removal).
// One engine loop interprets every kind, so adding a rule never adds pipeline
// code and tests can enumerate the rules on their own.
package patch
