// Package typegen compiles jsdoc doclets into declaration files.
//
// # Architecture
//
// Compilation runs in phases over a shared symbol tree:
//  1. Filter drops ignored, undocumented, private and too-new doclets
//  2. symbol.Build reconstructs the hierarchy from memberof links
//  3. symbol.MergeOverloads turns doclets into signatures and types
//  4. symbol.ExpandPropertyParams synthesizes typedefs for dotted params
//  5. A Generator renders the tree in its target language
//
// Phases 2 to 4 are language-agnostic; only the Generator knows the output
// syntax. The tree is read-only once rendering starts.
//
// # Design Decisions
//
//   - Diagnostics are collected, never printed; the caller decides how to
//     show them and whether warnings fail the run (strict mode)
//   - Output is deterministic: the same doclets in any order across parents
//     produce byte-identical text, which makes check mode a plain comparison
//   - The generated header carries the generator version on its own line so
//     check mode can ignore it
package typegen

import (
	"github.com/teranos/dtsgen/diag"
	"github.com/teranos/dtsgen/symbol"
)

// Generator renders a prepared symbol tree in one target language.
type Generator interface {
	// GenerateFile creates the complete output text for tree
	GenerateFile(tree *symbol.Tree, diags *diag.Collector) (string, error)

	// FileExtension returns the file extension for this language (e.g., "d.ts")
	FileExtension() string

	// Language returns the language name (e.g., "typescript")
	Language() string
}
