// Package symbols extracts definitions (class/function/type/variable) from
// source text with best-effort, regex-based patterns per language family.
// It intentionally does not parse an AST: a full parser per supported
// language is heavier than this module needs, and a regex-based
// best-effort extractor degrades gracefully on malformed or partial code.
package symbols

// Kind enumerates the extractable symbol kinds.
type Kind string

const (
	KindFunction  Kind = "function"
	KindMethod    Kind = "method"
	KindClass     Kind = "class"
	KindInterface Kind = "interface"
	KindType      Kind = "type"
	KindEnum      Kind = "enum"
	KindVariable  Kind = "variable"
)

// Symbol is an extracted definition (ExtractedSymbol).
type Symbol struct {
	Name       string
	Kind       Kind
	Line       int
	IsExported bool
}
