// Package token defines the Token value produced by lexer rules.
//
// The kind is an opaque, caller-supplied tag type: the engine never inspects
// it, so hosts are free to use an enum, a string, or anything else.
package token

import (
	"runic/internal/source"
)

// Token represents a single matched fragment of source text.
type Token[K any] struct {
	Kind K
	Span source.Span
}

// New creates a new Token.
func New[K any](kind K, span source.Span) Token[K] {
	return Token[K]{Kind: kind, Span: span}
}

// Text slices the matched fragment out of the source the token was produced
// from. The token's span must index into that same source.
func (t Token[K]) Text(src *source.Source) string {
	return src.Text[t.Span.Start:t.Span.End]
}
