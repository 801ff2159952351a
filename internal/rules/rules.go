// Package rules provides ready-made building blocks for rule lists: a
// whitespace skipper, literal and word matchers, and a closure adapter.
// Hosts with richer needs implement lexer.Rule directly.
package rules

import (
	"unicode"

	"runic/internal/lexer"
	"runic/internal/token"
)

type skipWhitespace[K any] struct{}

// SkipWhitespace returns a non-consuming rule that advances over whitespace.
// It never produces a token; the input it skips stays consumed even though
// the engine records a failed match.
func SkipWhitespace[K any]() lexer.Rule[K] {
	return skipWhitespace[K]{}
}

func (skipWhitespace[K]) TryMatch(c *lexer.Cursor) (token.Token[K], bool, error) {
	for {
		r, ok := c.Current()
		if !ok || !unicode.IsSpace(r) {
			break
		}
		c.Advance()
	}
	return token.Token[K]{}, false, nil
}

func (skipWhitespace[K]) Consuming() bool { return false }

type literal[K any] struct {
	kind K
	text string
}

// Literal returns a consuming rule that matches the exact text at the
// cursor. text must be non-empty.
func Literal[K any](kind K, text string) lexer.Rule[K] {
	if text == "" {
		panic("rules: literal text must be non-empty")
	}
	return literal[K]{kind: kind, text: text}
}

func (l literal[K]) TryMatch(c *lexer.Cursor) (token.Token[K], bool, error) {
	start := c.Mark()
	for _, want := range l.text {
		r, ok := c.Current()
		if !ok || r != want {
			return token.Token[K]{}, false, nil
		}
		c.Advance()
	}
	return token.New(l.kind, c.SpanFrom(start)), true, nil
}

func (literal[K]) Consuming() bool { return true }

type word[K any] struct {
	kind K
	text string
}

// Word is Literal plus a boundary check: the match fails when the next rune
// would continue an identifier, so "let" does not match inside "letter".
func Word[K any](kind K, text string) lexer.Rule[K] {
	if text == "" {
		panic("rules: word text must be non-empty")
	}
	return word[K]{kind: kind, text: text}
}

func (w word[K]) TryMatch(c *lexer.Cursor) (token.Token[K], bool, error) {
	start := c.Mark()
	for _, want := range w.text {
		r, ok := c.Current()
		if !ok || r != want {
			return token.Token[K]{}, false, nil
		}
		c.Advance()
	}
	if r, ok := c.Current(); ok && isIdentContinue(r) {
		return token.Token[K]{}, false, nil
	}
	return token.New(w.kind, c.SpanFrom(start)), true, nil
}

func (word[K]) Consuming() bool { return true }

func isIdentContinue(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

type funcRule[K any] struct {
	fn        func(c *lexer.Cursor) (token.Token[K], bool, error)
	consuming bool
}

// Func adapts a closure into a rule.
func Func[K any](consuming bool, fn func(c *lexer.Cursor) (token.Token[K], bool, error)) lexer.Rule[K] {
	return funcRule[K]{fn: fn, consuming: consuming}
}

func (f funcRule[K]) TryMatch(c *lexer.Cursor) (token.Token[K], bool, error) {
	return f.fn(c)
}

func (f funcRule[K]) Consuming() bool { return f.consuming }
