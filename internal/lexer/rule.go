package lexer

import (
	"runic/internal/token"
)

// Rule is a pluggable unit of match logic. Rules receive the engine's cursor
// as an explicit mutable handle; they never see the rule list they belong to.
type Rule[K any] interface {
	// TryMatch attempts to produce a token at the cursor's position. It
	// returns (token, true, nil) on a match, (zero, false, nil) when the
	// rule does not apply, or an error that aborts the whole NextToken call.
	// The rule may advance the cursor speculatively: the engine restores the
	// position of a consuming rule that reports no match.
	TryMatch(c *Cursor) (token.Token[K], bool, error)

	// Consuming reports whether a failed match must be rolled back. Skip
	// rules (whitespace, comments) return false so their side effects
	// persist even though they never produce a token.
	Consuming() bool
}
