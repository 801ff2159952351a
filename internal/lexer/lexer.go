// Package lexer drives an ordered list of matching rules over a source text.
//
// Dispatch is first-match-wins: rules are tried strictly in list order on
// every call, there is no longest-match semantics. Consuming rules that fail
// are rolled back to the position recorded before their attempt;
// non-consuming (skip) rules keep whatever progress they made.
package lexer

import (
	"errors"
	"fmt"

	"runic/internal/source"
	"runic/internal/token"
)

// ErrNoProgress reports a defective rule list: two consecutive NextToken
// calls matched nothing at the same position while input remained. Rules are
// deterministic, so a caller loop retrying that position can never advance.
var ErrNoProgress = errors.New("lexer: no rule matched and the cursor is not advancing")

// Lexer owns the scan cursor and the ordered rule list.
// Список правил во время диспетчеризации только читается; курсор — приватное
// мутабельное состояние, которое правила получают явным аргументом.
type Lexer[K any] struct {
	cursor Cursor
	rules  []Rule[K]

	// последняя позиция, на которой ни одно правило не дало токен
	noMatchAt  uint32
	hasNoMatch bool
}

// New constructs an engine over src with the given rules. Order is
// significant: it determines match precedence.
func New[K any](src *source.Source, rules []Rule[K]) *Lexer[K] {
	return &Lexer[K]{
		cursor: NewCursor(src),
		rules:  rules,
	}
}

// Cursor exposes the scan cursor, e.g. for hosts inspecting the position
// after a drain.
func (lx *Lexer[K]) Cursor() *Cursor {
	return &lx.cursor
}

// Source returns the source being tokenized.
func (lx *Lexer[K]) Source() *source.Source {
	return lx.cursor.Source()
}

// NextToken produces at most one token, using the first rule in list order
// that yields one.
//
// For each rule the cursor position is recorded before the attempt. A rule
// that returns a token ends the call immediately, leaving the cursor where
// the rule advanced it. A consuming rule that reports no match is rolled
// back; a non-consuming one keeps its side effects (this is how skip rules
// permanently consume input without producing tokens). A rule error aborts
// the call without trying further rules and without restoring the cursor.
//
// When no rule matches, NextToken returns ok=false; at EOF that is the
// normal terminal state and repeated calls keep returning it. With input
// remaining, a second consecutive zero-progress round at the same position
// returns ErrNoProgress instead of looping the caller forever.
func (lx *Lexer[K]) NextToken() (tok token.Token[K], ok bool, err error) {
	startPos := lx.cursor.Pos()

	for _, rule := range lx.rules {
		mark := lx.cursor.Mark()
		tok, ok, err = rule.TryMatch(&lx.cursor)
		if err != nil {
			// Позиция курсора после ошибки не определена для вызывающего.
			return token.Token[K]{}, false, err
		}
		if ok {
			lx.hasNoMatch = false
			return tok, true, nil
		}
		if rule.Consuming() {
			lx.cursor.Reset(mark)
		}
	}

	if !lx.cursor.EOF() && lx.cursor.Pos() == startPos {
		if lx.hasNoMatch && lx.noMatchAt == startPos {
			return token.Token[K]{}, false,
				fmt.Errorf("%w (byte offset %d)", ErrNoProgress, startPos)
		}
		lx.hasNoMatch = true
		lx.noMatchAt = startPos
	} else {
		lx.hasNoMatch = false
	}

	return token.Token[K]{}, false, nil
}

// Tokenize drains the engine: it calls NextToken until no token is produced
// and returns everything matched so far. On a rule error the tokens matched
// before the failure are returned alongside it.
func (lx *Lexer[K]) Tokenize() ([]token.Token[K], error) {
	var out []token.Token[K]
	for {
		tok, ok, err := lx.NextToken()
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, tok)
	}
}
