package driver

import (
	"unicode"

	"runic/internal/diag"
	"runic/internal/lexer"
	"runic/internal/source"
	"runic/internal/token"
)

// Классы токенов, которые нельзя выразить литералом: идентификаторы, числа,
// строки. Каждый — обычное lexer.Rule поверх курсора.

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isDec(r rune) bool { return r >= '0' && r <= '9' }

type identRule struct{}

func (identRule) TryMatch(c *lexer.Cursor) (token.Token[string], bool, error) {
	r, ok := c.Current()
	if !ok || !isIdentStart(r) {
		return token.Token[string]{}, false, nil
	}
	start := c.Mark()
	for {
		c.Advance()
		r, ok = c.Current()
		if !ok || !isIdentContinue(r) {
			break
		}
	}
	return token.New("ident", c.SpanFrom(start)), true, nil
}

func (identRule) Consuming() bool { return true }

type numberRule struct{}

// Целые и десятичные числа; точка без цифры после неё не входит в токен.
func (numberRule) TryMatch(c *lexer.Cursor) (token.Token[string], bool, error) {
	r, ok := c.Current()
	if !ok || !isDec(r) {
		return token.Token[string]{}, false, nil
	}
	start := c.Mark()
	eatDigits(c)

	if r, ok := c.Current(); ok && r == '.' {
		dot := c.Mark()
		c.Advance()
		if r, ok := c.Current(); ok && isDec(r) {
			eatDigits(c)
		} else {
			c.Reset(dot)
		}
	}
	return token.New("number", c.SpanFrom(start)), true, nil
}

func (numberRule) Consuming() bool { return true }

func eatDigits(c *lexer.Cursor) {
	for {
		r, ok := c.Current()
		if !ok || !isDec(r) {
			return
		}
		c.Advance()
	}
}

type stringRule struct{}

// Строки в двойных кавычках с экранированием через '\'. Незакрытая строка
// или перевод строки внутри неё — DiagnosticError.
func (stringRule) TryMatch(c *lexer.Cursor) (token.Token[string], bool, error) {
	r, ok := c.Current()
	if !ok || r != '"' {
		return token.Token[string]{}, false, nil
	}
	start := c.Mark()
	c.Advance() // opening '"'

	for {
		r, ok := c.Current()
		if !ok {
			break
		}
		switch r {
		case '"':
			c.Advance()
			return token.New("string", c.SpanFrom(start)), true, nil
		case '\\':
			c.Advance()
			if _, ok := c.Current(); !ok {
				return token.Token[string]{}, false, unterminated(c, start, "unterminated string literal")
			}
			c.Advance()
		case '\n':
			return token.Token[string]{}, false, unterminated(c, start, "newline in string literal")
		default:
			c.Advance()
		}
	}
	return token.Token[string]{}, false, unterminated(c, start, "unterminated string literal")
}

func (stringRule) Consuming() bool { return true }

func unterminated(c *lexer.Cursor, start lexer.Mark, msg string) error {
	return diag.New(msg, c.Source(), source.NewSpan(uint32(start), c.Pos())).
		WithNote("string literals must be closed with '\"'")
}
