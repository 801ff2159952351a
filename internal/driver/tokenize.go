package driver

import (
	"fmt"
	"unicode/utf8"

	"runic/internal/diag"
	"runic/internal/lexer"
	"runic/internal/source"
	"runic/internal/token"
)

// Tokenize drains a fresh engine over src. The engine itself stays neutral
// when no rule matches; here that becomes host policy: leftover input is
// reported as an "unrecognized character" diagnostic.
func Tokenize(src *source.Source, ruleList []lexer.Rule[string]) ([]token.Token[string], error) {
	lx := lexer.New(src, ruleList)
	toks, err := lx.Tokenize()
	if err != nil {
		return toks, err
	}

	if r, ok := lx.Cursor().Current(); ok {
		pos := lx.Cursor().Pos()
		end := pos + uint32(utf8.RuneLen(r))
		return toks, diag.New(fmt.Sprintf("unrecognized character %q", r), src, source.NewSpan(pos, end)).
			WithNote("no tokenizer rule matched here")
	}
	return toks, nil
}

// TokenizeFile loads path and tokenizes it with the given ruleset.
func TokenizeFile(path string, rs *RuleSet) (*source.Source, []token.Token[string], error) {
	ruleList, err := rs.Build()
	if err != nil {
		return nil, nil, err
	}
	src, err := source.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load file: %w", err)
	}
	toks, err := Tokenize(src, ruleList)
	return src, toks, err
}
