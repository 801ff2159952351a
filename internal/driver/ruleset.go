// Package driver is the host-side plumbing used by the runic CLI: it loads
// rule sets, runs the engine over files (optionally in parallel), and caches
// token streams. The library packages stay policy-free; everything here is
// one host's policy.
package driver

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"runic/internal/lexer"
	"runic/internal/rules"
)

// RuleSet is the TOML description of a token vocabulary. Order inside each
// section is significant and is preserved in the built rule list.
type RuleSet struct {
	SkipWhitespace bool     `toml:"skip-whitespace"`
	Keywords       []string `toml:"keywords"`
	Symbols        []Symbol `toml:"symbols"`
	Classes        []string `toml:"classes"`
}

// Symbol maps a literal operator or punctuation text to a token kind.
type Symbol struct {
	Kind string `toml:"kind"`
	Text string `toml:"text"`
}

// LoadRuleSet parses a ruleset TOML file.
func LoadRuleSet(path string) (*RuleSet, error) {
	var rs RuleSet
	if _, err := toml.DecodeFile(path, &rs); err != nil {
		return nil, fmt.Errorf("failed to load ruleset %q: %w", path, err)
	}
	if err := rs.validate(); err != nil {
		return nil, fmt.Errorf("invalid ruleset %q: %w", path, err)
	}
	return &rs, nil
}

// DefaultRuleSet is used when no ruleset file is given: a small C-ish
// vocabulary that exercises every rule flavor.
func DefaultRuleSet() *RuleSet {
	return &RuleSet{
		SkipWhitespace: true,
		Keywords:       []string{"fn", "let", "if", "else", "while", "return", "true", "false"},
		Symbols: []Symbol{
			{Kind: "arrow", Text: "->"},
			{Kind: "eqeq", Text: "=="},
			{Kind: "assign", Text: "="},
			{Kind: "plus", Text: "+"},
			{Kind: "minus", Text: "-"},
			{Kind: "star", Text: "*"},
			{Kind: "slash", Text: "/"},
			{Kind: "lparen", Text: "("},
			{Kind: "rparen", Text: ")"},
			{Kind: "lbrace", Text: "{"},
			{Kind: "rbrace", Text: "}"},
			{Kind: "comma", Text: ","},
			{Kind: "semicolon", Text: ";"},
		},
		Classes: []string{"ident", "number", "string"},
	}
}

func (rs *RuleSet) validate() error {
	for i, kw := range rs.Keywords {
		if kw == "" {
			return fmt.Errorf("keyword %d is empty", i)
		}
	}
	for i, sym := range rs.Symbols {
		if sym.Kind == "" || sym.Text == "" {
			return fmt.Errorf("symbol %d needs both kind and text", i)
		}
	}
	for _, class := range rs.Classes {
		switch class {
		case "ident", "number", "string":
		default:
			return fmt.Errorf("unknown token class %q", class)
		}
	}
	return nil
}

// Build constructs the ordered rule list: whitespace skipper first, then
// keywords, symbols, and classes in their listed order. Keyword tokens use
// the keyword itself as kind. The returned rules are stateless and safe to
// share across engines.
func (rs *RuleSet) Build() ([]lexer.Rule[string], error) {
	if err := rs.validate(); err != nil {
		return nil, err
	}

	var out []lexer.Rule[string]
	if rs.SkipWhitespace {
		out = append(out, rules.SkipWhitespace[string]())
	}
	for _, kw := range rs.Keywords {
		out = append(out, rules.Word(kw, kw))
	}
	for _, sym := range rs.Symbols {
		out = append(out, rules.Literal(sym.Kind, sym.Text))
	}
	for _, class := range rs.Classes {
		switch class {
		case "ident":
			out = append(out, identRule{})
		case "number":
			out = append(out, numberRule{})
		case "string":
			out = append(out, stringRule{})
		}
	}
	return out, nil
}

// Fingerprint hashes the ruleset for cache keys: token streams produced by
// different rule sets must never collide.
func (rs *RuleSet) Fingerprint() [32]byte {
	var b strings.Builder
	fmt.Fprintf(&b, "skip=%v\n", rs.SkipWhitespace)
	fmt.Fprintf(&b, "keywords=%s\n", strings.Join(rs.Keywords, ","))
	for _, sym := range rs.Symbols {
		fmt.Fprintf(&b, "symbol=%s:%s\n", sym.Kind, sym.Text)
	}
	fmt.Fprintf(&b, "classes=%s\n", strings.Join(rs.Classes, ","))
	return sha256.Sum256([]byte(b.String()))
}
