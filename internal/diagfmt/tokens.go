// Package diagfmt formats token streams for the CLI.
package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"runic/internal/source"
	"runic/internal/token"
)

type TokenOutput struct {
	Kind string      `json:"kind"`
	Text string      `json:"text"`
	Span source.Span `json:"span"`
	Line uint32      `json:"line"`
	Col  uint32      `json:"col"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, src *source.Source, tokens []token.Token[string]) error {
	kindWidth := 4
	for _, tok := range tokens {
		if n := runewidth.StringWidth(tok.Kind); n > kindWidth {
			kindWidth = n
		}
	}

	for i, tok := range tokens {
		start := source.Locate(src.Text, tok.Span.Start)
		end := source.Locate(src.Text, tok.Span.End)
		pad := kindWidth - runewidth.StringWidth(tok.Kind)
		if _, err := fmt.Fprintf(w, "%3d: %s%s %q at %d:%d-%d:%d\n",
			i+1, tok.Kind, spaces(pad), tok.Text(src),
			start.Line, start.Col, end.Line, end.Col); err != nil {
			return err
		}
	}
	return nil
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, src *source.Source, tokens []token.Token[string]) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		lc := source.Locate(src.Text, tok.Span.Start)
		output = append(output, TokenOutput{
			Kind: tok.Kind,
			Text: tok.Text(src),
			Span: tok.Span,
			Line: lc.Line,
			Col:  lc.Col,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
