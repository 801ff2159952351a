package diag

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"runic/internal/source"
)

var (
	headColor   = color.New(color.FgRed, color.Bold)
	boldColor   = color.New(color.Bold)
	gutterColor = color.New(color.FgCyan, color.Bold)
	caretColor  = color.New(color.FgRed, color.Bold)
)

// Render writes the full report to stderr. Color is controlled globally via
// fatih/color (disabled automatically on non-terminals); the uncolored text
// layout is the compatibility contract.
func (d *Diagnostic) Render() {
	d.RenderTo(os.Stderr)
}

// RenderTo writes the report to w:
//
//	error: <message>
//	 --> <name>:<line>:<col>[-<endCol>|-<endLine>:<endCol>]
//	  |
//	N | <source line>
//	  |   ^^^^
//	  |
//	  = <context>
//	  = note: <note>
//
// Spans touching several lines underline the tail of the first line, whole
// interior lines, and the head of the last line. Line numbers are
// right-aligned in a gutter sized for the largest printed number.
func (d *Diagnostic) RenderTo(w io.Writer) {
	start := source.Locate(d.Source.Text, d.Span.Start)
	end := source.Locate(d.Source.Text, d.Span.End)
	// Хранится эксклюзивный конец; показываем последнюю покрытую колонку.
	endCol := end.Col - 1

	width := len(fmt.Sprint(max(start.Line, end.Line)))
	pad := strings.Repeat(" ", width)

	fmt.Fprintf(w, "%s%s %s\n",
		headColor.Sprint("error"), boldColor.Sprint(":"), boldColor.Sprint(d.Message))

	var loc string
	switch {
	case start.Line == end.Line && start.Col == endCol:
		loc = fmt.Sprintf("%s:%d:%d", d.Source.Name, start.Line, start.Col)
	case start.Line == end.Line:
		loc = fmt.Sprintf("%s:%d:%d-%d", d.Source.Name, start.Line, start.Col, endCol)
	default:
		loc = fmt.Sprintf("%s:%d:%d-%d:%d", d.Source.Name, start.Line, start.Col, end.Line, endCol)
	}
	fmt.Fprintf(w, "%s%s %s\n", pad, gutterColor.Sprint("-->"), loc)

	fmt.Fprintf(w, "%s %s\n", pad, gutterColor.Sprint("|"))

	lines := strings.Split(d.Source.Text, "\n")
	for lineNo := start.Line; lineNo <= end.Line; lineNo++ {
		var line string
		if int(lineNo) <= len(lines) {
			line = strings.TrimSuffix(lines[lineNo-1], "\r")
		}

		num := fmt.Sprint(lineNo)
		fmt.Fprintf(w, "%s%s %s %s\n",
			strings.Repeat(" ", width-len(num)), gutterColor.Sprint(num), gutterColor.Sprint("|"), line)

		switch {
		case start.Line == end.Line:
			d.underline(w, pad, int(start.Col)-1, int(endCol-start.Col)+1)
		case lineNo == start.Line:
			d.underline(w, pad, int(start.Col)-1, len(line)-int(start.Col)+1)
		case lineNo == end.Line:
			d.underline(w, pad, 0, int(endCol)+1)
		default:
			d.underline(w, pad, 0, len(line))
		}
	}

	if len(d.Context) > 0 || len(d.Notes) > 0 {
		fmt.Fprintf(w, "%s %s\n", pad, gutterColor.Sprint("|"))
	}
	for _, ctx := range d.Context {
		fmt.Fprintf(w, "%s %s %s\n", pad, gutterColor.Sprint("="), ctx)
	}
	for _, note := range d.Notes {
		fmt.Fprintf(w, "%s %s %s %s\n", pad, gutterColor.Sprint("="), boldColor.Sprint("note:"), note)
	}
}

func (d *Diagnostic) underline(w io.Writer, pad string, lead, count int) {
	fmt.Fprintf(w, "%s %s %s%s\n",
		pad, gutterColor.Sprint("|"),
		strings.Repeat(" ", lead), caretColor.Sprint(strings.Repeat("^", count)))
}
