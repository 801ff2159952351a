// Package diag carries the single error kind of this library: a diagnostic
// with a message, a source reference, a span, and optional context and note
// lines, rendered as a caret-annotated excerpt.
package diag

import (
	"fmt"

	"runic/internal/source"
)

// Diagnostic is an error locating a problem in a source text. It accumulates
// presentation details through the chainable With* methods and is finalized
// by Render.
type Diagnostic struct {
	Message string
	Source  *source.Source
	Span    source.Span
	Context []string
	Notes   []string
}

// New builds a diagnostic for the given span. The span is already validated
// (Start < End), so rendering cannot fail later.
func New(message string, src *source.Source, span source.Span) *Diagnostic {
	return &Diagnostic{
		Message: message,
		Source:  src,
		Span:    span,
	}
}

// WithContext appends a context line shown below the excerpt.
func (d *Diagnostic) WithContext(text string) *Diagnostic {
	d.Context = append(d.Context, text)
	return d
}

// WithNote appends a note line shown below the context.
func (d *Diagnostic) WithNote(text string) *Diagnostic {
	d.Notes = append(d.Notes, text)
	return d
}

// Error implements the error interface with a compact one-line form; the
// full report comes from Render.
func (d *Diagnostic) Error() string {
	at := source.Locate(d.Source.Text, d.Span.Start)
	return fmt.Sprintf("%s:%d:%d: %s", d.Source.Name, at.Line, at.Col, d.Message)
}
