package source

import (
	"fmt"
)

// Span is a half-open byte range [Start, End) into some Source's text.
// Spans are plain values: they carry no reference to the text itself.
type Span struct {
	Start uint32 `json:"start"` // в байтах включительно
	End   uint32 `json:"end"`   // в байтах не включительно
}

// NewSpan builds a validated Span. A span covering zero bytes indicates a
// programming mistake in a rule author, not a reportable source issue, so
// start >= end panics instead of flowing through the error channel.
func NewSpan(start, end uint32) Span {
	if start >= end {
		panic(fmt.Sprintf("span start %d must be less than end %d", start, end))
	}
	return Span{Start: start, End: end}
}

// Len returns the number of bytes the span covers.
func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}

// Cover returns the minimal span enclosing both s and other.
func (s Span) Cover(other Span) Span {
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}
