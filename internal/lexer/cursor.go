package lexer

import (
	"unicode/utf8"

	"runic/internal/source"
)

// Cursor представляет собой позицию сканирования в тексте источника.
// Состояние — пара (позиция, текущая руна): текущей руны нет тогда и только
// тогда, когда позиция на конце текста или за ним.
type Cursor struct {
	src *source.Source
	off uint32
	ch  rune
	ok  bool
}

// NewCursor creates a cursor positioned at the start of the source.
func NewCursor(src *source.Source) Cursor {
	c := Cursor{src: src}
	c.sync()
	return c
}

// sync decodes the rune at the current offset, or clears it past the end.
// off must be a rune boundary: landing inside a multi-byte rune is a
// precondition violation (the decoder then yields U+FFFD).
func (c *Cursor) sync() {
	if c.off >= c.src.Len() {
		c.ch, c.ok = 0, false
		return
	}
	c.ch, _ = utf8.DecodeRuneInString(c.src.Text[c.off:])
	c.ok = true
}

// Source returns the source the cursor scans over.
func (c *Cursor) Source() *source.Source {
	return c.src
}

// Pos returns the current byte offset.
func (c *Cursor) Pos() uint32 {
	return c.off
}

// Current returns the rune starting at the current offset, or false when the
// cursor is exhausted.
func (c *Cursor) Current() (rune, bool) {
	return c.ch, c.ok
}

// EOF проверяет, исчерпан ли курсор.
func (c *Cursor) EOF() bool {
	return !c.ok
}

// Advance moves one rune forward. Consuming the last rune leaves the cursor
// resting exactly at the text length with no current rune; advancing an
// exhausted cursor is a no-op.
func (c *Cursor) Advance() {
	if !c.ok {
		return
	}
	c.off += uint32(utf8.RuneLen(c.ch))
	c.sync()
}

// JumpTo repositions the cursor at an absolute byte offset. An in-bounds
// offset must land on a rune boundary. Out-of-bounds targets park the cursor
// in the exhausted state one past the text length.
func (c *Cursor) JumpTo(p uint32) {
	if p < c.src.Len() {
		c.off = p
		c.sync()
		return
	}
	c.off = c.src.Len() + 1
	c.ch, c.ok = 0, false
}

// Mark это метка, чтобы дёшево сохранять и восстанавливать позицию.
type Mark uint32

// Mark сохраняет текущую позицию курсора.
func (c *Cursor) Mark() Mark {
	return Mark(c.off)
}

// Reset возвращает курсор точно к метке, включая позицию на конце текста.
func (c *Cursor) Reset(m Mark) {
	c.off = uint32(m)
	c.sync()
}

// SpanFrom получает Span для фрагмента, начиная с метки.
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.NewSpan(uint32(m), c.off)
}
