package source

// LineCol represents a human-readable position in a source text.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}

// Locate converts a byte offset into 1-based line/column coordinates by
// scanning runes from the start of text. The scan stops once it reaches the
// rune starting at off, so the result describes that rune without counting
// it. The column of a '\n' is one past the last character of its line.
//
// Диагностики — редкий путь, поэтому линейный проход вместо индекса строк.
//
// off must land on a rune boundary; an offset inside a multi-byte rune is a
// precondition violation (the scan then runs to the end of text).
func Locate(text string, off uint32) LineCol {
	line, col := uint32(1), uint32(1)
	for i, r := range text {
		if uint32(i) == off {
			break
		}
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return LineCol{Line: line, Col: col}
}
