package source

import "testing"

func TestLocate(t *testing.T) {
	text := "Hello\nWorld"

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},  // 'H'
		{4, LineCol{1, 5}},  // 'o'
		{5, LineCol{1, 6}},  // '\n' — на одну колонку правее последнего символа строки
		{6, LineCol{2, 1}},  // 'W'
		{10, LineCol{2, 5}}, // 'd'
	}
	for _, tt := range tests {
		if got := Locate(text, tt.off); got != tt.want {
			t.Errorf("Locate(%d) = %d:%d, want %d:%d", tt.off, got.Line, got.Col, tt.want.Line, tt.want.Col)
		}
	}
}

func TestLocateMultibyte(t *testing.T) {
	// 'é' занимает два байта: колонки считаются в символах, смещения в байтах.
	text := "é\nx"
	if got := Locate(text, 2); got != (LineCol{1, 2}) {
		t.Errorf("Locate(2) = %d:%d, want 1:2", got.Line, got.Col)
	}
	if got := Locate(text, 3); got != (LineCol{2, 1}) {
		t.Errorf("Locate(3) = %d:%d, want 2:1", got.Line, got.Col)
	}
}

func TestLocateEndOfText(t *testing.T) {
	if got := Locate("ab", 2); got != (LineCol{1, 3}) {
		t.Errorf("Locate(2) = %d:%d, want 1:3", got.Line, got.Col)
	}
	if got := Locate("", 0); got != (LineCol{1, 1}) {
		t.Errorf("Locate(0) on empty = %d:%d, want 1:1", got.Line, got.Col)
	}
}
