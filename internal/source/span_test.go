package source

import "testing"

func TestNewSpan(t *testing.T) {
	sp := NewSpan(5, 10)
	if sp.Start != 5 || sp.End != 10 {
		t.Errorf("Expected span 5-10, got %s", sp)
	}
	if sp.Len() != 5 {
		t.Errorf("Expected length 5, got %d", sp.Len())
	}
}

// Пустой или перевёрнутый span — ошибка программиста, ожидаем панику.
func TestNewSpanInvalidPanics(t *testing.T) {
	for _, tc := range []struct{ start, end uint32 }{
		{10, 5},
		{3, 3},
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Expected panic for span %d-%d", tc.start, tc.end)
				}
			}()
			NewSpan(tc.start, tc.end)
		}()
	}
}

func TestSpanCover(t *testing.T) {
	got := NewSpan(4, 8).Cover(NewSpan(2, 6))
	if got.Start != 2 || got.End != 8 {
		t.Errorf("Expected cover 2-8, got %s", got)
	}
}
