package diag

import (
	"strings"
	"testing"

	"github.com/fatih/color"

	"runic/internal/source"
)

// Текстовая раскладка — контракт; проверяем побайтово без цвета.
func renderPlain(t *testing.T, d *Diagnostic) string {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	var b strings.Builder
	d.RenderTo(&b)
	return b.String()
}

func sample() *source.Source {
	return source.FromString("test.rn", "fn main() {\n    println!(\"Hello, world!\");\n}")
}

func TestRenderSingleLine(t *testing.T) {
	d := New("Syntax error", sample(), source.NewSpan(12, 25)).
		WithContext("In function main").
		WithNote("Check the syntax")

	want := "error: Syntax error\n" +
		" --> test.rn:2:1-13\n" +
		"  |\n" +
		"2 |     println!(\"Hello, world!\");\n" +
		"  | ^^^^^^^^^^^^^\n" +
		"  |\n" +
		"  = In function main\n" +
		"  = note: Check the syntax\n"

	if got := renderPlain(t, d); got != want {
		t.Errorf("unexpected report:\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestRenderSingleCaret(t *testing.T) {
	d := New("Syntax error", sample(), source.NewSpan(0, 1))

	want := "error: Syntax error\n" +
		" --> test.rn:1:1\n" +
		"  |\n" +
		"1 | fn main() {\n" +
		"  | ^\n"

	if got := renderPlain(t, d); got != want {
		t.Errorf("unexpected report:\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestRenderMultiLine(t *testing.T) {
	d := New("Syntax error", sample(), source.NewSpan(3, 20))

	want := "error: Syntax error\n" +
		" --> test.rn:1:4-2:8\n" +
		"  |\n" +
		"1 | fn main() {\n" +
		"  |    ^^^^^^^^\n" +
		"2 |     println!(\"Hello, world!\");\n" +
		"  | ^^^^^^^^^\n"

	if got := renderPlain(t, d); got != want {
		t.Errorf("unexpected report:\nwant:\n%s\ngot:\n%s", want, got)
	}
}

// Внутренние строки многострочного span подчёркиваются целиком.
func TestRenderInteriorLines(t *testing.T) {
	src := source.FromString("test.rn", "aa\nbb\ncc\ndd")
	d := New("boom", src, source.NewSpan(1, 10))

	want := "error: boom\n" +
		" --> test.rn:1:2-4:1\n" +
		"  |\n" +
		"1 | aa\n" +
		"  |  ^\n" +
		"2 | bb\n" +
		"  | ^^\n" +
		"3 | cc\n" +
		"  | ^^\n" +
		"4 | dd\n" +
		"  | ^^\n"

	if got := renderPlain(t, d); got != want {
		t.Errorf("unexpected report:\nwant:\n%s\ngot:\n%s", want, got)
	}
}

// Номера строк выравниваются вправо по ширине наибольшего номера.
func TestRenderGutterAlignment(t *testing.T) {
	src := source.FromString("test.rn", strings.Repeat("x\n", 9)+"yyyy")
	d := New("boom", src, source.NewSpan(16, 20))

	want := "error: boom\n" +
		"  --> test.rn:9:1-10:2\n" +
		"   |\n" +
		" 9 | x\n" +
		"   | ^\n" +
		"10 | yyyy\n" +
		"   | ^^^\n"

	if got := renderPlain(t, d); got != want {
		t.Errorf("unexpected report:\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestErrorString(t *testing.T) {
	d := New("Syntax error", sample(), source.NewSpan(12, 25))
	if got := d.Error(); got != "test.rn:2:1: Syntax error" {
		t.Errorf("unexpected Error(): %q", got)
	}
}

func TestBuilderChains(t *testing.T) {
	d := New("m", sample(), source.NewSpan(0, 1)).
		WithContext("c1").
		WithContext("c2").
		WithNote("n1")

	if len(d.Context) != 2 || d.Context[0] != "c1" || d.Context[1] != "c2" {
		t.Errorf("unexpected context: %v", d.Context)
	}
	if len(d.Notes) != 1 || d.Notes[0] != "n1" {
		t.Errorf("unexpected notes: %v", d.Notes)
	}
}
