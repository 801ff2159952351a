package source

import (
	"crypto/sha256"
	"os"
	"path/filepath"
	"testing"
)

func TestFromString(t *testing.T) {
	src := FromString("test.rn", "let x = 10;")

	if src.Name != "test.rn" {
		t.Errorf("Expected name 'test.rn', got %q", src.Name)
	}
	if src.Text != "let x = 10;" {
		t.Errorf("Expected text 'let x = 10;', got %q", src.Text)
	}
	if src.Flags&Virtual == 0 {
		t.Error("Expected Virtual flag to be set")
	}
	if src.Hash != sha256.Sum256([]byte("let x = 10;")) {
		t.Error("Expected hash of the text content")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.rn")
	content := "fn main() { println(\"Hello, world!\"); }"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	src, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if src.Name != path {
		t.Errorf("Expected name %q, got %q", path, src.Name)
	}
	if src.Text != content {
		t.Errorf("Expected text %q, got %q", content, src.Text)
	}
	if src.Flags != 0 {
		t.Errorf("Expected no flags for plain LF content, got %b", src.Flags)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.rn")); err == nil {
		t.Fatal("Expected an I/O error for a missing file")
	}
}

// TestLoadNormalizes проверяет, что BOM и CRLF нормализуются при загрузке.
func TestLoadNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crlf.rn")
	raw := []byte{0xEF, 0xBB, 0xBF}
	raw = append(raw, []byte("a\r\nb\r\n")...)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	src, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if src.Text != "a\nb\n" {
		t.Errorf("Expected normalized text 'a\\nb\\n', got %q", src.Text)
	}
	if src.Flags&HadBOM == 0 {
		t.Error("Expected HadBOM flag")
	}
	if src.Flags&NormalizedCRLF == 0 {
		t.Error("Expected NormalizedCRLF flag")
	}
	// Хэш считается от нормализованного содержимого.
	if src.Hash != sha256.Sum256([]byte("a\nb\n")) {
		t.Error("Expected hash of the normalized content")
	}
}

func TestNormalizeCRLFKeepsLoneCR(t *testing.T) {
	out, changed := normalizeCRLF([]byte("a\rb\r\nc"))
	if string(out) != "a\rb\nc" {
		t.Errorf("Expected 'a\\rb\\nc', got %q", string(out))
	}
	if !changed {
		t.Error("Expected changed flag")
	}
}

func TestSourceLen(t *testing.T) {
	if got := FromString("t", "héllo").Len(); got != 6 {
		t.Errorf("Expected byte length 6, got %d", got)
	}
	if got := FromString("t", "").Len(); got != 0 {
		t.Errorf("Expected byte length 0, got %d", got)
	}
}
