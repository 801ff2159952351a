package source

import (
	"crypto/sha256"
	"fmt"
	"os"

	"fortio.org/safecast"
)

// Flags encodes metadata about how a Source was created.
type Flags uint8

const (
	// Virtual indicates the source was created from memory (test, stdin, etc.).
	Virtual Flags = 1 << iota
	// HadBOM indicates a UTF-8 BOM was stripped during loading.
	HadBOM
	// NormalizedCRLF indicates CRLF sequences were rewritten to LF.
	NormalizedCRLF
)

// Source владеет текстом и отображаемым именем. Иммутабелен после создания.
// Name is a display label and is not validated. Spans, tokens, cursors и
// диагностики ссылаются на Source, но не владеют им.
type Source struct {
	Name  string
	Text  string
	Hash  [32]byte
	Flags Flags
}

// FromString creates an in-memory Source with the given display name.
func FromString(name, text string) *Source {
	return &Source{
		Name:  name,
		Text:  text,
		Hash:  sha256.Sum256([]byte(text)),
		Flags: Virtual,
	}
}

// Load reads a source file from disk. A UTF-8 BOM is stripped and CRLF line
// endings are normalized to LF before hashing; both are recorded in Flags.
func Load(path string) (*Source, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)

	flags := Flags(0)
	if hadBOM {
		flags |= HadBOM
	}
	if hadCRLF {
		flags |= NormalizedCRLF
	}
	return &Source{
		Name:  path,
		Text:  string(content),
		Hash:  sha256.Sum256(content),
		Flags: flags,
	}, nil
}

// Len returns the text length in bytes.
func (s *Source) Len() uint32 {
	n, err := safecast.Conv[uint32](len(s.Text))
	if err != nil {
		panic(fmt.Errorf("source text length overflow: %w", err))
	}
	return n
}
