package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"runic/internal/source"
	"runic/internal/token"
)

// Current schema version - increment when cachePayload format changes.
const cacheSchemaVersion uint16 = 1

// Cache хранит токен-стримы по хэшу (контент, ruleset) на диске.
// Thread-safe for concurrent access.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

type cachePayload struct {
	Schema uint16
	Tokens []cachedToken
}

type cachedToken struct {
	Kind  string
	Start uint32
	End   uint32
}

// OpenCache initializes and returns a disk cache at the standard location.
func OpenCache(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

func cacheKey(src *source.Source, fingerprint [32]byte) [32]byte {
	h := sha256.New()
	h.Write(src.Hash[:])
	h.Write(fingerprint[:])
	var key [32]byte
	copy(key[:], h.Sum(nil))
	return key
}

func (c *Cache) pathFor(key [32]byte) string {
	// Подкаталог "tokens" — для удобства читаемости/очистки.
	return filepath.Join(c.dir, "tokens", hex.EncodeToString(key[:])+".mp")
}

// Put serializes and writes a token stream to the disk cache.
func (c *Cache) Put(src *source.Source, fingerprint [32]byte, toks []token.Token[string]) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload := cachePayload{
		Schema: cacheSchemaVersion,
		Tokens: make([]cachedToken, len(toks)),
	}
	for i, t := range toks {
		payload.Tokens[i] = cachedToken{Kind: t.Kind, Start: t.Span.Start, End: t.Span.End}
	}

	p := c.pathFor(cacheKey(src, fingerprint))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name()) //nolint:errcheck // уже переименован при успехе

	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		f.Close() //nolint:errcheck,gosec
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads a cached token stream for (src, fingerprint). Stale schemas and
// corrupt spans are treated as a miss, not an error.
func (c *Cache) Get(src *source.Source, fingerprint [32]byte) ([]token.Token[string], bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(cacheKey(src, fingerprint)))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close() //nolint:errcheck // read-only

	var payload cachePayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, fmt.Errorf("corrupt cache entry: %w", err)
	}
	if payload.Schema != cacheSchemaVersion {
		return nil, false, nil
	}

	toks := make([]token.Token[string], len(payload.Tokens))
	for i, ct := range payload.Tokens {
		if ct.Start >= ct.End || ct.End > src.Len() {
			return nil, false, nil
		}
		toks[i] = token.New(ct.Kind, source.Span{Start: ct.Start, End: ct.End})
	}
	return toks, true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}
