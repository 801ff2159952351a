package driver

import (
	"os"
	"path/filepath"
	"testing"

	"runic/internal/source"
)

func testCache(t *testing.T) *Cache {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	c, err := OpenCache("runic-test")
	if err != nil {
		t.Fatalf("OpenCache: %v", err)
	}
	return c
}

func TestCacheRoundTrip(t *testing.T) {
	c := testCache(t)
	rs := DefaultRuleSet()
	fp := rs.Fingerprint()

	ruleList, err := rs.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	src := source.FromString("test.rn", "let x = 10;")
	toks, err := Tokenize(src, ruleList)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}

	if _, hit, err := c.Get(src, fp); err != nil || hit {
		t.Fatalf("Expected a clean miss before Put, got hit=%v err=%v", hit, err)
	}
	if err := c.Put(src, fp, toks); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, hit, err := c.Get(src, fp)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !hit {
		t.Fatal("Expected a cache hit after Put")
	}
	if len(got) != len(toks) {
		t.Fatalf("Expected %d tokens, got %d", len(toks), len(got))
	}
	for i := range toks {
		if got[i].Kind != toks[i].Kind || got[i].Span != toks[i].Span {
			t.Errorf("Token %d differs: put %v %s, got %v %s",
				i, toks[i].Kind, toks[i].Span, got[i].Kind, got[i].Span)
		}
	}
}

// Отпечаток набора правил — часть ключа: другой набор не видит чужие записи.
func TestCacheFingerprintIsolation(t *testing.T) {
	c := testCache(t)
	rs := DefaultRuleSet()
	ruleList, err := rs.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	src := source.FromString("test.rn", "let x = 10;")
	toks, err := Tokenize(src, ruleList)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if err := c.Put(src, rs.Fingerprint(), toks); err != nil {
		t.Fatalf("Put: %v", err)
	}

	other := DefaultRuleSet()
	other.Keywords = append(other.Keywords, "match")
	if _, hit, err := c.Get(src, other.Fingerprint()); err != nil || hit {
		t.Errorf("Expected a miss under a different fingerprint, got hit=%v err=%v", hit, err)
	}
}

func TestCacheRejectsInvalidSpans(t *testing.T) {
	c := testCache(t)
	rs := DefaultRuleSet()
	fp := rs.Fingerprint()
	ruleList, err := rs.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	long := source.FromString("test.rn", "let x = 10;")
	toks, err := Tokenize(long, ruleList)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if err := c.Put(long, fp, toks); err != nil {
		t.Fatalf("Put: %v", err)
	}

	// Записываем под короткий файл токены длинного: спаны за его пределами
	// должны читаться как промах, а не как попадание.
	short := source.FromString("test.rn", "x")
	if err := c.Put(short, fp, toks); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, hit, err := c.Get(short, fp); err != nil || hit {
		t.Errorf("Expected out-of-range spans to read as a miss, got hit=%v err=%v", hit, err)
	}
}

func TestCacheCorruptEntry(t *testing.T) {
	c := testCache(t)
	rs := DefaultRuleSet()
	fp := rs.Fingerprint()
	ruleList, err := rs.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	src := source.FromString("test.rn", "let x = 10;")
	toks, err := Tokenize(src, ruleList)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if err := c.Put(src, fp, toks); err != nil {
		t.Fatalf("Put: %v", err)
	}

	p := c.pathFor(cacheKey(src, fp))
	if err := os.WriteFile(p, []byte("not msgpack"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, _, err := c.Get(src, fp); err == nil {
		t.Error("Expected a decode error for a corrupt entry")
	}
}

func TestCacheDropAll(t *testing.T) {
	c := testCache(t)
	rs := DefaultRuleSet()
	fp := rs.Fingerprint()
	ruleList, err := rs.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	src := source.FromString("test.rn", "let x = 10;")
	toks, err := Tokenize(src, ruleList)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if err := c.Put(src, fp, toks); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := c.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	if _, hit, err := c.Get(src, fp); err != nil || hit {
		t.Errorf("Expected a miss after DropAll, got hit=%v err=%v", hit, err)
	}
	if entries, err := os.ReadDir(filepath.Join(c.dir, "tokens")); err == nil && len(entries) > 0 {
		t.Errorf("Expected the tokens directory to be gone or empty, found %d entries", len(entries))
	}
}
