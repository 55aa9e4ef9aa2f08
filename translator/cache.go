package translator

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

func init() {
	Register("cache", newCacheBackend)
}

// CacheBackend wraps another registered backend with a persistent,
// file-backed dictionary: once a string has been translated, later calls
// return the stored result instead of re-invoking the wrapped backend.
// Selected as "cache:<wrapped>" (e.g. "cache:google"); a bare "cache"
// wraps "noop". Grounded on the original's per-translator cache plus its
// ignore_cache flag (test/test_translator.py's TestCache /
// test_add_cache_impact_parameters): a cache entry is keyed by the
// wrapped backend's name, its output language and the source text, and
// IgnoreCache suppresses only the lookup, not the write-back, so a later
// call without IgnoreCache observes whatever was translated most
// recently.
type CacheBackend struct {
	mu      sync.Mutex
	inner   Backend
	path    string
	entries map[string]string
	ignore  bool
}

func newCacheBackend(opts Options) (Backend, error) {
	innerName := opts.Model
	if innerName == "" {
		innerName = "noop"
	}
	ctor, ok := registry[innerName]
	if !ok {
		return nil, &UnsupportedServiceError{Service: "cache:" + innerName}
	}
	inner, err := ctor(Options{
		LangIn:      opts.LangIn,
		LangOut:     opts.LangOut,
		Prompt:      opts.Prompt,
		Envs:        opts.Envs,
		IgnoreCache: opts.IgnoreCache,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "cache: constructing wrapped backend %q", innerName)
	}

	path := opts.Envs["PDF2ZH_CACHE_FILE"]
	if path == "" {
		path = filepath.Join(os.TempDir(), "pdf2zh-cache.json")
	}

	b := &CacheBackend{inner: inner, path: path, entries: map[string]string{}, ignore: opts.IgnoreCache}
	b.load()
	return b, nil
}

func (b *CacheBackend) Name() string    { return "cache:" + b.inner.Name() }
func (b *CacheBackend) LangOut() string { return b.inner.LangOut() }

// Translate consults the on-disk dictionary first unless the backend was
// constructed with IgnoreCache, but always writes the fresh result back,
// so a subsequent cache-respecting call sees it.
func (b *CacheBackend) Translate(text string) (string, error) {
	key := b.inner.Name() + "|" + b.inner.LangOut() + "|" + text

	if !b.ignore {
		b.mu.Lock()
		cached, ok := b.entries[key]
		b.mu.Unlock()
		if ok {
			return cached, nil
		}
	}

	result, err := b.inner.Translate(text)
	if err != nil {
		return "", err
	}

	b.mu.Lock()
	b.entries[key] = result
	b.mu.Unlock()
	b.save()

	return result, nil
}

func (b *CacheBackend) load() {
	data, err := os.ReadFile(b.path)
	if err != nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	_ = json.Unmarshal(data, &b.entries)
}

func (b *CacheBackend) save() {
	b.mu.Lock()
	data, err := json.Marshal(b.entries)
	b.mu.Unlock()
	if err != nil {
		return
	}
	_ = os.WriteFile(b.path, data, 0644)
}
