package translator

import (
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func init() {
	Register("counting-inner", func(opts Options) (Backend, error) {
		return &countingInner{langOut: opts.LangOut}, nil
	})
}

// countingInnerCalls is shared by every countingInner the registry builds,
// so results stay distinct even across separately selected backends.
var countingInnerCalls int32

// countingInner returns a different result on every call, so a cache hit
// is observable as "the count did not advance".
type countingInner struct {
	langOut string
}

func (b *countingInner) Name() string    { return "counting-inner" }
func (b *countingInner) LangOut() string { return b.langOut }
func (b *countingInner) Translate(text string) (string, error) {
	n := atomic.AddInt32(&countingInnerCalls, 1)
	return fmt.Sprintf("%s#%d", text, n), nil
}

func TestCacheBackend_SecondCallHitsCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	b, err := Select("cache:counting-inner", Options{
		LangOut: "zh",
		Envs:    map[string]string{"PDF2ZH_CACHE_FILE": path},
	})
	assert.NoError(t, err)

	first, err := b.Translate("hello")
	assert.NoError(t, err)
	second, err := b.Translate("hello")
	assert.NoError(t, err)
	assert.Equal(t, first, second, "second call should be served from the cache, not re-translated")
}

func TestCacheBackend_IgnoreCacheBypassesReadButStillWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	opts := Options{
		LangOut: "zh",
		Envs:    map[string]string{"PDF2ZH_CACHE_FILE": path},
	}

	cached, err := Select("cache:counting-inner", opts)
	assert.NoError(t, err)
	first, err := cached.Translate("hello")
	assert.NoError(t, err)

	opts.IgnoreCache = true
	fresh, err := Select("cache:counting-inner", opts)
	assert.NoError(t, err)
	second, err := fresh.Translate("hello")
	assert.NoError(t, err)
	assert.NotEqual(t, first, second, "IgnoreCache must bypass the cached read")

	opts.IgnoreCache = false
	respecting, err := Select("cache:counting-inner", opts)
	assert.NoError(t, err)
	third, err := respecting.Translate("hello")
	assert.NoError(t, err)
	assert.Equal(t, second, third, "a later cache-respecting call must observe the write-through from the ignored call")
}

func TestCacheBackend_DefaultsToWrappingNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	b, err := Select("cache", Options{
		LangOut: "en",
		Envs:    map[string]string{"PDF2ZH_CACHE_FILE": path},
	})
	assert.NoError(t, err)
	out, err := b.Translate("hola")
	assert.NoError(t, err)
	assert.Equal(t, "hola", out)
}

func TestCacheBackend_UnsupportedWrappedService(t *testing.T) {
	_, err := Select("cache:does-not-exist", Options{})
	assert.Error(t, err)
}
