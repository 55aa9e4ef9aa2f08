package pdf2zh

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdf2zh/pdf2zh/translator"
)

// countingBackend fails the first `failures` calls for any given input,
// then succeeds, tracking how many times Translate was invoked overall.
type countingBackend struct {
	mu       sync.Mutex
	failures int
	calls    int32
	perInput map[string]int
}

func (b *countingBackend) Name() string    { return "counting" }
func (b *countingBackend) LangOut() string { return "en" }
func (b *countingBackend) Translate(text string) (string, error) {
	atomic.AddInt32(&b.calls, 1)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.perInput == nil {
		b.perInput = map[string]int{}
	}
	b.perInput[text]++
	if b.perInput[text] <= b.failures {
		return "", fmt.Errorf("transient failure %d", b.perInput[text])
	}
	return text + "!", nil
}

func TestDispatch_BypassesPlaceholderAndWhitespaceTemplates(t *testing.T) {
	backend := &countingBackend{}
	layout := &PageLayout{Paragraphs: []*Paragraph{
		{TextTemplate: "{v0}"},
		{TextTemplate: "   "},
		{TextTemplate: "hello"},
	}}
	out, err := Dispatch(context.Background(), &Config{Thread: 2, Logger: NopLogger{}}, backend, layout)
	assert.NoError(t, err)
	assert.Equal(t, "{v0}", out[0])
	assert.Equal(t, "   ", out[1])
	assert.Equal(t, "hello!", out[2])
	assert.Equal(t, int32(1), atomic.LoadInt32(&backend.calls), "only the non-bypass template should reach the backend")
}

// S6 / property 4: a backend that fails K times then succeeds produces
// exactly K+1 calls, and the successful result lands at the right index.
func TestDispatch_RetriesThenSucceeds(t *testing.T) {
	backend := &countingBackend{failures: 2}
	layout := &PageLayout{Paragraphs: []*Paragraph{{TextTemplate: "OK"}}}
	out, err := Dispatch(context.Background(), &Config{Thread: 1, Logger: NopLogger{}}, backend, layout)
	assert.NoError(t, err)
	assert.Equal(t, "OK!", out[0])
	assert.Equal(t, int32(3), atomic.LoadInt32(&backend.calls))
}

func TestDispatch_PreservesOrder(t *testing.T) {
	backend := &countingBackend{}
	layout := &PageLayout{Paragraphs: []*Paragraph{
		{TextTemplate: "one"}, {TextTemplate: "two"}, {TextTemplate: "three"},
	}}
	out, err := Dispatch(context.Background(), &Config{Thread: 4, Logger: NopLogger{}}, backend, layout)
	assert.NoError(t, err)
	assert.Equal(t, []string{"one!", "two!", "three!"}, out)
}

func TestDispatch_NoopBackendRoundTrips(t *testing.T) {
	b, err := translator.Select("noop", translator.Options{LangOut: "zh"})
	assert.NoError(t, err)
	layout := &PageLayout{Paragraphs: []*Paragraph{{TextTemplate: "hola"}}}
	out, err := Dispatch(context.Background(), &Config{Thread: 1, Logger: NopLogger{}}, b, layout)
	assert.NoError(t, err)
	assert.Equal(t, "hola", out[0])
}
