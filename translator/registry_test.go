package translator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelect_SplitsServiceModel(t *testing.T) {
	var gotModel string
	Register("fake-with-model", func(opts Options) (Backend, error) {
		gotModel = opts.Model
		return &NoopBackend{langOut: opts.LangOut}, nil
	})

	b, err := Select("fake-with-model:gemma2:9b", Options{LangOut: "zh"})
	assert.NoError(t, err)
	assert.Equal(t, "gemma2:9b", gotModel)
	assert.Equal(t, "zh", b.LangOut())
}

func TestSelect_UnsupportedService(t *testing.T) {
	_, err := Select("does-not-exist", Options{})
	assert.Error(t, err)
	var unsupported *UnsupportedServiceError
	assert.ErrorAs(t, err, &unsupported)
}

func TestNoopBackend_ReturnsInputUnchanged(t *testing.T) {
	b, err := Select("noop", Options{LangOut: "en"})
	assert.NoError(t, err)

	out, err := b.Translate("hello world")
	assert.NoError(t, err)
	assert.Equal(t, "hello world", out)
}
