package pdf2zh

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdf2zh/pdf2zh/translator"
)

func TestNew_RequiresBackendAndFontMap(t *testing.T) {
	_, err := New(&Config{}, nil, newFontMap())
	assert.Error(t, err)

	noop, err := translator.Select("noop", translator.Options{LangOut: "en"})
	assert.NoError(t, err)
	_, err = New(&Config{}, noop, nil)
	assert.Error(t, err)
}

func TestEngine_TranslatePage_EmptyPage(t *testing.T) {
	noop, err := translator.Select("noop", translator.Options{LangOut: "en"})
	assert.NoError(t, err)
	eng, err := New(&Config{Thread: 2}, noop, newFontMap())
	assert.NoError(t, err)

	out, err := eng.TranslatePage(&Page{ID: 1, Width: 600}, uniformLabelMap(1))
	assert.NoError(t, err)
	assert.Equal(t, "BT ET ", string(out))
}

func TestEngine_TranslatePage_SinglePassthrough(t *testing.T) {
	noop, err := translator.Select("noop", translator.Options{LangOut: "en"})
	assert.NoError(t, err)
	eng, err := New(&Config{Thread: 1}, noop, newFontMap())
	assert.NoError(t, err)

	page := &Page{
		ID: 1, Width: 600,
		Items: []PageItem{
			{Kind: ItemGlyph, Glyph: glyph("A", 0, 0, 5, 10, 10, 5)},
			{Kind: ItemGlyph, Glyph: glyph("B", 5, 0, 10, 10, 10, 5)},
		},
	}
	out, err := eng.TranslatePage(page, uniformLabelMap(1))
	assert.NoError(t, err)
	assert.Contains(t, string(out), "[<4142>] TJ")
}
