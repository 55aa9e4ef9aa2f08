/*
Package pdf2zh implements a page-level layout-preserving translation engine.

Given a parsed PDF page's stream of glyph placements and vector lines, plus
a coarse per-page layout classification map, the engine segments glyphs into
paragraphs, inline math fragments and vertical text runs, dispatches the
paragraph strings through a pluggable translation backend concurrently, and
re-emits a content stream that places the translated glyphs back over the
original page geometry.

The PDF object parser, the CLI front-end, cache storage, the concrete
translation backends and font acquisition are external collaborators; this
package only consumes their output through the interfaces in glyph.go,
fontmap.go and the translator package.

A minimal integration looks like:

	eng, err := pdf2zh.New(&pdf2zh.Config{
		Thread:  4,
		LangOut: "zh",
	}, backend, fontMap)
	if err != nil {
		log.Fatalf("building engine: %v", err)
	}

	out, err := eng.TranslatePage(page, labelMap)
	if err != nil {
		log.Fatalf("translating page: %v", err)
	}
*/
package pdf2zh
