package pdf2zh

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/pdf2zh/pdf2zh/translator"
)

// Engine bundles the configuration, translation backend and font map
// needed to run the full C1-C5 pipeline over a page. It holds no
// per-page mutable state and is safe to reuse across pages (but not
// across concurrent TranslatePage calls on the same Engine, since the
// dispatcher is the only concurrent stage and it owns its own workers).
type Engine struct {
	cfg     *Config
	backend translator.Backend
	fontMap *FontMap
}

// New constructs an Engine. It fails on a missing backend or font map, or
// on a Config whose VFont/VChar regex does not compile (7, "the engine
// raises only at construction"); everything else is per-page and
// best-effort.
func New(cfg *Config, backend translator.Backend, fontMap *FontMap) (*Engine, error) {
	if backend == nil {
		return nil, errors.New("pdf2zh: backend is required")
	}
	if fontMap == nil {
		return nil, errors.New("pdf2zh: font map is required")
	}
	if cfg == nil {
		cfg = &Config{}
	}
	if err := cfg.normalize(); err != nil {
		return nil, errors.Wrap(err, "pdf2zh: invalid configuration")
	}
	cfg.LangOut = backend.LangOut()
	return &Engine{cfg: cfg, backend: backend, fontMap: fontMap}, nil
}

// TranslatePage runs the full pipeline over one page and returns its
// freshly emitted content stream. Per-page failures (a backend that
// never succeeds and whose context is cancelled, a malformed page) are
// returned as errors; nothing panics.
func (e *Engine) TranslatePage(page *Page, labelMap *LabelMap) ([]byte, error) {
	return e.TranslatePageContext(context.Background(), page, labelMap)
}

// TranslatePageContext is TranslatePage with an explicit context,
// threaded only as far as the dispatcher's retry loop (5, "cancellation
// is cooperative").
func (e *Engine) TranslatePageContext(ctx context.Context, page *Page, labelMap *LabelMap) ([]byte, error) {
	layout, err := Segment(page, labelMap, e.cfg)
	if err != nil {
		return nil, fmt.Errorf("segmenting page %d: %w", page.ID, err)
	}

	translated, err := Dispatch(ctx, e.cfg, e.backend, layout)
	if err != nil {
		return nil, fmt.Errorf("dispatching page %d: %w", page.ID, err)
	}

	paragraphOps := make([][]Op, len(layout.Paragraphs))
	for i, p := range layout.Paragraphs {
		paragraphOps[i] = Relayout(p, translated[i], layout.Formulas, e.fontMap, e.cfg)
	}

	return Emit(paragraphOps, layout.Lines), nil
}
