package pdf2zh

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/pdf2zh/pdf2zh/translator"
	"github.com/pdf2zh/pdf2zh/utils"
)

// retryDelay is the fixed wait between translation attempts (4.3); the
// dispatcher retries forever rather than giving up on a transient
// backend error, matching the original's tenacity wait_fixed(1) policy.
const retryDelay = time.Second

// translatable is anything the dispatcher can submit to a Backend: a
// Paragraph's TextTemplate or a vertical paragraph's single decoded run.
// Dispatch operates purely on strings, indexed by position, so that
// ordering is trivial to restore regardless of completion order.
type translatable struct {
	index int
	text  string
}

// Dispatch runs every paragraph's TextTemplate through backend,
// concurrently, bounded by cfg.Thread workers, and returns the
// translated templates in the same order as layout.Paragraphs.
//
// A template that isBypassTemplate (whitespace-only, or a lone "{vN}")
// is never sent to the backend — it is returned unchanged (4.3). Every
// other template is retried forever on error, one second apart, logging
// each failure at debug level, until it succeeds or ctx is cancelled.
func Dispatch(ctx context.Context, cfg *Config, backend translator.Backend, layout *PageLayout) ([]string, error) {
	n := len(layout.Paragraphs)
	out := make([]string, n)

	jobs := make(chan translatable)
	results := make(chan struct {
		index int
		text  string
		err   error
	}, n)

	// Thread == 0 means "the runtime's default pool size" (6); a negative
	// value is invalid input and falls back to the same default rather
	// than serializing everything.
	workers := cfg.Thread
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = n
	}
	if workers == 0 {
		return out, nil
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for job := range jobs {
				text, err := translateOne(ctx, cfg, backend, job.text)
				results <- struct {
					index int
					text  string
					err   error
				}{job.index, text, err}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i, p := range layout.Paragraphs {
			select {
			case jobs <- translatable{index: i, text: p.TextTemplate}:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var firstErr error
	for r := range results {
		if r.err != nil && firstErr == nil {
			firstErr = r.err
		}
		if r.err == nil {
			out[r.index] = r.text
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

func translateOne(ctx context.Context, cfg *Config, backend translator.Backend, text string) (string, error) {
	if isBypassTemplate(text) {
		return text, nil
	}
	result, err := utils.RetryForever(ctx, retryDelay, func(err error, attempt int) {
		cfg.Logger.Debugf("translate attempt %d failed: %v", attempt, err)
	}, func() (string, error) {
		return backend.Translate(text)
	})
	if err != nil {
		return "", fmt.Errorf("translating %q: %w", text, err)
	}
	return result, nil
}
