package translator

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
)

func init() {
	Register("google", newGoogleBackend)
}

// googleEndpoint is the unauthenticated translate.googleapis.com
// endpoint, the same one the original pdf2zh "google" backend talks to.
const googleEndpoint = "https://translate.googleapis.com/translate_a/single"

// GoogleBackend is a minimal HTTP translation backend. It holds no
// mutable state after construction and is safe for concurrent use from
// the dispatcher's worker pool, same as every other Backend.
type GoogleBackend struct {
	client  *http.Client
	langIn  string
	langOut string
}

func newGoogleBackend(opts Options) (Backend, error) {
	return &GoogleBackend{
		client:  &http.Client{},
		langIn:  opts.LangIn,
		langOut: opts.LangOut,
	}, nil
}

func (b *GoogleBackend) Name() string    { return "google" }
func (b *GoogleBackend) LangOut() string { return b.langOut }

func (b *GoogleBackend) Translate(text string) (string, error) {
	q := url.Values{}
	q.Set("client", "gtx")
	q.Set("sl", orAuto(b.langIn))
	q.Set("tl", b.langOut)
	q.Set("dt", "t")
	q.Set("q", text)

	resp, err := b.client.Get(googleEndpoint + "?" + q.Encode())
	if err != nil {
		return "", errors.Wrap(err, "google translate request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("google translate: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "reading google translate response")
	}

	// The endpoint returns [[[translated, original, ...], ...], ...];
	// only the first element of each top-level segment is needed.
	var parsed []any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", errors.Wrap(err, "decoding google translate response")
	}

	var out string
	if len(parsed) > 0 {
		if segments, ok := parsed[0].([]any); ok {
			for _, seg := range segments {
				parts, ok := seg.([]any)
				if !ok || len(parts) == 0 {
					continue
				}
				chunk, _ := parts[0].(string)
				out += chunk
			}
		}
	}
	return out, nil
}

func orAuto(lang string) string {
	if lang == "" {
		return "auto"
	}
	return lang
}
