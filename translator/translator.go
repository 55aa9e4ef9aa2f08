/*
Package translator defines the pluggable translation backend contract
consumed by the engine's dispatcher (pdf2zh, component C3), plus a small
registry of concrete backends selected by a "name" or "name:model"
service string.

The capability set is intentionally minimal — Translate plus a name and
output-language discriminant — so additional backends can be registered
without touching the engine.
*/
package translator

import "fmt"

// Backend is the translator contract. Translate must be safe to call
// concurrently from the dispatcher's worker pool; a Backend holds no
// per-call mutable state of its own.
type Backend interface {
	// Translate returns text translated into the backend's configured
	// output language.
	Translate(text string) (string, error)
	// Name identifies the backend, e.g. for logging.
	Name() string
	// LangOut is the backend's configured output language, used by the
	// re-layout engine to pick the default line height (4.4).
	LangOut() string
}

// Options configure a backend at construction time (forwarded from
// pdf2zh.Config): language pair, an optional model/prompt, environment
// overrides (API keys, endpoints) and a cache bypass flag.
type Options struct {
	LangIn      string
	LangOut     string
	Model       string
	Prompt      string
	Envs        map[string]string
	IgnoreCache bool
}

// Constructor builds a Backend from Options. Registered constructors
// must not block past what's needed to validate their own configuration
// (e.g. they may fail fast on a missing required env var, but must not
// perform network I/O at construction time).
type Constructor func(opts Options) (Backend, error)

// UnsupportedServiceError is returned when Select is asked for
// a service name with no registered constructor. Per the engine's error
// taxonomy this is the one error raised at construction, never mid-page.
type UnsupportedServiceError struct {
	Service string
}

func (e *UnsupportedServiceError) Error() string {
	return fmt.Sprintf("unsupported translation service: %q", e.Service)
}
