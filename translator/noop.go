package translator

func init() {
	Register("noop", newNoopBackend)
}

// NoopBackend returns its input unchanged. Used for round-trip testing
// (S2/S3/S4 in spec.md §8) and as a safe default for dry runs.
type NoopBackend struct {
	langOut string
}

func newNoopBackend(opts Options) (Backend, error) {
	return &NoopBackend{langOut: opts.LangOut}, nil
}

func (b *NoopBackend) Translate(text string) (string, error) { return text, nil }
func (b *NoopBackend) Name() string                           { return "noop" }
func (b *NoopBackend) LangOut() string                        { return b.langOut }
