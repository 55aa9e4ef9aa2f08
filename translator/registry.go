package translator

import "strings"

// registry maps a service name to its constructor. Populated by init()
// in each backend's own file, mirroring the teacher's pattern of keeping
// each concern in its own small file rather than one growing switch.
var registry = map[string]Constructor{}

// Register adds a backend constructor under name. Intended to be called
// from package init(); a second registration for the same name replaces
// the first (useful for tests that install a fake backend).
func Register(name string, ctor Constructor) {
	registry[name] = ctor
}

// Select parses a "name" or "name:model" service string, looks up the
// matching registered constructor, and builds the backend. Returns
// *UnsupportedServiceError if no backend is registered under the parsed
// name — the one error the engine raises at construction time.
func Select(service string, opts Options) (Backend, error) {
	name, model := splitService(service)
	ctor, ok := registry[name]
	if !ok {
		return nil, &UnsupportedServiceError{Service: service}
	}
	opts.Model = model
	return ctor(opts)
}

// splitService splits "name:model" into ("name", "model"); a bare name
// yields ("name", "").
func splitService(service string) (name, model string) {
	name, model, _ = strings.Cut(service, ":")
	return name, model
}
