package source

import "faultline/pkg/dispatch"

// Source supplies a populated configuration. Load never returns nil.
type Source interface {
	Load() *dispatch.Configuration
}

// Func adapts a function to the Source interface.
type Func func() *dispatch.Configuration

// Load calls f, substituting an empty configuration for a nil result.
func (f Func) Load() *dispatch.Configuration {
	if f == nil {
		return dispatch.NewConfiguration()
	}
	if cfg := f(); cfg != nil {
		return cfg
	}
	return dispatch.NewConfiguration()
}

// Static returns a Source that always yields cfg.
func Static(cfg *dispatch.Configuration) Source {
	return Func(func() *dispatch.Configuration { return cfg })
}
