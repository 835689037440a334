package source

import "faultline/pkg/dispatch"

// Document is the declarative configuration schema. Tags are provided for both
// YAML and JSON encodings.
type Document struct {
	DefaultHandlers []string       `yaml:"defaultHandlers" json:"defaultHandlers"`
	Handlers        []HandlerEntry `yaml:"handlers" json:"handlers"`
}

// HandlerEntry associates one handler ref with the error types it handles.
type HandlerEntry struct {
	HandlerRef string   `yaml:"handlerRef" json:"handlerRef"`
	Exceptions []string `yaml:"exceptions" json:"exceptions"`
}

// Configuration expands the document into a dispatch configuration, one
// mapping per (type, handler) pair. Blank entries are skipped.
func (d Document) Configuration() *dispatch.Configuration {
	cfg := dispatch.NewConfiguration()
	cfg.AddDefaultHandlers(d.DefaultHandlers...)
	for _, entry := range d.Handlers {
		cfg.AddHandlerExceptions(entry.HandlerRef, entry.Exceptions...)
	}
	return cfg
}
