package sink

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"rabbitmq-collector/internal/config"
)

// Factory builds a sink on demand.
type Factory func() (Sink, error)

// Registry manages sink factories for the supported output types.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates a registry with the stdout and opentsdb sinks.
// stdout is the writer used by the line sink.
func NewRegistry(cfg *config.Config, stdout io.Writer, logger zerolog.Logger) *Registry {
	r := &Registry{
		factories: make(map[string]Factory),
	}

	r.Register("stdout", func() (Sink, error) {
		return NewLineWriter(stdout), nil
	})
	r.Register("opentsdb", func() (Sink, error) {
		if cfg.Output.OpenTSDB.Endpoint == "" {
			return nil, fmt.Errorf("opentsdb sink requires output.opentsdb.endpoint")
		}
		return NewOpenTSDB(&cfg.Output.OpenTSDB, &cfg.HTTP.Retry, logger), nil
	})

	return r
}

// Register adds or replaces a factory under name.
func (r *Registry) Register(name string, f Factory) {
	r.factories[normalize(name)] = f
}

// Get builds the sink for the given output type.
// Names are case-insensitive (e.g., "STDOUT" and "stdout" both work).
func (r *Registry) Get(name string) (Sink, error) {
	f, ok := r.factories[normalize(name)]
	if !ok {
		return nil, fmt.Errorf("unsupported output type %q, supported types: %s",
			name, strings.Join(r.GetAll(), ", "))
	}
	return f()
}

// GetAll returns all supported output types in sorted order.
func (r *Registry) GetAll() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has checks if the output type is supported.
func (r *Registry) Has(name string) bool {
	_, ok := r.factories[normalize(name)]
	return ok
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
