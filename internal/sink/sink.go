// Package sink provides metric sinks for the collector.
// It defines the Sink interface and a registry for looking sinks up by
// output type (stdout line protocol, OpenTSDB HTTP push).
package sink

import (
	"context"
	"strconv"
)

// Sink records samples produced by a collection cycle.
type Sink interface {
	// Emit records one sample. Implementations may buffer until Flush.
	Emit(name string, timestamp int64, value float64)

	// Flush delivers everything buffered since the previous Flush.
	// It is called once at the end of every cycle.
	Flush(ctx context.Context) error

	// Format returns the output type identifier, e.g. "stdout".
	Format() string
}

// FormatValue renders a sample value with the shortest exact decimal form:
// 10 stays "10" and 0.2 stays "0.2".
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
