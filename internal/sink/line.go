package sink

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"sync"
)

// LineWriter writes samples in the tcollector text format,
// "<name> <unix-timestamp> <value>\n", one sample per line.
type LineWriter struct {
	mu  sync.Mutex
	out io.Writer
	w   *bufio.Writer
	err error // first write error since the last Flush
}

// NewLineWriter creates a LineWriter on top of w.
func NewLineWriter(w io.Writer) *LineWriter {
	return &LineWriter{out: w, w: bufio.NewWriter(w)}
}

// Emit implements Sink.
func (l *LineWriter) Emit(name string, timestamp int64, value float64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.err != nil {
		return
	}

	line := make([]byte, 0, len(name)+32)
	line = append(line, name...)
	line = append(line, ' ')
	line = strconv.AppendInt(line, timestamp, 10)
	line = append(line, ' ')
	line = append(line, FormatValue(value)...)
	line = append(line, '\n')

	if _, err := l.w.Write(line); err != nil {
		l.err = err
	}
}

// Flush implements Sink.
func (l *LineWriter) Flush(_ context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	err := l.err
	l.err = nil
	if err != nil {
		// Drop whatever is left of the failed batch.
		l.w.Reset(l.out)
		return fmt.Errorf("failed to write samples: %w", err)
	}
	if err := l.w.Flush(); err != nil {
		l.w.Reset(l.out)
		return fmt.Errorf("failed to flush samples: %w", err)
	}
	return nil
}

// Format implements Sink.
func (l *LineWriter) Format() string {
	return "stdout"
}
