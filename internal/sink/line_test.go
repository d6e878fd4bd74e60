package sink

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineWriter_Format(t *testing.T) {
	var buf bytes.Buffer
	w := NewLineWriter(&buf)

	w.Emit("rabbitmq.fd_used", 1700000000, 35)
	w.Emit("rabbitmq.default_vhost.queues.q1.messages.rate", 1700000000, 0.2)

	assert.Empty(t, buf.String(), "nothing is written before Flush")

	require.NoError(t, w.Flush(context.Background()))
	assert.Equal(t,
		"rabbitmq.fd_used 1700000000 35\n"+
			"rabbitmq.default_vhost.queues.q1.messages.rate 1700000000 0.2\n",
		buf.String())
	assert.Equal(t, "stdout", w.Format())
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{10, "10"},
		{0, "0"},
		{0.2, "0.2"},
		{-1.5, "-1.5"},
		{1.5e8, "150000000"},
		{8589934592, "8589934592"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatValue(tt.in))
	}
}

func TestLineWriter_ConcurrentEmit(t *testing.T) {
	var buf bytes.Buffer
	w := NewLineWriter(&buf)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.Emit("rabbitmq.x", 1, 1)
		}()
	}
	wg.Wait()
	require.NoError(t, w.Flush(context.Background()))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 50)
	for _, line := range lines {
		assert.Equal(t, "rabbitmq.x 1 1", line)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestLineWriter_WriteError(t *testing.T) {
	w := NewLineWriter(failingWriter{})
	w.Emit("rabbitmq.x", 1, 1)

	err := w.Flush(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken pipe")

	// Error state is cleared; an empty flush succeeds.
	assert.NoError(t, w.Flush(context.Background()))
}
