package sink

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rabbitmq-collector/internal/config"
)

func TestRegistry(t *testing.T) {
	cfg := &config.Config{}
	var buf bytes.Buffer
	r := NewRegistry(cfg, &buf, zerolog.Nop())

	t.Run("supported types", func(t *testing.T) {
		assert.Equal(t, []string{"opentsdb", "stdout"}, r.GetAll())
		assert.True(t, r.Has("STDOUT"))
		assert.True(t, r.Has(" opentsdb "))
		assert.False(t, r.Has("graphite"))
	})

	t.Run("stdout writes to the given writer", func(t *testing.T) {
		s, err := r.Get("Stdout")
		require.NoError(t, err)
		assert.Equal(t, "stdout", s.Format())

		s.Emit("rabbitmq.x", 1, 2)
		require.NoError(t, s.Flush(context.Background()))
		assert.Equal(t, "rabbitmq.x 1 2\n", buf.String())
	})

	t.Run("opentsdb requires endpoint", func(t *testing.T) {
		_, err := r.Get("opentsdb")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "endpoint")
	})

	t.Run("opentsdb with endpoint", func(t *testing.T) {
		cfg.Output.OpenTSDB.Endpoint = "http://localhost:4242"
		s, err := r.Get("opentsdb")
		require.NoError(t, err)
		assert.Equal(t, "opentsdb", s.Format())
	})

	t.Run("unsupported type", func(t *testing.T) {
		_, err := r.Get("graphite")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "supported types: opentsdb, stdout")
	})
}
