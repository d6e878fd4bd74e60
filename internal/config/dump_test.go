package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDump(t *testing.T) {
	cfg := newValidConfig()

	out, err := Dump(cfg)
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "host: localhost")
	assert.Contains(t, text, "interval: 10s")
	assert.NotContains(t, text, "password: guest")

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Contains(t, decoded, "rabbitmq")
	assert.Contains(t, decoded, "collector")

	rabbit, ok := decoded["rabbitmq"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "******", rabbit["password"])
}
