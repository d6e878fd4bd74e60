package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVHostNamer_Sanitize(t *testing.T) {
	tests := []struct {
		name  string
		mode  string
		vhost string
		want  string
	}{
		{"compat root", NamingCompat, "/", "default_vhost"},
		{"compat plain", NamingCompat, "orders", "orders"},
		{"compat nested slash", NamingCompat, "team/a", "teamdefault_vhosta"},
		{"compat whitespace", NamingCompat, "my vhost", "my_vhost"},
		{"strict root", NamingStrict, "/", "__default_vhost"},
		{"strict plain", NamingStrict, "orders", "orders"},
		{"strict nested slash", NamingStrict, "team/a", "team_a"},
		{"strict literal placeholder", NamingStrict, "default_vhost", "default_vhost"},
		{"unknown mode falls back to compat", "other", "/", "default_vhost"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewVHostNamer(tt.mode, "default_vhost")
			got := n.Sanitize(tt.vhost)
			assert.Equal(t, tt.want, got)
			assert.False(t, strings.Contains(got, "/"), "token must not contain '/'")
		})
	}
}

func TestVHostNamer_RootCollision(t *testing.T) {
	compat := NewVHostNamer(NamingCompat, "")
	assert.Equal(t, compat.Sanitize("/"), compat.Sanitize("default_vhost"),
		"compat mode keeps the historical collision")

	strict := NewVHostNamer(NamingStrict, "")
	assert.NotEqual(t, strict.Sanitize("/"), strict.Sanitize("default_vhost"))
}

func TestSanitizeComponent(t *testing.T) {
	assert.Equal(t, "plain", SanitizeComponent("plain"))
	assert.Equal(t, "a_b_c", SanitizeComponent("a b\tc"))
	assert.Equal(t, "amq.direct", SanitizeComponent("amq.direct"))
}

func TestMetricName(t *testing.T) {
	assert.Equal(t, "rabbitmq.disk_free", MetricName("rabbitmq", "disk_free"))
	assert.Equal(t, "rabbitmq.default_vhost.queues.q1.messages.rate",
		MetricName("rabbitmq", "default_vhost", CategoryQueues, "q1", "messages", "rate"))
}
