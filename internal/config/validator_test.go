package config

import (
	"strings"
	"testing"
	"time"
)

// newValidConfig creates a valid configuration for testing.
func newValidConfig() *Config {
	return &Config{
		RabbitMQ: RabbitMQConfig{
			Scheme:   "http",
			Host:     "localhost",
			Port:     15672,
			Username: "guest",
			Password: "guest",
			Realm:    "RabbitMQ Management",
			APIPath:  "/api",
			Timeout:  10 * time.Second,
		},
		Collector: CollectorConfig{
			Interval:             10 * time.Second,
			Concurrency:          1,
			Prefix:               "rabbitmq",
			VHostNaming:          VHostNamingCompat,
			RootVHostPlaceholder: "default_vhost",
		},
		Output: OutputConfig{
			Type: "stdout",
			OpenTSDB: OpenTSDBConfig{
				BatchSize: 50,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		HTTP: HTTPConfig{
			Retry: RetryConfig{
				MaxRetries: 2,
				BaseDelay:  500 * time.Millisecond,
			},
		},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	if err := Validate(newValidConfig()); err != nil {
		t.Errorf("Validate() error = %v, want nil for valid config", err)
	}
}

func TestValidate_FieldErrors(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
		wantMsg   string
	}{
		{
			name:      "missing host",
			mutate:    func(c *Config) { c.RabbitMQ.Host = "" },
			wantField: "rabbitmq.host",
			wantMsg:   "required",
		},
		{
			name:      "port out of range",
			mutate:    func(c *Config) { c.RabbitMQ.Port = 70000 },
			wantField: "rabbitmq.port",
			wantMsg:   "less than or equal to 65535",
		},
		{
			name:      "unknown scheme",
			mutate:    func(c *Config) { c.RabbitMQ.Scheme = "amqp" },
			wantField: "rabbitmq.scheme",
			wantMsg:   "one of",
		},
		{
			name:      "zero concurrency",
			mutate:    func(c *Config) { c.Collector.Concurrency = 0 },
			wantField: "collector.concurrency",
			wantMsg:   "greater than or equal to 1",
		},
		{
			name:      "unknown naming mode",
			mutate:    func(c *Config) { c.Collector.VHostNaming = "lossy" },
			wantField: "collector.vhost_naming",
			wantMsg:   "one of",
		},
		{
			name:      "zero interval",
			mutate:    func(c *Config) { c.Collector.Interval = 0 },
			wantField: "collector.interval",
			wantMsg:   "greater than zero",
		},
		{
			name:      "placeholder with separator",
			mutate:    func(c *Config) { c.Collector.RootVHostPlaceholder = "default.vhost" },
			wantField: "collector.root_vhost_placeholder",
			wantMsg:   "must not contain",
		},
		{
			name:      "opentsdb without endpoint",
			mutate:    func(c *Config) { c.Output.Type = "opentsdb" },
			wantField: "output.opentsdb.endpoint",
			wantMsg:   "endpoint is required",
		},
		{
			name:      "api path with trailing slash",
			mutate:    func(c *Config) { c.RabbitMQ.APIPath = "/api/" },
			wantField: "rabbitmq.api_path",
			wantMsg:   "must start with '/'",
		},
		{
			name:      "invalid log level",
			mutate:    func(c *Config) { c.Logging.Level = "trace" },
			wantField: "logging.level",
			wantMsg:   "one of",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newValidConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if err == nil {
				t.Fatal("Validate() should return error")
			}

			errStr := err.Error()
			if !strings.Contains(errStr, tt.wantField) {
				t.Errorf("error should mention field %q, got: %s", tt.wantField, errStr)
			}
			if !strings.Contains(errStr, tt.wantMsg) {
				t.Errorf("error should mention %q, got: %s", tt.wantMsg, errStr)
			}
		})
	}
}

func TestValidate_OpenTSDBWithEndpoint(t *testing.T) {
	cfg := newValidConfig()
	cfg.Output.Type = "opentsdb"
	cfg.Output.OpenTSDB.Endpoint = "http://tsdb:4242"

	if err := Validate(cfg); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestValidationErrors_Error(t *testing.T) {
	var empty ValidationErrors
	if empty.Error() != "" {
		t.Errorf("empty ValidationErrors.Error() = %q, want empty", empty.Error())
	}

	errs := ValidationErrors{
		{Field: "rabbitmq.host", Message: "this field is required"},
	}
	want := "config validation failed:\n  - rabbitmq.host: this field is required\n"
	if errs.Error() != want {
		t.Errorf("Error() = %q, want %q", errs.Error(), want)
	}
}

func TestRedacted(t *testing.T) {
	cfg := newValidConfig()
	cfg.Output.OpenTSDB.Tags = map[string]string{"host": "a"}

	r := cfg.Redacted()
	if r.RabbitMQ.Password != "******" {
		t.Errorf("Password = %q, want masked", r.RabbitMQ.Password)
	}
	if cfg.RabbitMQ.Password != "guest" {
		t.Error("Redacted() must not modify the original config")
	}

	r.Output.OpenTSDB.Tags["host"] = "b"
	if cfg.Output.OpenTSDB.Tags["host"] != "a" {
		t.Error("Redacted() must copy the tag map")
	}
}
