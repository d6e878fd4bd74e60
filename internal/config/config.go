// Package config provides configuration management for the RabbitMQ collector.
package config

import (
	"fmt"
	"strconv"
	"time"
)

// Config is the root configuration structure for the collector.
// It is built once by Load and never mutated afterwards.
type Config struct {
	RabbitMQ  RabbitMQConfig  `mapstructure:"rabbitmq" yaml:"rabbitmq" validate:"required"`
	Collector CollectorConfig `mapstructure:"collector" yaml:"collector"`
	Output    OutputConfig    `mapstructure:"output" yaml:"output"`
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging"`
	HTTP      HTTPConfig      `mapstructure:"http" yaml:"http"`
}

// RabbitMQConfig contains connection settings for the management HTTP API.
type RabbitMQConfig struct {
	Scheme             string        `mapstructure:"scheme" yaml:"scheme" validate:"oneof=http https"`
	Host               string        `mapstructure:"host" yaml:"host" validate:"required"`
	Port               int           `mapstructure:"port" yaml:"port" validate:"gte=1,lte=65535"`
	Username           string        `mapstructure:"username" yaml:"username" validate:"required"`
	Password           string        `mapstructure:"password" yaml:"password"`
	Realm              string        `mapstructure:"realm" yaml:"realm"`
	APIPath            string        `mapstructure:"api_path" yaml:"api_path"`
	Timeout            time.Duration `mapstructure:"timeout" yaml:"timeout"`
	InsecureSkipVerify bool          `mapstructure:"insecure_skip_verify" yaml:"insecure_skip_verify"`
}

// BaseURL returns the management API root, e.g. "http://localhost:15672/api".
func (c *RabbitMQConfig) BaseURL() string {
	return fmt.Sprintf("%s://%s%s", c.Scheme, c.Address(), c.APIPath)
}

// Address returns host:port.
func (c *RabbitMQConfig) Address() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// Vhost naming modes.
const (
	VHostNamingCompat = "compat"
	VHostNamingStrict = "strict"
)

// CollectorConfig controls the poll loop and metric naming.
type CollectorConfig struct {
	Interval             time.Duration `mapstructure:"interval" yaml:"interval"`
	Concurrency          int           `mapstructure:"concurrency" yaml:"concurrency" validate:"gte=1,lte=64"`
	Prefix               string        `mapstructure:"prefix" yaml:"prefix" validate:"required"`
	VHostNaming          string        `mapstructure:"vhost_naming" yaml:"vhost_naming" validate:"oneof=compat strict"`
	RootVHostPlaceholder string        `mapstructure:"root_vhost_placeholder" yaml:"root_vhost_placeholder" validate:"required"`
}

// OutputConfig selects and configures the metric sink.
type OutputConfig struct {
	Type     string         `mapstructure:"type" yaml:"type" validate:"oneof=stdout opentsdb"`
	OpenTSDB OpenTSDBConfig `mapstructure:"opentsdb" yaml:"opentsdb"`
}

// OpenTSDBConfig contains settings for pushing samples to an OpenTSDB-compatible /api/put.
type OpenTSDBConfig struct {
	Endpoint  string            `mapstructure:"endpoint" yaml:"endpoint" validate:"omitempty,url"`
	Timeout   time.Duration     `mapstructure:"timeout" yaml:"timeout"`
	BatchSize int               `mapstructure:"batch_size" yaml:"batch_size" validate:"gte=1,lte=10000"`
	Tags      map[string]string `mapstructure:"tags" yaml:"tags"`
}

// LoggingConfig contains configurations for logging.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" validate:"oneof=json console"`
}

// HTTPConfig contains HTTP client configurations including retry settings.
type HTTPConfig struct {
	Retry RetryConfig `mapstructure:"retry" yaml:"retry"`
}

// RetryConfig defines retry behavior for HTTP requests.
type RetryConfig struct {
	MaxRetries int           `mapstructure:"max_retries" yaml:"max_retries" validate:"gte=0,lte=10"`
	BaseDelay  time.Duration `mapstructure:"base_delay" yaml:"base_delay"`
}

// Redacted returns a copy of the configuration with secrets masked, for display.
func (c *Config) Redacted() Config {
	out := *c
	if out.RabbitMQ.Password != "" {
		out.RabbitMQ.Password = "******"
	}
	if c.Output.OpenTSDB.Tags != nil {
		tags := make(map[string]string, len(c.Output.OpenTSDB.Tags))
		for k, v := range c.Output.OpenTSDB.Tags {
			tags[k] = v
		}
		out.Output.OpenTSDB.Tags = tags
	}
	return out
}
