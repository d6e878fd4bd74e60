// Package config provides configuration management for the RabbitMQ collector.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "RMQC"

// Load reads configuration from the specified YAML file and environment variables.
// Environment variables take precedence over file values.
// Environment variable format: RMQC_<SECTION>_<KEY> (e.g., RMQC_RABBITMQ_PASSWORD)
// An empty configPath loads defaults and environment only.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", configPath)
		}

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default values for all configuration options.
// They match the stock management plugin setup (guest/guest on localhost:15672).
func setDefaults(v *viper.Viper) {
	// RabbitMQ management API
	v.SetDefault("rabbitmq.scheme", "http")
	v.SetDefault("rabbitmq.host", "localhost")
	v.SetDefault("rabbitmq.port", 15672)
	v.SetDefault("rabbitmq.username", "guest")
	v.SetDefault("rabbitmq.password", "guest")
	v.SetDefault("rabbitmq.realm", "RabbitMQ Management")
	v.SetDefault("rabbitmq.api_path", "/api")
	v.SetDefault("rabbitmq.timeout", 10*time.Second)
	v.SetDefault("rabbitmq.insecure_skip_verify", false)

	// Collector
	v.SetDefault("collector.interval", 10*time.Second)
	v.SetDefault("collector.concurrency", 1)
	v.SetDefault("collector.prefix", "rabbitmq")
	v.SetDefault("collector.vhost_naming", VHostNamingCompat)
	v.SetDefault("collector.root_vhost_placeholder", "default_vhost")

	// Output
	v.SetDefault("output.type", "stdout")
	v.SetDefault("output.opentsdb.endpoint", "")
	v.SetDefault("output.opentsdb.timeout", 10*time.Second)
	v.SetDefault("output.opentsdb.batch_size", 50)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// HTTP retry defaults
	v.SetDefault("http.retry.max_retries", 2)
	v.SetDefault("http.retry.base_delay", 500*time.Millisecond)
}
