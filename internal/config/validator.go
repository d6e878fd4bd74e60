// Package config provides configuration management for the RabbitMQ collector.
package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents a single validation error with user-friendly message.
type ValidationError struct {
	Field   string      // Field path (e.g., "rabbitmq.port")
	Tag     string      // Validation tag that failed (e.g., "required", "url")
	Value   interface{} // Actual value that failed validation
	Message string      // User-friendly error message
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []*ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  - %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// validate is the package-level validator instance.
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report fields by their config key rather than the Go field name.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
}

// Validate validates the configuration and returns user-friendly error messages.
func Validate(cfg *Config) error {
	var validationErrors ValidationErrors

	if err := validate.Struct(cfg); err != nil {
		if fieldErrors, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range fieldErrors {
				validationErrors = append(validationErrors, &ValidationError{
					Field:   formatFieldName(fe.Namespace()),
					Tag:     fe.Tag(),
					Value:   fe.Value(),
					Message: translateError(fe),
				})
			}
		}
	}

	if errs := validateCollector(cfg); len(errs) > 0 {
		validationErrors = append(validationErrors, errs...)
	}

	if errs := validateOutput(cfg); len(errs) > 0 {
		validationErrors = append(validationErrors, errs...)
	}

	if errs := validateAPIPath(cfg); len(errs) > 0 {
		validationErrors = append(validationErrors, errs...)
	}

	if len(validationErrors) > 0 {
		return validationErrors
	}

	return nil
}

// validateCollector checks the poll interval and the root vhost placeholder.
// The placeholder ends up inside metric names, so it may not contain a
// separator or whitespace.
func validateCollector(cfg *Config) ValidationErrors {
	var errors ValidationErrors

	if cfg.Collector.Interval <= 0 {
		errors = append(errors, &ValidationError{
			Field:   "collector.interval",
			Tag:     "positive_duration",
			Value:   cfg.Collector.Interval,
			Message: fmt.Sprintf("interval must be greater than zero, got %s", cfg.Collector.Interval),
		})
	}

	placeholder := cfg.Collector.RootVHostPlaceholder
	if strings.ContainsAny(placeholder, "/. \t\n") {
		errors = append(errors, &ValidationError{
			Field:   "collector.root_vhost_placeholder",
			Tag:     "metric_token",
			Value:   placeholder,
			Message: fmt.Sprintf("placeholder %q must not contain '/', '.' or whitespace", placeholder),
		})
	}

	if strings.ContainsAny(cfg.Collector.Prefix, " \t\n") {
		errors = append(errors, &ValidationError{
			Field:   "collector.prefix",
			Tag:     "metric_token",
			Value:   cfg.Collector.Prefix,
			Message: fmt.Sprintf("prefix %q must not contain whitespace", cfg.Collector.Prefix),
		})
	}

	return errors
}

// validateOutput validates sink-specific requirements.
func validateOutput(cfg *Config) ValidationErrors {
	var errors ValidationErrors

	if cfg.Output.Type == "opentsdb" && cfg.Output.OpenTSDB.Endpoint == "" {
		errors = append(errors, &ValidationError{
			Field:   "output.opentsdb.endpoint",
			Tag:     "required_when_enabled",
			Value:   "",
			Message: "endpoint is required when output type is opentsdb",
		})
	}

	return errors
}

// validateAPIPath requires an absolute path without a trailing slash.
func validateAPIPath(cfg *Config) ValidationErrors {
	var errors ValidationErrors

	p := cfg.RabbitMQ.APIPath
	if p == "" {
		return errors
	}
	if !strings.HasPrefix(p, "/") || strings.HasSuffix(p, "/") {
		errors = append(errors, &ValidationError{
			Field:   "rabbitmq.api_path",
			Tag:     "api_path",
			Value:   p,
			Message: fmt.Sprintf("api_path %q must start with '/' and must not end with '/'", p),
		})
	}

	return errors
}

// formatFieldName converts the validator field namespace to a user-friendly format.
// Example: "Config.rabbitmq.port" -> "rabbitmq.port"
func formatFieldName(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}

	for i, part := range parts {
		parts[i] = strings.ToLower(part)
	}

	return strings.Join(parts, ".")
}

// translateError converts a validator.FieldError to a user-friendly message.
func translateError(fe validator.FieldError) string {
	field := formatFieldName(fe.Namespace())

	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "url":
		return fmt.Sprintf("invalid URL format: %v", fe.Value())
	case "gte":
		return fmt.Sprintf("value must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("value must be less than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("value must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("validation failed on '%s' tag for field '%s'", fe.Tag(), field)
	}
}
