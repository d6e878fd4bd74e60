// Package management provides a client for the RabbitMQ management HTTP API.
package management

import "fmt"

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	Path       string
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("management API returned status %d for %s: %s", e.StatusCode, e.Path, e.Body)
}

// Overview is the subset of /overview the collector reports on.
type Overview struct {
	ManagementVersion string `json:"management_version"`
	RabbitMQVersion   string `json:"rabbitmq_version"`
	ClusterName       string `json:"cluster_name"`
	Node              string `json:"node"`
}
