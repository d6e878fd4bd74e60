// Package model provides data models for the RabbitMQ collector.
package model

import (
	"errors"
	"time"
)

var (
	// ErrMissingField marks a required field absent from a document.
	ErrMissingField = errors.New("required field missing")
	// ErrNotNumeric marks a field whose value is not a JSON number.
	ErrNotNumeric = errors.New("field is not numeric")
)

// Sample is one emitted metric value.
type Sample struct {
	Name      string  // Fully qualified dotted name, prefix included
	Timestamp int64   // Unix seconds
	Value     float64 // Numeric value as found in the document
}

// Category tokens used inside metric names.
const (
	CategoryQueues    = "queues"
	CategoryExchanges = "exchanges"
)

// Failure describes a sub-tree the collector abandoned during a cycle.
type Failure struct {
	Scope string // node, vhost, queue or exchange
	Name  string // entity name, empty when unknown
	Path  string // API path whose fetch or decode failed, if any
	Error string
}

// CycleResult summarizes one collection cycle.
type CycleResult struct {
	StartedAt time.Time
	Duration  time.Duration
	Samples   int
	Nodes     int
	VHosts    int
	Queues    int
	Exchanges int
	Failures  []Failure
}

// HasFailures returns true if any sub-tree was abandoned.
func (r *CycleResult) HasFailures() bool {
	return len(r.Failures) > 0
}
