// Package management provides a client for the RabbitMQ management HTTP API.
package management

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"rabbitmq-collector/internal/config"
)

// Client is a client for the RabbitMQ management API.
type Client struct {
	baseURL    string             // API root, e.g. http://localhost:15672/api
	timeout    time.Duration      // Request timeout
	retry      config.RetryConfig // Retry configuration
	httpClient *resty.Client      // HTTP client
	logger     zerolog.Logger     // Logger
}

// NewClient creates a new management API client.
func NewClient(cfg *config.RabbitMQConfig, retryCfg *config.RetryConfig, logger zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	retry := config.RetryConfig{
		MaxRetries: 2,
		BaseDelay:  500 * time.Millisecond,
	}
	if retryCfg != nil {
		retry = *retryCfg
	}

	realm := cfg.Realm
	if realm == "" {
		realm = "RabbitMQ Management"
	}

	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL()).
		SetTimeout(timeout).
		SetBasicAuth(cfg.Username, cfg.Password).
		SetHeader("Accept", "application/json").
		SetHeader("WWW-Authenticate", fmt.Sprintf("Basic realm=%q", realm)).
		SetRetryCount(retry.MaxRetries).
		SetRetryWaitTime(retry.BaseDelay).
		SetRetryMaxWaitTime(retry.BaseDelay * 8). // Max wait time for exponential backoff
		AddRetryCondition(retryCondition)

	if cfg.InsecureSkipVerify {
		httpClient.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true}) //nolint:gosec // opt-in via config
	}

	return &Client{
		baseURL:    cfg.BaseURL(),
		timeout:    timeout,
		retry:      retry,
		httpClient: httpClient,
		logger:     logger.With().Str("component", "management-client").Logger(),
	}
}

// retryCondition determines whether a request should be retried.
// Only retry on timeout, 5xx errors, or connection failures.
// Do not retry on 4xx errors.
func retryCondition(resp *resty.Response, err error) bool {
	if err != nil {
		return true
	}

	if resp != nil && resp.StatusCode() >= 500 {
		return true
	}

	return false
}

// Fetch GETs the document at path (relative to the API root) and decodes it.
// Numbers are decoded as json.Number so integer counters keep their exact
// value. A JSON null body yields a nil document and no error.
func (c *Client) Fetch(ctx context.Context, path string) (any, error) {
	c.logger.Debug().Str("path", path).Msg("fetching document")

	resp, err := c.httpClient.R().
		SetContext(ctx).
		Get(path)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", path, err)
	}

	if resp.IsError() {
		return nil, &StatusError{
			Path:       path,
			StatusCode: resp.StatusCode(),
			Body:       truncate(string(resp.Body()), 256),
		}
	}

	doc, err := decode(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	c.logger.Debug().
		Str("path", path).
		Int("status_code", resp.StatusCode()).
		Dur("elapsed", resp.Time()).
		Msg("document fetched")

	return doc, nil
}

// Overview fetches /overview, used to check connectivity and credentials.
func (c *Client) Overview(ctx context.Context) (*Overview, error) {
	doc, err := c.Fetch(ctx, OverviewPath())
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode overview: %w", err)
	}

	var overview Overview
	if err := json.Unmarshal(raw, &overview); err != nil {
		return nil, fmt.Errorf("failed to parse overview: %w", err)
	}
	return &overview, nil
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// decode parses a JSON body, keeping numbers as json.Number.
func decode(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected trailing data after JSON document")
	}
	return doc, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// NodesPath returns the path listing cluster nodes.
func NodesPath() string { return "/nodes" }

// VHostsPath returns the path listing virtual hosts.
func VHostsPath() string { return "/vhosts" }

// OverviewPath returns the cluster overview path.
func OverviewPath() string { return "/overview" }

// QueuesPath returns the path listing the queues of vhost.
func QueuesPath(vhost string) string {
	return "/queues/" + url.PathEscape(vhost)
}

// QueuePath returns the path of a single queue.
func QueuePath(vhost, queue string) string {
	return "/queues/" + url.PathEscape(vhost) + "/" + url.PathEscape(queue)
}

// ExchangesPath returns the path listing the exchanges of vhost.
func ExchangesPath(vhost string) string {
	return "/exchanges/" + url.PathEscape(vhost)
}

// ExchangePath returns the path of a single exchange.
func ExchangePath(vhost, exchange string) string {
	return "/exchanges/" + url.PathEscape(vhost) + "/" + url.PathEscape(exchange)
}
