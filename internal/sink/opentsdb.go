package sink

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"rabbitmq-collector/internal/config"
)

// DataPoint is one entry of an OpenTSDB /api/put request body.
type DataPoint struct {
	Metric    string            `json:"metric"`
	Timestamp int64             `json:"timestamp"`
	Value     float64           `json:"value"`
	Tags      map[string]string `json:"tags"`
}

// OpenTSDB buffers samples for a cycle and pushes them to /api/put on Flush.
type OpenTSDB struct {
	mu         sync.Mutex
	pending    []DataPoint
	batchSize  int
	tags       map[string]string
	httpClient *resty.Client
	logger     zerolog.Logger
}

// NewOpenTSDB creates an OpenTSDB pusher. OpenTSDB rejects points without
// tags, so host=<hostname> is used when none are configured.
func NewOpenTSDB(cfg *config.OpenTSDBConfig, retryCfg *config.RetryConfig, logger zerolog.Logger) *OpenTSDB {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 50
	}

	tags := make(map[string]string, len(cfg.Tags))
	for k, v := range cfg.Tags {
		tags[k] = v
	}
	if len(tags) == 0 {
		host, err := os.Hostname()
		if err != nil || host == "" {
			host = "unknown"
		}
		tags["host"] = host
	}

	httpClient := resty.New().
		SetBaseURL(cfg.Endpoint).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	if retryCfg != nil {
		httpClient.
			SetRetryCount(retryCfg.MaxRetries).
			SetRetryWaitTime(retryCfg.BaseDelay).
			SetRetryMaxWaitTime(retryCfg.BaseDelay * 8).
			AddRetryCondition(func(resp *resty.Response, err error) bool {
				return err != nil || (resp != nil && resp.StatusCode() >= 500)
			})
	}

	return &OpenTSDB{
		batchSize:  batchSize,
		tags:       tags,
		httpClient: httpClient,
		logger:     logger.With().Str("component", "opentsdb-sink").Logger(),
	}
}

// Emit implements Sink.
func (o *OpenTSDB) Emit(name string, timestamp int64, value float64) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.pending = append(o.pending, DataPoint{
		Metric:    name,
		Timestamp: timestamp,
		Value:     value,
		Tags:      o.tags,
	})
}

// Flush implements Sink. The buffer is always cleared, so a failed batch is
// dropped rather than resent with the next cycle.
func (o *OpenTSDB) Flush(ctx context.Context) error {
	o.mu.Lock()
	points := o.pending
	o.pending = nil
	o.mu.Unlock()

	if len(points) == 0 {
		return nil
	}

	var failed int
	var firstErr error
	for start := 0; start < len(points); start += o.batchSize {
		end := min(start+o.batchSize, len(points))
		if err := o.put(ctx, points[start:end]); err != nil {
			failed += end - start
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	if firstErr != nil {
		return fmt.Errorf("failed to push %d of %d data points: %w", failed, len(points), firstErr)
	}

	o.logger.Debug().Int("data_points", len(points)).Msg("pushed data points")
	return nil
}

func (o *OpenTSDB) put(ctx context.Context, batch []DataPoint) error {
	resp, err := o.httpClient.R().
		SetContext(ctx).
		SetBody(batch).
		Post("/api/put")
	if err != nil {
		return fmt.Errorf("failed to post data points: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("OpenTSDB returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}
	return nil
}

// Format implements Sink.
func (o *OpenTSDB) Format() string {
	return "opentsdb"
}
