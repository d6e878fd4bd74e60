// Package service provides the collection engine and poll loop of the collector.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"rabbitmq-collector/internal/client/management"
	"rabbitmq-collector/internal/model"
)

// Fetcher returns the decoded JSON document at an API path.
type Fetcher interface {
	Fetch(ctx context.Context, path string) (any, error)
}

// Emitter records one sample.
type Emitter interface {
	Emit(name string, timestamp int64, value float64)
}

// ExtractorOptions configures metric naming and fetch parallelism.
type ExtractorOptions struct {
	Prefix      string           // First name component, e.g. "rabbitmq"
	Namer       model.VHostNamer // Vhost token rules
	Concurrency int              // Max in-flight fetches; 1 runs the cycle sequentially
	Clock       func() time.Time // Defaults to time.Now
}

// Extractor walks the management API and turns the documents it returns
// into flat, dotted metric samples. It keeps no state between cycles.
type Extractor struct {
	fetcher     Fetcher
	emitter     Emitter
	prefix      string
	namer       model.VHostNamer
	concurrency int
	clock       func() time.Time
	logger      zerolog.Logger
}

// NewExtractor creates a new Extractor instance.
func NewExtractor(fetcher Fetcher, emitter Emitter, opts ExtractorOptions, logger zerolog.Logger) *Extractor {
	if opts.Prefix == "" {
		opts.Prefix = "rabbitmq"
	}
	if opts.Namer.Mode == "" {
		opts.Namer = model.NewVHostNamer(model.NamingCompat, "")
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	return &Extractor{
		fetcher:     fetcher,
		emitter:     emitter,
		prefix:      opts.Prefix,
		namer:       opts.Namer,
		concurrency: opts.Concurrency,
		clock:       opts.Clock,
		logger:      logger.With().Str("component", "extractor").Logger(),
	}
}

// RunCycle performs one full traversal: nodes, then every vhost's queues and
// exchanges. Only a failure to fetch /nodes or /vhosts aborts the cycle;
// any other failure drops the affected sub-tree and is recorded in the
// returned result.
func (e *Extractor) RunCycle(ctx context.Context) (*model.CycleResult, error) {
	c := &cycle{
		Extractor: e,
		sem:       semaphore.NewWeighted(int64(e.concurrency)),
		result:    &model.CycleResult{StartedAt: e.clock()},
	}
	defer func() {
		c.result.Duration = e.clock().Sub(c.result.StartedAt)
	}()

	nodes, err := c.fetchList(ctx, management.NodesPath())
	if err != nil {
		e.logger.Error().Err(err).Msg("failed to fetch node list, abandoning cycle")
		return c.result, fmt.Errorf("failed to fetch nodes: %w", err)
	}
	for _, raw := range nodes {
		c.processNode(raw)
	}

	vhosts, err := c.fetchList(ctx, management.VHostsPath())
	if err != nil {
		e.logger.Error().Err(err).Msg("failed to fetch vhost list, abandoning cycle")
		return c.result, fmt.Errorf("failed to fetch vhosts: %w", err)
	}

	var g errgroup.Group
	for _, raw := range vhosts {
		name, ok := entryName(raw)
		if !ok {
			e.logger.Debug().Msg("skipping vhost entry without a name")
			continue
		}
		c.spawn(&g, func() { c.processVHost(ctx, name) })
	}
	g.Wait()

	return c.result, nil
}

// cycle holds the state of a single RunCycle call.
type cycle struct {
	*Extractor
	sem    *semaphore.Weighted
	mu     sync.Mutex // guards result and serializes emitter calls
	result *model.CycleResult
}

// spawn runs fn inline when the cycle is sequential, otherwise in g.
func (c *cycle) spawn(g *errgroup.Group, fn func()) {
	if c.concurrency == 1 {
		fn()
		return
	}
	g.Go(func() error {
		fn()
		return nil
	})
}

// fetch acquires a fetch slot and fetches path.
func (c *cycle) fetch(ctx context.Context, path string) (any, error) {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer c.sem.Release(1)
	return c.fetcher.Fetch(ctx, path)
}

// fetchList fetches path and requires a JSON array.
func (c *cycle) fetchList(ctx context.Context, path string) ([]any, error) {
	doc, err := c.fetch(ctx, path)
	if err != nil {
		return nil, err
	}
	list, ok := model.AsList(doc)
	if !ok {
		return nil, fmt.Errorf("%s: expected a JSON array, got %T", path, doc)
	}
	return list, nil
}

func (c *cycle) emit(value float64, parts ...string) {
	name := model.MetricName(append([]string{c.prefix}, parts...)...)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.emitter.Emit(name, c.clock().Unix(), value)
	c.result.Samples++
}

func (c *cycle) fail(scope, name, path string, err error) {
	c.logger.Warn().
		Err(err).
		Str("scope", scope).
		Str("name", name).
		Str("path", path).
		Msgf("failed to collect %s, skipping it", scope)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.result.Failures = append(c.result.Failures, model.Failure{
		Scope: scope,
		Name:  name,
		Path:  path,
		Error: err.Error(),
	})
}

func (c *cycle) count(field *int) {
	c.mu.Lock()
	*field++
	c.mu.Unlock()
}
