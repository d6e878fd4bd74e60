package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"rabbitmq-collector/internal/model"
)

// Sink is an Emitter whose output is delivered once per cycle.
type Sink interface {
	Emitter
	Flush(ctx context.Context) error
}

// Poller runs collection cycles back to back, sleeping a fixed interval
// between the end of one cycle and the start of the next.
type Poller struct {
	extractor *Extractor
	sink      Sink
	interval  time.Duration
	logger    zerolog.Logger
}

// NewPoller creates a new Poller instance.
func NewPoller(extractor *Extractor, sink Sink, interval time.Duration, logger zerolog.Logger) *Poller {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &Poller{
		extractor: extractor,
		sink:      sink,
		interval:  interval,
		logger:    logger.With().Str("component", "poller").Logger(),
	}
}

// Run polls until ctx is cancelled. Cycle and flush errors are logged and
// never stop the loop.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Info().Dur("interval", p.interval).Msg("poll loop started")

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info().Msg("poll loop stopped")
			return nil
		case <-timer.C:
		}

		if _, err := p.RunOnce(ctx); err != nil {
			p.logger.Error().Err(err).Msg("collection cycle failed")
		}

		if ctx.Err() != nil {
			p.logger.Info().Msg("poll loop stopped")
			return nil
		}
		timer.Reset(p.interval)
	}
}

// RunOnce runs one cycle and flushes the sink. The flush happens even when
// the cycle was abandoned, so samples emitted before the failure are kept.
func (p *Poller) RunOnce(ctx context.Context) (*model.CycleResult, error) {
	result, cycleErr := p.extractor.RunCycle(ctx)

	// Flush even if ctx was just cancelled by a shutdown signal.
	flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.interval)
	defer cancel()
	flushErr := p.sink.Flush(flushCtx)

	p.logResult(result, cycleErr)

	if cycleErr != nil {
		return result, cycleErr
	}
	if flushErr != nil {
		return result, fmt.Errorf("failed to flush samples: %w", flushErr)
	}
	return result, nil
}

func (p *Poller) logResult(result *model.CycleResult, err error) {
	if result == nil {
		return
	}

	event := p.logger.Info()
	if err != nil || result.HasFailures() {
		event = p.logger.Warn()
	}
	event.
		Int("samples", result.Samples).
		Int("nodes", result.Nodes).
		Int("vhosts", result.VHosts).
		Int("queues", result.Queues).
		Int("exchanges", result.Exchanges).
		Int("failures", len(result.Failures)).
		Dur("duration", result.Duration).
		Bool("aborted", err != nil).
		Msg("collection cycle completed")
}
