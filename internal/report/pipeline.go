package report

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/climate-risk-service/internal/domain"
	"github.com/couchcryptid/climate-risk-service/internal/observability"
)

const (
	initialBackoff = 200 * time.Millisecond
	maxBackoff     = 5 * time.Second
)

// BatchExtractor reads up to batchSize pending report requests.
type BatchExtractor interface {
	ExtractBatch(ctx context.Context, batchSize int) ([]domain.ReportRequest, error)
}

// Transformer builds a report from a request.
type Transformer interface {
	Transform(ctx context.Context, req domain.ReportRequest) (domain.Report, error)
}

// BatchLoader delivers finished reports to the sink.
type BatchLoader interface {
	LoadBatch(ctx context.Context, reports []domain.Report) error
}

// Pipeline orchestrates the extract-build-load loop.
type Pipeline struct {
	extractor   BatchExtractor
	transformer Transformer
	loader      BatchLoader
	logger      *slog.Logger
	metrics     *observability.Metrics
	clock       clockwork.Clock
	batchSize   int
	running     atomic.Bool
	generated   atomic.Int64
}

// New creates a Pipeline with the given stages and observability.
func New(e BatchExtractor, t Transformer, l BatchLoader, logger *slog.Logger, metrics *observability.Metrics, clock clockwork.Clock, batchSize int) *Pipeline {
	return &Pipeline{
		extractor:   e,
		transformer: t,
		loader:      l,
		logger:      logger,
		metrics:     metrics,
		clock:       clock,
		batchSize:   batchSize,
	}
}

// CheckReadiness returns nil while the worker loop is running.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.running.Load() {
		return errors.New("report pipeline is not running")
	}
	return nil
}

// Generated returns how many reports have been delivered.
func (p *Pipeline) Generated() int64 {
	return p.generated.Load()
}

// Run executes the report loop until the context is cancelled.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("report pipeline started", "batch_size", p.batchSize)
	p.metrics.ReportPipelineRunning.Set(1)
	p.running.Store(true)
	defer func() {
		p.running.Store(false)
		p.metrics.ReportPipelineRunning.Set(0)
	}()

	backoff := initialBackoff
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("report pipeline stopping", "reason", ctx.Err())
			return nil
		default:
		}

		if !p.processBatch(ctx, &backoff) {
			p.logger.Info("report pipeline stopping", "reason", ctx.Err())
			return nil
		}
	}
}

// processBatch runs one extract-build-load cycle. Returns false if the pipeline should stop.
func (p *Pipeline) processBatch(ctx context.Context, backoff *time.Duration) bool {
	requests, err := p.extractor.ExtractBatch(ctx, p.batchSize)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		p.logger.Error("extract batch failed", "error", err)
		if !sleepWithContext(ctx, p.clock, *backoff) {
			return false
		}
		*backoff = nextBackoff(*backoff, maxBackoff)
		return true
	}
	*backoff = initialBackoff

	if len(requests) == 0 {
		return ctx.Err() == nil
	}

	start := p.clock.Now()
	p.metrics.ReportBatchSize.Observe(float64(len(requests)))

	reports := make([]domain.Report, 0, len(requests))
	for _, req := range requests {
		r, err := p.transformer.Transform(ctx, req)
		if err != nil {
			if ctx.Err() != nil {
				return false
			}
			p.logger.Warn("build report failed, skipping request",
				"error", err,
				"report_id", req.ID,
				"type", req.Type,
				"region_id", req.RegionID,
			)
			p.metrics.ReportErrors.Inc()
			continue
		}
		reports = append(reports, r)
	}

	if len(reports) == 0 {
		return true
	}

	if !p.loadWithRetry(ctx, reports) {
		return false
	}

	p.generated.Add(int64(len(reports)))
	p.metrics.ReportsGenerated.Add(float64(len(reports)))
	p.metrics.ReportBatchDuration.Observe(p.clock.Since(start).Seconds())
	return true
}

// loadWithRetry delivers reports, backing off between failed attempts until
// the loader succeeds or the context is cancelled.
func (p *Pipeline) loadWithRetry(ctx context.Context, reports []domain.Report) bool {
	backoff := initialBackoff
	for {
		err := p.loader.LoadBatch(ctx, reports)
		if err == nil {
			return true
		}
		if ctx.Err() != nil {
			return false
		}
		p.logger.Error("load report batch failed",
			"error", err,
			"batch_size", len(reports),
			"retry_in", backoff,
		)
		p.metrics.ReportErrors.Inc()
		if !sleepWithContext(ctx, p.clock, backoff) {
			return false
		}
		backoff = nextBackoff(backoff, maxBackoff)
	}
}

func nextBackoff(current, limit time.Duration) time.Duration {
	next := current * 2
	if next > limit {
		return limit
	}
	return next
}

func sleepWithContext(ctx context.Context, clock clockwork.Clock, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.Chan():
		return true
	}
}
