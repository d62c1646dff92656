package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/climate-risk-service/internal/domain"
	"github.com/couchcryptid/climate-risk-service/internal/observability"
)

// Queue is a bounded, in-memory buffer of pending report requests.
type Queue struct {
	requests      chan domain.ReportRequest
	flushInterval time.Duration
	clock         clockwork.Clock
	metrics       *observability.Metrics
}

// NewQueue creates a queue holding at most size requests. ExtractBatch waits
// up to flushInterval to fill a batch once the first request arrives.
func NewQueue(size int, flushInterval time.Duration, clock clockwork.Clock, metrics *observability.Metrics) *Queue {
	return &Queue{
		requests:      make(chan domain.ReportRequest, size),
		flushInterval: flushInterval,
		clock:         clock,
		metrics:       metrics,
	}
}

// Submit enqueues req without blocking, assigning an ID and request time
// when unset. It returns domain.ErrQueueFull when the queue is at capacity.
func (q *Queue) Submit(req domain.ReportRequest) (domain.ReportRequest, error) {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.RequestedAt.IsZero() {
		req.RequestedAt = q.clock.Now().UTC()
	}

	select {
	case q.requests <- req:
		q.metrics.ReportsQueued.Inc()
		return req, nil
	default:
		q.metrics.ReportsRejected.Inc()
		return domain.ReportRequest{}, fmt.Errorf("%d requests pending: %w", cap(q.requests), domain.ErrQueueFull)
	}
}

// Len returns the number of requests waiting.
func (q *Queue) Len() int {
	return len(q.requests)
}

// ExtractBatch blocks until at least one request is available, then collects
// up to batchSize requests, waiting at most the flush interval for more.
func (q *Queue) ExtractBatch(ctx context.Context, batchSize int) ([]domain.ReportRequest, error) {
	var first domain.ReportRequest
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case first = <-q.requests:
	}

	batch := make([]domain.ReportRequest, 0, batchSize)
	batch = append(batch, first)

	if q.flushInterval <= 0 {
		for len(batch) < batchSize {
			select {
			case req := <-q.requests:
				batch = append(batch, req)
			default:
				return batch, nil
			}
		}
		return batch, nil
	}

	flush := q.clock.After(q.flushInterval)
	for len(batch) < batchSize {
		select {
		case req := <-q.requests:
			batch = append(batch, req)
		case <-flush:
			return batch, nil
		case <-ctx.Done():
			return batch, nil
		}
	}
	return batch, nil
}
