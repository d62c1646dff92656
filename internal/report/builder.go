package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/climate-risk-service/internal/domain"
)

// RegionSource provides the regions a report summarizes.
type RegionSource interface {
	Regions() []domain.Region
	Region(id string) (domain.Region, error)
}

// Translator resolves localized UI strings.
type Translator interface {
	Lookup(component, key, locale string) string
}

// Builder turns a request into a report after the simulated generation delay.
type Builder struct {
	regions RegionSource
	text    Translator
	delay   time.Duration
	clock   clockwork.Clock
	logger  *slog.Logger
}

// NewBuilder creates a Builder. A zero delay builds immediately.
func NewBuilder(regions RegionSource, text Translator, delay time.Duration, clock clockwork.Clock, logger *slog.Logger) *Builder {
	return &Builder{
		regions: regions,
		text:    text,
		delay:   delay,
		clock:   clock,
		logger:  logger,
	}
}

// Transform builds the report for req once the generation delay has elapsed
// since req.RequestedAt. Requests batched together share one wait rather than
// queueing delays behind each other. It returns the context error if cancelled
// while waiting.
func (b *Builder) Transform(ctx context.Context, req domain.ReportRequest) (domain.Report, error) {
	var regions []domain.Region
	if req.RegionID == "" {
		regions = b.regions.Regions()
	} else {
		r, err := b.regions.Region(req.RegionID)
		if err != nil {
			return domain.Report{}, fmt.Errorf("build report %s: %w", req.ID, err)
		}
		regions = []domain.Region{r}
	}

	if wait := b.remaining(req); wait > 0 {
		select {
		case <-ctx.Done():
			return domain.Report{}, ctx.Err()
		case <-b.clock.After(wait):
		}
	}

	title := b.text.Lookup("reports", titleKey(req.Type), req.Locale)
	report := domain.BuildReport(req, title, regions, b.clock.Now())

	b.logger.Debug("report built",
		"report_id", report.ID,
		"type", report.Type,
		"regions", len(report.Rows),
	)
	return report, nil
}

// remaining is how much of the delay is left for req. A request without a
// timestamp waits the full delay.
func (b *Builder) remaining(req domain.ReportRequest) time.Duration {
	if b.delay <= 0 {
		return 0
	}
	if req.RequestedAt.IsZero() {
		return b.delay
	}
	return req.RequestedAt.Add(b.delay).Sub(b.clock.Now())
}

func titleKey(t domain.ReportType) string {
	switch t {
	case domain.ReportDaily:
		return "dailyReport"
	case domain.ReportWeekly:
		return "weeklyReport"
	case domain.ReportMonthly:
		return "monthlyReport"
	default:
		return "customReport"
	}
}
