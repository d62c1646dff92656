package report

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/climate-risk-service/internal/domain"
)

// LogLoader delivers reports by logging a summary of each. It is the sink
// used when no Kafka brokers are configured.
type LogLoader struct {
	logger *slog.Logger
}

// NewLogLoader creates a LogLoader writing to logger.
func NewLogLoader(logger *slog.Logger) *LogLoader {
	return &LogLoader{logger: logger}
}

// LoadBatch logs one line per report. It never fails.
func (l *LogLoader) LoadBatch(ctx context.Context, reports []domain.Report) error {
	for _, r := range reports {
		l.logger.InfoContext(ctx, "report generated",
			"report_id", r.ID,
			"type", r.Type,
			"title", r.Title,
			"locale", r.Locale,
			"region_id", r.RegionID,
			"regions", len(r.Rows),
			"generated_at", r.GeneratedAt,
		)
	}
	return nil
}
