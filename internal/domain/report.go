package domain

import (
	"fmt"
	"time"
)

// ReportType is the cadence a report summarizes.
type ReportType string

const (
	ReportDaily   ReportType = "daily"
	ReportWeekly  ReportType = "weekly"
	ReportMonthly ReportType = "monthly"
	ReportCustom  ReportType = "custom"
)

// ParseReportType validates a report type name.
func ParseReportType(s string) (ReportType, error) {
	switch t := ReportType(s); t {
	case ReportDaily, ReportWeekly, ReportMonthly, ReportCustom:
		return t, nil
	}
	return "", fmt.Errorf("unknown report type %q: %w", s, ErrInvalidArgument)
}

// ReportRequest is a queued request for a simulated report. An empty
// RegionID covers every region.
type ReportRequest struct {
	ID          string     `json:"id"`
	Type        ReportType `json:"type"`
	RegionID    string     `json:"regionId,omitempty"`
	Locale      string     `json:"locale"`
	RequestedAt time.Time  `json:"requestedAt"`
}

// ReportRow is one region's line in a report.
type ReportRow struct {
	RegionID string    `json:"regionId"`
	Name     string    `json:"name"`
	Level    RiskLevel `json:"level"`
	Score    int       `json:"score"`
}

// Report is the generated summary. No document bytes are produced.
type Report struct {
	ID          string            `json:"id"`
	Type        ReportType        `json:"type"`
	Title       string            `json:"title"`
	RegionID    string            `json:"regionId,omitempty"`
	Locale      string            `json:"locale"`
	RequestedAt time.Time         `json:"requestedAt"`
	GeneratedAt time.Time         `json:"generatedAt"`
	LevelCounts map[RiskLevel]int `json:"levelCounts"`
	Rows        []ReportRow       `json:"rows"`
}

// BuildReport summarizes the current risk of regions for req, stamped with
// generatedAt. Region names are localized when the request locale is Urdu.
func BuildReport(req ReportRequest, title string, regions []Region, generatedAt time.Time) Report {
	counts := make(map[RiskLevel]int, len(RiskLevels))
	for _, l := range RiskLevels {
		counts[l] = 0
	}
	rows := make([]ReportRow, 0, len(regions))
	for _, r := range regions {
		name := r.Name
		if req.Locale == "ur" && r.NameUr != "" {
			name = r.NameUr
		}
		counts[r.CurrentRisk.Level]++
		rows = append(rows, ReportRow{
			RegionID: r.ID,
			Name:     name,
			Level:    r.CurrentRisk.Level,
			Score:    r.CurrentRisk.Score,
		})
	}

	return Report{
		ID:          req.ID,
		Type:        req.Type,
		Title:       title,
		RegionID:    req.RegionID,
		Locale:      req.Locale,
		RequestedAt: req.RequestedAt,
		GeneratedAt: generatedAt.UTC(),
		LevelCounts: counts,
		Rows:        rows,
	}
}
