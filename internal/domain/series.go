package domain

import (
	"fmt"
	"math"
	"time"
)

// DateLayout is the calendar-date format used for series dates.
const DateLayout = "2006-01-02"

// HistoricalDataPoint is one generated day of climate signals.
type HistoricalDataPoint struct {
	Date        string  `json:"date"`
	Rainfall    float64 `json:"rainfall"`
	Temperature float64 `json:"temperature"`
	SnowCover   float64 `json:"snowCover"`
	LakeArea    float64 `json:"lakeArea"`
	RiskScore   int     `json:"riskScore"`
}

// Signals returns the four climate inputs the risk score was derived from.
func (p HistoricalDataPoint) Signals() Signals {
	return Signals{
		Rainfall:    p.Rainfall,
		Temperature: p.Temperature,
		SnowCover:   p.SnowCover,
		LakeArea:    p.LakeArea,
	}
}

// ParseDate parses a strict YYYY-MM-DD calendar date in UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, ErrInvalidArgument)
	}
	return t, nil
}

// GenerateSeries produces days consecutive daily points starting at start.
// Only the calendar date of start is used. A nil src uses DefaultSource.
func GenerateSeries(start time.Time, days int, src RandomSource) ([]HistoricalDataPoint, error) {
	if start.IsZero() {
		return nil, fmt.Errorf("start date is zero: %w", ErrInvalidArgument)
	}
	if days <= 0 {
		return nil, fmt.Errorf("days must be positive, got %d: %w", days, ErrInvalidArgument)
	}
	src = sourceOrDefault(src)

	base := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	points := make([]HistoricalDataPoint, 0, days)
	for i := range days {
		x := float64(i)
		s := Signals{
			Rainfall:    round1(math.Max(0, 50+30*math.Sin(0.1*x)+src.Uniform(0, 20))),
			Temperature: round1(15 + 10*math.Sin(0.05*x) + src.Uniform(0, 5)),
			SnowCover:   round1(clamp(70-0.3*x+src.Uniform(0, 15), 0, 100)),
			LakeArea:    round1(500 + 0.5*x + src.Uniform(0, 10)),
		}
		points = append(points, HistoricalDataPoint{
			Date:        base.AddDate(0, 0, i).Format(DateLayout),
			Rainfall:    s.Rainfall,
			Temperature: s.Temperature,
			SnowCover:   s.SnowCover,
			LakeArea:    s.LakeArea,
			RiskScore:   DeriveRisk(s, src),
		})
	}
	return points, nil
}

// round1 rounds to one decimal place, halves away from zero.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
