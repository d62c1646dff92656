package domain

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Indicator names a per-day series value that can be summarized.
type Indicator string

const (
	IndicatorRainfall    Indicator = "rainfall"
	IndicatorTemperature Indicator = "temperature"
	IndicatorSnowCover   Indicator = "snowCover"
	IndicatorLakeArea    Indicator = "lakeArea"
	IndicatorRiskScore   Indicator = "riskScore"
)

// Indicators lists every indicator in display order.
var Indicators = []Indicator{
	IndicatorRainfall,
	IndicatorTemperature,
	IndicatorSnowCover,
	IndicatorLakeArea,
	IndicatorRiskScore,
}

// ParseIndicator validates an indicator name.
func ParseIndicator(s string) (Indicator, error) {
	for _, ind := range Indicators {
		if string(ind) == s {
			return ind, nil
		}
	}
	return "", fmt.Errorf("unknown indicator %q: %w", s, ErrInvalidArgument)
}

// Unit returns the display unit for the indicator.
func (i Indicator) Unit() string {
	switch i {
	case IndicatorRainfall:
		return "mm"
	case IndicatorTemperature:
		return "°C"
	case IndicatorSnowCover:
		return "%"
	case IndicatorLakeArea:
		return "km²"
	default:
		return ""
	}
}

// Value extracts the indicator from a data point.
func (i Indicator) Value(p HistoricalDataPoint) float64 {
	switch i {
	case IndicatorRainfall:
		return p.Rainfall
	case IndicatorTemperature:
		return p.Temperature
	case IndicatorSnowCover:
		return p.SnowCover
	case IndicatorLakeArea:
		return p.LakeArea
	case IndicatorRiskScore:
		return float64(p.RiskScore)
	default:
		return 0
	}
}

// Trend directions.
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
)

// stableSlope is the per-day slope magnitude below which a trend is stable.
const stableSlope = 0.01

// TrendSummary describes one indicator over a series.
type TrendSummary struct {
	Indicator   Indicator `json:"indicator"`
	Unit        string    `json:"unit"`
	Count       int       `json:"count"`
	Mean        float64   `json:"mean"`
	Min         float64   `json:"min"`
	Max         float64   `json:"max"`
	StdDev      float64   `json:"stdDev"`
	SlopePerDay float64   `json:"slopePerDay"`
	Direction   string    `json:"direction"`
}

// SummarizeTrend computes summary statistics and the least-squares slope per
// day for ind over points, which are assumed to be consecutive days.
func SummarizeTrend(points []HistoricalDataPoint, ind Indicator) (TrendSummary, error) {
	if len(points) == 0 {
		return TrendSummary{}, fmt.Errorf("summarize %s: empty series: %w", ind, ErrInvalidArgument)
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = float64(i)
		ys[i] = ind.Value(p)
	}

	summary := TrendSummary{
		Indicator: ind,
		Unit:      ind.Unit(),
		Count:     len(ys),
		Mean:      stat.Mean(ys, nil),
		Min:       floats.Min(ys),
		Max:       floats.Max(ys),
	}
	if len(ys) > 1 {
		summary.StdDev = stat.StdDev(ys, nil)
		_, summary.SlopePerDay = stat.LinearRegression(xs, ys, nil, false)
	}
	summary.Direction = direction(summary.SlopePerDay, stableSlope)
	return summary, nil
}

// SummarizeAll summarizes every indicator over points.
func SummarizeAll(points []HistoricalDataPoint) ([]TrendSummary, error) {
	out := make([]TrendSummary, 0, len(Indicators))
	for _, ind := range Indicators {
		s, err := SummarizeTrend(points, ind)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func direction(delta, tolerance float64) string {
	switch {
	case delta > tolerance:
		return TrendIncreasing
	case delta < -tolerance:
		return TrendDecreasing
	default:
		return TrendStable
	}
}
