package domain

import (
	"errors"
	"fmt"
	"time"
)

// ForecastHorizon is the number of daily entries in a region forecast.
const ForecastHorizon = 5

// Coordinates locate a region or lake on the map.
type Coordinates struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

// RiskAssessment is a curated score with its level and bilingual description.
type RiskAssessment struct {
	Level         RiskLevel `json:"level" yaml:"level"`
	Score         int       `json:"score" yaml:"score"`
	Description   string    `json:"description,omitempty" yaml:"description"`
	DescriptionUr string    `json:"descriptionUr,omitempty" yaml:"descriptionUr"`
}

// ForecastEntry is one day of a region's forecast.
type ForecastEntry struct {
	Date       string         `json:"date" yaml:"date"`
	Risk       RiskAssessment `json:"risk" yaml:"risk"`
	Confidence int            `json:"confidence" yaml:"confidence"`
}

// Explainability holds signed per-factor contributions to a region's risk.
// Negative values reduce risk.
type Explainability struct {
	Rainfall           float64 `json:"rainfall" yaml:"rainfall"`
	TemperatureAnomaly float64 `json:"temperatureAnomaly" yaml:"temperatureAnomaly"`
	SnowCoverDecline   float64 `json:"snowCoverDecline" yaml:"snowCoverDecline"`
	LakeGrowth         float64 `json:"lakeGrowth" yaml:"lakeGrowth"`
}

// Total is the net contribution of all factors.
func (e Explainability) Total() float64 {
	return e.Rainfall + e.TemperatureAnomaly + e.SnowCoverDecline + e.LakeGrowth
}

// Region is a curated monitoring area shown on the dashboard.
type Region struct {
	ID             string          `json:"id" yaml:"id"`
	Name           string          `json:"name" yaml:"name"`
	NameUr         string          `json:"nameUr" yaml:"nameUr"`
	Coordinates    Coordinates     `json:"coordinates" yaml:"coordinates"`
	CurrentRisk    RiskAssessment  `json:"currentRisk" yaml:"currentRisk"`
	Forecast       []ForecastEntry `json:"forecast" yaml:"forecast"`
	Explainability Explainability  `json:"explainability" yaml:"explainability"`
}

// ValidateRegion checks a region's curated data for internal consistency and
// returns every problem found, joined.
func ValidateRegion(r Region) error {
	var errs []error
	if r.ID == "" {
		errs = append(errs, errors.New("id is required"))
	}
	if r.Name == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if err := validateAssessment(r.CurrentRisk); err != nil {
		errs = append(errs, fmt.Errorf("current risk: %w", err))
	}
	if err := ValidateForecast(r.Forecast); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("region %q: %w", r.ID, err)
	}
	return nil
}

// ValidateForecast checks the horizon length, that dates strictly increase,
// that confidence never rises, and that each level agrees with its score.
func ValidateForecast(entries []ForecastEntry) error {
	var errs []error
	if len(entries) != ForecastHorizon {
		errs = append(errs, fmt.Errorf("forecast has %d entries, want %d", len(entries), ForecastHorizon))
	}

	var prevDate time.Time
	for i, e := range entries {
		d, err := ParseDate(e.Date)
		if err != nil {
			errs = append(errs, fmt.Errorf("forecast[%d]: %w", i, err))
		} else if !prevDate.IsZero() && !d.After(prevDate) {
			errs = append(errs, fmt.Errorf("forecast[%d]: date %s does not follow %s", i, e.Date, prevDate.Format(DateLayout)))
		}
		prevDate = d

		if e.Confidence < 0 || e.Confidence > 100 {
			errs = append(errs, fmt.Errorf("forecast[%d]: confidence %d out of range", i, e.Confidence))
		}
		if i > 0 && e.Confidence > entries[i-1].Confidence {
			errs = append(errs, fmt.Errorf("forecast[%d]: confidence %d exceeds previous %d", i, e.Confidence, entries[i-1].Confidence))
		}
		if err := validateAssessment(e.Risk); err != nil {
			errs = append(errs, fmt.Errorf("forecast[%d]: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func validateAssessment(a RiskAssessment) error {
	if a.Score < 0 || a.Score > 100 {
		return fmt.Errorf("score %d out of range [0,100]: %w", a.Score, ErrInvalidArgument)
	}
	if want := LevelForScore(a.Score); a.Level != want {
		return fmt.Errorf("level %q does not match score %d (want %q): %w", a.Level, a.Score, want, ErrInvalidArgument)
	}
	return nil
}
