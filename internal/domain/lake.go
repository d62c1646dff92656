package domain

import (
	"errors"
	"fmt"
)

// LakeChangeLookback is how many observations back the area change is
// measured against. At half-year cadence that is one year.
const LakeChangeLookback = 2

// LakeObservation is a lake's surface area for one period (YYYY-MM).
type LakeObservation struct {
	Period string  `json:"period" yaml:"period"`
	Area   float64 `json:"area" yaml:"area"`
}

// Lake is a tracked glacial lake.
type Lake struct {
	ID           string            `json:"id" yaml:"id"`
	Name         string            `json:"name" yaml:"name"`
	NameUr       string            `json:"nameUr" yaml:"nameUr"`
	Coordinates  Coordinates       `json:"coordinates" yaml:"coordinates"`
	Observations []LakeObservation `json:"observations" yaml:"observations"`
}

// LakeChange compares the latest observation with an earlier one.
type LakeChange struct {
	Period         string  `json:"period"`
	CurrentArea    float64 `json:"currentArea"`
	BaselinePeriod string  `json:"baselinePeriod"`
	BaselineArea   float64 `json:"baselineArea"`
	Change         float64 `json:"change"`
	PercentChange  float64 `json:"percentChange"`
	Direction      string  `json:"direction"`
}

// AreaChange measures the latest observation against the one lookback
// periods earlier. Change and percentage are rounded to one decimal.
func (l Lake) AreaChange(lookback int) (LakeChange, error) {
	if lookback <= 0 {
		return LakeChange{}, fmt.Errorf("lookback must be positive, got %d: %w", lookback, ErrInvalidArgument)
	}
	n := len(l.Observations)
	if n <= lookback {
		return LakeChange{}, fmt.Errorf("lake %q has %d observations, need more than %d: %w", l.ID, n, lookback, ErrInvalidArgument)
	}

	current := l.Observations[n-1]
	baseline := l.Observations[n-1-lookback]
	change := round1(current.Area - baseline.Area)
	var pct float64
	if baseline.Area != 0 {
		pct = round1((current.Area - baseline.Area) / baseline.Area * 100)
	}
	return LakeChange{
		Period:         current.Period,
		CurrentArea:    current.Area,
		BaselinePeriod: baseline.Period,
		BaselineArea:   baseline.Area,
		Change:         change,
		PercentChange:  pct,
		Direction:      direction(change, 0),
	}, nil
}

// ValidateLake checks that the lake has an ID and positive areas in strictly
// increasing periods.
func ValidateLake(l Lake) error {
	var errs []error
	if l.ID == "" {
		errs = append(errs, errors.New("id is required"))
	}
	if len(l.Observations) == 0 {
		errs = append(errs, errors.New("no observations"))
	}
	for i, o := range l.Observations {
		if o.Area <= 0 {
			errs = append(errs, fmt.Errorf("observation %s: area %.1f must be positive", o.Period, o.Area))
		}
		if i > 0 && o.Period <= l.Observations[i-1].Period {
			errs = append(errs, fmt.Errorf("observation %s does not follow %s", o.Period, l.Observations[i-1].Period))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("lake %q: %w", l.ID, err)
	}
	return nil
}
