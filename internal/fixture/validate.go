package fixture

import (
	"fmt"
	"math"

	"github.com/couchcryptid/climate-risk-service/internal/domain"
)

// Phase tracks pass/fail for one group of checks.
type Phase struct {
	Name   string
	Errors []string
}

func (p *Phase) errorf(format string, args ...any) {
	p.Errors = append(p.Errors, fmt.Sprintf(format, args...))
}

// Passed reports whether the phase found no problems.
func (p *Phase) Passed() bool { return len(p.Errors) == 0 }

// Validate runs every integrity phase over the fixture.
func Validate(s Series) []*Phase {
	return []*Phase{
		validateHeader(s),
		validateDates(s),
		validateBounds(s),
		validateRounding(s),
		validateRiskScores(s),
		validateReproducible(s),
	}
}

func validateHeader(s Series) *Phase {
	p := &Phase{Name: "Phase 1: Fixture header"}
	if _, err := domain.ParseDate(s.Start); err != nil {
		p.errorf("start: %v", err)
	}
	if s.Days <= 0 {
		p.errorf("days = %d, want > 0", s.Days)
	}
	if len(s.Regions) == 0 {
		p.errorf("no regions")
	}
	seen := make(map[string]bool, len(s.Regions))
	for i, r := range s.Regions {
		if r.RegionID == "" {
			p.errorf("regions[%d]: empty region id", i)
		}
		if seen[r.RegionID] {
			p.errorf("regions[%d]: duplicate region id %q", i, r.RegionID)
		}
		seen[r.RegionID] = true
		if want := RegionSeed(s.Seed, i); r.Seed != want {
			p.errorf("%s: seed %d, want %d", r.RegionID, r.Seed, want)
		}
	}
	return p
}

func validateDates(s Series) *Phase {
	p := &Phase{Name: "Phase 2: Date continuity"}
	start, err := domain.ParseDate(s.Start)
	if err != nil {
		p.errorf("start: %v", err)
		return p
	}
	for _, r := range s.Regions {
		if len(r.Points) != s.Days {
			p.errorf("%s: %d points, want %d", r.RegionID, len(r.Points), s.Days)
		}
		for i, pt := range r.Points {
			if want := start.AddDate(0, 0, i).Format(domain.DateLayout); pt.Date != want {
				p.errorf("%s[%d]: date %s, want %s", r.RegionID, i, pt.Date, want)
			}
		}
	}
	return p
}

func validateBounds(s Series) *Phase {
	p := &Phase{Name: "Phase 3: Signal bounds"}
	for _, r := range s.Regions {
		for _, pt := range r.Points {
			if pt.Rainfall < 0 {
				p.errorf("%s %s: rainfall %.1f < 0", r.RegionID, pt.Date, pt.Rainfall)
			}
			if pt.SnowCover < 0 || pt.SnowCover > 100 {
				p.errorf("%s %s: snowCover %.1f outside [0,100]", r.RegionID, pt.Date, pt.SnowCover)
			}
			if pt.LakeArea <= 0 {
				p.errorf("%s %s: lakeArea %.1f <= 0", r.RegionID, pt.Date, pt.LakeArea)
			}
			if pt.RiskScore < 0 || pt.RiskScore > 100 {
				p.errorf("%s %s: riskScore %d outside [0,100]", r.RegionID, pt.Date, pt.RiskScore)
			}
		}
	}
	return p
}

func validateRounding(s Series) *Phase {
	p := &Phase{Name: "Phase 4: One-decimal rounding"}
	for _, r := range s.Regions {
		for _, pt := range r.Points {
			fields := []struct {
				name string
				v    float64
			}{
				{"rainfall", pt.Rainfall},
				{"temperature", pt.Temperature},
				{"snowCover", pt.SnowCover},
				{"lakeArea", pt.LakeArea},
			}
			for _, f := range fields {
				if math.Abs(f.v*10-math.Round(f.v*10)) > 1e-6 {
					p.errorf("%s %s: %s %v has more than one decimal", r.RegionID, pt.Date, f.name, f.v)
				}
			}
		}
	}
	return p
}

// validateRiskScores checks each score lies between the threshold sum of its
// own signals and that sum plus the noise range.
func validateRiskScores(s Series) *Phase {
	p := &Phase{Name: "Phase 5: Risk score consistency"}
	for _, r := range s.Regions {
		for _, pt := range r.Points {
			base := domain.BaseRiskScore(pt.Signals())
			hi := math.Min(100, base+domain.MaxRiskNoise)
			if score := float64(pt.RiskScore); score < base || score > hi {
				p.errorf("%s %s: riskScore %d outside [%.0f,%.0f]", r.RegionID, pt.Date, pt.RiskScore, base, hi)
			}
		}
	}
	return p
}

func validateReproducible(s Series) *Phase {
	p := &Phase{Name: "Phase 6: Seeded reproducibility"}
	start, err := domain.ParseDate(s.Start)
	if err != nil || s.Days <= 0 {
		p.errorf("cannot regenerate: invalid header")
		return p
	}
	for _, r := range s.Regions {
		want, err := domain.GenerateSeries(start, s.Days, domain.NewSeededSource(r.Seed))
		if err != nil {
			p.errorf("%s: regenerate: %v", r.RegionID, err)
			continue
		}
		if len(want) != len(r.Points) {
			p.errorf("%s: regenerated %d points, fixture has %d", r.RegionID, len(want), len(r.Points))
			continue
		}
		for i := range want {
			if want[i] != r.Points[i] {
				p.errorf("%s[%d]: fixture %+v differs from regenerated %+v", r.RegionID, i, r.Points[i], want[i])
				break
			}
		}
	}
	return p
}
