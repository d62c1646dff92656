package domain

import "math"

// Signals are the climate inputs to the composite risk score.
type Signals struct {
	Rainfall    float64 `json:"rainfall"`
	Temperature float64 `json:"temperature"`
	SnowCover   float64 `json:"snowCover"`
	LakeArea    float64 `json:"lakeArea"`
}

// Threshold contributions to the composite risk score. Each applies when its
// signal is strictly past the threshold.
const (
	RainfallThreshold    = 60.0
	TemperatureThreshold = 20.0
	SnowCoverThreshold   = 50.0
	LakeAreaThreshold    = 520.0

	RainfallWeight    = 20.0
	TemperatureWeight = 15.0
	SnowCoverWeight   = 20.0
	LakeAreaWeight    = 25.0

	// MaxRiskNoise is the exclusive upper bound of the uniform noise term.
	MaxRiskNoise = 20.0
)

// BaseRiskScore is the deterministic part of the risk score: the sum of the
// threshold contributions, between 0 and 80.
func BaseRiskScore(s Signals) float64 {
	var score float64
	if s.Rainfall > RainfallThreshold {
		score += RainfallWeight
	}
	if s.Temperature > TemperatureThreshold {
		score += TemperatureWeight
	}
	if s.SnowCover < SnowCoverThreshold {
		score += SnowCoverWeight
	}
	if s.LakeArea > LakeAreaThreshold {
		score += LakeAreaWeight
	}
	return score
}

// DeriveRisk combines the threshold contributions with uniform noise in
// [0, MaxRiskNoise) and returns the clamped, rounded score in [0, 100].
// Inputs are not validated. A nil src uses DefaultSource.
func DeriveRisk(s Signals, src RandomSource) int {
	src = sourceOrDefault(src)
	score := BaseRiskScore(s) + src.Uniform(0, MaxRiskNoise)
	return int(math.Round(clamp(score, 0, 100)))
}
