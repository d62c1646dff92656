package domain

// RiskLevel buckets a 0-100 risk score for display.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Inclusive lower bounds of the medium and high buckets.
const (
	MediumRiskThreshold = 50
	HighRiskThreshold   = 70
)

// RiskLevels lists the levels from lowest to highest.
var RiskLevels = []RiskLevel{RiskLow, RiskMedium, RiskHigh}

// LevelForScore maps a score to its level. It is the only place the bucket
// boundaries are applied.
func LevelForScore(score int) RiskLevel {
	switch {
	case score >= HighRiskThreshold:
		return RiskHigh
	case score >= MediumRiskThreshold:
		return RiskMedium
	default:
		return RiskLow
	}
}

// Valid reports whether l is one of the known levels.
func (l RiskLevel) Valid() bool {
	switch l {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

// Color returns the display colour token for the level.
func (l RiskLevel) Color() string {
	switch l {
	case RiskHigh:
		return "#ef4444"
	case RiskMedium:
		return "#f59e0b"
	case RiskLow:
		return "#10b981"
	default:
		return ""
	}
}
