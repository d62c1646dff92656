// Package fixture produces and checks deterministic series fixtures: one
// seeded synthetic history per region, written as JSON for downstream test
// suites and re-verified by the validate command.
package fixture

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/couchcryptid/climate-risk-service/internal/domain"
)

// Series is a fixture file: one generated history per region.
type Series struct {
	GeneratedAt time.Time      `json:"generatedAt"`
	Seed        uint64         `json:"seed"`
	Start       string         `json:"start"`
	Days        int            `json:"days"`
	Regions     []RegionSeries `json:"regions"`
}

// RegionSeries is one region's history and the seed that produced it.
type RegionSeries struct {
	RegionID string                       `json:"regionId"`
	Seed     uint64                       `json:"seed"`
	Points   []domain.HistoricalDataPoint `json:"points"`
}

// RegionSeed derives the per-region seed so regions get independent but
// reproducible histories.
func RegionSeed(seed uint64, index int) uint64 {
	return seed + uint64(index)
}

// Generate builds a fixture for regionIDs, stamped with the domain clock.
func Generate(regionIDs []string, start time.Time, days int, seed uint64) (Series, error) {
	s := Series{
		GeneratedAt: domain.Now(),
		Seed:        seed,
		Start:       start.Format(domain.DateLayout),
		Days:        days,
		Regions:     make([]RegionSeries, 0, len(regionIDs)),
	}
	for i, id := range regionIDs {
		rs := RegionSeed(seed, i)
		points, err := domain.GenerateSeries(start, days, domain.NewSeededSource(rs))
		if err != nil {
			return Series{}, fmt.Errorf("generate %s: %w", id, err)
		}
		s.Regions = append(s.Regions, RegionSeries{RegionID: id, Seed: rs, Points: points})
	}
	return s, nil
}

// Write stores the fixture as indented JSON.
func Write(path string, s Series) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o600)
}

// Read loads a fixture written by Write.
func Read(path string) (Series, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Series{}, fmt.Errorf("read fixture: %w", err)
	}
	var s Series
	if err := json.Unmarshal(data, &s); err != nil {
		return Series{}, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return s, nil
}
