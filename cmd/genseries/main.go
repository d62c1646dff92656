// Command genseries writes a deterministic series fixture: one seeded
// synthetic history per catalog region, generated by the same domain code
// the service runs. The validate command re-checks its output.
//
// Usage:
//
//	go run ./cmd/genseries \
//	  -start 2024-01-01 -days 90 -seed 42 \
//	  -out data/mock/series_240101.json
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/climate-risk-service/internal/catalog"
	"github.com/couchcryptid/climate-risk-service/internal/domain"
	"github.com/couchcryptid/climate-risk-service/internal/fixture"
)

// generatedAt stamps every fixture so reruns produce identical files.
var generatedAt = time.Date(2024, time.January, 1, 6, 0, 0, 0, time.UTC)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	start := flag.String("start", "2024-01-01", "first date of the series (YYYY-MM-DD)")
	days := flag.Int("days", 90, "number of daily points per region")
	seed := flag.Uint64("seed", 42, "base random seed; region i uses seed+i")
	regions := flag.String("regions", "", "comma-separated region IDs (default: every catalog region)")
	catalogPath := flag.String("catalog", "", "region catalog YAML (default: embedded)")
	out := flag.String("out", "", "output path for the JSON fixture")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	startDate, err := domain.ParseDate(*start)
	if err != nil {
		return fmt.Errorf("parse -start: %w", err)
	}

	ids, err := regionIDs(*catalogPath, *regions)
	if err != nil {
		return err
	}

	domain.SetClock(clockwork.NewFakeClockAt(generatedAt))
	defer domain.SetClock(nil)

	s, err := fixture.Generate(ids, startDate, *days, *seed)
	if err != nil {
		return err
	}
	if err := fixture.Write(*out, s); err != nil {
		return fmt.Errorf("writing fixture: %w", err)
	}
	log.Printf("wrote fixture: %s (%d regions x %d days)", *out, len(s.Regions), s.Days)

	return printStats(s)
}

// regionIDs resolves the requested regions against the catalog, preserving
// catalog order when no explicit list is given.
func regionIDs(catalogPath, list string) ([]string, error) {
	cat, err := catalog.Load(catalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	if list == "" {
		all := cat.Regions()
		ids := make([]string, 0, len(all))
		for _, r := range all {
			ids = append(ids, r.ID)
		}
		return ids, nil
	}

	var ids []string
	for _, id := range strings.Split(list, ",") {
		id = strings.TrimSpace(id)
		if _, err := cat.Region(id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func printStats(s fixture.Series) error {
	fmt.Println("\n=== Stats for updating test assertions ===")
	for _, r := range s.Regions {
		summaries, err := domain.SummarizeAll(r.Points)
		if err != nil {
			return fmt.Errorf("summarize %s: %w", r.RegionID, err)
		}

		levels := map[domain.RiskLevel]int{}
		for _, p := range r.Points {
			levels[domain.LevelForScore(p.RiskScore)]++
		}

		fmt.Printf("\n%s (seed %d)\n", r.RegionID, r.Seed)
		fmt.Printf("  levels: low=%d, medium=%d, high=%d\n",
			levels[domain.RiskLow], levels[domain.RiskMedium], levels[domain.RiskHigh])
		for _, t := range summaries {
			fmt.Printf("  %-12s mean=%8.2f min=%8.1f max=%8.1f slope=%+.3f/day %s\n",
				t.Indicator, t.Mean, t.Min, t.Max, t.SlopePerDay, t.Direction)
		}
	}
	return nil
}
