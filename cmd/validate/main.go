// Command validate checks a series fixture written by genseries: dates are
// gap-free, signals stay in bounds with one-decimal precision, each risk
// score is consistent with its own signals, and every region regenerates
// identically from its recorded seed.
//
// Usage:
//
//	go run ./cmd/validate -fixture data/mock/series_240101.json
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/couchcryptid/climate-risk-service/internal/catalog"
	"github.com/couchcryptid/climate-risk-service/internal/domain"
	"github.com/couchcryptid/climate-risk-service/internal/fixture"
)

func main() {
	fixturePath := flag.String("fixture", "", "path to the series JSON fixture")
	catalogPath := flag.String("catalog", "", "region catalog YAML (default: embedded)")
	flag.Parse()

	if *fixturePath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*fixturePath, *catalogPath); code != 0 {
		os.Exit(code)
	}
}

func run(fixturePath, catalogPath string) int {
	fmt.Println("=== Climate Series Integrity Validation ===")
	fmt.Println()

	s, err := fixture.Read(fixturePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load fixture: %v\n", err)
		return 1
	}

	phases := fixture.Validate(s)
	phases = append(phases, validateCatalog(catalogPath, s))

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.Passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.Errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.Name, status)
	}

	fmt.Println()
	fmt.Printf("Fixture: %d regions x %d days from %s (seed %d)\n", len(s.Regions), s.Days, s.Start, s.Seed)

	for _, p := range phases {
		if p.Passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.Name)
		for i, e := range p.Errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// validateCatalog checks the catalog loads cleanly and names every fixture region.
func validateCatalog(path string, s fixture.Series) *fixture.Phase {
	p := &fixture.Phase{Name: "Phase 7: Catalog coverage"}
	cat, err := catalog.Load(path)
	if err != nil {
		p.Errors = append(p.Errors, fmt.Sprintf("load catalog: %v", err))
		return p
	}
	for _, r := range s.Regions {
		if _, err := cat.Region(r.RegionID); errors.Is(err, domain.ErrNotFound) {
			p.Errors = append(p.Errors, fmt.Sprintf("region %q is not in the catalog", r.RegionID))
		}
	}
	return p
}
