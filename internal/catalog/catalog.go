// Package catalog loads the curated regions and tracked lakes the dashboard
// serves, validating them on load.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/climate-risk-service/internal/domain"
)

//go:embed catalog.yaml
var embedded []byte

type document struct {
	Regions []domain.Region `yaml:"regions"`
	Lakes   []domain.Lake   `yaml:"lakes"`
}

// Catalog is an immutable, validated set of regions and lakes.
type Catalog struct {
	regions     []domain.Region
	regionIndex map[string]int
	lakes       []domain.Lake
	lakeIndex   map[string]int
}

// Load reads the catalog at path, or the embedded catalog when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Parse(embedded)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog. Unknown fields are rejected.
func Parse(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c := &Catalog{
		regions:     doc.Regions,
		regionIndex: make(map[string]int, len(doc.Regions)),
		lakes:       doc.Lakes,
		lakeIndex:   make(map[string]int, len(doc.Lakes)),
	}

	var errs []error
	if len(doc.Regions) == 0 {
		errs = append(errs, errors.New("no regions defined"))
	}
	for i, r := range doc.Regions {
		if err := domain.ValidateRegion(r); err != nil {
			errs = append(errs, err)
		}
		if _, dup := c.regionIndex[r.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate region id %q", r.ID))
		}
		c.regionIndex[r.ID] = i
	}
	for i, l := range doc.Lakes {
		if err := domain.ValidateLake(l); err != nil {
			errs = append(errs, err)
		}
		if _, dup := c.lakeIndex[l.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate lake id %q", l.ID))
		}
		c.lakeIndex[l.ID] = i
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return c, nil
}

// Regions returns every region in catalog order.
func (c *Catalog) Regions() []domain.Region {
	out := make([]domain.Region, len(c.regions))
	copy(out, c.regions)
	return out
}

// Region looks up a region by ID.
func (c *Catalog) Region(id string) (domain.Region, error) {
	i, ok := c.regionIndex[id]
	if !ok {
		return domain.Region{}, fmt.Errorf("region %q: %w", id, domain.ErrNotFound)
	}
	return c.regions[i], nil
}

// LevelCounts returns how many regions currently sit at each risk level.
// Every level is present, zero or not.
func (c *Catalog) LevelCounts() map[domain.RiskLevel]int {
	counts := make(map[domain.RiskLevel]int, len(domain.RiskLevels))
	for _, l := range domain.RiskLevels {
		counts[l] = 0
	}
	for _, r := range c.regions {
		counts[r.CurrentRisk.Level]++
	}
	return counts
}

// Lakes returns every tracked lake in catalog order.
func (c *Catalog) Lakes() []domain.Lake {
	out := make([]domain.Lake, len(c.lakes))
	copy(out, c.lakes)
	return out
}

// Lake looks up a lake by ID.
func (c *Catalog) Lake(id string) (domain.Lake, error) {
	i, ok := c.lakeIndex[id]
	if !ok {
		return domain.Lake{}, fmt.Errorf("lake %q: %w", id, domain.ErrNotFound)
	}
	return c.lakes[i], nil
}
