package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/climate-risk-service/internal/fixture"
)

func writeFixture(t *testing.T, regions ...string) string {
	t.Helper()
	s, err := fixture.Generate(regions, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 30, 7)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "series.json")
	require.NoError(t, fixture.Write(path, s))
	return path
}

func TestRun(t *testing.T) {
	assert.Equal(t, 0, run(writeFixture(t, "gilgit", "hunza"), ""))
	assert.Equal(t, 1, run(writeFixture(t, "gilgit", "nowhere"), ""))
	assert.Equal(t, 1, run(filepath.Join(t.TempDir(), "missing.json"), ""))
}

func TestValidateCatalog(t *testing.T) {
	s := fixture.Series{Regions: []fixture.RegionSeries{{RegionID: "skardu"}, {RegionID: "lahore"}}}

	p := validateCatalog("", s)
	require.Len(t, p.Errors, 1)
	assert.Contains(t, p.Errors[0], `"lahore"`)

	p = validateCatalog(filepath.Join(t.TempDir(), "missing.yaml"), s)
	assert.False(t, p.Passed())
}
