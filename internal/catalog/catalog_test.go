package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/climate-risk-service/internal/domain"
)

func TestLoad_Embedded(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	regions := c.Regions()
	require.Len(t, regions, 4)
	ids := make([]string, len(regions))
	for i, r := range regions {
		ids[i] = r.ID
	}
	assert.Equal(t, []string{"gilgit", "chitral", "hunza", "skardu"}, ids)

	skardu, err := c.Region("skardu")
	require.NoError(t, err)
	assert.Equal(t, "سکردو", skardu.NameUr)
	assert.Equal(t, domain.RiskAssessment{
		Level:         domain.RiskHigh,
		Score:         82,
		Description:   "Very high risk due to multiple glacial lakes",
		DescriptionUr: "متعدد برفانی جھیلوں کی وجہ سے بہت زیادہ خطرہ",
	}, skardu.CurrentRisk)
	assert.Equal(t, domain.Coordinates{Lat: 35.3, Lon: 75.6}, skardu.Coordinates)
	assert.Equal(t, domain.RiskMedium, skardu.Forecast[3].Risk.Level)
	assert.Equal(t, 68, skardu.Forecast[3].Risk.Score)

	hunza, err := c.Region("hunza")
	require.NoError(t, err)
	assert.Equal(t, -5.0, hunza.Explainability.Rainfall)
}

func TestLoad_EmbeddedLevelsAgreeWithScores(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	for _, r := range c.Regions() {
		assert.Equal(t, domain.LevelForScore(r.CurrentRisk.Score), r.CurrentRisk.Level, r.ID)
		for _, f := range r.Forecast {
			assert.Equal(t, domain.LevelForScore(f.Risk.Score), f.Risk.Level, "%s %s", r.ID, f.Date)
		}
	}
}

func TestCatalog_LevelCounts(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, map[domain.RiskLevel]int{
		domain.RiskHigh:   2,
		domain.RiskMedium: 1,
		domain.RiskLow:    1,
	}, c.LevelCounts())
}

func TestCatalog_Lakes(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	lakes := c.Lakes()
	require.Len(t, lakes, 4)
	for _, l := range lakes {
		require.Len(t, l.Observations, 10, l.ID)
		assert.Equal(t, 4.1, l.Observations[9].Area, l.ID)
	}

	attabad, err := c.Lake("attabad")
	require.NoError(t, err)
	assert.Equal(t, "عطا آباد جھیل", attabad.NameUr)

	change, err := attabad.AreaChange(domain.LakeChangeLookback)
	require.NoError(t, err)
	assert.Equal(t, 0.5, change.Change)
	assert.Equal(t, 13.9, change.PercentChange)
}

func TestCatalog_NotFound(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	_, err = c.Region("lahore")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = c.Lake("tarbela")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalog_RegionsReturnsCopy(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	regions := c.Regions()
	regions[0].ID = "mutated"
	first, err := c.Region("gilgit")
	require.NoError(t, err)
	assert.Equal(t, "gilgit", first.ID)
}

const validRegion = `
  - id: test
    name: Test
    currentRisk: {level: low, score: 10}
    forecast:
      - {date: "2024-01-20", risk: {level: low, score: 10}, confidence: 90}
      - {date: "2024-01-21", risk: {level: low, score: 10}, confidence: 90}
      - {date: "2024-01-22", risk: {level: low, score: 10}, confidence: 80}
      - {date: "2024-01-23", risk: {level: low, score: 10}, confidence: 80}
      - {date: "2024-01-24", risk: {level: low, score: 10}, confidence: 70}
`

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "no regions",
			doc:     "regions: []\n",
			wantErr: "no regions defined",
		},
		{
			name:    "unknown field",
			doc:     "regions:\n  - id: x\n    colour: red\n",
			wantErr: "decode catalog",
		},
		{
			name:    "duplicate region",
			doc:     "regions:" + validRegion + validRegion,
			wantErr: `duplicate region id "test"`,
		},
		{
			name: "level mismatch",
			doc: `regions:
  - id: bad
    name: Bad
    currentRisk: {level: high, score: 65}
    forecast: []
`,
			wantErr: `level "high" does not match score 65`,
		},
		{
			name:    "lake without observations",
			doc:     "regions:" + validRegion + "lakes:\n  - id: dry\n    name: Dry\n",
			wantErr: "no observations",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("regions:"+validRegion), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	_, err = c.Region("test")
	require.NoError(t, err)
	assert.Empty(t, c.Lakes())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read catalog")
}
