package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReportType(t *testing.T) {
	for _, s := range []string{"daily", "weekly", "monthly", "custom"} {
		rt, err := ParseReportType(s)
		require.NoError(t, err)
		assert.Equal(t, ReportType(s), rt)
	}
	_, err := ParseReportType("yearly")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestBuildReport(t *testing.T) {
	fixed := time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC)

	low := gilgitFixture()
	low.ID = "hunza"
	low.Name = "Hunza Valley"
	low.NameUr = "وادی ہنزہ"
	low.CurrentRisk = RiskAssessment{Level: RiskLow, Score: 35}

	req := ReportRequest{
		ID:          "r-1",
		Type:        ReportWeekly,
		Locale:      "ur",
		RequestedAt: fixed.Add(-2 * time.Second),
	}
	report := BuildReport(req, "ہفتہ وار رپورٹ", []Region{gilgitFixture(), low}, fixed)

	assert.Equal(t, "r-1", report.ID)
	assert.Equal(t, ReportWeekly, report.Type)
	assert.Equal(t, "ہفتہ وار رپورٹ", report.Title)
	assert.Equal(t, fixed, report.GeneratedAt)
	assert.Equal(t, req.RequestedAt, report.RequestedAt)
	assert.Equal(t, map[RiskLevel]int{RiskLow: 1, RiskMedium: 0, RiskHigh: 1}, report.LevelCounts)
	require.Len(t, report.Rows, 2)
	assert.Equal(t, ReportRow{RegionID: "gilgit", Name: "گلگت بلتستان", Level: RiskHigh, Score: 78}, report.Rows[0])
	assert.Equal(t, "وادی ہنزہ", report.Rows[1].Name)
}

func TestNow_UsesPackageClock(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixed))
	t.Cleanup(func() { SetClock(nil) })

	assert.Equal(t, fixed, Now())

	SetClock(nil)
	assert.WithinDuration(t, time.Now(), Now(), time.Minute)
}
