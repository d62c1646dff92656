package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/climate-risk-service/internal/domain"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), cfg.SeriesStart)
	assert.Equal(t, 90, cfg.SeriesDays)
	assert.Equal(t, 3660, cfg.SeriesMaxDays)
	assert.False(t, cfg.HasRandomSeed)
	assert.Equal(t, 2*time.Second, cfg.ReportDelay)
	assert.Equal(t, 64, cfg.ReportQueueSize)
	assert.Equal(t, 50, cfg.BatchSize)
	assert.Equal(t, 500*time.Millisecond, cfg.BatchFlushInterval)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "climate-reports", cfg.KafkaReportTopic)
	assert.Empty(t, cfg.CatalogPath)
	assert.Empty(t, cfg.LocalePath)
	assert.Equal(t, domain.DefaultSource, cfg.RandomSources()("series/gilgit/2024-01-01/90"))
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("SERIES_START_DATE", "2023-06-15")
	t.Setenv("SERIES_DAYS", "30")
	t.Setenv("SERIES_MAX_DAYS", "365")
	t.Setenv("RANDOM_SEED", "42")
	t.Setenv("REPORT_DELAY", "0s")
	t.Setenv("REPORT_QUEUE_SIZE", "4")
	t.Setenv("BATCH_SIZE", "10")
	t.Setenv("BATCH_FLUSH_INTERVAL", "1s")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_REPORT_TOPIC", "reports")
	t.Setenv("CATALOG_PATH", "/etc/climate/catalog.yaml")
	t.Setenv("LOCALE_PATH", "/etc/climate/strings.yaml")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC), cfg.SeriesStart)
	assert.Equal(t, 30, cfg.SeriesDays)
	assert.Equal(t, 365, cfg.SeriesMaxDays)
	assert.True(t, cfg.HasRandomSeed)
	assert.Equal(t, uint64(42), cfg.RandomSeed)
	assert.Zero(t, cfg.ReportDelay)
	assert.Equal(t, 4, cfg.ReportQueueSize)
	assert.Equal(t, 10, cfg.BatchSize)
	assert.Equal(t, time.Second, cfg.BatchFlushInterval)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "reports", cfg.KafkaReportTopic)
	assert.Equal(t, "/etc/climate/catalog.yaml", cfg.CatalogPath)
	assert.Equal(t, "/etc/climate/strings.yaml", cfg.LocalePath)
}

func TestConfig_RandomSourceSeeded(t *testing.T) {
	t.Setenv("RANDOM_SEED", "7")
	cfg, err := Load()
	require.NoError(t, err)

	sources := cfg.RandomSources()
	a := sources("series/gilgit/2024-01-01/90")
	_ = sources("series/hunza/2024-01-01/90").Uniform(0, 1)
	b := sources("series/gilgit/2024-01-01/90")
	assert.Equal(t, a.Uniform(0, 1), b.Uniform(0, 1))
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"malformed start date", "SERIES_START_DATE", "2024-02-30", "SERIES_START_DATE"},
		{"zero days", "SERIES_DAYS", "0", "SERIES_DAYS"},
		{"non-numeric days", "SERIES_DAYS", "ninety", "SERIES_DAYS"},
		{"days above max", "SERIES_DAYS", "4000", "exceeds SERIES_MAX_DAYS"},
		{"negative max days", "SERIES_MAX_DAYS", "-1", "SERIES_MAX_DAYS"},
		{"negative seed", "RANDOM_SEED", "-3", "RANDOM_SEED"},
		{"bad delay", "REPORT_DELAY", "soon", "REPORT_DELAY"},
		{"negative delay", "REPORT_DELAY", "-1s", "REPORT_DELAY"},
		{"zero queue", "REPORT_QUEUE_SIZE", "0", "REPORT_QUEUE_SIZE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
