package observability

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "info", "json")

	logger.Debug("hidden")
	logger.Info("series generated", "region", "gilgit", "points", 90)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "series generated", entry["msg"])
	assert.Equal(t, "gilgit", entry["region"])
	assert.Equal(t, 90.0, entry["points"])
}

func TestNewLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "debug", "text")

	logger.Debug("queue drained", "count", 3)
	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "count=3")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}

func TestNewMetricsForTesting(t *testing.T) {
	m := NewMetricsForTesting()
	m.ReportsQueued.Inc()
	m.ReportsQueued.Inc()
	m.HTTPRequestDuration.WithLabelValues("/api/v1/regions", "GET", "200").Observe(0.01)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ReportsQueued))

	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(m.ReportsQueued))
	assert.Equal(t, 1, testutil.CollectAndCount(m.HTTPRequestDuration))
}
