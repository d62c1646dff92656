package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"

	"github.com/couchcryptid/climate-risk-service/internal/domain"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Series generation defaults for history endpoints.
	SeriesStart   time.Time
	SeriesDays    int
	SeriesMaxDays int
	RandomSeed    uint64
	HasRandomSeed bool

	// Report generation.
	ReportDelay        time.Duration
	ReportQueueSize    int
	BatchSize          int
	BatchFlushInterval time.Duration

	// Report sink. An empty broker list selects the logging sink.
	KafkaBrokers     []string
	KafkaReportTopic string

	// Data files. Empty paths select the embedded copies.
	CatalogPath string
	LocalePath  string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	flushInterval, err := sharedcfg.ParseBatchFlushInterval()
	if err != nil {
		return nil, err
	}

	seriesStart, err := domain.ParseDate(sharedcfg.EnvOrDefault("SERIES_START_DATE", "2024-01-01"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERIES_START_DATE: %w", err)
	}

	seriesDays, err := parsePositiveInt("SERIES_DAYS", 90)
	if err != nil {
		return nil, err
	}
	seriesMaxDays, err := parsePositiveInt("SERIES_MAX_DAYS", 3660)
	if err != nil {
		return nil, err
	}
	queueSize, err := parsePositiveInt("REPORT_QUEUE_SIZE", 64)
	if err != nil {
		return nil, err
	}

	reportDelay, err := time.ParseDuration(sharedcfg.EnvOrDefault("REPORT_DELAY", "2s"))
	if err != nil || reportDelay < 0 {
		return nil, errors.New("invalid REPORT_DELAY")
	}

	cfg := &Config{
		HTTPAddr:           sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:           sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:          sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		SeriesStart:        seriesStart,
		SeriesDays:         seriesDays,
		SeriesMaxDays:      seriesMaxDays,
		ReportDelay:        reportDelay,
		ReportQueueSize:    queueSize,
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,
		KafkaReportTopic:   sharedcfg.EnvOrDefault("KAFKA_REPORT_TOPIC", "climate-reports"),
		CatalogPath:        os.Getenv("CATALOG_PATH"),
		LocalePath:         os.Getenv("LOCALE_PATH"),
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = sharedcfg.ParseBrokers(brokers)
	}

	if s := os.Getenv("RANDOM_SEED"); s != "" {
		seed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, errors.New("invalid RANDOM_SEED: must be a non-negative integer")
		}
		cfg.RandomSeed = seed
		cfg.HasRandomSeed = true
	}

	if cfg.SeriesDays > cfg.SeriesMaxDays {
		return nil, fmt.Errorf("SERIES_DAYS (%d) exceeds SERIES_MAX_DAYS (%d)", cfg.SeriesDays, cfg.SeriesMaxDays)
	}
	if len(cfg.KafkaBrokers) > 0 && cfg.KafkaReportTopic == "" {
		return nil, errors.New("KAFKA_REPORT_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

// RandomSources returns per-request random sources. With RANDOM_SEED set,
// each request key gets its own stream derived from the seed, so a repeated
// request reproduces its output regardless of request order. Otherwise every
// request draws from the process-seeded default.
func (c *Config) RandomSources() domain.SourceFunc {
	if c.HasRandomSeed {
		return domain.KeyedSources(c.RandomSeed)
	}
	return domain.SharedSource(domain.DefaultSource)
}

func parsePositiveInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive integer", key)
	}
	return n, nil
}
