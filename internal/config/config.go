package config

import (
	"errors"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	// Series selection. SeriesIDs may be empty when a snapshot supplies
	// them.
	SeriesIDs []string `envconfig:"BLS_SERIES_IDS"`
	StartYear int      `envconfig:"BLS_START_YEAR"`
	EndYear   int      `envconfig:"BLS_END_YEAR"`

	// BLS API access.
	APIKey         string        `envconfig:"BLS_API_KEY"`
	APITimeout     time.Duration `envconfig:"BLS_API_TIMEOUT" default:"15s"`
	FetchCacheSize int           `envconfig:"BLS_FETCH_CACHE_SIZE" default:"64"`

	// SnapshotPath replays a saved raw payload file instead of fetching.
	SnapshotPath string `envconfig:"BLS_SNAPSHOT_PATH"`

	// AreaTableDir overrides the embedded geography reference tables.
	AreaTableDir    string `envconfig:"AREA_TABLE_DIR"`
	StrictLocations bool   `envconfig:"STRICT_LOCATIONS"`

	RefreshInterval time.Duration `envconfig:"REFRESH_INTERVAL" default:"6h"`
	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":8080"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat       string        `envconfig:"LOG_FORMAT" default:"json"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	// Kafka export of canonical rows, disabled unless KAFKA_ENABLED.
	KafkaEnabled   bool     `envconfig:"KAFKA_ENABLED"`
	KafkaBrokers   []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	KafkaSinkTopic string   `envconfig:"KAFKA_SINK_TOPIC" default:"bls-canonical-rows"`
}

// Load reads configuration from environment variables, applying defaults
// where unset, and validates cross-field requirements.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	if cfg.SnapshotPath == "" {
		if len(cfg.SeriesIDs) == 0 {
			return nil, errors.New("BLS_SERIES_IDS is required unless BLS_SNAPSHOT_PATH is set")
		}
		if cfg.StartYear == 0 || cfg.EndYear == 0 {
			return nil, errors.New("BLS_START_YEAR and BLS_END_YEAR are required unless BLS_SNAPSHOT_PATH is set")
		}
		if cfg.StartYear > cfg.EndYear {
			return nil, errors.New("BLS_START_YEAR must not be after BLS_END_YEAR")
		}
	}
	if cfg.APITimeout <= 0 {
		return nil, errors.New("invalid BLS_API_TIMEOUT")
	}
	if cfg.RefreshInterval <= 0 {
		return nil, errors.New("invalid REFRESH_INTERVAL")
	}
	if cfg.KafkaEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_BROKERS is required when KAFKA_ENABLED is true")
		}
		if cfg.KafkaSinkTopic == "" {
			return nil, errors.New("KAFKA_SINK_TOPIC is required when KAFKA_ENABLED is true")
		}
	}

	return &cfg, nil
}
