package config

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/de-tools/rankboard/pkg/services/analytics"
	"github.com/de-tools/rankboard/pkg/services/report"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const EnvPrefix = "RANKBOARD"

type StoreDriver string

const (
	StoreDuckDB    StoreDriver = "duckdb"
	StorePostgres  StoreDriver = "postgres"
	StoreFirestore StoreDriver = "firestore"
	StoreCSV       StoreDriver = "csv"
)

type ArtifactSink string

const (
	ArtifactLocal ArtifactSink = "local"
	ArtifactS3    ArtifactSink = "s3"
)

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

type StoreConfig struct {
	Driver StoreDriver `mapstructure:"driver"`
	// DSN is used by postgres
	DSN string `mapstructure:"dsn"`
	// Path is the duckdb file or the csv directory
	Path string `mapstructure:"path"`
	// Project and Credentials are used by firestore
	Project     string `mapstructure:"project"`
	Credentials string `mapstructure:"credentials"`
}

type BrandingConfig struct {
	// File is an ini file with one section per institute id
	File string `mapstructure:"file"`
}

type ArtifactsConfig struct {
	Sink    ArtifactSink `mapstructure:"sink"`
	Dir     string       `mapstructure:"dir"`
	Bucket  string       `mapstructure:"bucket"`
	Prefix  string       `mapstructure:"prefix"`
	Profile string       `mapstructure:"profile"`
	Region  string       `mapstructure:"region"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type Config struct {
	Institute string                `mapstructure:"institute"`
	Log       LogConfig             `mapstructure:"log"`
	Store     StoreConfig           `mapstructure:"store"`
	Branding  BrandingConfig        `mapstructure:"branding"`
	Insights  analytics.Settings    `mapstructure:"insights"`
	Layout    report.LayoutSettings `mapstructure:"layout"`
	Artifacts ArtifactsConfig       `mapstructure:"artifacts"`
	Server    ServerConfig          `mapstructure:"server"`
}

// LoadConfig reads the configuration file at path, if any, over the defaults.
// Every key registered here can be overridden with a RANKBOARD_ variable,
// e.g. RANKBOARD_STORE_DRIVER. Layout keys are read from the file only.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := Config{
		Insights: analytics.DefaultSettings(),
		Layout:   report.DefaultLayoutSettings(),
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse rankboard config: %w", err)
	}

	switch cfg.Store.Driver {
	case StoreDuckDB, StorePostgres, StoreFirestore, StoreCSV:
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
	switch cfg.Artifacts.Sink {
	case ArtifactLocal, ArtifactS3:
	default:
		return nil, fmt.Errorf("unknown artifact sink %q", cfg.Artifacts.Sink)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	insights := analytics.DefaultSettings()

	v.SetDefault("institute", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("store.driver", string(StoreDuckDB))
	v.SetDefault("store.dsn", "")
	v.SetDefault("store.path", "rankboard.db")
	v.SetDefault("store.project", "")
	v.SetDefault("store.credentials", "")
	v.SetDefault("branding.file", "")
	v.SetDefault("insights.topper_threshold", insights.TopperThreshold)
	v.SetDefault("insights.average_threshold", insights.AverageThreshold)
	v.SetDefault("insights.strong_threshold", insights.StrongThreshold)
	v.SetDefault("insights.prediction_spread", insights.PredictionSpread)
	v.SetDefault("artifacts.sink", string(ArtifactLocal))
	v.SetDefault("artifacts.dir", ".")
	v.SetDefault("artifacts.bucket", "")
	v.SetDefault("artifacts.prefix", "reports/")
	v.SetDefault("artifacts.profile", "")
	v.SetDefault("artifacts.region", "us-east-1")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
}

// NewLogger builds the root logger described by the log section
func NewLogger(cfg LogConfig, w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("failed to parse log level: %w", err)
	}
	if cfg.Pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}
