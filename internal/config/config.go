// Package config loads application configuration and initializes logging.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Archive ArchiveConfig `yaml:"archive" mapstructure:"archive"`
	Data    DataConfig    `yaml:"data" mapstructure:"data"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// ArchiveConfig configures the NASA Exoplanet Archive TAP client.
type ArchiveConfig struct {
	BaseURL     string  `yaml:"base_url" mapstructure:"base_url"`
	UserAgent   string  `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries  int     `yaml:"max_retries" mapstructure:"max_retries"`
	RatePerSec  float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
}

// DataConfig configures where intermediate and final tables live.
type DataConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// OutputConfig configures prediction matching and training-set generation.
type OutputConfig struct {
	Threshold              float64 `yaml:"threshold" mapstructure:"threshold"`
	BalancedFalsePositives int     `yaml:"balanced_false_positives" mapstructure:"balanced_false_positives"`
	Seed                   int64   `yaml:"seed" mapstructure:"seed"`
}

// StoreConfig configures the dataset store backend.
type StoreConfig struct {
	Driver string `yaml:"driver" mapstructure:"driver"` // "sqlite" or "postgres"
	DSN    string `yaml:"dsn" mapstructure:"dsn"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("EXO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("archive.base_url", "https://exoplanetarchive.ipac.caltech.edu/TAP/sync")
	v.SetDefault("archive.user_agent", "exoplanet-cli/1.0")
	v.SetDefault("archive.timeout_secs", 120)
	v.SetDefault("archive.max_retries", 3)
	v.SetDefault("archive.rate_per_sec", 2)
	v.SetDefault("data.dir", "data")
	v.SetDefault("output.threshold", 0.5)
	v.SetDefault("output.balanced_false_positives", 6000)
	v.SetDefault("output.seed", 42)
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.dsn", "exoplanets.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
