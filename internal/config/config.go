// Package config loads application configuration from file and environment
// and owns the global logger setup.
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
	Data   DataConfig   `yaml:"data" mapstructure:"data"`
	Query  QueryConfig  `yaml:"query" mapstructure:"query"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// DataConfig configures where season data comes from.
// Driver "dir" reads spreadsheet files from Dir; "sqlite" and "postgres"
// read imported snapshots (see the import command).
type DataConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	Dir         string `yaml:"dir" mapstructure:"dir"`
	SQLitePath  string `yaml:"sqlite_path" mapstructure:"sqlite_path"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// QueryConfig configures resolution and trend windows.
type QueryConfig struct {
	MaxRadiusKM  float64 `yaml:"max_radius_km" mapstructure:"max_radius_km"`
	RecentWindow int     `yaml:"recent_window" mapstructure:"recent_window"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port      int     `yaml:"port" mapstructure:"port"`
	RateLimit float64 `yaml:"rate_limit" mapstructure:"rate_limit"` // requests per second, 0 = unlimited
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from config.yaml and the FREEZETHAW_* environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("FREEZETHAW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data.driver", "dir")
	v.SetDefault("data.dir", "data")
	v.SetDefault("data.sqlite_path", "freezethaw.db")
	v.SetDefault("query.max_radius_km", 50.0)
	v.SetDefault("query.recent_window", 5)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_limit", 10.0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

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

// Validate checks settings needed by the named concern before a command runs.
func (c *Config) Validate(concern string) error {
	switch concern {
	case "data":
		switch c.Data.Driver {
		case "dir":
			if c.Data.Dir == "" {
				return eris.New("config: data.dir is required with the dir driver")
			}
		case "sqlite":
			if c.Data.SQLitePath == "" {
				return eris.New("config: data.sqlite_path is required with the sqlite driver")
			}
		case "postgres":
			if c.Data.DatabaseURL == "" {
				return eris.New("config: data.database_url is required with the postgres driver")
			}
		default:
			return eris.Errorf("config: unknown data driver %q", c.Data.Driver)
		}
	case "query":
		if err := c.Validate("data"); err != nil {
			return err
		}
		if c.Query.MaxRadiusKM <= 0 {
			return eris.New("config: query.max_radius_km must be positive")
		}
		if c.Query.RecentWindow <= 0 {
			return eris.New("config: query.recent_window must be positive")
		}
	}
	return nil
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
