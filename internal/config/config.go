// Package config loads dashboard configuration from config.yaml and the
// CIVICDASH_* environment.
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
	Shapes ShapesConfig `yaml:"shapes" mapstructure:"shapes"`
	Feeds  FeedsConfig  `yaml:"feeds" mapstructure:"feeds"`
	Energy EnergyConfig `yaml:"energy" mapstructure:"energy"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Cache  CacheConfig  `yaml:"cache" mapstructure:"cache"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// DataConfig points at the county-level results files. Paths may be CSV or
// XLSX; the loader dispatches on extension.
type DataConfig struct {
	Results2024 string `yaml:"results_2024" mapstructure:"results_2024"`
	Results2020 string `yaml:"results_2020" mapstructure:"results_2020"`
}

// ShapesConfig configures the Census cartographic boundary downloads.
type ShapesConfig struct {
	CountyURL string `yaml:"county_url" mapstructure:"county_url"`
	StateURL  string `yaml:"state_url" mapstructure:"state_url"`
	CacheDir  string `yaml:"cache_dir" mapstructure:"cache_dir"`
}

// FeedsConfig configures the global energy/economy feeds.
type FeedsConfig struct {
	CO2URL           string `yaml:"co2_url" mapstructure:"co2_url"`
	EnergyURL        string `yaml:"energy_url" mapstructure:"energy_url"`
	WorldBankBaseURL string `yaml:"worldbank_base_url" mapstructure:"worldbank_base_url"`
	StartYear        int    `yaml:"start_year" mapstructure:"start_year"`
	EndYear          int    `yaml:"end_year" mapstructure:"end_year"`
}

// EnergyConfig holds energy-dashboard options.
type EnergyConfig struct {
	PalettePath string `yaml:"palette_path" mapstructure:"palette_path"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// CacheConfig configures the in-session result cache.
type CacheConfig struct {
	// TTLMinutes bounds entry lifetime; zero keeps entries for the session.
	TTLMinutes int `yaml:"ttl_minutes" mapstructure:"ttl_minutes"`
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
	v.SetEnvPrefix("CIVICDASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data.results_2024", "./data/2024_US_County_level_Presidential_Results.csv")
	v.SetDefault("data.results_2020", "./data/2020_US_County_level_Presidential_Results.csv")
	v.SetDefault("shapes.county_url", "https://www2.census.gov/geo/tiger/GENZ2024/shp/cb_2024_us_county_20m.zip")
	v.SetDefault("shapes.state_url", "https://www2.census.gov/geo/tiger/GENZ2024/shp/cb_2024_us_state_20m.zip")
	v.SetDefault("shapes.cache_dir", "/tmp/civicdash/shapes")
	v.SetDefault("feeds.co2_url", "https://ourworldindata.org/grapher/co-emissions-per-capita.csv?v=1&csvType=full&useColumnShortNames=true")
	v.SetDefault("feeds.energy_url", "https://nyc3.digitaloceanspaces.com/owid-public/data/energy/owid-energy-data.csv")
	v.SetDefault("feeds.worldbank_base_url", "https://api.worldbank.org/v2")
	v.SetDefault("feeds.start_year", 1990)
	v.SetDefault("feeds.end_year", 2023)
	v.SetDefault("server.port", 8080)
	v.SetDefault("cache.ttl_minutes", 0)
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
