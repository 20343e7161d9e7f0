// Package config provides YAML configuration with environment variable
// overrides for the ranker service.
package config

import "time"

// Default configuration values.
const (
	defaultServiceName     = "ranker"
	defaultServiceVersion  = "1.0.0"
	defaultServicePort     = 8090
	defaultFetchTimeoutSec = 30
	defaultFetchRPS        = 5
	defaultResultLimit     = 10
	defaultDBPath          = "ranker.db"
	defaultLogLevel        = "info"
	defaultCronSpec        = "@every 15m"
)

// Config holds all configuration for the ranker service.
type Config struct {
	Service  ServiceConfig  `yaml:"service"`
	Fetch    FetchConfig    `yaml:"fetch"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Port        int    `env:"RANKER_PORT" yaml:"port"`
	Debug       bool   `env:"APP_DEBUG"   yaml:"debug"`
	ResultLimit int    `yaml:"result_limit"`
}

// FetchConfig holds feed fetching configuration.
type FetchConfig struct {
	Sources       []SourceConfig `yaml:"sources"`
	SourceTimeout time.Duration  `yaml:"source_timeout"`
	RequestsPerSec int           `env:"FETCH_RPS" yaml:"requests_per_sec"`
	CronSpec      string         `yaml:"cron_spec"`
}

// SourceConfig identifies a single feed source.
type SourceConfig struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// DatabaseConfig holds profile store configuration.
type DatabaseConfig struct {
	Path string `env:"RANKER_DB_PATH" yaml:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `env:"LOG_LEVEL" yaml:"level"`
}

// SetDefaults applies default values for any unset fields.
func (c *Config) SetDefaults() {
	if c.Service.Name == "" {
		c.Service.Name = defaultServiceName
	}
	if c.Service.Version == "" {
		c.Service.Version = defaultServiceVersion
	}
	if c.Service.Port == 0 {
		c.Service.Port = defaultServicePort
	}
	if c.Service.ResultLimit == 0 {
		c.Service.ResultLimit = defaultResultLimit
	}
	if c.Fetch.SourceTimeout == 0 {
		c.Fetch.SourceTimeout = defaultFetchTimeoutSec * time.Second
	}
	if c.Fetch.RequestsPerSec == 0 {
		c.Fetch.RequestsPerSec = defaultFetchRPS
	}
	if c.Fetch.CronSpec == "" {
		c.Fetch.CronSpec = defaultCronSpec
	}
	if len(c.Fetch.Sources) == 0 {
		c.Fetch.Sources = DefaultSources()
	}
	if c.Database.Path == "" {
		c.Database.Path = defaultDBPath
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

// DefaultSources returns the built-in feed source list.
func DefaultSources() []SourceConfig {
	return []SourceConfig{
		{Name: "CoinTelegraph", URL: "https://cointelegraph.com/rss"},
		{Name: "CoinDesk", URL: "https://coindesk.com/arc/outboundfeeds/rss/?outputType=xml"},
		{Name: "Decrypt", URL: "https://decrypt.co/feed"},
		{Name: "The Block", URL: "https://www.theblock.co/rss.xml"},
		{Name: "Bitcoin Magazine", URL: "https://bitcoinmagazine.com/rss"},
	}
}
