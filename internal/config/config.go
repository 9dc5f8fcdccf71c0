package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultBaseURL = "http://localhost:8000"
	defaultPeriod  = "last-7-days"
	configPathEnv  = "NEWSDESK_CONFIG"
	baseURLEnv     = "NEWSDESK_API_BASE_URL"
	logLevelEnv    = "NEWSDESK_LOG_LEVEL"
)

// Config holds high-level settings required across the application.
type Config struct {
	API       APIConfig       `yaml:"api"`
	Logging   LoggingConfig   `yaml:"logging"`
	Dashboard DashboardConfig `yaml:"dashboard"`
}

// APIConfig selects the compliance-news host.
type APIConfig struct {
	BaseURL string        `yaml:"baseUrl"`
	Timeout time.Duration `yaml:"timeout"`
}

// LoggingConfig sets the slog level (debug, info, warn, error).
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DashboardConfig carries presentation defaults for the command line.
type DashboardConfig struct {
	DefaultPeriod   string        `yaml:"defaultPeriod"`
	RefreshInterval time.Duration `yaml:"refreshInterval"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(baseURLEnv); v != "" {
		c.API.BaseURL = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.API.BaseURL != "" {
		base.API.BaseURL = override.API.BaseURL
	}
	if override.API.Timeout > 0 {
		base.API.Timeout = override.API.Timeout
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.Dashboard.DefaultPeriod != "" {
		base.Dashboard.DefaultPeriod = override.Dashboard.DefaultPeriod
	}
	if override.Dashboard.RefreshInterval > 0 {
		base.Dashboard.RefreshInterval = override.Dashboard.RefreshInterval
	}

	return base
}

func defaultConfig() Config {
	return Config{
		API:       APIConfig{BaseURL: defaultBaseURL, Timeout: 15 * time.Second},
		Logging:   LoggingConfig{Level: "warn"},
		Dashboard: DashboardConfig{DefaultPeriod: defaultPeriod},
	}
}
