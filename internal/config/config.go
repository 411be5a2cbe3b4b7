package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv     = "SENTIMENT_SCANNER_CONFIG"
	logLevelEnv       = "LOG_LEVEL"
	databaseDSNEnv    = "DATABASE_DSN"
	inferenceURLEnv   = "INFERENCE_URL"
	inferenceKeyEnv   = "INFERENCE_API_KEY"
	defaultProgress   = 100
	defaultScoreFanIn = 4
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging    LoggingConfig    `yaml:"logging"`
	Database   DatabaseConfig   `yaml:"database"`
	Inference  InferenceConfig  `yaml:"inference"`
	Processing ProcessingConfig `yaml:"processing"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DatabaseConfig carries the fallback DSN used when a database source
// or sink is selected without an explicit connection string.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// InferenceConfig describes the optional remote scoring service. When
// the endpoint is empty the built-in lexicon estimator is used.
type InferenceConfig struct {
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"apiKey"`
}

// ProcessingConfig tunes the batch processor.
type ProcessingConfig struct {
	ProgressEvery int `yaml:"progressEvery"`
	ScoreWorkers  int `yaml:"scoreWorkers"`
}

// Load reads YAML configuration (if present) and applies environment
// overrides. An explicit path wins over the env-provided one.
func Load(path string) Config {
	cfg := defaultConfig()

	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
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
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv(inferenceURLEnv); v != "" {
		c.Inference.Endpoint = v
	}
	if v := os.Getenv(inferenceKeyEnv); v != "" {
		c.Inference.APIKey = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging = override.Logging
	}
	if override.Database.DSN != "" {
		base.Database = override.Database
	}
	if override.Inference.Endpoint != "" {
		base.Inference.Endpoint = override.Inference.Endpoint
	}
	if override.Inference.APIKey != "" {
		base.Inference.APIKey = override.Inference.APIKey
	}
	if override.Processing.ProgressEvery > 0 {
		base.Processing.ProgressEvery = override.Processing.ProgressEvery
	}
	if override.Processing.ScoreWorkers > 0 {
		base.Processing.ScoreWorkers = override.Processing.ScoreWorkers
	}
	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Processing: ProcessingConfig{
			ProgressEvery: defaultProgress,
			ScoreWorkers:  defaultScoreFanIn,
		},
	}
}
