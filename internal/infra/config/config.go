// Package config provides application-wide configuration. Values come from
// an optional YAML file layered under environment variables; env always wins.
// Every field has a safe default so the binary runs locally without setup —
// except the endpoint name, whose absence degrades /health instead of
// failing startup.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration for the gateway.
type Config struct {
	EndpointName string // SAGEMAKER_ENDPOINT_NAME — no default; required for predictions
	Region       string // AWS_REGION — default: "eu-north-1"
	ModelName    string // MODEL_NAME — default: "distilbert-base-uncased-distilled-squad"
	ModelID      string // MODEL_ID — default: same as ModelName default

	Host string // HTTP_HOST — default: "0.0.0.0"
	Port int    // HTTP_PORT — default: 8000

	InvokeTimeout    time.Duration // INVOKE_TIMEOUT — default: 30s
	BatchConcurrency int           // BATCH_CONCURRENCY — default: 4
}

const (
	envKeyEndpointName     = "SAGEMAKER_ENDPOINT_NAME"
	envKeyRegion           = "AWS_REGION"
	envKeyModelName        = "MODEL_NAME"
	envKeyModelID          = "MODEL_ID"
	envKeyHost             = "HTTP_HOST"
	envKeyPort             = "HTTP_PORT"
	envKeyInvokeTimeout    = "INVOKE_TIMEOUT"
	envKeyBatchConcurrency = "BATCH_CONCURRENCY"

	defaultModel = "distilbert-base-uncased-distilled-squad"
)

// fileConfig is the YAML form of Config. Durations are strings
// ("30s", "1m") parsed with time.ParseDuration.
type fileConfig struct {
	EndpointName     string `yaml:"endpoint_name"`
	Region           string `yaml:"region"`
	ModelName        string `yaml:"model_name"`
	ModelID          string `yaml:"model_id"`
	Host             string `yaml:"host"`
	Port             int    `yaml:"port"`
	InvokeTimeout    string `yaml:"invoke_timeout"`
	BatchConcurrency int    `yaml:"batch_concurrency"`
}

// Load builds the configuration: defaults, then the YAML file at path (if
// non-empty), then environment variable overrides.
func Load(path string) (Config, error) {
	cfg := Config{
		Region:           "eu-north-1",
		ModelName:        defaultModel,
		ModelID:          defaultModel,
		Host:             "0.0.0.0",
		Port:             8000,
		InvokeTimeout:    30 * time.Second,
		BatchConcurrency: 4,
	}

	if path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setIfNonEmpty(&cfg.EndpointName, fc.EndpointName)
	setIfNonEmpty(&cfg.Region, fc.Region)
	setIfNonEmpty(&cfg.ModelName, fc.ModelName)
	setIfNonEmpty(&cfg.ModelID, fc.ModelID)
	setIfNonEmpty(&cfg.Host, fc.Host)
	if fc.Port > 0 {
		cfg.Port = fc.Port
	}
	if fc.InvokeTimeout != "" {
		d, err := time.ParseDuration(fc.InvokeTimeout)
		if err != nil {
			return fmt.Errorf("config file invoke_timeout: %w", err)
		}
		cfg.InvokeTimeout = d
	}
	if fc.BatchConcurrency > 0 {
		cfg.BatchConcurrency = fc.BatchConcurrency
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.EndpointName = envOr(envKeyEndpointName, cfg.EndpointName)
	cfg.Region = envOr(envKeyRegion, cfg.Region)
	cfg.ModelName = envOr(envKeyModelName, cfg.ModelName)
	cfg.ModelID = envOr(envKeyModelID, cfg.ModelID)
	cfg.Host = envOr(envKeyHost, cfg.Host)

	if v := os.Getenv(envKeyPort); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p <= 0 {
			return fmt.Errorf("%s must be a positive integer, got %q", envKeyPort, v)
		}
		cfg.Port = p
	}
	if v := os.Getenv(envKeyInvokeTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envKeyInvokeTimeout, err)
		}
		cfg.InvokeTimeout = d
	}
	if v := os.Getenv(envKeyBatchConcurrency); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive integer, got %q", envKeyBatchConcurrency, v)
		}
		cfg.BatchConcurrency = n
	}
	return nil
}

func setIfNonEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// envOr returns the value of the environment variable key, or fallback if not set.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
