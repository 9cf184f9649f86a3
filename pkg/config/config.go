// Package config loads sitesmith-engine configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for sitesmith-engine.
// Configuration can come from YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values for fields that support both.
// Secrets (passwords, keys) must only come from environment variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8080"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// Authentication configuration
	Auth AuthConfig `yaml:"auth"`

	// Database configuration (PostgreSQL)
	Database DatabaseConfig `yaml:"database"`

	// Generation provider configuration
	Generator GeneratorConfig `yaml:"generator"`

	// Pipeline tuning knobs
	Pipeline PipelineConfig `yaml:"pipeline"`
}

// AuthConfig holds authentication-related configuration.
type AuthConfig struct {
	// EnableVerification controls whether JWT tokens are validated.
	// Set to false for local development without an auth server.
	EnableVerification bool `yaml:"enable_verification" env:"AUTH_ENABLE_VERIFICATION" env-default:"true"`

	// JWKSEndpointsStr is a comma-separated list of issuer=jwks_url pairs.
	// Format: "issuer1=url1,issuer2=url2"
	JWKSEndpointsStr string `yaml:"jwks_endpoints" env:"JWKS_ENDPOINTS" env-default:""`

	// JWKSEndpoints is the parsed map from JWKSEndpointsStr (not from config file).
	JWKSEndpoints map[string]string `yaml:"-"`
}

// DatabaseConfig holds PostgreSQL database configuration.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER" env-default:"sitesmith"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE" env-default:"sitesmith_engine"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"25"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
}

// GeneratorConfig holds the generation provider settings.
type GeneratorConfig struct {
	Provider    string  `yaml:"provider" env:"GENERATOR_PROVIDER" env-default:"openai"`
	Endpoint    string  `yaml:"endpoint" env:"GENERATOR_ENDPOINT" env-default:""`
	Model       string  `yaml:"model" env:"GENERATOR_MODEL" env-default:"gpt-4o"`
	APIKey      string  `yaml:"-" env:"GENERATOR_API_KEY"` // Secret - not in YAML
	Temperature float64 `yaml:"temperature" env:"GENERATOR_TEMPERATURE" env-default:"0.7"`
}

// PipelineConfig holds tuning knobs for the generation pipeline.
type PipelineConfig struct {
	// MaxSubdomainAttempts bounds subdomain resolution, including retries
	// after a commit-time uniqueness violation.
	MaxSubdomainAttempts int `yaml:"max_subdomain_attempts" env:"PIPELINE_MAX_SUBDOMAIN_ATTEMPTS" env-default:"10"`

	// YearlyPriceMultiplier derives a yearly price from a monthly one.
	YearlyPriceMultiplier int `yaml:"yearly_price_multiplier" env:"PIPELINE_YEARLY_PRICE_MULTIPLIER" env-default:"10"`

	// Prompt length bounds in characters.
	PromptMinLength int `yaml:"prompt_min_length" env:"PIPELINE_PROMPT_MIN_LENGTH" env-default:"10"`
	PromptMaxLength int `yaml:"prompt_max_length" env:"PIPELINE_PROMPT_MAX_LENGTH" env-default:"10000"`
}

// Load reads configuration from config.yaml with environment variable
// overrides. When config.yaml does not exist, configuration comes from the
// environment alone. The version parameter is injected at build time.
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config.yaml: %w", err)
		}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	cfg.Auth.JWKSEndpoints = parseJWKSEndpoints(cfg.Auth.JWKSEndpointsStr)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Pipeline.MaxSubdomainAttempts < 1 {
		return fmt.Errorf("pipeline.max_subdomain_attempts must be at least 1")
	}
	if c.Pipeline.PromptMinLength < 1 || c.Pipeline.PromptMaxLength < c.Pipeline.PromptMinLength {
		return fmt.Errorf("pipeline prompt length bounds are inconsistent")
	}
	if c.Auth.EnableVerification && len(c.Auth.JWKSEndpoints) == 0 {
		return fmt.Errorf("auth.jwks_endpoints is required when verification is enabled")
	}
	return nil
}

// parseJWKSEndpoints parses the JWKS endpoints string into a map.
// Format: "issuer1=url1,issuer2=url2"
func parseJWKSEndpoints(value string) map[string]string {
	endpoints := make(map[string]string)
	if value == "" {
		return endpoints
	}

	for _, pair := range strings.Split(value, ",") {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) == 2 {
			endpoints[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
		}
	}
	return endpoints
}

// ConnectionString returns a PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}
