package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	EnvConfigPath   = "CONFIG_PATH"
	EnvDBConnection = "DB_CONNECTION"
)

// Store backend identifiers.
const (
	StoreBackendMemory = "memory"
	StoreBackendSQLite = "sqlite"
)

// StoreConfig selects the account/OTP store backend.
type StoreConfig struct {
	Backend string // memory or sqlite
	DSN     string // sqlite only; empty means in-memory
}

// OTPConfig holds the verification code policy.
type OTPConfig struct {
	Digits    int           // code length
	TTL       time.Duration // zero disables expiry
	SingleUse bool          // consume the code on successful verify
	EchoCode  bool          // return the generated code in the send response (dev posture)
}

// Config holds resolved application configuration values.
type Config struct {
	Host  string
	Port  int
	Debug bool
	Store StoreConfig
	OTP   OTPConfig
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Port: 8317,
		Store: StoreConfig{
			Backend: StoreBackendMemory,
		},
		OTP: OTPConfig{
			Digits:   4,
			EchoCode: true,
		},
	}
}

// ResolveConfigPath normalizes the config path and applies defaults.
func ResolveConfigPath(p string) string {
	trimmed := strings.TrimSpace(p)
	if trimmed == "" {
		trimmed = "./config.yaml"
	}
	if abs, err := filepath.Abs(trimmed); err == nil {
		return abs
	}
	return trimmed
}

// fileConfig maps the YAML fields of the config file. Durations are strings
// so the file can say "5m" rather than nanosecond counts.
type fileConfig struct {
	Host  string `yaml:"host"`
	Port  int    `yaml:"port"`
	Debug bool   `yaml:"debug"`
	Store struct {
		Backend string `yaml:"backend"`
		DSN     string `yaml:"dsn"`
	} `yaml:"store"`
	OTP struct {
		Digits    int    `yaml:"digits"`
		TTL       string `yaml:"ttl"`
		SingleUse *bool  `yaml:"single-use"`
		EchoCode  *bool  `yaml:"echo-code"`
	} `yaml:"otp"`
}

// Load reads the config file when present, merges it over the defaults, and
// applies environment overrides. A missing file is not an error.
func Load(configPath string) (Config, error) {
	cfg := Default()

	data, errRead := os.ReadFile(configPath)
	if errRead == nil {
		var file fileConfig
		if errUnmarshal := yaml.Unmarshal(data, &file); errUnmarshal != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", configPath, errUnmarshal)
		}
		applyFile(&cfg, file)
	} else if !os.IsNotExist(errRead) {
		return Config{}, fmt.Errorf("config: read %s: %w", configPath, errRead)
	}

	if dsn := strings.TrimSpace(os.Getenv(EnvDBConnection)); dsn != "" {
		cfg.Store.Backend = StoreBackendSQLite
		cfg.Store.DSN = dsn
	}

	if errValidate := validate(cfg); errValidate != nil {
		return Config{}, errValidate
	}
	return cfg, nil
}

// applyFile merges file values over the defaults.
func applyFile(cfg *Config, file fileConfig) {
	cfg.Host = strings.TrimSpace(file.Host)
	if file.Port > 0 {
		cfg.Port = file.Port
	}
	cfg.Debug = file.Debug

	if backend := strings.ToLower(strings.TrimSpace(file.Store.Backend)); backend != "" {
		cfg.Store.Backend = backend
	}
	if dsn := strings.TrimSpace(file.Store.DSN); dsn != "" {
		cfg.Store.DSN = dsn
	}

	if file.OTP.Digits > 0 {
		cfg.OTP.Digits = file.OTP.Digits
	}
	if raw := strings.TrimSpace(file.OTP.TTL); raw != "" {
		if ttl, errParse := time.ParseDuration(raw); errParse == nil && ttl > 0 {
			cfg.OTP.TTL = ttl
		}
	}
	if file.OTP.SingleUse != nil {
		cfg.OTP.SingleUse = *file.OTP.SingleUse
	}
	if file.OTP.EchoCode != nil {
		cfg.OTP.EchoCode = *file.OTP.EchoCode
	}
}

// validate rejects configurations the server cannot run with.
func validate(cfg Config) error {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("config: invalid port: %d", cfg.Port)
	}
	switch cfg.Store.Backend {
	case StoreBackendMemory, StoreBackendSQLite:
	default:
		return fmt.Errorf("config: unsupported store backend: %s", cfg.Store.Backend)
	}
	return nil
}
