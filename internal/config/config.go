package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrMissingSetting marks a required secret or connection string that is absent.
var ErrMissingSetting = errors.New("missing required setting")

// MissingSettingError lists every required key that was not provided.
type MissingSettingError struct {
	Keys []string
}

func (e *MissingSettingError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingSetting, strings.Join(e.Keys, ", "))
}

func (e *MissingSettingError) Unwrap() error { return ErrMissingSetting }

// AppConfig holds runtime configuration.
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	LogDir         string
	DatabaseURL    string
	DBMaxOpenConns int
	DBMaxIdleConns int
	RedisURL       string
	AdminPassword  string
	JWTSecret      string
	AllowedOrigins []string
	CacheTTL       time.Duration
}

type rawAppConfig struct {
	Port               int      `yaml:"port"`
	Env                string   `yaml:"env"`
	LogLevel           string   `yaml:"log_level"`
	LogDir             string   `yaml:"log_dir"`
	DatabaseURL        string   `yaml:"database_url"`
	DSN                string   `yaml:"dsn"`
	Database           rawDB    `yaml:"database"`
	RedisURL           string   `yaml:"redis_url"`
	AdminPassword      string   `yaml:"admin_password"`
	JWTSecret          string   `yaml:"jwt_secret"`
	AllowedOrigins     []string `yaml:"allowed_origins"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
	CacheTTLSeconds    *int     `yaml:"cache_ttl_seconds"`
}

type rawDB struct {
	URL          string `yaml:"url"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
}

// LookupFunc resolves an environment variable.
type LookupFunc func(key string) (string, bool)

// LoadDotEnv loads .env style files into the process environment.
// Missing files are ignored; existing variables are never overwritten.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %q: %w", p, err)
		}
	}
	return nil
}

// Load reads the optional YAML file at configPath, then applies
// environment overrides from the process environment.
func Load(configPath string) (*AppConfig, error) {
	return LoadWithEnv(configPath, os.LookupEnv)
}

// LoadWithEnv is Load with an injectable environment.
func LoadWithEnv(configPath string, lookup LookupFunc) (*AppConfig, error) {
	if lookup == nil {
		lookup = func(string) (string, bool) { return "", false }
	}
	cfg := defaultAppConfig()

	path := strings.TrimSpace(configPath)
	if path == "" {
		if v, ok := lookup(EnvConfigPath); ok {
			path = strings.TrimSpace(v)
		}
	}
	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %q: %w", path, err)
		}
		decoder := yaml.NewDecoder(bytes.NewReader(content))
		decoder.KnownFields(true)
		raw := rawAppConfig{}
		if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse config file %q: %w", path, err)
		}
		applyRawAppConfig(&cfg, raw)
	}

	if err := applyEnv(&cfg, lookup); err != nil {
		return nil, err
	}
	normalize(&cfg)

	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d, expected 1-65535", cfg.Port)
	}
	if cfg.DBMaxOpenConns < 1 {
		return nil, fmt.Errorf("invalid database.max_open_conns %d, expected >= 1", cfg.DBMaxOpenConns)
	}
	return &cfg, nil
}

// Validate fails closed when any required secret or connection string is absent.
func (c *AppConfig) Validate() error {
	var missing []string
	if strings.TrimSpace(c.AdminPassword) == "" {
		missing = append(missing, EnvAdminPassword)
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		missing = append(missing, EnvJWTSecret)
	}
	if strings.TrimSpace(c.DatabaseURL) == "" {
		missing = append(missing, EnvDatabaseURL)
	}
	if len(missing) > 0 {
		return &MissingSettingError{Keys: missing}
	}
	return nil
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool { return c.Env == EnvDev }

// Addr returns the listen address.
func (c *AppConfig) Addr() string { return ":" + strconv.Itoa(c.Port) }

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port:           defaultPort,
		Env:            defaultEnv,
		LogLevel:       defaultLogLevel,
		DBMaxOpenConns: defaultDBMaxOpenConns,
		DBMaxIdleConns: defaultDBMaxIdleConns,
		CacheTTL:       defaultCacheTTLSecs * time.Second,
	}
}

func applyRawAppConfig(cfg *AppConfig, raw rawAppConfig) {
	if raw.Port != 0 {
		cfg.Port = raw.Port
	}
	if v := strings.TrimSpace(raw.Env); v != "" {
		cfg.Env = v
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(raw.LogDir); v != "" {
		cfg.LogDir = v
	}
	if v := strings.TrimSpace(raw.Database.URL); v != "" {
		cfg.DatabaseURL = v
	}
	if v := strings.TrimSpace(raw.DSN); v != "" {
		cfg.DatabaseURL = v
	}
	if v := strings.TrimSpace(raw.DatabaseURL); v != "" {
		cfg.DatabaseURL = v
	}
	if raw.Database.MaxOpenConns != 0 {
		cfg.DBMaxOpenConns = raw.Database.MaxOpenConns
	}
	if raw.Database.MaxIdleConns != 0 {
		cfg.DBMaxIdleConns = raw.Database.MaxIdleConns
	}
	if v := strings.TrimSpace(raw.RedisURL); v != "" {
		cfg.RedisURL = v
	}
	if v := strings.TrimSpace(raw.AdminPassword); v != "" {
		cfg.AdminPassword = v
	}
	if v := strings.TrimSpace(raw.JWTSecret); v != "" {
		cfg.JWTSecret = v
	}
	switch {
	case raw.AllowedOrigins != nil:
		cfg.AllowedOrigins = raw.AllowedOrigins
	case raw.CORSAllowedOrigins != nil:
		cfg.AllowedOrigins = raw.CORSAllowedOrigins
	}
	if raw.CacheTTLSeconds != nil {
		cfg.CacheTTL = time.Duration(*raw.CacheTTLSeconds) * time.Second
	}
}
