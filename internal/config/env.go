package config

import (
	"fmt"
	"strconv"
	"strings"
)

func applyEnv(cfg *AppConfig, lookup LookupFunc) error {
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	if v := get(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvPort, v, err)
		}
		cfg.Port = port
	}
	if v := get(EnvNodeEnv); v != "" {
		cfg.Env = v
	}
	if v := get(EnvAppEnv); v != "" {
		cfg.Env = v
	}
	if v := get(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := get(EnvLogDir); v != "" {
		cfg.LogDir = v
	}
	if v := get(EnvDatabaseURL); v != "" {
		cfg.DatabaseURL = v
	} else if cfg.DatabaseURL == "" {
		for _, key := range databaseURLFallbacks {
			if v := get(key); v != "" {
				cfg.DatabaseURL = v
				break
			}
		}
	}
	if v := get(EnvRedisURL); v != "" {
		cfg.RedisURL = v
	}
	// Secrets are taken verbatim apart from surrounding whitespace.
	if v := get(EnvAdminPassword); v != "" {
		cfg.AdminPassword = v
	}
	if v := get(EnvJWTSecret); v != "" {
		cfg.JWTSecret = v
	}
	if v := get(EnvAllowedOrigins); v != "" {
		cfg.AllowedOrigins = strings.Split(v, ",")
	}
	return nil
}
