package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the configuration is usable in the current
// environment. Development and test are permissive; production requires the
// secrets that the service cannot run safely without. The upstream API key
// and all LLM settings are deliberately optional: the application degrades
// to local-database search and deterministic substitutions without them.
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()
	if env != Production {
		if cfg.JWTSecret == "" {
			cfg.JWTSecret = "dev-secret-do-not-use-in-production"
		}
		return nil
	}

	var errors []string
	if cfg.JWTSecret == "" {
		errors = append(errors, "JWT_SECRET is required in production")
	}
	if cfg.DBPassword == "" {
		errors = append(errors, "DB_PASSWORD is required in production")
	}
	if cfg.AdminInvite == "let-me-in" {
		errors = append(errors, "ADMIN_INVITE must be changed from its default in production")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}
	return nil
}
