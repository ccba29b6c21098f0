package config

import (
	"fmt"
	"strings"
)

// requirements lists the settings that must be non-empty per environment.
var requirements = map[Environment][]string{
	Development: {"JWT_SECRET"},
	Test:        {"JWT_SECRET"},
	CI:          {"JWT_SECRET", "DB_PASSWORD"},
	Production:  {"JWT_SECRET", "DB_PASSWORD", "SPOONACULAR_API_KEY"},
}

// ValidateConfig checks if the configuration meets the requirements for its environment
func ValidateConfig(cfg *Config) error {
	var problems []string

	switch cfg.DBDriver {
	case "postgres", "sqlite":
	default:
		problems = append(problems, fmt.Sprintf("DB_DRIVER must be postgres or sqlite, got %q", cfg.DBDriver))
	}

	if cfg.TokenTTL <= 0 {
		problems = append(problems, "TOKEN_TTL must be positive")
	}

	values := map[string]string{
		"JWT_SECRET":          cfg.JWTSecret,
		"DB_PASSWORD":         cfg.DBPassword,
		"SPOONACULAR_API_KEY": cfg.SpoonacularAPIKey,
	}
	for _, key := range requirements[cfg.Environment] {
		if key == "DB_PASSWORD" && cfg.DBDriver == "sqlite" {
			continue
		}
		if values[key] == "" {
			problems = append(problems, fmt.Sprintf("%s is required in %s", key, cfg.Environment))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%s", strings.Join(problems, "; "))
	}
	return nil
}
