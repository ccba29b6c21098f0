package config

import (
	"os"
	"strings"
)

// Environment selects which settings are mandatory at start-up.
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment reads ENV case-insensitively. CI=true takes precedence.
func GetEnvironment() Environment {
	if os.Getenv("CI") == "true" {
		return CI
	}

	switch env := Environment(strings.ToLower(strings.TrimSpace(os.Getenv("ENV")))); env {
	case Production, Test, CI:
		return env
	default:
		return Development
	}
}

func IsProduction() bool {
	return GetEnvironment() == Production
}
