// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

const (
	// APIURLEnv names the environment variable overriding the backend URL.
	APIURLEnv = "THREAT_INTEL_API_URL"

	DefaultAPIURL = "http://localhost:8000"

	// Ingest sizes used when no flag overrides them.
	DefaultDaysBack   = 30
	DefaultMaxResults = 100
)

// Config holds settings resolved once at startup.
type Config struct {
	APIURL string
}

// Load reads the optional env files (".env" when none are given) and
// resolves the configuration from the environment. Variables already set in
// the process environment win over the files.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	return &Config{
		APIURL: getEnvOrDefault(APIURLEnv, DefaultAPIURL),
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
