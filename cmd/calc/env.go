package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// dotEnvFiles lists the dotenv files for the current ENVIRONMENT, most
// specific first: base.<environment> then base. ENVIRONMENT may itself come
// from base.
func dotEnvFiles(base string) []string {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		if vals, err := godotenv.Read(base); err == nil {
			env = vals["ENVIRONMENT"]
		}
	}
	if env == "" {
		return []string{base}
	}
	return []string{base + "." + env, base}
}

// loadDotEnv loads each file that exists. Variables already set, by the
// process or by an earlier file, are not overridden.
func loadDotEnv(paths ...string) error {
	for _, path := range paths {
		err := godotenv.Load(path)
		if err == nil || errors.Is(err, os.ErrNotExist) {
			continue
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}
