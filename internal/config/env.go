package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// DotEnvFile is read from the working directory before the environment
const DotEnvFile = ".env"

// ApplyEnv overrides settings from JEOPARDY_* environment variables. Files
// given in dotenv (DotEnvFile when none) are loaded into the environment
// first; variables already set win over the file and missing files are
// skipped.
func ApplyEnv(r *Registry, dotenv ...string) error {
	if len(dotenv) == 0 {
		dotenv = []string{DotEnvFile}
	}
	for _, file := range dotenv {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	if err := cleanenv.ReadEnv(r); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}
	return nil
}

// EnvDescription lists every environment variable the registry reads
func EnvDescription() (string, error) {
	header := "Environment variables:"
	return cleanenv.GetDescription(Default(), &header)
}
