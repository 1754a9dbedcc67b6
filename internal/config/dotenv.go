package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// EnvFileVar names an alternative dotenv file, e.g. for a staging setup.
const EnvFileVar = "ONSITE_ENV_FILE"

// LoadDotEnv loads ONSITE_* settings from $ONSITE_ENV_FILE, or .env, when
// the file exists. Variables already set in the process win. A file that
// exists but cannot be parsed is an error.
func LoadDotEnv() error {
	path := os.Getenv(EnvFileVar)
	if path == "" {
		path = ".env"
	}

	err := godotenv.Load(path)
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("load %s: %w", path, err)
}
