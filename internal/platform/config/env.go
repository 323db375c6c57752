// Package config loads command configuration from files, the environment,
// and fatal-exit helpers shared by the CLI entry points.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix namespaces every environment variable read by the commands.
const EnvPrefix = "LIFE_"

// ParseEnv loads configuration from environment variables. Fields without
// a matching variable or envDefault keep their current value, so ParseEnv
// layers on top of values loaded from a file.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadJSONFile decodes the JSON file at path into target. It reports
// false without error when the file does not exist.
func LoadJSONFile(path string, target any) (bool, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return false, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return false, fmt.Errorf("parse config %s: %w", path, err)
	}
	return true, nil
}
