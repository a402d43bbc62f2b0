package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config captures the configuration values for the roster service.
type Config struct {
	HTTPPort   int    `yaml:"http_port"`
	SQLiteDSN  string `yaml:"sqlite_dsn"`
	BusinessID string `yaml:"business_id"`
	// SaveBoundary controls whether events ending exactly at the week
	// boundary are persisted: "exclusive" (the source behavior) or
	// "inclusive".
	SaveBoundary string `yaml:"save_boundary"`
	// DefaultShiftHours is the span given to externally dropped shifts,
	// as a plain hour count.
	DefaultShiftHours float64 `yaml:"default_shift_hours"`
}

// DefaultShiftDuration converts the configured hour count to a duration.
func (c Config) DefaultShiftDuration() time.Duration {
	return time.Duration(c.DefaultShiftHours * float64(time.Hour))
}

// Load builds the configuration from an optional YAML file layered under
// the process environment. Environment values win over file values.
//
// ROSTER_CONFIG_FILE names the YAML file; when unset, only the environment
// and the defaults apply.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:          8080,
		SQLiteDSN:         "file:roster.db?_foreign_keys=on",
		SaveBoundary:      "exclusive",
		DefaultShiftHours: 3,
	}

	if path := strings.TrimSpace(os.Getenv("ROSTER_CONFIG_FILE")); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	missing := make([]string, 0, 1)
	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("ROSTER_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "ROSTER_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("ROSTER_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if businessID := strings.TrimSpace(os.Getenv("ROSTER_BUSINESS_ID")); businessID != "" {
		cfg.BusinessID = businessID
	}
	if cfg.BusinessID == "" {
		missing = append(missing, "ROSTER_BUSINESS_ID")
	}

	if hoursValue := strings.TrimSpace(os.Getenv("ROSTER_DEFAULT_SHIFT_HOURS")); hoursValue != "" {
		hours, err := strconv.ParseFloat(hoursValue, 64)
		if err != nil || hours <= 0 {
			invalid = append(invalid, "ROSTER_DEFAULT_SHIFT_HOURS")
		} else {
			cfg.DefaultShiftHours = hours
		}
	}
	if cfg.DefaultShiftHours <= 0 {
		invalid = append(invalid, "ROSTER_DEFAULT_SHIFT_HOURS")
	}

	if boundary := strings.TrimSpace(os.Getenv("ROSTER_SAVE_BOUNDARY")); boundary != "" {
		cfg.SaveBoundary = strings.ToLower(boundary)
	}
	switch cfg.SaveBoundary {
	case "exclusive", "inclusive":
	default:
		invalid = append(invalid, "ROSTER_SAVE_BOUNDARY")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required configuration values are missing: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("configuration values are invalid: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}
