package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

// Config is the root configuration for ttrack, stored in
// ~/.ttrack/config.json. The file supports single-line // comments for
// documentation purposes.
type Config struct {
	Store    StoreConfig   `json:"store"`
	History  HistoryConfig `json:"history"`
	Timezone string        `json:"timezone"`
}

// StoreConfig holds the remote record-store settings.
type StoreConfig struct {
	// BaseURL is the record-store API endpoint.
	BaseURL string `json:"base_url"`
	// BaseID identifies the workspace that holds the tables.
	BaseID string `json:"base_id"`
	// WorkHoursTable is the table holding time-entry records.
	WorkHoursTable string `json:"work_hours_table"`
	// EmployeesTable is the user-directory table.
	EmployeesTable string `json:"employees_table"`
}

// HistoryConfig holds display settings for the history listing.
type HistoryConfig struct {
	// PageSize is the number of records per history page.
	PageSize int `json:"page_size"`
}

const (
	// DefaultBaseURL is the public record-store endpoint.
	DefaultBaseURL = "https://api.airtable.com"
	// DefaultWorkHoursTable is the time-entry table name.
	DefaultWorkHoursTable = "Work_Hours"
	// DefaultEmployeesTable is the user-directory table name.
	DefaultEmployeesTable = "Employees"
	// DefaultPageSize is the history page size.
	DefaultPageSize = 10
)

// defaultConfig returns a Config pre-filled with sensible defaults.
func defaultConfig() Config {
	return Config{
		Store: StoreConfig{
			BaseURL:        DefaultBaseURL,
			WorkHoursTable: DefaultWorkHoursTable,
			EmployeesTable: DefaultEmployeesTable,
		},
		History: HistoryConfig{PageSize: DefaultPageSize},
	}
}

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON
// parsing, allowing human-readable documentation inside the file.
const configTemplate = `// ttrack configuration – ~/.ttrack/config.json
//
// The API token is never stored here; set it in the environment instead:
//   export TTRACK_STORE_TOKEN=<your token>
// Environment variables TTRACK_STORE_BASE_URL and TTRACK_STORE_BASE_ID
// override the matching settings below.
{
  // ── Remote record store ──────────────────────────────────────────────────
  "store": {
    // Record-store API endpoint.
    "base_url": "https://api.airtable.com",

    // Workspace (base) ID holding the tables, e.g. "appXXXXXXXXXXXXXX".
    // Required before first use.
    "base_id": "",

    // Table holding time-entry records.
    "work_hours_table": "Work_Hours",

    // User-directory table checked at login and for profile display.
    "employees_table": "Employees"
  },

  // ── History display ──────────────────────────────────────────────────────
  "history": {
    // Records shown per history page.
    "page_size": 10
  },

  // IANA timezone for interpreting entered times, e.g. "Europe/Berlin".
  // Leave empty to use the system timezone.
  "timezone": ""
}
`

// BaseDir returns the root data directory (~/.ttrack).
func BaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".ttrack"), nil
}

// configFilePath returns the path to ~/.ttrack/config.json.
func configFilePath() (string, error) {
	base, err := BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "config.json"), nil
}

// stripLineComments removes lines whose leading non-whitespace content
// starts with //. Only full-line comments are handled.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load reads ~/.ttrack/config.json, creating it with annotated defaults on
// first run. Lines starting with // are treated as comments and stripped
// before JSON parsing.
func Load() (Config, error) {
	path, err := configFilePath()
	if err != nil {
		return defaultConfig(), err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
		return defaultConfig(), nil
	}
	if err != nil {
		return defaultConfig(), fmt.Errorf("reading config file %s: %w", path, err)
	}

	cleaned := stripLineComments(data)
	var cfg Config
	if err := json.Unmarshal(cleaned, &cfg); err != nil {
		return defaultConfig(), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}

	// Fill zero-value fields with built-in defaults so callers always get
	// a usable Config even if the user only partially fills in the file.
	if cfg.Store.BaseURL == "" {
		cfg.Store.BaseURL = DefaultBaseURL
	}
	if cfg.Store.WorkHoursTable == "" {
		cfg.Store.WorkHoursTable = DefaultWorkHoursTable
	}
	if cfg.Store.EmployeesTable == "" {
		cfg.Store.EmployeesTable = DefaultEmployeesTable
	}
	if cfg.History.PageSize <= 0 {
		cfg.History.PageSize = DefaultPageSize
	}

	return cfg, nil
}

// writeDefault creates the config directory and writes the annotated
// default config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}

// Env holds settings read from the environment. The token is environment
// only; the rest override the config file when set.
type Env struct {
	Token   string `envconfig:"STORE_TOKEN"`
	BaseID  string `envconfig:"STORE_BASE_ID"`
	BaseURL string `envconfig:"STORE_BASE_URL"`
}

// LoadEnv reads the TTRACK_* environment variables.
func LoadEnv() (Env, error) {
	var env Env
	if err := envconfig.Process("ttrack", &env); err != nil {
		return Env{}, fmt.Errorf("reading environment: %w", err)
	}
	return env, nil
}
