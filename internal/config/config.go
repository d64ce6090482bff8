// =============================================================================
// Relatório de Visitas - Configuration Module
// =============================================================================
//
// This module loads the application configuration from a YAML file. It
// follows a load -> apply defaults -> validate sequence, so a partially
// specified file still produces a fully usable configuration and obviously
// broken values are rejected at startup rather than mid-pipeline.
//
// CONFIGURATION AREAS:
//   - Directories: where submitted drafts are picked up, where rendered
//     reports and XLSX exports are written, where processed drafts are moved.
//   - Draft store: location and quota of the locally persisted draft.
//   - Lookups: base URLs of the external directories and the edit-debounce
//     quiet period.
//   - Logging: level for the structured logger.
//   - Autosave: the interval of the timer-driven draft save.
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the full application configuration.
type Config struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// DraftsDir is the directory scanned for submitted draft JSON files.
	// Default: "./drafts"
	DraftsDir string `yaml:"drafts_dir"`

	// OutputDir is the directory where rendered reports and exports are
	// written. Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// ArchiveDir is the directory where successfully processed drafts are
	// moved. Failed drafts stay in DraftsDir. Default: "./archive"
	ArchiveDir string `yaml:"archive_dir"`

	// ArchiveRetentionDays is how long archived drafts are kept before a
	// render run removes them. Zero keeps archives forever. Default: 0
	ArchiveRetentionDays int `yaml:"archive_retention_days"`

	// ParticipantsFile is the YAML file backing the participant directory.
	// Default: "./participantes.yaml"
	ParticipantsFile string `yaml:"participants_file"`

	// =========================================================================
	// DRAFT STORE SETTINGS
	// =========================================================================

	DraftStore DraftStoreConfig `yaml:"draft_store"`

	// =========================================================================
	// LOOKUP SETTINGS
	// =========================================================================

	Lookups LookupConfig `yaml:"lookups"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls logger verbosity: "debug", "info", "warn", "error".
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// =========================================================================
	// AUTOSAVE SETTINGS
	// =========================================================================

	// AutosaveMinutes is the autosave tick interval in minutes.
	// Default: 5
	AutosaveMinutes int `yaml:"autosave_minutes"`
}

// DraftStoreConfig configures the locally persisted draft.
type DraftStoreConfig struct {
	// Path is the draft file location. Default: "./draft.json"
	Path string `yaml:"path"`

	// MaxBytes is the storage quota for the serialized draft. Zero disables
	// the quota. Default: 5 MiB, mirroring the browser storage budget the
	// draft was originally sized against.
	MaxBytes int64 `yaml:"max_bytes"`
}

// LookupConfig configures the external directory clients.
type LookupConfig struct {
	// ViaCEPBaseURL is the postal-code service base URL.
	ViaCEPBaseURL string `yaml:"viacep_base_url"`

	// IBGEBaseURL is the municipality service base URL.
	IBGEBaseURL string `yaml:"ibge_base_url"`

	// ReceitaWSBaseURL is the company-registry service base URL.
	ReceitaWSBaseURL string `yaml:"receitaws_base_url"`

	// DebounceMillis is the quiet period after a field edit before its
	// lookup fires. Default: 500
	DebounceMillis int `yaml:"debounce_ms"`
}

// ArchiveRetention returns the archive retention window as a duration.
// A zero duration means archives are kept forever.
func (c *Config) ArchiveRetention() time.Duration {
	return time.Duration(c.ArchiveRetentionDays) * 24 * time.Hour
}

// AutosaveInterval returns the autosave interval as a duration.
func (c *Config) AutosaveInterval() time.Duration {
	return time.Duration(c.AutosaveMinutes) * time.Minute
}

// Debounce returns the lookup quiet period as a duration.
func (c *LookupConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMillis) * time.Millisecond
}

// Load reads the configuration file, fills defaults, and validates it. A
// missing file is not an error: every setting has a default.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults only.
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// applyDefaults sets default values for any unset option.
func applyDefaults(cfg *Config) {
	if cfg.DraftsDir == "" {
		cfg.DraftsDir = "./drafts"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./output"
	}
	if cfg.ArchiveDir == "" {
		cfg.ArchiveDir = "./archive"
	}
	if cfg.ParticipantsFile == "" {
		cfg.ParticipantsFile = "./participantes.yaml"
	}
	if cfg.DraftStore.Path == "" {
		cfg.DraftStore.Path = "./draft.json"
	}
	if cfg.DraftStore.MaxBytes == 0 {
		cfg.DraftStore.MaxBytes = 5 << 20
	}
	if cfg.Lookups.ViaCEPBaseURL == "" {
		cfg.Lookups.ViaCEPBaseURL = "https://viacep.com.br"
	}
	if cfg.Lookups.IBGEBaseURL == "" {
		cfg.Lookups.IBGEBaseURL = "https://servicodados.ibge.gov.br"
	}
	if cfg.Lookups.ReceitaWSBaseURL == "" {
		cfg.Lookups.ReceitaWSBaseURL = "https://www.receitaws.com.br"
	}
	if cfg.Lookups.DebounceMillis == 0 {
		cfg.Lookups.DebounceMillis = 500
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.AutosaveMinutes == 0 {
		cfg.AutosaveMinutes = 5
	}
}

// validate rejects configurations the pipeline cannot run with.
func validate(cfg *Config) error {
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}

	if cfg.AutosaveMinutes < 0 {
		return fmt.Errorf("autosave_minutes must not be negative")
	}
	if cfg.ArchiveRetentionDays < 0 {
		return fmt.Errorf("archive_retention_days must not be negative")
	}
	if cfg.DraftStore.MaxBytes < 0 {
		return fmt.Errorf("draft_store.max_bytes must not be negative")
	}

	for _, dir := range []string{cfg.DraftsDir, cfg.OutputDir, cfg.ArchiveDir} {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dir, err)
			}
		}
	}
	return nil
}
