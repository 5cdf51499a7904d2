// =============================================================================
// Receipt Analyzer - Configuration Module
// =============================================================================
//
// This module loads the run configuration from a YAML file. Every setting has
// a default, so the analyzer also runs without any configuration file:
//
//   input/                 receipt PDFs to analyze
//   output/                renamed copies of the valid receipts
//   list_YYYYMMDD_hhmm.csv the extracted table
//   error_YYYYMMDD_hhmm.txt text of receipts that failed extraction
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// Table formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// MainConfig holds the run configuration.
type MainConfig struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is the directory scanned for receipt documents.
	// Default: "./input"
	InputDir string `yaml:"input_dir"`

	// OutputDir receives a renamed copy of every valid receipt.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// ReportDir receives the table and the error log.
	// Default: "."
	ReportDir string `yaml:"report_dir"`

	// FilePattern is the glob matched against file names in InputDir.
	// Default: "*.pdf"
	FilePattern string `yaml:"file_pattern"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// TableFormat is "csv" or "xlsx".
	// Default: "csv"
	TableFormat string `yaml:"table_format"`

	// DryRun extracts and logs without writing or copying anything.
	DryRun bool `yaml:"dry_run"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// MaxConcurrency is the number of documents extracted at once.
	// Default: 1 (sequential)
	MaxConcurrency int `yaml:"max_concurrency"`

	// FailFast aborts the run on the first unreadable document or failed
	// copy. When false those documents are skipped and reported.
	// Default: false
	FailFast bool `yaml:"fail_fast"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns a configuration with every default applied.
func Default() *MainConfig {
	var cfg MainConfig
	applyMainConfigDefaults(&cfg)
	return &cfg
}

// LoadMainConfig loads the main configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the configuration file.
//
// RETURNS:
//   - A pointer to the MainConfig struct. A missing file yields the
//     defaults.
//   - An error if the file cannot be read or parsed, or holds invalid values.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	data, err := os.ReadFile(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config MainConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyMainConfigDefaults(&config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.InputDir == "" {
		config.InputDir = "./input"
	}
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.ReportDir == "" {
		config.ReportDir = "."
	}
	if config.FilePattern == "" {
		config.FilePattern = "*.pdf"
	}
	if config.TableFormat == "" {
		config.TableFormat = FormatCSV
	}
	config.TableFormat = strings.ToLower(config.TableFormat)
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.MaxConcurrency <= 0 {
		config.MaxConcurrency = 1
	}
}

// Validate checks values that have no usable default.
func (c *MainConfig) Validate() error {
	switch c.TableFormat {
	case FormatCSV, FormatXLSX:
	default:
		return fmt.Errorf("unsupported table_format %q (want %q or %q)", c.TableFormat, FormatCSV, FormatXLSX)
	}
	if strings.ContainsAny(c.FilePattern, "/\\") {
		return fmt.Errorf("file_pattern %q must not contain a path separator", c.FilePattern)
	}
	return nil
}

// EnsureDirectories creates the output and report directories.
// The input directory must already exist.
func (c *MainConfig) EnsureDirectories() error {
	info, err := os.Stat(c.InputDir)
	if err != nil {
		return fmt.Errorf("input directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("input directory %s is not a directory", c.InputDir)
	}

	for _, dir := range []string{c.OutputDir, c.ReportDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
