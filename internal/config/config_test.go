package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadMainConfig(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := LoadMainConfig(filepath.Join(t.TempDir(), "absent.yaml"))

		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
		assert.Equal(t, "./input", cfg.InputDir)
		assert.Equal(t, "./output", cfg.OutputDir)
		assert.Equal(t, ".", cfg.ReportDir)
		assert.Equal(t, "*.pdf", cfg.FilePattern)
		assert.Equal(t, FormatCSV, cfg.TableFormat)
		assert.Equal(t, 1, cfg.MaxConcurrency)
		assert.False(t, cfg.FailFast)
	})

	t.Run("reads values", func(t *testing.T) {
		path := writeConfig(t, `
input_dir: ./receipts
output_dir: ./renamed
report_dir: ./reports
table_format: XLSX
log_level: debug
max_concurrency: 4
fail_fast: true
`)
		cfg, err := LoadMainConfig(path)

		require.NoError(t, err)
		assert.Equal(t, "./receipts", cfg.InputDir)
		assert.Equal(t, "./renamed", cfg.OutputDir)
		assert.Equal(t, "./reports", cfg.ReportDir)
		assert.Equal(t, FormatXLSX, cfg.TableFormat)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, 4, cfg.MaxConcurrency)
		assert.True(t, cfg.FailFast)
	})

	t.Run("rejects unknown table format", func(t *testing.T) {
		_, err := LoadMainConfig(writeConfig(t, "table_format: json\n"))
		assert.ErrorContains(t, err, "table_format")
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		_, err := LoadMainConfig(writeConfig(t, "input_dir: [\n"))
		assert.ErrorContains(t, err, "failed to parse config file")
	})
}

func TestEnsureDirectories(t *testing.T) {
	root := t.TempDir()
	cfg := Default()
	cfg.InputDir = root
	cfg.OutputDir = filepath.Join(root, "out")
	cfg.ReportDir = filepath.Join(root, "reports")

	require.NoError(t, cfg.EnsureDirectories())
	assert.DirExists(t, cfg.OutputDir)
	assert.DirExists(t, cfg.ReportDir)

	cfg.InputDir = filepath.Join(root, "missing")
	assert.Error(t, cfg.EnsureDirectories())
}
