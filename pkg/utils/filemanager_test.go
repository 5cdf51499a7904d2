package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *FileManager {
	t.Helper()
	root := t.TempDir()
	fm := NewFileManager(filepath.Join(root, "in"), filepath.Join(root, "out"), root)
	require.NoError(t, os.MkdirAll(fm.InputDir, 0755))
	require.NoError(t, os.MkdirAll(fm.OutputDir, 0755))
	return fm
}

func TestDiscoverInputFiles(t *testing.T) {
	fm := newTestManager(t)
	for _, name := range []string{"b.pdf", "a.pdf", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(fm.InputDir, name), []byte("x"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(fm.InputDir, "dir.pdf"), 0755))

	files, err := fm.DiscoverInputFiles("*.pdf")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(fm.InputDir, "a.pdf"),
		filepath.Join(fm.InputDir, "b.pdf"),
	}, files)

	_, err = fm.DiscoverInputFiles("[")
	assert.Error(t, err)
}

func TestCopyToOutput(t *testing.T) {
	fm := newTestManager(t)
	src := filepath.Join(fm.InputDir, "scan.pdf")
	require.NoError(t, os.WriteFile(src, []byte("first"), 0644))

	dst, err := fm.CopyToOutput(src, "renamed.pdf")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(fm.OutputDir, "renamed.pdf"), dst)
	assert.FileExists(t, src)

	require.NoError(t, os.WriteFile(src, []byte("second"), 0644))
	_, err = fm.CopyToOutput(src, "renamed.pdf")
	require.NoError(t, err)
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data), "copies overwrite on name collision")

	_, err = fm.CopyToOutput(src, "../escape.pdf")
	assert.Error(t, err)
}

func TestWriteErrorLog(t *testing.T) {
	ts := time.Date(2024, 3, 5, 14, 30, 22, 0, time.Local)

	t.Run("no entries writes nothing", func(t *testing.T) {
		fm := newTestManager(t)
		path, err := fm.WriteErrorLog(nil, ts)

		require.NoError(t, err)
		assert.Empty(t, path)
		assert.NoFileExists(t, filepath.Join(fm.ReportDir, ErrorLogFileName(ts)))
	})

	t.Run("blocks separated by a blank line", func(t *testing.T) {
		fm := newTestManager(t)
		entries := []ErrorLogEntry{
			{FileName: "a.pdf", Text: "text a\n"},
			{FileName: "b.pdf", Text: "text b\n"},
		}
		path, err := fm.WriteErrorLog(entries, ts)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(fm.ReportDir, "error_20240305_1430.txt"), path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "a.pdf\ntext a\n\n\nb.pdf\ntext b\n\n\n", string(data))
	})
}

func TestWriteErrorLogTo(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteErrorLogTo(&buf, []ErrorLogEntry{{FileName: "x.pdf", Text: "body"}}))
	assert.Equal(t, "x.pdf\nbody\n\n", buf.String())
}
