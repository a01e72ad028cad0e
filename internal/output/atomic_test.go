package output

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.tsv")

	require.NoError(t, WriteFileAtomic(path, func(f *os.File) error {
		_, err := f.WriteString("hello\n")
		return err
	}))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(content))
}

func TestWriteFileAtomic_NoPartialOnError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "summary.tsv")

	err := WriteFileAtomic(path, func(f *os.File) error {
		_, _ = f.WriteString("partial")
		return fmt.Errorf("render failed")
	})
	require.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "failed render must not leave the target file")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "temp file is cleaned up")
}
