package listfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.txt")
	require.NoError(t, os.WriteFile(path, []byte("молоко\n\n  \nхлеб\n"), 0o644))

	items, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"молоко", "хлеб"}, items)
}

func TestLoadMissingFileFallsBackToDefault(t *testing.T) {
	items, err := Load(filepath.Join(t.TempDir(), "missing.txt"))
	require.NoError(t, err)
	assert.Equal(t, []string{DefaultItem}, items)
}

func TestLoadEmptyFileFallsBackToDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.txt")
	require.NoError(t, os.WriteFile(path, []byte("\n\n"), 0o644))

	items, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{DefaultItem}, items)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.txt")
	want := []string{"молоко 3,2%", "хлеб бородинский", "сыр"}

	require.NoError(t, Save(path, want))

	items, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, items)
}

func TestSaveReplacesExistingList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.txt")
	require.NoError(t, Save(path, []string{"старый список"}))
	require.NoError(t, Save(path, []string{"новый список"}))

	items, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"новый список"}, items)

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
