package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanImagesFindsRecognizedFormats(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.png"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "c.JPG"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".hidden"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden", "d.png"), []byte("x"), 0o644))

	sources, err := ScanImages(dir)
	require.NoError(t, err)
	require.Len(t, sources, 2)

	byKey := map[string]Source{}
	for _, s := range sources {
		byKey[s.Key] = s
	}
	assert.Equal(t, "png", byKey["a"].Format)
	assert.Equal(t, "jpeg", byKey["nested/c"].Format)
}

func TestScanImagesEmptyDir(t *testing.T) {
	dir := t.TempDir()
	sources, err := ScanImages(dir)
	require.NoError(t, err)
	assert.Empty(t, sources)
}
