package reportlog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithoutPathDisablesFile(t *testing.T) {
	l := New(Config{Verbose: false})
	defer l.Close()
	assert.Nil(t, l.file)
	l.Progress("foo", 3) // must not panic with nothing configured
}

func TestProgressWritesToRotatedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "batch.log")

	l := New(Config{Path: path, Verbose: false})
	l.Progress("assets/banner", 4)
	l.Warn("assets/broken", assert.AnError)
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "assets/banner")
	assert.Contains(t, content, "4 variants")
	assert.Contains(t, content, "assets/broken")
}
