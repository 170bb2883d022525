package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_OverridesAndDefaults(t *testing.T) {
	th, err := Parse([]byte("accent: \"#ff0000\"\nunknown_key: 1\n"))
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", th.Palette.Accent)
	assert.Equal(t, DefaultPalette().Text, th.Palette.Text)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("{{{"))
	assert.Error(t, err)
}

func TestCache_LoadsOncePerPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.yaml")
	require.NoError(t, os.WriteFile(path, []byte("header: \"#123456\"\n"), 0644))

	c := NewCache()
	th, err := c.Get(path)
	require.NoError(t, err)
	assert.Equal(t, "#123456", th.Palette.Header)

	// Rewriting the file does not change the cached theme.
	require.NoError(t, os.WriteFile(path, []byte("header: \"#654321\"\n"), 0644))
	th, err = c.Get(path)
	require.NoError(t, err)
	assert.Equal(t, "#123456", th.Palette.Header)
	assert.Equal(t, 1, c.Len())
}

func TestCache_MissingFileFallsBack(t *testing.T) {
	c := NewCache()
	th, err := c.Get(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, DefaultPalette(), th.Palette)
}

func TestCache_EmptyPath(t *testing.T) {
	c := NewCache()
	th, err := c.Get("")
	require.NoError(t, err)
	assert.Equal(t, DefaultPalette(), th.Palette)
	assert.Equal(t, 0, c.Len())
}
