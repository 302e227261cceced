package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/project-monet/monet-bot/internal/currency"
	"github.com/project-monet/monet-bot/internal/model"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	s := Load(filepath.Join(t.TempDir(), "prefs.yaml"))
	assert.Equal(t, model.ThemeLight, s.Theme())
	assert.Equal(t, currency.USD, s.Currency())
}

func TestSetAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")

	s := Load(path)
	require.NoError(t, s.SetTheme(model.ThemeOLED))
	require.NoError(t, s.SetCurrency(currency.JPY))

	reloaded := Load(path)
	assert.Equal(t, model.ThemeOLED, reloaded.Theme())
	assert.Equal(t, currency.JPY, reloaded.Currency())
}

func TestLoad_UnknownIdentifiersFallBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: neon\ncurrency: XYZ\n"), 0o600))

	s := Load(path)
	assert.Equal(t, model.ThemeLight, s.Theme())
	assert.Equal(t, currency.USD, s.Currency())
}

func TestLoad_MalformedFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":[not yaml"), 0o600))

	s := Load(path)
	assert.Equal(t, model.ThemeLight, s.Theme())
	assert.Equal(t, currency.USD, s.Currency())
}

func TestSetTheme_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "prefs.yaml")

	s := Load(path)
	require.NoError(t, s.SetTheme(model.ThemeDark))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}
