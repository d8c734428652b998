package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/mag-rock/smart-nippo/internal/errors"
)

func TestLoadCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "vim", cfg.Editor.Command)
	assert.Equal(t, "2006-01-02", cfg.Display.DateFormat)
	assert.NotEmpty(t, cfg.Database.Path)

	// The default file was written back for the user to edit.
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestLoadReadsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("database:\n  path: /tmp/nippo-test.db\neditor:\n  command: nano\n")
	require.NoError(t, os.WriteFile(path, content, 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/nippo-test.db", cfg.Database.Path)
	assert.Equal(t, "nano", cfg.Editor.Command)
	// Unset sections fall back to defaults.
	assert.Equal(t, "15:04", cfg.Display.TimeFormat)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database: [unclosed"), 0600))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, apperrors.IsConfiguration(err))
}

func TestDatabasePathExpandsTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	cfg := &Config{Database: DatabaseConfig{Path: "~/.smart-nippo/data.db"}}
	assert.Equal(t, filepath.Join(home, ".smart-nippo", "data.db"), cfg.DatabasePath())

	explicit := &Config{Database: DatabaseConfig{Path: "/var/lib/nippo.db"}}
	assert.Equal(t, "/var/lib/nippo.db", explicit.DatabasePath())

	empty := &Config{}
	assert.NotEmpty(t, empty.DatabasePath())
}
