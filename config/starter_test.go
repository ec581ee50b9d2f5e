package config

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteStarter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ProjectFileName)

	require.NoError(t, WriteStarter(path))

	// The starter must load cleanly and reproduce the defaults: its
	// concrete fields restate them and everything else is commented out.
	settings, resolved, err := LoadWithOptions(context.Background(), LoadOptions{
		Dir:            dir,
		SkipUserConfig: true,
	})
	require.NoError(t, err)
	assert.Equal(t, path, resolved)
	assert.Equal(t, Default(), settings)
}

func TestWriteStarterRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ProjectFileName)
	writeSettingsFile(t, path, `scope: "patch"`)

	err := WriteStarter(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestWriteStarterCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", ProjectFileName)

	require.NoError(t, WriteStarter(path))
	assert.True(t, fileExists(path))
}

func TestUserConfigPath(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	xdg.Reload()

	path, err := UserConfigPath()

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(configHome, AppName, "config.cue"), path)
}
