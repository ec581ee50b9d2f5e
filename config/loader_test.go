package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spring-operator/spring-release/release"
)

func writeSettingsFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	settings, path, err := LoadWithOptions(context.Background(), LoadOptions{
		Dir:            t.TempDir(),
		SkipUserConfig: true,
	})

	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, Default(), settings)
}

func TestLoadProjectFile(t *testing.T) {
	dir := t.TempDir()
	writeSettingsFile(t, filepath.Join(dir, ProjectFileName), `
version: "1.2.3"
scope: "patch"
push_tags: false
hook_retries: 2
hooks: {
	verify: [["go", "test", "./..."]]
}
projects: [{
	name: "server"
	path: "cmd/server"
}]
`)

	settings, path, err := LoadWithOptions(context.Background(), LoadOptions{
		Dir:            dir,
		SkipUserConfig: true,
	})

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ProjectFileName), path)
	assert.Equal(t, "1.2.3", settings.Version)
	assert.Equal(t, "patch", settings.Scope)
	assert.False(t, settings.PushTags)
	assert.Equal(t, 2, settings.HookRetries)
	assert.Equal(t, []Hook{{"go", "test", "./..."}}, settings.Hooks.Verify)
	require.Len(t, settings.Projects, 1)
	assert.Equal(t, "server", settings.Projects[0].Name)
	assert.Equal(t, "cmd/server", settings.Projects[0].Path)

	// Fields the file does not mention keep their defaults.
	assert.Equal(t, "v", settings.TagPrefix)
	assert.Equal(t, "origin", settings.Remote)
}

func TestLoadExplicitPath(t *testing.T) {
	t.Run("loads the given file", func(t *testing.T) {
		dir := t.TempDir()
		custom := filepath.Join(dir, "custom.cue")
		writeSettingsFile(t, custom, `scope: "major"`)

		settings, path, err := LoadWithOptions(context.Background(), LoadOptions{
			ConfigFilePath: custom,
			SkipUserConfig: true,
		})

		require.NoError(t, err)
		assert.Equal(t, custom, path)
		assert.Equal(t, "major", settings.Scope)
	})

	t.Run("missing explicit file is an error", func(t *testing.T) {
		_, _, err := LoadWithOptions(context.Background(), LoadOptions{
			ConfigFilePath: filepath.Join(t.TempDir(), "absent.cue"),
			SkipUserConfig: true,
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestLoadUserConfigLayer(t *testing.T) {
	configHome := t.TempDir()
	writeSettingsFile(t, filepath.Join(configHome, AppName, "config.cue"), `
tag_prefix: "rel-"
scope: "patch"
`)
	t.Setenv("XDG_CONFIG_HOME", configHome)
	xdg.Reload()

	dir := t.TempDir()
	writeSettingsFile(t, filepath.Join(dir, ProjectFileName), `scope: "major"`)

	settings, _, err := LoadWithOptions(context.Background(), LoadOptions{Dir: dir})

	require.NoError(t, err)
	assert.Equal(t, "rel-", settings.TagPrefix, "user config applies")
	assert.Equal(t, "major", settings.Scope, "project file overrides user config")
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeSettingsFile(t, filepath.Join(dir, ProjectFileName), `
scope: "patch"
push_tags: true
`)
	t.Setenv("SPRING_RELEASE_SCOPE", "major")
	t.Setenv("SPRING_RELEASE_PUSH_TAGS", "false")

	settings, _, err := LoadWithOptions(context.Background(), LoadOptions{
		Dir:            dir,
		SkipUserConfig: true,
	})

	require.NoError(t, err)
	assert.Equal(t, "major", settings.Scope)
	assert.False(t, settings.PushTags)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	writeSettingsFile(t, filepath.Join(dir, ProjectFileName), `bogus: true`)

	_, _, err := LoadWithOptions(context.Background(), LoadOptions{
		Dir:            dir,
		SkipUserConfig: true,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not allowed")
}

func TestLoadRejectsSchemaViolations(t *testing.T) {
	dir := t.TempDir()
	writeSettingsFile(t, filepath.Join(dir, ProjectFileName), `scope: "enormous"`)

	_, _, err := LoadWithOptions(context.Background(), LoadOptions{
		Dir:            dir,
		SkipUserConfig: true,
	})

	require.Error(t, err)
}

func TestLoadRejectsMalformedCUE(t *testing.T) {
	dir := t.TempDir()
	writeSettingsFile(t, filepath.Join(dir, ProjectFileName), `scope: "unterminated`)

	_, _, err := LoadWithOptions(context.Background(), LoadOptions{
		Dir:            dir,
		SkipUserConfig: true,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid CUE")
}

func TestLoadValidatesEnvValues(t *testing.T) {
	// Environment overrides bypass the CUE schema, so semantic validation
	// has to catch them.
	t.Setenv("SPRING_RELEASE_SCOPE", "enormous")

	_, _, err := LoadWithOptions(context.Background(), LoadOptions{
		Dir:            t.TempDir(),
		SkipUserConfig: true,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, release.ErrConfiguration)
}

func TestLoadSkipValidation(t *testing.T) {
	t.Setenv("SPRING_RELEASE_SCOPE", "enormous")

	settings, _, err := LoadWithOptions(context.Background(), LoadOptions{
		Dir:            t.TempDir(),
		SkipUserConfig: true,
		SkipValidation: true,
	})

	require.NoError(t, err)
	assert.Equal(t, "enormous", settings.Scope)
}

func TestLoadCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := LoadWithOptions(ctx, LoadOptions{SkipUserConfig: true})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
