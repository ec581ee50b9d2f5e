package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	defaults := Default()

	assert.Empty(t, defaults.Version)
	assert.False(t, defaults.UseLastTag)
	assert.Equal(t, "minor", defaults.Scope)
	assert.Equal(t, "0.1.0", defaults.InitialVersion)
	assert.Equal(t, "v", defaults.TagPrefix)
	assert.Equal(t, "origin", defaults.Remote)
	assert.True(t, defaults.PushTags)
	assert.Empty(t, defaults.Projects)
}

func TestProjectLookup(t *testing.T) {
	settings := &Settings{
		Projects: []Project{
			{Name: "server", Path: "cmd/server"},
			{Name: "client"},
		},
	}

	assert.True(t, settings.HasProject("server"))
	assert.False(t, settings.HasProject("worker"))

	project, ok := settings.GetProject("server")
	require.True(t, ok)
	assert.Equal(t, "cmd/server", project.Path)

	_, ok = settings.GetProject("worker")
	assert.False(t, ok)

	assert.Equal(t, []string{"client", "server"}, settings.ListProjects())
}

func TestHookMerging(t *testing.T) {
	settings := &Settings{
		Hooks: Hooks{
			Verify:  []Hook{{"go", "test", "./..."}},
			Publish: []Hook{{"make", "publish"}},
		},
		Projects: []Project{
			{
				Name: "server",
				Hooks: Hooks{
					Verify: []Hook{{"go", "vet", "./cmd/server"}},
				},
			},
		},
	}

	t.Run("project hooks run after repository hooks", func(t *testing.T) {
		hooks := settings.VerifyHooks("server")
		require.Len(t, hooks, 2)
		assert.Equal(t, Hook{"go", "test", "./..."}, hooks[0])
		assert.Equal(t, Hook{"go", "vet", "./cmd/server"}, hooks[1])
	})

	t.Run("project without own hooks inherits repository hooks", func(t *testing.T) {
		assert.Equal(t, []Hook{{"make", "publish"}}, settings.PublishHooks("server"))
	})

	t.Run("empty project name returns repository hooks only", func(t *testing.T) {
		assert.Equal(t, []Hook{{"go", "test", "./..."}}, settings.VerifyHooks(""))
	})

	t.Run("unknown project name returns repository hooks only", func(t *testing.T) {
		assert.Equal(t, []Hook{{"go", "test", "./..."}}, settings.VerifyHooks("worker"))
	})

	t.Run("merged slice does not alias settings", func(t *testing.T) {
		hooks := settings.VerifyHooks("")
		hooks[0] = Hook{"true"}
		assert.Equal(t, Hook{"go", "test", "./..."}, settings.Hooks.Verify[0])
	})
}
