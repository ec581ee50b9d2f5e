// Package config provides parsing, validation, and convenient access to
// spring-release settings defined in CUE format.
//
// Settings are assembled from four layers, later layers overriding earlier
// ones: built-in defaults, the user config file
// ($XDG_CONFIG_HOME/spring-release/config.cue), the project file
// (release.cue at the repository root), and SPRING_RELEASE_* environment
// variables.
//
// # Basic Usage
//
// Load settings for the current repository:
//
//	import (
//	    "context"
//	    "github.com/spring-operator/spring-release/config"
//	)
//
//	func main() {
//	    ctx := context.Background()
//
//	    settings, path, err := config.Load(ctx)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if path != "" {
//	        fmt.Println("loaded", path)
//	    }
//
//	    fmt.Println(settings.TagPrefix, settings.Scope)
//	}
//
// Project files are validated against the embedded #Settings schema, so
// misspelled keys and out-of-range values fail at load time rather than
// surfacing as silently ignored configuration.
//
// # Advanced Usage
//
// Skip validation during loading:
//
//	opts := config.LoadOptions{Dir: ".", SkipValidation: true}
//	settings, _, err := config.LoadWithOptions(ctx, opts)
package config

import (
	"sort"
)

const (
	// AppName is the tool name, used for the user config directory.
	AppName = "spring-release"

	// ProjectFileName is the project-level settings file looked up at the
	// repository root.
	ProjectFileName = "release.cue"

	// EnvPrefix is the prefix for environment variable overrides.
	EnvPrefix = "SPRING_RELEASE"
)

// Hook is the argv of an external command run during a release.
// The first element is the executable, the rest are its arguments.
type Hook []string

// Hooks groups the external commands run around a release.
type Hooks struct {
	// Verify hooks run after resolution, before any tag is cut.
	// A failing verify hook aborts the release.
	Verify []Hook `mapstructure:"verify"`

	// Publish hooks run last, after tagging, and perform the actual
	// artifact delivery.
	Publish []Hook `mapstructure:"publish"`
}

// Project carries per-project overrides for multi-project repositories.
// All projects share the repository's single release context; only hooks
// vary per project.
type Project struct {
	// Name identifies the project in CLI selection and logs.
	Name string `mapstructure:"name"`

	// Path is the project directory relative to the repository root.
	// Hooks for this project run with Path as their working directory.
	Path string `mapstructure:"path"`

	// Hooks are run in addition to the repository-level hooks.
	Hooks Hooks `mapstructure:"hooks"`
}

// Settings is the full spring-release configuration for a repository.
// Values are immutable after loading.
type Settings struct {
	// Version is an explicit version override. Empty means the version is
	// computed from the stage and tag history.
	Version string `mapstructure:"version"`

	// UseLastTag releases the most recent version tag instead of computing
	// a new version.
	UseLastTag bool `mapstructure:"use_last_tag"`

	// Scope selects the component bumped from the last final release:
	// "major", "minor", "patch", or "auto" (inferred from commit subjects).
	Scope string `mapstructure:"scope"`

	// InitialVersion is used by repositories that have never been released.
	InitialVersion string `mapstructure:"initial_version"`

	// TagPrefix is prepended to version strings to form tag names.
	TagPrefix string `mapstructure:"tag_prefix"`

	// Remote names the git remote used for pushing release tags.
	Remote string `mapstructure:"remote"`

	// PushTags pushes release tags to the remote after creating them.
	PushTags bool `mapstructure:"push_tags"`

	// HookRetries is the number of additional attempts for a failing hook.
	// Zero, the default, runs every hook exactly once.
	HookRetries int `mapstructure:"hook_retries"`

	// Hooks are the repository-level verify and publish commands.
	Hooks Hooks `mapstructure:"hooks"`

	// Projects holds per-project overrides for multi-project repositories.
	Projects []Project `mapstructure:"projects"`
}

// Default returns the built-in settings used when no configuration file
// is present.
func Default() *Settings {
	return &Settings{
		Scope:          "minor",
		InitialVersion: "0.1.0",
		TagPrefix:      "v",
		Remote:         "origin",
		PushTags:       true,
	}
}

// Project helper methods

// HasProject checks if a project with the given name is configured.
func (s *Settings) HasProject(name string) bool {
	for _, project := range s.Projects {
		if project.Name == name {
			return true
		}
	}
	return false
}

// GetProject retrieves a project by name.
// Returns the project and true if found, or nil and false if not found.
func (s *Settings) GetProject(name string) (*Project, bool) {
	for i := range s.Projects {
		if s.Projects[i].Name == name {
			return &s.Projects[i], true
		}
	}
	return nil, false
}

// ListProjects returns a sorted list of all configured project names.
// The list is sorted alphabetically for deterministic output.
func (s *Settings) ListProjects() []string {
	names := make([]string, 0, len(s.Projects))
	for _, project := range s.Projects {
		names = append(names, project.Name)
	}
	sort.Strings(names)
	return names
}

// Hook helper methods

// VerifyHooks returns the verify hooks to run for the given project:
// repository-level hooks first, then the project's own. An empty project
// name returns only the repository-level hooks.
func (s *Settings) VerifyHooks(project string) []Hook {
	hooks := append([]Hook(nil), s.Hooks.Verify...)
	if p, ok := s.GetProject(project); ok {
		hooks = append(hooks, p.Hooks.Verify...)
	}
	return hooks
}

// PublishHooks returns the publish hooks to run for the given project:
// repository-level hooks first, then the project's own. An empty project
// name returns only the repository-level hooks.
func (s *Settings) PublishHooks(project string) []Hook {
	hooks := append([]Hook(nil), s.Hooks.Publish...)
	if p, ok := s.GetProject(project); ok {
		hooks = append(hooks, p.Hooks.Publish...)
	}
	return hooks
}
