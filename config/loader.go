package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

//go:embed config_schema.cue
var settingsSchema string

// LoadOptions configures the behavior of settings loading operations.
type LoadOptions struct {
	// Dir is the directory searched for the project file (release.cue).
	// Defaults to the current directory.
	Dir string

	// ConfigFilePath loads the given file instead of Dir/release.cue.
	// Unlike the implicit lookup, the file must exist.
	ConfigFilePath string

	// SkipUserConfig ignores the per-user config file.
	SkipUserConfig bool

	// SkipValidation disables semantic validation after loading.
	// Schema validation still applies to every file read.
	SkipValidation bool
}

// Load assembles settings for the repository in the current directory.
// It returns the settings and the path of the project file that was loaded,
// or an empty path when only defaults, user config, and environment applied.
func Load(ctx context.Context) (*Settings, string, error) {
	return LoadWithOptions(ctx, LoadOptions{})
}

// LoadWithOptions assembles settings with custom options.
//
// Layers are applied in order, later ones winning: built-in defaults, the
// user config file ($XDG_CONFIG_HOME/spring-release/config.cue), the project
// file, then SPRING_RELEASE_* environment variables.
func LoadWithOptions(ctx context.Context, opts LoadOptions) (*Settings, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load settings canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	// Set defaults
	defaults := Default()
	v.SetDefault("version", defaults.Version)
	v.SetDefault("use_last_tag", defaults.UseLastTag)
	v.SetDefault("scope", defaults.Scope)
	v.SetDefault("initial_version", defaults.InitialVersion)
	v.SetDefault("tag_prefix", defaults.TagPrefix)
	v.SetDefault("remote", defaults.Remote)
	v.SetDefault("push_tags", defaults.PushTags)
	v.SetDefault("hook_retries", defaults.HookRetries)

	if !opts.SkipUserConfig {
		if userPath, err := xdg.SearchConfigFile(filepath.Join(AppName, "config.cue")); err == nil {
			if err := loadCUEIntoViper(v, userPath); err != nil {
				return nil, "", fmt.Errorf("failed to load user settings from %q: %w", userPath, err)
			}
		}
	}

	resolvedPath := ""

	if opts.ConfigFilePath != "" {
		// An explicit file must exist; the implicit lookup below may not.
		if !fileExists(opts.ConfigFilePath) {
			return nil, "", fmt.Errorf("settings file not found: %s", opts.ConfigFilePath)
		}
		if err := loadCUEIntoViper(v, opts.ConfigFilePath); err != nil {
			return nil, "", fmt.Errorf("failed to load settings from %q: %w", opts.ConfigFilePath, err)
		}
		resolvedPath = opts.ConfigFilePath
	} else {
		projectPath := filepath.Join(dirOrCurrent(opts.Dir), ProjectFileName)
		if fileExists(projectPath) {
			if err := loadCUEIntoViper(v, projectPath); err != nil {
				return nil, "", fmt.Errorf("failed to load settings from %q: %w", projectPath, err)
			}
			resolvedPath = projectPath
		}
		// No project file found: defaults, user config, and env apply.
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, "", fmt.Errorf("failed to parse settings: %w", err)
	}

	if !opts.SkipValidation {
		if err := settings.Validate(); err != nil {
			return nil, "", err
		}
	}

	return &settings, resolvedPath, nil
}

// loadCUEIntoViper parses a CUE file, validates it against the #Settings
// schema, and merges its contents into viper.
//
// The decode target is map[string]any rather than Settings so the file can
// be merged into viper's layered config, preserving defaults and allowing
// environment overrides. Concrete(false) keeps omitted fields legal.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read settings file: %w", err)
	}

	cuectx := cuecontext.New()

	schemaValue := cuectx.CompileString(settingsSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile settings schema: %w", schemaValue.Err())
	}

	userValue := cuectx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return fmt.Errorf("invalid CUE: %w", userValue.Err())
	}

	schema := schemaValue.LookupPath(cue.ParsePath("#Settings"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return fmt.Errorf("settings do not match schema: %w", err)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return fmt.Errorf("failed to decode settings: %w", err)
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge settings: %w", err)
	}

	return nil
}

// dirOrCurrent falls back to the current directory for an empty dir.
func dirOrCurrent(dir string) string {
	if dir == "" {
		return "."
	}
	return dir
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
