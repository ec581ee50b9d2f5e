package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// StarterCUE renders a commented settings file seeded with the defaults.
// Everything in it is optional; a repository with no settings file at all
// releases with exactly these values.
func StarterCUE() string {
	defaults := Default()

	return fmt.Sprintf(`// Release settings.
//
// Every field is optional. Values here override the built-in defaults and
// the per-user config file, and are themselves overridden by
// %s_* environment variables.

// scope selects how the inferred version is bumped relative to the last
// release: "major", "minor", "patch", or "auto" to derive the bump from
// conventional commit subjects.
scope: %q

// initial_version seeds the first release of a repository without version tags.
initial_version: %q

// tag_prefix is prepended to release tags, e.g. %q produces "%s1.2.0.RELEASE".
tag_prefix: %q

// remote receives release tags after tagging. Tags stay local when the
// remote is missing or push_tags is false.
remote: %q
push_tags: %t

// version pins the release version instead of inferring it from tags.
// version: "1.2.0"

// use_last_tag promotes the newest existing version tag instead of
// computing a new version. Tagging is skipped in this mode.
// use_last_tag: true

// hooks run around a release: verify before tagging, publish after a
// successful tag. Each hook is a command given as an argument vector.
// hooks: {
//     verify: [["go", "test", "./..."]]
//     publish: [["make", "publish"]]
// }

// hook_retries re-runs a failing hook up to N more times. Hooks run
// exactly once by default.
// hook_retries: 0

// projects declares sub-projects of a multi-project repository. Project
// hooks run after the repository-level ones, from the project path.
// projects: [{
//     name: "server"
//     path: "cmd/server"
// }]
`,
		EnvPrefix,
		defaults.Scope,
		defaults.InitialVersion,
		defaults.TagPrefix, defaults.TagPrefix,
		defaults.TagPrefix,
		defaults.Remote,
		defaults.PushTags,
	)
}

// WriteStarter writes a starter settings file to path. It refuses to
// overwrite an existing file.
func WriteStarter(path string) error {
	if fileExists(path) {
		return fmt.Errorf("settings file already exists: %s", path)
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create settings directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(StarterCUE()), 0o644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}

// UserConfigPath returns the preferred location of the per-user settings
// file, creating parent directories as needed.
func UserConfigPath() (string, error) {
	path, err := xdg.ConfigFile(filepath.Join(AppName, "config.cue"))
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config path: %w", err)
	}
	return path, nil
}
