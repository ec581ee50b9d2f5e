package config

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/spring-operator/spring-release/release"
)

// Validate checks semantic constraints that the CUE schema cannot express,
// or that environment overrides can bypass.
//
// Specifically, it validates:
//   - Version and InitialVersion parse as semantic versions
//   - Scope names one of the known strategies
//   - HookRetries is not negative
//   - Project names and paths are unique
//   - Hook command lines are not empty
//
// Note: schema-level validation (types, formats, required fields) is handled
// by CUE when settings come from a file.
func (s *Settings) Validate() error {
	var validationErrors []string

	if err := validateVersions(s); err != nil {
		validationErrors = append(validationErrors, err.Error())
	}
	if s.Scope != "" {
		if _, err := release.ParseScope(s.Scope); err != nil {
			validationErrors = append(validationErrors, err.Error())
		}
	}
	if s.HookRetries < 0 {
		validationErrors = append(validationErrors,
			fmt.Sprintf("hook_retries must not be negative, got %d", s.HookRetries))
	}
	if err := validateProjects(s.Projects); err != nil {
		validationErrors = append(validationErrors, err.Error())
	}
	if err := validateHooks("", s.Hooks); err != nil {
		validationErrors = append(validationErrors, err.Error())
	}
	for _, project := range s.Projects {
		if err := validateHooks(project.Name, project.Hooks); err != nil {
			validationErrors = append(validationErrors, err.Error())
		}
	}

	if len(validationErrors) > 0 {
		return release.WrapErrorf(release.ErrConfiguration,
			"settings validation failed: %s", strings.Join(validationErrors, "; "))
	}

	return nil
}

// validateVersions checks that version fields parse. The explicit version
// may carry a release suffix or prerelease tail; the initial version must
// be a bare major.minor.patch.
func validateVersions(s *Settings) error {
	if s.Version != "" {
		trimmed := strings.TrimSuffix(s.Version, release.ReleaseSuffix)
		if _, err := semver.NewVersion(trimmed); err != nil {
			return fmt.Errorf("version %q is not a semantic version", s.Version)
		}
	}

	if s.InitialVersion != "" {
		if _, err := semver.StrictNewVersion(s.InitialVersion); err != nil {
			return fmt.Errorf("initial_version %q is not of the form major.minor.patch", s.InitialVersion)
		}
	}

	return nil
}

// validateProjects ensures project names are present and that names and
// paths do not collide.
func validateProjects(projects []Project) error {
	var problems []string

	names := make(map[string]bool, len(projects))
	paths := make(map[string]string, len(projects))

	for i, project := range projects {
		if project.Name == "" {
			problems = append(problems, fmt.Sprintf("project %d has no name", i))
			continue
		}
		if names[project.Name] {
			problems = append(problems, fmt.Sprintf("duplicate project name %q", project.Name))
		}
		names[project.Name] = true

		if project.Path == "" {
			continue
		}
		if owner, taken := paths[project.Path]; taken {
			problems = append(problems,
				fmt.Sprintf("projects %q and %q share path %q", owner, project.Name, project.Path))
			continue
		}
		paths[project.Path] = project.Name
	}

	if len(problems) > 0 {
		return fmt.Errorf("%s", strings.Join(problems, "; "))
	}

	return nil
}

// validateHooks rejects hooks without a command. The owner is the project
// name, or empty for repository-level hooks.
func validateHooks(owner string, hooks Hooks) error {
	where := "repository"
	if owner != "" {
		where = fmt.Sprintf("project %q", owner)
	}

	for i, hook := range hooks.Verify {
		if len(hook) == 0 {
			return fmt.Errorf("%s verify hook %d has no command", where, i)
		}
	}
	for i, hook := range hooks.Publish {
		if len(hook) == 0 {
			return fmt.Errorf("%s publish hook %d has no command", where, i)
		}
	}

	return nil
}
