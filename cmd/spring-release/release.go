package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5/osfs"

	"github.com/spring-operator/spring-release/config"
	"github.com/spring-operator/spring-release/git"
	"github.com/spring-operator/spring-release/hook"
	"github.com/spring-operator/spring-release/release"
)

// hookRetryDelay is the pause between attempts when hook_retries is set.
const hookRetryDelay = time.Second

// stageOptions carries the behavior flags of one stage command invocation.
type stageOptions struct {
	dryRun bool
	noTag  bool
	noPush bool
}

// releaseRun bundles everything one invocation needs: loaded settings, the
// repository (when there is one), and the resolver built from both. The
// release context itself is resolved exactly once, inside execute.
type releaseRun struct {
	settings *config.Settings
	repo     *git.Repo // nil when dir holds no git repository
	resolver *release.Resolver
	dir      string
	out      io.Writer
	format   string
}

// prepareRun loads settings, opens the repository, and assembles the
// resolver. The overrides callback applies flag values onto the loaded
// settings before they are validated.
//
// A directory without a git repository is not an error: the run proceeds
// without repository state, and every step that needs it is skipped.
func prepareRun(ctx context.Context, dir, configPath string, overrides func(*config.Settings)) (*releaseRun, error) {
	settings, path, err := config.LoadWithOptions(ctx, config.LoadOptions{
		Dir:            dir,
		ConfigFilePath: configPath,
		SkipValidation: true,
	})
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		overrides(settings)
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	if path != "" {
		logger.Debug("loaded settings", "path", path)
	}

	repo, src, scm, err := openRepository(ctx, dir, settings)
	if err != nil {
		return nil, err
	}

	resolver, err := release.NewResolver(&release.Options{
		Source:          src,
		SCM:             scm,
		ExplicitVersion: settings.Version,
		UseLastTag:      settings.UseLastTag,
		Scope:           release.Scope(settings.Scope),
		InitialVersion:  settings.InitialVersion,
		TagPrefix:       settings.TagPrefix,
	})
	if err != nil {
		return nil, err
	}

	return &releaseRun{
		settings: settings,
		repo:     repo,
		resolver: resolver,
		dir:      dir,
		out:      os.Stdout,
		format:   format,
	}, nil
}

// openRepository opens the git repository at dir and detects its remote.
// A missing repository soft-disables repository-backed behavior: the
// returned repo and source are nil and the SCM info is empty.
func openRepository(ctx context.Context, dir string, settings *config.Settings) (*git.Repo, release.Source, release.SCM, error) {
	repo, err := git.Open(ctx, &git.Options{
		FS:   osfs.New(dir),
		Auth: git.NewTokenAuth(authToken()),
	})
	if err != nil {
		if errors.Is(err, git.ErrRepoNotFound) {
			logger.Debug("no git repository; continuing without repository state", "dir", dir)
			return nil, nil, release.SCM{}, nil
		}
		return nil, nil, release.SCM{}, err
	}

	scm, err := detectSCM(ctx, repo, settings.Remote)
	if err != nil {
		return nil, nil, release.SCM{}, err
	}

	return repo, repo.ReleaseSource(), scm, nil
}

// detectSCM reads the configured remote. A missing remote yields empty SCM
// info, never an error. A remote whose URL does not parse as a forge URL
// keeps the raw URL so tags can still be pushed to it.
func detectSCM(ctx context.Context, repo *git.Repo, remote string) (release.SCM, error) {
	url, ok, err := repo.RemoteURL(ctx, remote)
	if err != nil {
		return release.SCM{}, err
	}
	if !ok {
		logger.Debug("remote not configured; pushing disabled", "remote", remote)
		return release.SCM{}, nil
	}

	info, parsed := git.ParseRemoteURL(url)
	if !parsed {
		return release.SCM{URL: url}, nil
	}

	return release.SCM{
		Host:  info.Host,
		Owner: info.Owner,
		Repo:  info.Name,
		URL:   url,
	}, nil
}

// authToken resolves the tag-push token from the environment.
func authToken() string {
	if token := os.Getenv("SPRING_RELEASE_TOKEN"); token != "" {
		return token
	}
	return os.Getenv("GITHUB_TOKEN")
}

// execute resolves the release context for stage and drives the release
// steps around it: print the context, run verify hooks, ensure and push the
// release tag, run publish hooks. Dry runs stop after printing.
func (r *releaseRun) execute(ctx context.Context, stage release.Stage, invoked []string, opts stageOptions) error {
	rc, err := r.resolver.ResolveStage(ctx, stage, invoked)
	if err != nil {
		return err
	}

	if err := renderContext(r.out, rc, r.format); err != nil {
		return err
	}

	if opts.dryRun {
		r.logPlan(rc, opts)
		return nil
	}

	if err := r.runHooks(ctx, rc, hookVerify); err != nil {
		return err
	}

	if stage.Releasable() && !opts.noTag {
		pushable, err := r.ensureTag(ctx, rc)
		if err != nil {
			return err
		}
		if pushable && r.settings.PushTags && !opts.noPush {
			if err := r.pushTag(ctx, rc); err != nil {
				return err
			}
		}
	}

	return r.runHooks(ctx, rc, hookPublish)
}

// ensureTag makes sure the release tag exists locally, creating an annotated
// tag on HEAD unless the tag is already present or use_last_tag is reusing
// existing tags. It reports whether a local tag is available for pushing.
func (r *releaseRun) ensureTag(ctx context.Context, rc release.Context) (bool, error) {
	if r.repo == nil {
		logger.Warn("no repository; release is not tagged", "tag", rc.TagName)
		return false, nil
	}

	exists, err := r.repo.HasTag(ctx, rc.TagName)
	if err != nil {
		return false, err
	}
	if exists {
		logger.Info("tag already exists, skipping creation", "tag", rc.TagName)
		return true, nil
	}

	if r.settings.UseLastTag {
		logger.Info("use_last_tag is set; not creating a tag", "version", rc.Version)
		return false, nil
	}

	message := fmt.Sprintf("release %s", rc.Version)
	if err := r.repo.CreateTag(ctx, rc.TagName, "HEAD", message, true); err != nil {
		return false, err
	}

	logger.Info("created tag", "tag", rc.TagName)
	return true, nil
}

// pushTag pushes the release tag to the configured remote. A repository
// without a remote keeps the tag local.
func (r *releaseRun) pushTag(ctx context.Context, rc release.Context) error {
	if !rc.SCM.Enabled() {
		logger.Debug("no remote configured; tag stays local", "tag", rc.TagName)
		return nil
	}

	if err := r.repo.PushTag(ctx, r.settings.Remote, rc.TagName); err != nil {
		return err
	}

	logger.Info("pushed tag", "tag", rc.TagName, "remote", r.settings.Remote)
	return nil
}

// hookKind selects which list of a Hooks group runs.
type hookKind string

const (
	hookVerify  hookKind = "verify"
	hookPublish hookKind = "publish"
)

// of returns the hooks of this kind from a Hooks group.
func (h hookKind) of(hooks config.Hooks) []config.Hook {
	if h == hookVerify {
		return hooks.Verify
	}
	return hooks.Publish
}

// hookUnit is one hook execution site: the repository root or a project
// directory.
type hookUnit struct {
	name  string // empty for the repository level
	dir   string
	hooks config.Hooks
}

// units lists the hook execution sites: the repository level first, then
// every configured project in declared order.
func (r *releaseRun) units() []hookUnit {
	units := make([]hookUnit, 0, len(r.settings.Projects)+1)
	units = append(units, hookUnit{dir: r.dir, hooks: r.settings.Hooks})

	for _, p := range r.settings.Projects {
		units = append(units, hookUnit{
			name:  p.Name,
			dir:   filepath.Join(r.dir, p.Path),
			hooks: p.Hooks,
		})
	}

	return units
}

// runHooks runs every hook of one kind, repository level first, then each
// project in its own directory. Hooks see the release context as RELEASE_*
// environment variables and their output streams to the console. The first
// failure aborts.
func (r *releaseRun) runHooks(ctx context.Context, rc release.Context, kind hookKind) error {
	runner := hook.New(
		hook.WithEnviron(rc.Environ()),
		hook.WithConsoleRedirect(true),
		hook.WithRetry(r.settings.HookRetries, hookRetryDelay),
	)

	for _, unit := range r.units() {
		where := "repository"
		if unit.name != "" {
			where = fmt.Sprintf("project %q", unit.name)
		}

		for _, hk := range kind.of(unit.hooks) {
			logger.Info(fmt.Sprintf("running %s hook", kind),
				"command", strings.Join(hk, " "), "for", where)

			if _, err := runner.Run(ctx, hk, hook.WithWorkingDir(unit.dir)); err != nil {
				return fmt.Errorf("%s hook %q failed for %s: %w", kind, hk[0], where, err)
			}
		}
	}

	return nil
}

// logPlan reports what a real run would have done, for dry runs.
func (r *releaseRun) logPlan(rc release.Context, opts stageOptions) {
	verify, publish := 0, 0
	for _, unit := range r.units() {
		verify += len(unit.hooks.Verify)
		publish += len(unit.hooks.Publish)
	}

	logger.Info("dry-run: stopping before release steps",
		"verifyHooks", verify, "publishHooks", publish)

	if rc.Stage.Releasable() && !opts.noTag {
		logger.Info("dry-run: would ensure tag", "tag", rc.TagName)
		if r.settings.PushTags && !opts.noPush && rc.SCM.Enabled() {
			logger.Info("dry-run: would push tag", "remote", r.settings.Remote)
		}
	}
}
