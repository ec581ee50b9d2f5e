package git

import (
	"context"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/require"
)

// testRepo bundles a repository with its in-memory filesystem and context.
type testRepo struct {
	repo *Repo
	fs   billy.Filesystem
	ctx  context.Context
}

// setupTestRepo creates a new test repository on an in-memory filesystem.
func setupTestRepo(t *testing.T, bare bool) *testRepo {
	t.Helper()

	ctx := context.Background()
	memFS := memfs.New()

	opts := Options{
		FS:      memFS,
		Bare:    bare,
		Workdir: ".",
	}

	repo, err := Init(ctx, &opts)
	require.NoError(t, err, "failed to initialize test repository")
	require.NotNil(t, repo, "repository should not be nil")

	return &testRepo{
		repo: repo,
		fs:   memFS,
		ctx:  ctx,
	}
}

// setupTestRepoWithCommit creates a test repository with an initial commit.
func setupTestRepoWithCommit(t *testing.T) *testRepo {
	t.Helper()

	tr := setupTestRepo(t, false)
	tr.commitFile(t, "notes.txt", "initial content", "initial commit")

	return tr
}

// commitFile writes a file, stages it, and commits it.
// It returns the hash of the new commit.
func (tr *testRepo) commitFile(t *testing.T, path, content, msg string) string {
	t.Helper()

	err := util.WriteFile(tr.fs, path, []byte(content), 0o644)
	require.NoError(t, err, "failed to write file: %s", path)

	err = tr.repo.Add(tr.ctx, path)
	require.NoError(t, err, "failed to add file: %s", path)

	hash, err := tr.repo.Commit(
		tr.ctx,
		msg,
		Signature{Name: "Tester", Email: "tester@example.com"},
		CommitOpts{},
	)
	require.NoError(t, err, "failed to commit file: %s", path)

	return hash
}

// tag creates a lightweight tag on HEAD.
func (tr *testRepo) tag(t *testing.T, name string) {
	t.Helper()

	err := tr.repo.CreateTag(tr.ctx, name, "HEAD", "", false)
	require.NoError(t, err, "failed to create tag: %s", name)
}
