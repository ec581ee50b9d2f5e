package git

import (
	"context"
	"strings"
	"testing"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCreateTag tests tag creation operations
func TestCreateTag(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(t *testing.T) *testRepo
		tagName     string
		target      string
		message     string
		annotated   bool
		expectError bool
		validate    func(t *testing.T, tr *testRepo, err error)
	}{
		{
			name:        "create lightweight tag on HEAD",
			setup:       setupTestRepoWithCommit,
			tagName:     "v1.0.0",
			target:      "HEAD",
			message:     "",
			annotated:   false,
			expectError: false,
			validate: func(t *testing.T, tr *testRepo, err error) {
				require.NoError(t, err)

				tags, err := tr.repo.Tags(context.Background())
				require.NoError(t, err)
				assert.Contains(t, tags, "v1.0.0")

				// Verify it's a lightweight tag (plain hash reference)
				ref, err := tr.repo.repo.Reference(plumbing.NewTagReferenceName("v1.0.0"), true)
				require.NoError(t, err)
				assert.Equal(t, plumbing.HashReference, ref.Type())
			},
		},
		{
			name:        "create annotated tag with message",
			setup:       setupTestRepoWithCommit,
			tagName:     "v1.0.0.RELEASE",
			target:      "HEAD",
			message:     "release 1.0.0",
			annotated:   true,
			expectError: false,
			validate: func(t *testing.T, tr *testRepo, err error) {
				require.NoError(t, err)

				tags, err := tr.repo.Tags(context.Background())
				require.NoError(t, err)
				assert.Contains(t, tags, "v1.0.0.RELEASE")

				// Verify the tag object carries message and tagger identity
				tagRef, err := tr.repo.repo.Reference(plumbing.NewTagReferenceName("v1.0.0.RELEASE"), true)
				require.NoError(t, err)
				tagObj, err := tr.repo.repo.TagObject(tagRef.Hash())
				require.NoError(t, err)
				assert.Equal(t, "release 1.0.0", strings.TrimSpace(tagObj.Message))
				assert.NotEmpty(t, tagObj.Tagger.Name)
				assert.NotEmpty(t, tagObj.Tagger.Email)
				assert.False(t, tagObj.Tagger.When.IsZero())
			},
		},
		{
			name: "create tag on earlier commit",
			setup: func(t *testing.T) *testRepo {
				tr := setupTestRepoWithCommit(t)
				tr.commitFile(t, "second.txt", "more", "second commit")
				return tr
			},
			tagName:     "v0.9.0",
			target:      "HEAD~1",
			message:     "tag on first commit",
			annotated:   true,
			expectError: false,
			validate: func(t *testing.T, tr *testRepo, err error) {
				require.NoError(t, err)

				tagRef, err := tr.repo.repo.Reference(plumbing.NewTagReferenceName("v0.9.0"), true)
				require.NoError(t, err)
				tagObj, err := tr.repo.repo.TagObject(tagRef.Hash())
				require.NoError(t, err)

				head, err := tr.repo.repo.Head()
				require.NoError(t, err)
				assert.NotEqual(t, head.Hash(), tagObj.Target)
			},
		},
		{
			name: "fail to create duplicate tag",
			setup: func(t *testing.T) *testRepo {
				tr := setupTestRepoWithCommit(t)
				tr.tag(t, "duplicate")
				return tr
			},
			tagName:     "duplicate",
			target:      "HEAD",
			message:     "",
			annotated:   false,
			expectError: true,
			validate: func(t *testing.T, tr *testRepo, err error) {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrTagExists)
			},
		},
		{
			name:        "fail with empty tag name",
			setup:       setupTestRepoWithCommit,
			tagName:     "",
			target:      "HEAD",
			expectError: true,
			validate: func(t *testing.T, tr *testRepo, err error) {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidRef)
			},
		},
		{
			name:        "fail with unresolvable target",
			setup:       setupTestRepoWithCommit,
			tagName:     "v1.0.0",
			target:      "no-such-branch",
			expectError: true,
			validate: func(t *testing.T, tr *testRepo, err error) {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrResolveFailed)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := tt.setup(t)

			err := tr.repo.CreateTag(tr.ctx, tt.tagName, tt.target, tt.message, tt.annotated)
			if tt.expectError {
				require.Error(t, err)
			}

			if tt.validate != nil {
				tt.validate(t, tr, err)
			}
		})
	}
}

// TestDeleteTag tests tag deletion operations
func TestDeleteTag(t *testing.T) {
	t.Run("delete existing tag", func(t *testing.T) {
		tr := setupTestRepoWithCommit(t)
		tr.tag(t, "v1.0.0")

		err := tr.repo.DeleteTag(tr.ctx, "v1.0.0")
		require.NoError(t, err)

		tags, err := tr.repo.Tags(tr.ctx)
		require.NoError(t, err)
		assert.NotContains(t, tags, "v1.0.0")
	})

	t.Run("delete missing tag", func(t *testing.T) {
		tr := setupTestRepoWithCommit(t)

		err := tr.repo.DeleteTag(tr.ctx, "v9.9.9")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTagMissing)
	})

	t.Run("delete with empty name", func(t *testing.T) {
		tr := setupTestRepoWithCommit(t)

		err := tr.repo.DeleteTag(tr.ctx, "")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidRef)
	})
}

// TestHasTag tests tag existence checks
func TestHasTag(t *testing.T) {
	tr := setupTestRepoWithCommit(t)
	tr.tag(t, "v1.0.0.RELEASE")

	exists, err := tr.repo.HasTag(tr.ctx, "v1.0.0.RELEASE")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = tr.repo.HasTag(tr.ctx, "v2.0.0.RELEASE")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = tr.repo.HasTag(tr.ctx, "")
	assert.ErrorIs(t, err, ErrInvalidRef)
}

// TestTags tests tag listing with filters
func TestTags(t *testing.T) {
	setup := func(t *testing.T) *testRepo {
		tr := setupTestRepoWithCommit(t)
		for _, name := range []string{
			"v0.1.0.RELEASE",
			"v0.2.0-rc.1",
			"v0.2.0.RELEASE",
			"experimental",
		} {
			tr.tag(t, name)
		}
		return tr
	}

	tests := []struct {
		name     string
		filters  []TagFilter
		expected []string
	}{
		{
			name:    "no filters returns all sorted",
			filters: nil,
			expected: []string{
				"experimental",
				"v0.1.0.RELEASE",
				"v0.2.0-rc.1",
				"v0.2.0.RELEASE",
			},
		},
		{
			name:     "prefix filter",
			filters:  []TagFilter{TagPrefixFilter("v")},
			expected: []string{"v0.1.0.RELEASE", "v0.2.0-rc.1", "v0.2.0.RELEASE"},
		},
		{
			name:     "suffix filter",
			filters:  []TagFilter{TagSuffixFilter(".RELEASE")},
			expected: []string{"v0.1.0.RELEASE", "v0.2.0.RELEASE"},
		},
		{
			name:     "pattern filter",
			filters:  []TagFilter{TagPatternFilter("v0.2.*")},
			expected: []string{"v0.2.0-rc.1", "v0.2.0.RELEASE"},
		},
		{
			name:     "exclude filter drops candidates",
			filters:  []TagFilter{TagPrefixFilter("v"), TagExcludeFilter("*-rc*")},
			expected: []string{"v0.1.0.RELEASE", "v0.2.0.RELEASE"},
		},
		{
			name:     "question mark pattern",
			filters:  []TagFilter{TagPatternFilter("v0.?.0.RELEASE")},
			expected: []string{"v0.1.0.RELEASE", "v0.2.0.RELEASE"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := setup(t)

			tags, err := tr.repo.Tags(tr.ctx, tt.filters...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, tags)
		})
	}
}

// TestPushTag tests tag push error handling without a network
func TestPushTag(t *testing.T) {
	t.Run("missing remote", func(t *testing.T) {
		tr := setupTestRepoWithCommit(t)
		tr.tag(t, "v1.0.0.RELEASE")

		err := tr.repo.PushTag(tr.ctx, "origin", "v1.0.0.RELEASE")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrRemoteMissing)
	})

	t.Run("empty tag name", func(t *testing.T) {
		tr := setupTestRepoWithCommit(t)

		err := tr.repo.PushTag(tr.ctx, "origin", "")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidRef)
	})

	t.Run("missing remote with auth configured", func(t *testing.T) {
		tr := setupTestRepo(t, false)
		tr.repo.options.Auth = NewTokenAuth("secret")
		tr.commitFile(t, "notes.txt", "content", "initial commit")
		tr.tag(t, "v1.0.0.RELEASE")

		err := tr.repo.PushTag(tr.ctx, "origin", "v1.0.0.RELEASE")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrRemoteMissing)
	})
}
