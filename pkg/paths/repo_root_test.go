package paths_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gantryci/gantry/pkg/paths"
)

func writeGitDir(t *testing.T, repoDir string) {
	t.Helper()

	gitDir := filepath.Join(repoDir, ".git")
	require.NoError(t, os.MkdirAll(gitDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(gitDir, "HEAD"), []byte("ref: refs/heads/main\n"), 0o600))
}

func TestFindRepoRoot(t *testing.T) {
	t.Parallel()

	t.Run("from nested directory", func(t *testing.T) {
		t.Parallel()

		repo := t.TempDir()
		writeGitDir(t, repo)

		nested := filepath.Join(repo, "services", "api")
		require.NoError(t, os.MkdirAll(nested, 0o750))

		got, err := paths.FindRepoRoot(nested)
		require.NoError(t, err)
		assert.Equal(t, repo, got)
	})

	t.Run("innermost repository wins", func(t *testing.T) {
		t.Parallel()

		outer := t.TempDir()
		writeGitDir(t, outer)

		inner := filepath.Join(outer, "vendor", "lib")
		writeGitDir(t, inner)

		src := filepath.Join(inner, "src")
		require.NoError(t, os.MkdirAll(src, 0o750))

		got, err := paths.FindRepoRoot(src)
		require.NoError(t, err)
		assert.Equal(t, inner, got)
	})

	t.Run("worktree git file", func(t *testing.T) {
		t.Parallel()

		base := t.TempDir()

		mainRepo := filepath.Join(base, "main")
		writeGitDir(t, mainRepo)

		worktreeGitDir := filepath.Join(mainRepo, ".git", "worktrees", "wt1")
		require.NoError(t, os.MkdirAll(worktreeGitDir, 0o750))
		require.NoError(t, os.WriteFile(filepath.Join(worktreeGitDir, "HEAD"), []byte("ref: refs/heads/wt\n"), 0o600))

		worktree := filepath.Join(base, "wt")
		require.NoError(t, os.MkdirAll(worktree, 0o750))
		require.NoError(t, os.WriteFile(filepath.Join(worktree, ".git"),
			[]byte("gitdir: "+worktreeGitDir+"\n"), 0o600))

		nested := filepath.Join(worktree, "pkg")
		require.NoError(t, os.MkdirAll(nested, 0o750))

		got, err := paths.FindRepoRoot(nested)
		require.NoError(t, err)
		assert.Equal(t, worktree, got)
	})

	t.Run("malformed git file is skipped", func(t *testing.T) {
		t.Parallel()

		repo := t.TempDir()
		writeGitDir(t, repo)

		sub := filepath.Join(repo, "sub")
		require.NoError(t, os.MkdirAll(sub, 0o750))
		require.NoError(t, os.WriteFile(filepath.Join(sub, ".git"), []byte("not a gitdir line\n"), 0o600))

		got, err := paths.FindRepoRoot(sub)
		require.NoError(t, err)
		assert.Equal(t, repo, got)
	})

	t.Run("no repository found", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()

		_, err := paths.FindRepoRoot(dir)
		require.Error(t, err)
		assert.ErrorIs(t, err, paths.ErrFileNotFound)
	})
}

func TestFindProjectFile(t *testing.T) {
	t.Parallel()

	t.Run("found in parent directory", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "gantry.xml"), []byte("<project/>"), 0o600))

		nested := filepath.Join(root, "services", "api")
		require.NoError(t, os.MkdirAll(nested, 0o750))

		got, err := paths.FindProjectFile(root, nested, "gantry.xml")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "gantry.xml"), got)
	})

	t.Run("closest file wins", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "gantry.xml"), []byte("<project/>"), 0o600))

		nested := filepath.Join(root, "services")
		require.NoError(t, os.MkdirAll(nested, 0o750))
		require.NoError(t, os.WriteFile(filepath.Join(nested, "gantry.xml"), []byte("<project/>"), 0o600))

		got, err := paths.FindProjectFile(root, nested, "gantry.xml")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(nested, "gantry.xml"), got)
	})

	t.Run("search stops at root", func(t *testing.T) {
		t.Parallel()

		base := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(base, "gantry.xml"), []byte("<project/>"), 0o600))

		root := filepath.Join(base, "workspace")
		nested := filepath.Join(root, "services")
		require.NoError(t, os.MkdirAll(nested, 0o750))

		_, err := paths.FindProjectFile(root, nested, "gantry.xml")
		require.Error(t, err)
		assert.ErrorIs(t, err, paths.ErrFileNotFound)
	})

	t.Run("path outside root", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		elsewhere := t.TempDir()

		_, err := paths.FindProjectFile(root, elsewhere, "gantry.xml")
		require.Error(t, err)
		assert.ErrorIs(t, err, paths.ErrResolvedOutsideWorkspace)
	})
}
