package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOS(t *testing.T) {
	fs := NewOS()
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "App.lnk")

	require.NoError(t, afero.WriteFile(fs, testFile, []byte("link"), 0644))

	assert.True(t, Exists(fs, testFile))
	assert.False(t, IsDir(fs, testFile))
	assert.True(t, IsDir(fs, tmpDir))
	assert.False(t, Exists(fs, filepath.Join(tmpDir, "missing")))
}

func TestCopyFile(t *testing.T) {
	fs := NewMemory()
	require.NoError(t, afero.WriteFile(fs, "/p/bob/Desktop/App.lnk", []byte("original"), 0600))

	t.Run("creates destination directory", func(t *testing.T) {
		dst := "/p/bob/Desktop/Backup/App.lnk"
		require.NoError(t, CopyFile(fs, "/p/bob/Desktop/App.lnk", dst))

		data, err := afero.ReadFile(fs, dst)
		require.NoError(t, err)
		assert.Equal(t, "original", string(data))

		info, err := fs.Stat(dst)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	})

	t.Run("replaces existing destination", func(t *testing.T) {
		dst := "/p/bob/Desktop/Backup/App.lnk"
		require.NoError(t, afero.WriteFile(fs, dst, []byte("a much longer stale backup"), 0644))
		require.NoError(t, CopyFile(fs, "/p/bob/Desktop/App.lnk", dst))

		data, err := afero.ReadFile(fs, dst)
		require.NoError(t, err)
		assert.Equal(t, "original", string(data))
	})

	t.Run("missing source", func(t *testing.T) {
		assert.Error(t, CopyFile(fs, "/p/none.lnk", "/p/out.lnk"))
	})
}

func TestReplaceFile(t *testing.T) {
	fs := NewMemory()
	require.NoError(t, afero.WriteFile(fs, "/d/App.lnk", []byte("old content"), 0640))

	require.NoError(t, ReplaceFile(fs, "/d/App.lnk", []byte("new")))

	data, err := afero.ReadFile(fs, "/d/App.lnk")
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	info, err := fs.Stat("/d/App.lnk")
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0640), info.Mode().Perm())

	require.NoError(t, ReplaceFile(fs, "/d/New.lnk", []byte("fresh")))
	assert.True(t, Exists(fs, "/d/New.lnk"))
}

// noRenameFs refuses every rename
type noRenameFs struct {
	afero.Fs
}

func (noRenameFs) Rename(oldname, newname string) error {
	return &os.LinkError{Op: "rename", Old: oldname, New: newname, Err: os.ErrPermission}
}

func TestReplaceFileKeepsOriginalOnFailure(t *testing.T) {
	mem := NewMemory()
	require.NoError(t, afero.WriteFile(mem, "/d/App.lnk", []byte("old content"), 0644))
	fs := noRenameFs{mem}

	assert.Error(t, ReplaceFile(fs, "/d/App.lnk", []byte("new")))

	data, err := afero.ReadFile(mem, "/d/App.lnk")
	require.NoError(t, err)
	assert.Equal(t, "old content", string(data))
	assert.False(t, Exists(mem, "/d/App.lnk"+tmpSuffix))
}

func TestReplaceWithCopy(t *testing.T) {
	fs := NewMemory()
	require.NoError(t, afero.WriteFile(fs, "/refs/App.lnk", []byte("reference"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/d/App.lnk", []byte("old content"), 0644))

	t.Run("replaces destination", func(t *testing.T) {
		require.NoError(t, ReplaceWithCopy(fs, "/refs/App.lnk", "/d/App.lnk"))

		data, err := afero.ReadFile(fs, "/d/App.lnk")
		require.NoError(t, err)
		assert.Equal(t, "reference", string(data))
		assert.False(t, Exists(fs, "/d/App.lnk"+tmpSuffix))
	})

	t.Run("missing source keeps destination", func(t *testing.T) {
		require.NoError(t, afero.WriteFile(fs, "/d/Other.lnk", []byte("keep me"), 0644))

		assert.Error(t, ReplaceWithCopy(fs, "/refs/none.lnk", "/d/Other.lnk"))

		data, err := afero.ReadFile(fs, "/d/Other.lnk")
		require.NoError(t, err)
		assert.Equal(t, "keep me", string(data))
	})

	t.Run("failed rename keeps destination", func(t *testing.T) {
		require.NoError(t, afero.WriteFile(fs, "/d/Third.lnk", []byte("keep me"), 0644))

		assert.Error(t, ReplaceWithCopy(noRenameFs{fs}, "/refs/App.lnk", "/d/Third.lnk"))

		data, err := afero.ReadFile(fs, "/d/Third.lnk")
		require.NoError(t, err)
		assert.Equal(t, "keep me", string(data))
		assert.False(t, Exists(fs, "/d/Third.lnk"+tmpSuffix))
	})
}
