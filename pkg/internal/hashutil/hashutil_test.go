package hashutil

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileChecksum(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/a.lnk", []byte("Hello, World!\n"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/empty.lnk", nil, 0644))

	checksum, err := FileChecksum(fs, "/a.lnk")
	require.NoError(t, err)
	assert.Contains(t, checksum, "sha256:")
	assert.Len(t, checksum, 71)

	again, err := FileChecksum(fs, "/a.lnk")
	require.NoError(t, err)
	assert.Equal(t, checksum, again)

	empty, err := FileChecksum(fs, "/empty.lnk")
	require.NoError(t, err)
	assert.Equal(t, "sha256:e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", empty)

	_, err = FileChecksum(fs, "/missing.lnk")
	assert.Error(t, err)
}

func TestSameContent(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/a", []byte("one"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/b", []byte("one"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/c", []byte("two"), 0644))

	same, err := SameContent(fs, "/a", "/b")
	require.NoError(t, err)
	assert.True(t, same)

	same, err = SameContent(fs, "/a", "/c")
	require.NoError(t, err)
	assert.False(t, same)

	_, err = SameContent(fs, "/a", "/missing")
	assert.Error(t, err)
}
