// pkg/testutil/links.go
// DEPENDENCIES: pkg/shelllink
// PURPOSE: Synthesize shortcut fixtures

package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/retarget/pkg/shelllink"
)

// WriteLink writes a shortcut pointing at target, creating parent dirs
func WriteLink(t *testing.T, fs afero.Fs, path, target string) string {
	t.Helper()

	l := shelllink.New(target)
	l.Name = filepath.Base(path)
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, afero.WriteFile(fs, path, l.Encode(), 0644))
	return path
}

// WriteFile writes a plain file, creating parent dirs
func WriteFile(t *testing.T, fs afero.Fs, path, content string) string {
	t.Helper()

	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), os.FileMode(0644)))
	return path
}

// ReadTarget decodes the shortcut at path and returns its target
func ReadTarget(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	l, err := shelllink.Parse(data)
	require.NoError(t, err)
	return l.Target()
}

// AssertTarget fails the test unless the shortcut at path points at want
func AssertTarget(t *testing.T, fs afero.Fs, path, want string) {
	t.Helper()
	require.Equal(t, want, ReadTarget(t, fs, path), "target of %s", path)
}

// AssertExists fails the test unless path exists
func AssertExists(t *testing.T, fs afero.Fs, path string) {
	t.Helper()
	_, err := fs.Stat(path)
	require.NoError(t, err, "expected %s to exist", path)
}

// AssertNotExists fails the test if path exists
func AssertNotExists(t *testing.T, fs afero.Fs, path string) {
	t.Helper()
	_, err := fs.Stat(path)
	require.Error(t, err, "expected %s not to exist", path)
}
