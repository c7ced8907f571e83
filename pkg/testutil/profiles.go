// pkg/testutil/profiles.go
// DEPENDENCIES: afero
// PURPOSE: Declarative profile trees for scanner, profiles and executor tests

package testutil

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/retarget/pkg/filesystem"
)

// ProfileTree is a profile root on an in-memory filesystem
type ProfileTree struct {
	FS   afero.Fs
	Root string
}

// NewProfileTree creates root on a fresh memory filesystem
func NewProfileTree(t *testing.T, root string) *ProfileTree {
	t.Helper()

	fs := filesystem.NewMemory()
	require.NoError(t, fs.MkdirAll(root, 0755))
	return &ProfileTree{FS: fs, Root: root}
}

// AddUser creates a user directory and returns its path
func (p *ProfileTree) AddUser(t *testing.T, user string) string {
	t.Helper()

	dir := filepath.Join(p.Root, user)
	require.NoError(t, p.FS.MkdirAll(dir, 0755))
	return dir
}

// AddShortcut writes <root>/<user>/<rel> pointing at target
func (p *ProfileTree) AddShortcut(t *testing.T, user, rel, target string) string {
	t.Helper()
	return WriteLink(t, p.FS, filepath.Join(p.Root, user, rel), target)
}

// Path joins elements under the root
func (p *ProfileTree) Path(elem ...string) string {
	return filepath.Join(append([]string{p.Root}, elem...)...)
}

// FakeRunner answers commands from a table keyed by the joined command line
type FakeRunner struct {
	Outputs map[string]string
	Errors  map[string]error
	Calls   []string
}

// Run records the call and returns the canned answer
func (f *FakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	line := strings.Join(append([]string{name}, args...), " ")
	f.Calls = append(f.Calls, line)
	if err, ok := f.Errors[line]; ok {
		return nil, err
	}
	return []byte(f.Outputs[line]), nil
}
