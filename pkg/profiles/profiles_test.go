// pkg/profiles/profiles_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: afero memory filesystem, FakeRunner
// PURPOSE: Test profile root discovery and user selection

package profiles_test

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/retarget/pkg/config"
	"github.com/arthur-debert/retarget/pkg/errors"
	"github.com/arthur-debert/retarget/pkg/filesystem"
	"github.com/arthur-debert/retarget/pkg/profiles"
	"github.com/arthur-debert/retarget/pkg/testutil"
)

const regLine = "\r\nHKEY_LOCAL_MACHINE\\SOFTWARE\\Microsoft\\Windows NT\\CurrentVersion\\ProfileList\r\n" +
	"    ProfilesDirectory    REG_EXPAND_SZ    %SystemDrive%\\Profiles\\Staff\r\n\r\n"

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Profiles.SystemDrive = "/c"
	cfg.Remote.ShareTemplate = "/net/{host}/{share}"
	cfg.Remote.Timeout = time.Second
	return cfg
}

func mkdirs(t *testing.T, fs afero.Fs, dirs ...string) {
	t.Helper()
	for _, d := range dirs {
		require.NoError(t, fs.MkdirAll(d, 0755))
	}
}

func TestLocalRootModern(t *testing.T) {
	fs := filesystem.NewMemory()
	mkdirs(t, fs, "/c/Users", "/c/Documents and Settings")

	e := profiles.NewEnumerator(fs, testConfig(), &testutil.FakeRunner{})
	root, err := e.Root(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "/c/Users", root.Dir)
	assert.Equal(t, profiles.Modern, root.Convention)
	assert.Equal(t, profiles.MethodLocal, root.Method)
}

func TestLocalRootLegacy(t *testing.T) {
	fs := filesystem.NewMemory()
	mkdirs(t, fs, "/c/Documents and Settings")

	e := profiles.NewEnumerator(fs, testConfig(), &testutil.FakeRunner{})
	root, err := e.Root(context.Background(), "localhost")
	require.NoError(t, err)
	assert.Equal(t, "/c/Documents and Settings", root.Dir)
	assert.Equal(t, profiles.Legacy, root.Convention)
}

func TestLocalRootOverride(t *testing.T) {
	fs := filesystem.NewMemory()
	mkdirs(t, fs, "/srv/profiles")
	cfg := testConfig()
	cfg.Profiles.Root = "/srv/profiles"

	e := profiles.NewEnumerator(fs, cfg, &testutil.FakeRunner{})
	root, err := e.Root(context.Background(), ".")
	require.NoError(t, err)
	assert.Equal(t, profiles.Custom, root.Convention)
	assert.Equal(t, profiles.MethodOverride, root.Method)

	cfg.Profiles.Root = "/srv/missing"
	e = profiles.NewEnumerator(fs, cfg, &testutil.FakeRunner{})
	_, err = e.Root(context.Background(), ".")
	assert.True(t, errors.IsErrorCode(err, errors.ErrProfileRoot))
}

func TestLocalRootMissing(t *testing.T) {
	e := profiles.NewEnumerator(filesystem.NewMemory(), testConfig(), &testutil.FakeRunner{})
	_, err := e.Root(context.Background(), "")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrProfileRoot))
}

func TestRemoteRootShare(t *testing.T) {
	fs := filesystem.NewMemory()
	mkdirs(t, fs, "/net/pc-01/C$/Users")
	runner := &testutil.FakeRunner{}

	e := profiles.NewEnumerator(fs, testConfig(), runner)
	root, err := e.Root(context.Background(), "pc-01")
	require.NoError(t, err)
	assert.Equal(t, "/net/pc-01/C$/Users", root.Dir)
	assert.Equal(t, profiles.MethodShare, root.Method)
	assert.Empty(t, runner.Calls, "registry is only queried when probing fails")
}

func TestRemoteUnreachable(t *testing.T) {
	e := profiles.NewEnumerator(filesystem.NewMemory(), testConfig(), &testutil.FakeRunner{})
	_, err := e.Root(context.Background(), "pc-404")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrHostUnreachable))
}

func TestRemoteRootRegistry(t *testing.T) {
	fs := filesystem.NewMemory()
	mkdirs(t, fs, "/net/pc-02/C$", "/net/pc-02/D$/Profiles/Staff")
	cfg := testConfig()
	cfg.Profiles.SystemDrive = "D:"
	runner := &testutil.FakeRunner{Outputs: map[string]string{
		`reg query \\pc-02\HKLM\SOFTWARE\Microsoft\Windows NT\CurrentVersion\ProfileList /v ProfilesDirectory`: regLine,
	}}

	e := profiles.NewEnumerator(fs, cfg, runner)
	root, err := e.Root(context.Background(), "pc-02")
	require.NoError(t, err)
	assert.Equal(t, "/net/pc-02/D$/Profiles/Staff", root.Dir)
	assert.Equal(t, profiles.MethodRegistry, root.Method)
	assert.Len(t, runner.Calls, 1)
}

func TestRemoteRegistryFailure(t *testing.T) {
	fs := filesystem.NewMemory()
	mkdirs(t, fs, "/net/pc-03/C$")
	runner := &testutil.FakeRunner{Errors: map[string]error{
		`reg query \\pc-03\HKLM\SOFTWARE\Microsoft\Windows NT\CurrentVersion\ProfileList /v ProfilesDirectory`: stderrors.New("access denied"),
	}}

	e := profiles.NewEnumerator(fs, testConfig(), runner)
	_, err := e.Root(context.Background(), "pc-03")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrProfileRoot))
}

func TestRemoteRegistryDisabled(t *testing.T) {
	fs := filesystem.NewMemory()
	mkdirs(t, fs, "/net/pc-04/C$")
	cfg := testConfig()
	cfg.Remote.RegistryQuery = false
	runner := &testutil.FakeRunner{}

	e := profiles.NewEnumerator(fs, cfg, runner)
	_, err := e.Root(context.Background(), "pc-04")
	assert.True(t, errors.IsErrorCode(err, errors.ErrProfileRoot))
	assert.Empty(t, runner.Calls)
}

func TestParseRegValue(t *testing.T) {
	v, ok := profiles.ParseRegValue(regLine, "ProfilesDirectory")
	require.True(t, ok)
	assert.Equal(t, `%SystemDrive%\Profiles\Staff`, v)

	v, ok = profiles.ParseRegValue("    ProfilesDirectory    REG_SZ    C:\\Documents and Settings\n", "profilesdirectory")
	require.True(t, ok)
	assert.Equal(t, `C:\Documents and Settings`, v)

	_, ok = profiles.ParseRegValue("ERROR: The system was unable to find the specified registry key or value.", "ProfilesDirectory")
	assert.False(t, ok)
}

func TestUsersNamed(t *testing.T) {
	fs := filesystem.NewMemory()
	mkdirs(t, fs, "/c/Users/alice", "/c/Users/bob")
	root := &profiles.Root{Dir: "/c/Users"}

	e := profiles.NewEnumerator(fs, testConfig(), &testutil.FakeRunner{})
	users, err := e.Users(root, profiles.Selection{Names: []string{"alice", "carol"}})
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "/c/Users/alice", users[0].Dir)
	assert.NoError(t, users[0].Err)
	assert.True(t, errors.IsErrorCode(users[1].Err, errors.ErrUserNotFound))
}

func TestUsersAll(t *testing.T) {
	fs := filesystem.NewMemory()
	mkdirs(t, fs, "/c/Users/bob", "/c/Users/Alice", "/c/Users/Public", "/c/Users/Default")
	testutil.WriteFile(t, fs, "/c/Users/desktop.ini", "[.ShellClassInfo]")
	root := &profiles.Root{Dir: "/c/Users"}

	e := profiles.NewEnumerator(fs, testConfig(), &testutil.FakeRunner{})
	users, err := e.Users(root, profiles.Selection{All: true})
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Alice", users[0].Name)
	assert.Equal(t, "bob", users[1].Name)
}

func TestUsersCurrent(t *testing.T) {
	fs := filesystem.NewMemory()
	mkdirs(t, fs, "/c/Users/dana")
	root := &profiles.Root{Dir: "/c/Users"}

	e := profiles.NewEnumerator(fs, testConfig(), &testutil.FakeRunner{})
	e.CurrentUser = func() (string, error) { return "dana", nil }

	users, err := e.Users(root, profiles.Selection{})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "dana", users[0].Name)
	assert.NoError(t, users[0].Err)
}
