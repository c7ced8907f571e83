package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/retarget/internal/version"
	"github.com/arthur-debert/retarget/pkg/commands"
	"github.com/arthur-debert/retarget/pkg/report"
	"github.com/arthur-debert/retarget/pkg/testutil"
)

const (
	office14 = `C:\Program Files\Office14\WINWORD.EXE`
	office16 = `C:\Program Files\Office16\WINWORD.EXE`
)

// isolate keeps config and log files of the test run out of the user's home
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("RETARGET_CONFIG_DIR", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")
}

func profileFS(t *testing.T) *testutil.ProfileTree {
	t.Helper()
	tree := testutil.NewProfileTree(t, "/c/Users")
	tree.AddShortcut(t, "alice", "Desktop/Word.lnk", office14)
	tree.AddShortcut(t, "alice", "Desktop/Notes.lnk", `C:\Windows\notepad.exe`)
	return tree
}

func execute(t *testing.T, fs afero.Fs, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmdWithDeps(commands.Deps{FS: fs})
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func decode(t *testing.T, out string) report.Report {
	t.Helper()
	var rep report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep), out)
	return rep
}

func TestRewriteCommand(t *testing.T) {
	isolate(t)
	tree := profileFS(t)

	out, err := execute(t, tree.FS, "rewrite",
		"--profile-root", "/c/Users", "--user", "alice", "--backup",
		"--old", office14, "--new", office16, "--format", "json")
	require.NoError(t, err)

	rep := decode(t, out)
	assert.Equal(t, "rewrite", rep.Command)
	assert.Equal(t, 1, rep.Totals.Applied)
	assert.Equal(t, 2, rep.Totals.Scanned)

	testutil.AssertTarget(t, tree.FS, tree.Path("alice", "Desktop", "Word.lnk"), office16)
	testutil.AssertTarget(t, tree.FS, tree.Path("alice", "Desktop", "Backup", "Word.lnk"), office14)
	testutil.AssertTarget(t, tree.FS, tree.Path("alice", "Desktop", "Notes.lnk"), `C:\Windows\notepad.exe`)
}

func TestRewriteDryRun(t *testing.T) {
	isolate(t)
	tree := profileFS(t)

	out, err := execute(t, tree.FS, "rewrite", "--dry-run",
		"--profile-root", "/c/Users", "-u", "alice",
		"--old", office14, "--new", office16, "--format", "json")
	require.NoError(t, err)

	rep := decode(t, out)
	assert.True(t, rep.DryRun)
	assert.Equal(t, 1, rep.Totals.Planned)
	testutil.AssertTarget(t, tree.FS, tree.Path("alice", "Desktop", "Word.lnk"), office14)
}

func TestRewriteInvalidInvocation(t *testing.T) {
	isolate(t)
	tree := profileFS(t)

	tests := []struct {
		name string
		args []string
	}{
		{"missing new", []string{"rewrite", "--old", office14}},
		{"user and all users", []string{"rewrite", "--old", office14, "--new", office16, "--user", "alice", "--all-users"}},
		{"unknown format", []string{"rewrite", "--old", office14, "--new", office16, "--format", "csv"}},
		{"stray argument", []string{"rewrite", "--old", office14, "--new", office16, "extra"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tree.FS, tt.args...)
			assert.Error(t, err)
		})
	}
	testutil.AssertTarget(t, tree.FS, tree.Path("alice", "Desktop", "Word.lnk"), office14)
}

func TestScanCommand(t *testing.T) {
	isolate(t)
	tree := profileFS(t)

	out, err := execute(t, tree.FS, "scan", "--profile-root", "/c/Users", "--all-users", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Word.lnk")
	assert.Contains(t, out, "notepad.exe")

	out, err = execute(t, tree.FS, "scan", "--profile-root", "/c/Users", "--all-users",
		"--old", office14, "--format", "json")
	require.NoError(t, err)
	rep := decode(t, out)
	assert.Equal(t, 1, rep.Totals.Matched)
}

func TestShowCommand(t *testing.T) {
	isolate(t)
	tree := profileFS(t)

	out, err := execute(t, tree.FS, "show", tree.Path("alice", "Desktop", "Word.lnk"), "--format", "json")
	require.NoError(t, err)
	rep := decode(t, out)
	require.Len(t, rep.Links, 1)
	assert.Equal(t, office14, rep.Links[0].Target)

	_, err = execute(t, tree.FS, "show")
	assert.Error(t, err)
}

func TestConfigCommand(t *testing.T) {
	isolate(t)

	out, err := execute(t, afero.NewMemMapFs(), "config", "--profile-root", `D:\Profiles`, "--case-sensitive")
	require.NoError(t, err)
	var cfg map[string]map[string]interface{}
	require.NoError(t, toml.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, `D:\Profiles`, cfg["profiles"]["root"])
	assert.Equal(t, true, cfg["shortcuts"]["case_sensitive"])

	out, err = execute(t, afero.NewMemMapFs(), "config", "--defaults")
	require.NoError(t, err)
	assert.Contains(t, out, "# backup_dir = \"Backup\"")
}

func TestVersionCommand(t *testing.T) {
	isolate(t)

	out, err := execute(t, afero.NewMemMapFs(), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "retarget version "+version.Version)
}

func TestHelpTopics(t *testing.T) {
	isolate(t)

	out, err := execute(t, afero.NewMemMapFs(), "help", "topics")
	require.NoError(t, err)
	assert.Contains(t, out, "profiles")
	assert.Contains(t, out, "references")
	assert.Contains(t, out, "--backup")
}

func TestNoCommand(t *testing.T) {
	isolate(t)

	_, err := execute(t, afero.NewMemMapFs())
	assert.EqualError(t, err, MsgErrNoCommand)
}
