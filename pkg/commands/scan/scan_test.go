package scan_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/retarget/pkg/commands/pipeline"
	"github.com/arthur-debert/retarget/pkg/commands/scan"
	"github.com/arthur-debert/retarget/pkg/config"
	"github.com/arthur-debert/retarget/pkg/errors"
	"github.com/arthur-debert/retarget/pkg/report"
	"github.com/arthur-debert/retarget/pkg/testutil"
)

func TestScanListsAndFilters(t *testing.T) {
	tree := testutil.NewProfileTree(t, "/c/Users")
	tree.AddShortcut(t, "alice", "Desktop/Word.lnk", `C:\Office14\WINWORD.EXE`)
	tree.AddShortcut(t, "alice", "Desktop/Excel.lnk", `C:\Office14\EXCEL.EXE`)
	cfg := config.Default()
	cfg.Profiles.Root = "/c/Users"
	deps := pipeline.Deps{FS: tree.FS, Config: cfg}
	scope := pipeline.Scope{Users: []string{"alice"}}

	rep, err := scan.Scan(context.Background(), scan.ScanOptions{Deps: deps, Scope: scope})
	require.NoError(t, err)
	listed := rep.Hosts[0].Users[0].Shortcuts
	require.Len(t, listed, 2)
	assert.Equal(t, report.StatusListed, listed[0].Status)
	assert.Equal(t, `C:\Office14\EXCEL.EXE`, listed[0].Target)
	assert.Zero(t, rep.Totals.Matched)

	rep, err = scan.Scan(context.Background(), scan.ScanOptions{Deps: deps, Scope: scope, Old: `c:\office14\winword.exe`})
	require.NoError(t, err)
	matched := rep.Hosts[0].Users[0].Shortcuts
	require.Len(t, matched, 1)
	assert.Equal(t, report.StatusMatch, matched[0].Status)
	assert.Equal(t, tree.Path("alice", "Desktop", "Word.lnk"), matched[0].Path)
	assert.Equal(t, 1, rep.Totals.Matched)
	assert.Equal(t, 2, rep.Totals.Scanned)
}

func TestScanOldDirectoryWithoutReferences(t *testing.T) {
	tree := testutil.NewProfileTree(t, "/c/Users")
	tree.AddShortcut(t, "alice", "Desktop/Word.lnk", `C:\Office14\WINWORD.EXE`)
	testutil.WriteFile(t, tree.FS, "/refs/old/readme.txt", "no shortcuts here")
	testutil.WriteFile(t, tree.FS, "/refs/old/Broken.lnk", "garbage")
	cfg := config.Default()
	cfg.Profiles.Root = "/c/Users"

	_, err := scan.Scan(context.Background(), scan.ScanOptions{
		Deps:  pipeline.Deps{FS: tree.FS, Config: cfg},
		Scope: pipeline.Scope{Users: []string{"alice"}},
		Old:   "/refs/old",
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput), "got %v", err)
}
