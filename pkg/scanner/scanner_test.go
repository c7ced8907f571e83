package scanner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/retarget/pkg/errors"
	"github.com/arthur-debert/retarget/pkg/scanner"
	"github.com/arthur-debert/retarget/pkg/testutil"
)

func TestScanFindsShortcutsRecursively(t *testing.T) {
	tree := testutil.NewProfileTree(t, "/c/Users")
	tree.AddShortcut(t, "alice", "Desktop/Word.lnk", `C:\Office\WINWORD.EXE`)
	tree.AddShortcut(t, "alice", "Desktop/Tools/Excel.LNK", `C:\Office\EXCEL.EXE`)
	tree.AddShortcut(t, "alice", "Desktop/Backup/Word.lnk", `C:\Office\WINWORD.EXE`)
	tree.AddShortcut(t, "alice", "Desktop/Tools/backup/Old.lnk", `C:\old.exe`)
	testutil.WriteFile(t, tree.FS, tree.Path("alice", "Desktop", "notes.txt"), "hi")

	s := scanner.New(tree.FS, ".lnk", "Backup")
	found, err := s.Scan(tree.Path("alice", "Desktop"))
	require.NoError(t, err)

	assert.Equal(t, []string{
		tree.Path("alice", "Desktop", "Tools", "Excel.LNK"),
		tree.Path("alice", "Desktop", "Word.lnk"),
	}, found)
}

func TestScanMissingDirIsNoop(t *testing.T) {
	tree := testutil.NewProfileTree(t, "/c/Users")

	found, err := scanner.New(tree.FS, ".lnk", "Backup").Scan(tree.Path("ghost", "Desktop"))
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestScanStartIsFile(t *testing.T) {
	tree := testutil.NewProfileTree(t, "/c/Users")
	path := testutil.WriteFile(t, tree.FS, tree.Path("alice", "file.txt"), "x")

	_, err := scanner.New(tree.FS, ".lnk", "Backup").Scan(path)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestScanStartNamedLikeBackupIsWalked(t *testing.T) {
	tree := testutil.NewProfileTree(t, "/c/Users")
	tree.AddShortcut(t, "alice", "Backup/Keep.lnk", `C:\keep.exe`)

	found, err := scanner.New(tree.FS, ".lnk", "Backup").Scan(tree.Path("alice", "Backup"))
	require.NoError(t, err)
	assert.Len(t, found, 1)
}
