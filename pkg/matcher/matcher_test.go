// pkg/matcher/matcher_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test target comparison and action planning

package matcher_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/retarget/pkg/errors"
	"github.com/arthur-debert/retarget/pkg/matcher"
	"github.com/arthur-debert/retarget/pkg/target"
)

func literal(raw string) *target.Specifier {
	return &target.Specifier{Raw: raw, Kind: target.Literal}
}

func refs(dir string, pairs ...string) *target.Specifier {
	spec := &target.Specifier{Raw: dir, Path: dir, Kind: target.References}
	for i := 0; i+1 < len(pairs); i += 2 {
		spec.References = append(spec.References, target.Reference{
			Name:   pairs[i],
			Path:   dir + "/" + pairs[i],
			Target: pairs[i+1],
		})
	}
	return spec
}

func TestEqual(t *testing.T) {
	insensitive := matcher.New(literal("x"), literal("y"), matcher.Options{})
	sensitive := matcher.New(literal("x"), literal("y"), matcher.Options{CaseSensitive: true})

	tests := []struct {
		name      string
		a, b      string
		want      bool
		sensitive bool
	}{
		{"identical", `C:\Apps\old.exe`, `C:\Apps\old.exe`, true, true},
		{"case", `C:\APPS\OLD.EXE`, `c:\apps\old.exe`, true, false},
		{"trailing separator", `C:\Apps\`, `C:\Apps`, true, true},
		{"drive root keeps separator", `C:\`, `C:`, false, false},
		{"different", `C:\Apps\old.exe`, `C:\Apps\new.exe`, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, insensitive.Equal(tt.a, tt.b))
			assert.Equal(t, tt.sensitive, sensitive.Equal(tt.a, tt.b))
		})
	}
}

func TestMatchLiteralToLiteral(t *testing.T) {
	m := matcher.New(literal(`C:\Old\app.exe`), literal(`D:\New\app.exe`), matcher.Options{})

	action, err := m.Match(matcher.Shortcut{Path: "/u/alice/Desktop/App.lnk", Target: `c:\old\APP.exe`})
	require.NoError(t, err)
	require.NotNil(t, action)
	assert.Equal(t, matcher.KindRetarget, action.Kind)
	assert.Equal(t, `D:\New\app.exe`, action.NewTarget)
	assert.Empty(t, action.Backup)

	action, err = m.Match(matcher.Shortcut{Path: "/u/alice/Desktop/Other.lnk", Target: `C:\Other\app.exe`})
	require.NoError(t, err)
	assert.Nil(t, action)
}

func TestMatchAlreadyRetargeted(t *testing.T) {
	m := matcher.New(literal(`C:\App`), literal(`c:\app\`), matcher.Options{})

	action, err := m.Match(matcher.Shortcut{Path: "/d/App.lnk", Target: `C:\App`})
	require.NoError(t, err)
	assert.Nil(t, action)
}

func TestMatchBackupPath(t *testing.T) {
	m := matcher.New(literal(`C:\Old`), literal(`C:\New`), matcher.Options{Backup: true, BackupDir: "Backup"})

	action, err := m.Match(matcher.Shortcut{Path: "/u/alice/Desktop/App.lnk", Target: `C:\Old`})
	require.NoError(t, err)
	assert.Equal(t, "/u/alice/Desktop/Backup/App.lnk", action.Backup)

	action, err = m.Match(matcher.Shortcut{Path: `\\pc\C$\Users\bob\Desktop\App.lnk`, Target: `C:\Old`})
	require.NoError(t, err)
	assert.Equal(t, `\\pc\C$\Users\bob\Desktop\Backup\App.lnk`, action.Backup)
}

func TestMatchReferencesByOldName(t *testing.T) {
	oldSpec := refs("/refs/old", "Word.lnk", `C:\Office14\WINWORD.EXE`, "Excel.lnk", `C:\Office14\EXCEL.EXE`)
	newSpec := refs("/refs/new", "Word.lnk", `C:\Office16\WINWORD.EXE`, "Excel.lnk", `C:\Office16\EXCEL.EXE`)
	m := matcher.New(oldSpec, newSpec, matcher.Options{})

	// the user renamed the shortcut; the old reference name still selects
	action, err := m.Match(matcher.Shortcut{Path: "/u/alice/Desktop/My Word.lnk", Target: `C:\Office14\WINWORD.EXE`})
	require.NoError(t, err)
	require.NotNil(t, action)
	assert.Equal(t, matcher.KindCopyReference, action.Kind)
	assert.Equal(t, "/refs/new/Word.lnk", action.Reference)
	assert.Equal(t, `C:\Office16\WINWORD.EXE`, action.NewTarget)
	assert.Equal(t, "Word.lnk", action.MatchedBy)
}

func TestMatchLiteralOldReferenceNewByShortcutName(t *testing.T) {
	newSpec := refs("/refs/new", "Excel.lnk", `C:\Office16\EXCEL.EXE`)
	m := matcher.New(literal(`C:\Office14\EXCEL.EXE`), newSpec, matcher.Options{})

	action, err := m.Match(matcher.Shortcut{Path: "/u/alice/Desktop/excel.LNK", Target: `C:\Office14\EXCEL.EXE`})
	require.NoError(t, err)
	require.NotNil(t, action)
	assert.Equal(t, "/refs/new/Excel.lnk", action.Reference)
}

func TestMatchNoReference(t *testing.T) {
	newSpec := refs("/refs/new", "Excel.lnk", `C:\Office16\EXCEL.EXE`)
	m := matcher.New(literal(`C:\Office14\WINWORD.EXE`), newSpec, matcher.Options{})

	action, err := m.Match(matcher.Shortcut{Path: "/u/alice/Desktop/Word.lnk", Target: `C:\Office14\WINWORD.EXE`})
	assert.Nil(t, action)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNoReference))
}

func TestMatchReferencesToLiteral(t *testing.T) {
	oldSpec := refs("/refs/old", "Word.lnk", `C:\Office14\WINWORD.EXE`)
	m := matcher.New(oldSpec, literal(`C:\Office16\WINWORD.EXE`), matcher.Options{})

	ref, ok := m.Matches(`C:\Office14\winword.exe`)
	require.True(t, ok)
	assert.Equal(t, "Word.lnk", ref.Name)

	action, err := m.Match(matcher.Shortcut{Path: "/d/W.lnk", Target: `C:\Office14\WINWORD.EXE`})
	require.NoError(t, err)
	assert.Equal(t, matcher.KindRetarget, action.Kind)
	assert.Equal(t, `C:\Office16\WINWORD.EXE`, action.NewTarget)
}
