// pkg/report/report_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test report totals and every output format

package report_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/beevik/etree"
	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/retarget/pkg/errors"
	"github.com/arthur-debert/retarget/pkg/report"
)

func sampleReport() *report.Report {
	r := report.New("rewrite", true)
	r.Old = &report.Target{Raw: `C:\Old\app.exe`, Kind: "literal"}
	r.New = &report.Target{Raw: "/refs/new", Kind: "references", References: []report.Reference{
		{Name: "App.lnk", Target: `D:\New\app.exe`},
	}}
	r.Hosts = []report.Host{
		{
			Name: "", Root: "/c/Users", Convention: "modern", Method: "local",
			Users: []report.User{
				{
					Name: "alice", Dir: "/c/Users/alice", Scanned: 3,
					Shortcuts: []report.Shortcut{
						{Path: "/c/Users/alice/Desktop/App.lnk", Target: `C:\Old\app.exe`, Status: "planned",
							Kind: "copy-reference", NewTarget: `D:\New\app.exe`, Reference: "/refs/new/App.lnk",
							Backup: "/c/Users/alice/Desktop/Backup/App.lnk"},
						{Path: "/c/Users/alice/Desktop/Other.lnk", Target: `C:\Old\app.exe`, Status: report.StatusSkipped,
							Error: "[NO_REFERENCE] no reference shortcut for Other.lnk in /refs/new"},
						{Path: "/c/Users/alice/Desktop/Bad.lnk", Status: report.StatusUnreadable, Error: "[SHORTCUT_FORMAT] bad"},
					},
				},
				{Name: "carol", Dir: "/c/Users/carol", Error: "[USER_NOT_FOUND] user carol has no profile"},
			},
		},
		{Name: "pc-404", Error: `[HOST_UNREACHABLE] cannot reach \\pc-404\C$`},
	}
	return r.Finish()
}

func TestFinishTotals(t *testing.T) {
	r := sampleReport()

	assert.NotEmpty(t, r.RunID)
	assert.NotEmpty(t, r.Elapsed)
	assert.Equal(t, report.Totals{
		Hosts: 2, HostErrors: 1, Users: 2, UserErrors: 1, Scanned: 3,
		Matched: 2, Planned: 1, Skipped: 1, Unreadable: 1,
	}, r.Totals)
}

func TestRunIDsAreUnique(t *testing.T) {
	assert.NotEqual(t, report.New("scan", false).RunID, report.New("scan", false).RunID)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want report.Format
	}{
		{"", report.FormatAuto},
		{"auto", report.FormatAuto},
		{"terminal", report.FormatTerminal},
		{"TEXT", report.FormatText},
		{"json", report.FormatJSON},
		{"yml", report.FormatYAML},
		{"toml", report.FormatTOML},
		{"xml", report.FormatXML},
		{"md", report.FormatMarkdown},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := report.ParseFormat(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := report.ParseFormat("html")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestDetectFormatNonTerminal(t *testing.T) {
	assert.Equal(t, report.FormatText, report.DetectFormat(&bytes.Buffer{}))
}

func TestRenderText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Render(&buf, sampleReport(), report.FormatAuto))
	out := buf.String()

	assert.Contains(t, out, "Rewrite (dry run)")
	assert.Contains(t, out, "Host local /c/Users [modern, local]")
	assert.Contains(t, out, "[planned] /c/Users/alice/Desktop/App.lnk")
	assert.Contains(t, out, `C:\Old\app.exe -> D:\New\app.exe`)
	assert.Contains(t, out, "backup /c/Users/alice/Desktop/Backup/App.lnk")
	assert.Contains(t, out, "[HOST_UNREACHABLE]")
	assert.Contains(t, out, "Totals: hosts 2, host errors 1")
}

func TestRenderTerminal(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Render(&buf, sampleReport(), report.FormatTerminal))
	assert.Contains(t, buf.String(), "/c/Users/alice/Desktop/App.lnk")
	assert.Contains(t, buf.String(), "planned")
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Render(&buf, sampleReport(), report.FormatJSON))

	var decoded report.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "rewrite", decoded.Command)
	require.Len(t, decoded.Hosts, 2)
	assert.Equal(t, "/refs/new/App.lnk", decoded.Hosts[0].Users[0].Shortcuts[0].Reference)
	assert.Equal(t, 1, decoded.Totals.Planned)
}

func TestRenderYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Render(&buf, sampleReport(), report.FormatYAML))

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "rewrite", decoded["command"])
	assert.Contains(t, buf.String(), "new_target:")
}

func TestRenderTOML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Render(&buf, sampleReport(), report.FormatTOML))

	var decoded map[string]interface{}
	require.NoError(t, toml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "rewrite", decoded["command"])
	hosts, ok := decoded["hosts"].([]interface{})
	require.True(t, ok)
	assert.Len(t, hosts, 2)
}

func TestRenderXML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Render(&buf, sampleReport(), report.FormatXML))

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(buf.Bytes()))
	root := doc.SelectElement("report")
	require.NotNil(t, root)
	assert.Equal(t, "rewrite", root.SelectAttrValue("command", ""))

	shortcut := root.FindElement("./host/user/shortcut")
	require.NotNil(t, shortcut)
	assert.Equal(t, "planned", shortcut.SelectAttrValue("status", ""))
	assert.Equal(t, `D:\New\app.exe`, shortcut.SelectElement("new-target").Text())
	assert.Equal(t, "1", root.SelectElement("totals").SelectAttrValue("host-errors", ""))
}

func TestRenderMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Render(&buf, sampleReport(), report.FormatMarkdown))
	out := buf.String()

	assert.Contains(t, out, "# retarget rewrite (dry run)")
	assert.Contains(t, out, "## Host pc-404")
	assert.Contains(t, out, "| planned | `/c/Users/alice/Desktop/App.lnk` |")
	assert.Contains(t, out, "## Totals")
}

func TestRenderShowLinks(t *testing.T) {
	r := report.New("show", false)
	r.Links = []report.Link{
		{Path: "/d/App.lnk", Target: `C:\App\app.exe`, Arguments: "--fast", Flags: []string{"HasLinkInfo", "IsUnicode"}},
		{Path: "/d/Bad.lnk", Error: "[SHORTCUT_FORMAT] not a shell link"},
	}
	r.Finish()

	var buf bytes.Buffer
	require.NoError(t, report.Render(&buf, r, report.FormatText))
	out := buf.String()
	assert.Contains(t, out, `target:        C:\App\app.exe`)
	assert.Contains(t, out, "flags:         HasLinkInfo IsUnicode")
	assert.Contains(t, out, "[SHORTCUT_FORMAT] not a shell link")
	assert.NotContains(t, out, "Totals")
}
