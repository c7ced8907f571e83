package probe_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/retarget/pkg/commands/pipeline"
	"github.com/arthur-debert/retarget/pkg/commands/probe"
	"github.com/arthur-debert/retarget/pkg/config"
	"github.com/arthur-debert/retarget/pkg/testutil"
)

func TestProbeReportsRootsAndUsers(t *testing.T) {
	tree := testutil.NewProfileTree(t, "/net/pc-01/C$/Documents and Settings")
	tree.AddShortcut(t, "alice", "Desktop/Word.lnk", `C:\word.exe`)
	tree.AddUser(t, "bob")
	cfg := config.Default()
	cfg.Remote.ShareTemplate = "/net/{host}/{share}"
	runner := &testutil.FakeRunner{}

	rep, err := probe.Probe(context.Background(), probe.ProbeOptions{
		Deps:  pipeline.Deps{FS: tree.FS, Config: cfg, Runner: runner},
		Scope: pipeline.Scope{Hosts: []string{"pc-01", "pc-02"}, AllUsers: true},
	})
	require.NoError(t, err)

	require.Len(t, rep.Hosts, 2)
	h := rep.Hosts[0]
	assert.Equal(t, "legacy", h.Convention)
	assert.Equal(t, "share", h.Method)
	require.Len(t, h.Users, 2)
	assert.Zero(t, h.Users[0].Scanned, "probe does not scan")
	assert.Empty(t, h.Users[0].Shortcuts)
	assert.Contains(t, rep.Hosts[1].Error, "HOST_UNREACHABLE")
	assert.Empty(t, runner.Calls)
}
