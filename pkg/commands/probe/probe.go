package probe

import (
	"context"

	"github.com/arthur-debert/retarget/pkg/commands/pipeline"
	"github.com/arthur-debert/retarget/pkg/report"
)

// ProbeOptions holds options for the probe command
type ProbeOptions struct {
	pipeline.Deps
	pipeline.Scope
}

// Probe resolves profile roots and users per host without scanning
func Probe(ctx context.Context, opts ProbeOptions) (*report.Report, error) {
	if err := opts.Scope.Validate(); err != nil {
		return nil, err
	}
	deps, err := opts.Deps.Resolve()
	if err != nil {
		return nil, err
	}

	rep := report.New("probe", false)
	pipeline.Walk(ctx, deps, opts.Scope, rep, nil)
	return rep.Finish(), nil
}
