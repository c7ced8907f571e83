package scan

import (
	"context"

	"github.com/arthur-debert/retarget/pkg/commands/pipeline"
	"github.com/arthur-debert/retarget/pkg/logging"
	"github.com/arthur-debert/retarget/pkg/matcher"
	"github.com/arthur-debert/retarget/pkg/report"
	"github.com/arthur-debert/retarget/pkg/target"
)

// ScanOptions holds options for the scan command
type ScanOptions struct {
	pipeline.Deps
	pipeline.Scope

	// Old limits the listing to shortcuts pointing at it when set
	Old string
}

// Scan lists shortcuts and their targets without changing anything
func Scan(ctx context.Context, opts ScanOptions) (*report.Report, error) {
	logger := logging.GetLogger("commands.scan")

	if err := opts.Scope.Validate(); err != nil {
		return nil, err
	}
	deps, err := opts.Deps.Resolve()
	if err != nil {
		return nil, err
	}

	rep := report.New("scan", false)

	var m *matcher.Matcher
	if opts.Old != "" {
		oldSpec, err := target.NewResolver(deps.FS, deps.Editor, deps.Config.Shortcuts.Extension).Resolve(opts.Old)
		if err != nil {
			return nil, err
		}
		if err := pipeline.CheckOld(oldSpec); err != nil {
			return nil, err
		}
		rep.Old = pipeline.TargetEntry(oldSpec)
		m = matcher.New(oldSpec, nil, matcher.Options{CaseSensitive: deps.Config.Shortcuts.CaseSensitive})
	}

	pipeline.Walk(ctx, deps, opts.Scope, rep, func(u *report.User, shortcuts []string) {
		for _, path := range shortcuts {
			tgt, err := deps.Editor.ReadTarget(path)
			if err != nil {
				logger.Debug().Err(err).Str("path", path).Msg("Cannot read shortcut")
				u.Shortcuts = append(u.Shortcuts, report.Shortcut{Path: path, Status: report.StatusUnreadable, Error: err.Error()})
				continue
			}
			if m == nil {
				u.Shortcuts = append(u.Shortcuts, report.Shortcut{Path: path, Target: tgt, Status: report.StatusListed})
				continue
			}
			if _, ok := m.Matches(tgt); ok {
				u.Shortcuts = append(u.Shortcuts, report.Shortcut{Path: path, Target: tgt, Status: report.StatusMatch})
			}
		}
	})

	return rep.Finish(), nil
}
