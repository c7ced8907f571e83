package rewrite

import (
	"context"

	"github.com/arthur-debert/retarget/pkg/commands/pipeline"
	"github.com/arthur-debert/retarget/pkg/errors"
	"github.com/arthur-debert/retarget/pkg/executor"
	"github.com/arthur-debert/retarget/pkg/logging"
	"github.com/arthur-debert/retarget/pkg/matcher"
	"github.com/arthur-debert/retarget/pkg/report"
	"github.com/arthur-debert/retarget/pkg/target"
)

// RewriteOptions holds options for the rewrite command
type RewriteOptions struct {
	pipeline.Deps
	pipeline.Scope

	Old    string
	New    string
	Backup bool
	DryRun bool
}

// Rewrite points every shortcut whose target matches Old at New
func Rewrite(ctx context.Context, opts RewriteOptions) (*report.Report, error) {
	logger := logging.GetLogger("commands.rewrite")
	done := logging.LogOperationStart(logger, "rewrite")
	defer done()

	if err := opts.Scope.Validate(); err != nil {
		return nil, err
	}
	if opts.Old == "" || opts.New == "" {
		return nil, errors.New(errors.ErrInvalidInput, "both --old and --new are required")
	}

	deps, err := opts.Deps.Resolve()
	if err != nil {
		return nil, err
	}
	cfg := deps.Config

	resolver := target.NewResolver(deps.FS, deps.Editor, cfg.Shortcuts.Extension)
	oldSpec, err := resolver.Resolve(opts.Old)
	if err != nil {
		return nil, err
	}
	newSpec, err := resolver.Resolve(opts.New)
	if err != nil {
		return nil, err
	}
	if err := pipeline.CheckOld(oldSpec); err != nil {
		return nil, err
	}

	m := matcher.New(oldSpec, newSpec, matcher.Options{
		CaseSensitive: cfg.Shortcuts.CaseSensitive,
		Backup:        opts.Backup,
		BackupDir:     cfg.Shortcuts.BackupDir,
	})
	exec := executor.New(executor.Options{
		Editor: deps.Editor,
		DryRun: opts.DryRun,
		FS:     deps.FS,
	})

	rep := report.New("rewrite", opts.DryRun)
	rep.Old = pipeline.TargetEntry(oldSpec)
	rep.New = pipeline.TargetEntry(newSpec)

	pipeline.Walk(ctx, deps, opts.Scope, rep, func(u *report.User, shortcuts []string) {
		var actions []matcher.Action
		for _, path := range shortcuts {
			tgt, err := deps.Editor.ReadTarget(path)
			if err != nil {
				logger.Warn().Err(err).Str("path", path).Msg("Cannot read shortcut")
				u.Shortcuts = append(u.Shortcuts, report.Shortcut{Path: path, Status: report.StatusUnreadable, Error: err.Error()})
				continue
			}
			action, err := m.Match(matcher.Shortcut{Path: path, Target: tgt})
			if err != nil {
				u.Shortcuts = append(u.Shortcuts, report.Shortcut{Path: path, Target: tgt, Status: report.StatusSkipped, Error: err.Error()})
				continue
			}
			if action != nil {
				actions = append(actions, *action)
			}
		}

		for _, res := range exec.Execute(actions) {
			entry := report.Shortcut{
				Path:      res.Action.Path,
				Target:    res.Action.CurrentTarget,
				Status:    string(res.Status),
				Kind:      string(res.Action.Kind),
				NewTarget: res.Action.NewTarget,
				Reference: res.Action.Reference,
				Backup:    res.Action.Backup,
			}
			if res.Error != nil {
				entry.Error = res.Error.Error()
			}
			u.Shortcuts = append(u.Shortcuts, entry)
		}
	})

	rep.Finish()
	logger.Info().
		Int("matched", rep.Totals.Matched).
		Int("applied", rep.Totals.Applied).
		Int("failed", rep.Totals.Failed).
		Msg("Rewrite finished")
	return rep, nil
}
