package executor

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/arthur-debert/retarget/pkg/errors"
	"github.com/arthur-debert/retarget/pkg/filesystem"
	"github.com/arthur-debert/retarget/pkg/internal/hashutil"
	"github.com/arthur-debert/retarget/pkg/logging"
	"github.com/arthur-debert/retarget/pkg/matcher"
	"github.com/arthur-debert/retarget/pkg/shelllink"
)

// Status is the outcome of an action
type Status string

// Action outcomes
const (
	StatusApplied Status = "applied"
	StatusPlanned Status = "planned"
	StatusFailed  Status = "failed"
)

// Result is the outcome of one action
type Result struct {
	Action   matcher.Action
	Status   Status
	Error    error
	Duration time.Duration
}

// Options contains configuration for the executor
type Options struct {
	Editor shelllink.Editor
	DryRun bool
	Logger zerolog.Logger
	// Filesystem for backups and reference copies
	FS afero.Fs
}

// Executor applies actions one by one
type Executor struct {
	editor shelllink.Editor
	dryRun bool
	logger zerolog.Logger
	fs     afero.Fs
}

// New creates a new executor instance
func New(opts Options) *Executor {
	logger := opts.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = logging.GetLogger("executor")
	}

	fs := opts.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}

	editor := opts.Editor
	if editor == nil {
		editor = shelllink.NewNativeEditor(fs)
	}

	return &Executor{
		editor: editor,
		dryRun: opts.DryRun,
		logger: logger,
		fs:     fs,
	}
}

// Execute applies actions in order. A failed action does not stop the rest.
func (e *Executor) Execute(actions []matcher.Action) []Result {
	results := make([]Result, 0, len(actions))

	for _, action := range actions {
		results = append(results, e.executeAction(action))
	}

	return results
}

func (e *Executor) executeAction(action matcher.Action) Result {
	start := time.Now()

	e.logger.Debug().
		Str("kind", string(action.Kind)).
		Str("path", action.Path).
		Str("new_target", action.NewTarget).
		Bool("dry_run", e.dryRun).
		Msg("Executing action")

	if e.dryRun {
		return Result{
			Action:   action,
			Status:   StatusPlanned,
			Duration: time.Since(start),
		}
	}

	if err := e.apply(action); err != nil {
		e.logger.Error().
			Err(err).
			Str("path", action.Path).
			Msg("Action execution failed")

		return Result{
			Action:   action,
			Status:   StatusFailed,
			Error:    err,
			Duration: time.Since(start),
		}
	}

	e.logger.Info().
		Str("kind", string(action.Kind)).
		Str("path", action.Path).
		Str("from", action.CurrentTarget).
		Str("to", action.NewTarget).
		Dur("duration", time.Since(start)).
		Msg("Shortcut retargeted")

	return Result{
		Action:   action,
		Status:   StatusApplied,
		Duration: time.Since(start),
	}
}

func (e *Executor) apply(action matcher.Action) error {
	if action.Backup != "" {
		if err := filesystem.CopyFile(e.fs, action.Path, action.Backup); err != nil {
			return errors.Wrapf(err, errors.ErrBackup, "cannot back up %s to %s", action.Path, action.Backup)
		}
		same, err := hashutil.SameContent(e.fs, action.Path, action.Backup)
		if err != nil {
			return errors.Wrapf(err, errors.ErrBackup, "cannot verify backup %s", action.Backup)
		}
		if !same {
			return errors.Newf(errors.ErrBackup, "backup %s differs from %s", action.Backup, action.Path)
		}
		e.logger.Debug().Str("backup", action.Backup).Msg("Backed up shortcut")
	}

	switch action.Kind {
	case matcher.KindRetarget:
		return e.editor.Retarget(action.Path, action.NewTarget)
	case matcher.KindCopyReference:
		return e.copyReference(action)
	default:
		return errors.Newf(errors.ErrInternal, "unknown action kind %q", action.Kind)
	}
}

// copyReference replaces the shortcut with a copy of the reference. The
// shortcut stays untouched unless the copy is complete.
func (e *Executor) copyReference(action matcher.Action) error {
	if _, err := e.fs.Stat(action.Reference); err != nil {
		return errors.Wrapf(err, errors.ErrNoReference, "reference %s is gone", action.Reference)
	}
	if err := filesystem.ReplaceWithCopy(e.fs, action.Reference, action.Path); err != nil {
		return errors.Wrapf(err, errors.ErrShortcutWrite, "cannot copy %s to %s", action.Reference, action.Path)
	}
	return nil
}

// Summary counts results by status
func Summary(results []Result) map[Status]int {
	counts := map[Status]int{}
	for _, r := range results {
		counts[r.Status]++
	}
	return counts
}
