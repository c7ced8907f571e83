package profiles

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/retarget/pkg/errors"
)

// CommandRunner runs an external command and returns its stdout
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands on the local machine
type ExecRunner struct {
	logger zerolog.Logger
}

// NewExecRunner returns a runner backed by os/exec
func NewExecRunner(logger zerolog.Logger) *ExecRunner {
	return &ExecRunner{logger: logger}
}

// Run executes name with args. The context bounds the run time.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	r.logger.Debug().
		Str("command", name).
		Strs("args", args).
		Msg("Executing command")

	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if stderr.Len() > 0 {
		r.logger.Debug().Str("output", stderr.String()).Msg("Command stderr")
	}
	if err != nil {
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		return stdout.Bytes(), &errors.RetargetError{
			Code:    errors.ErrCommand,
			Message: "command failed: " + name + " " + strings.Join(args, " "),
			Details: map[string]interface{}{"stderr": strings.TrimSpace(stderr.String())},
			Wrapped: err,
		}
	}
	return stdout.Bytes(), nil
}
