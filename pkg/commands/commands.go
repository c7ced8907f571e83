// Package commands provides high-level command implementations for retarget.
//
// This package contains the command orchestration layer that coordinates
// between the CLI interface and the pipeline packages.
//
// Each command is implemented in its own subdirectory:
//   - rewrite/   - Rewrite command
//   - scan/      - Scan command
//   - probe/     - Probe command
//   - show/      - Show command
//   - genconfig/ - GenConfig command
//   - pipeline/  - Shared host/user/shortcut walk
//
// This file re-exports the command functions so callers need one import.
package commands

import (
	"context"

	"github.com/arthur-debert/retarget/pkg/commands/genconfig"
	"github.com/arthur-debert/retarget/pkg/commands/pipeline"
	"github.com/arthur-debert/retarget/pkg/commands/probe"
	"github.com/arthur-debert/retarget/pkg/commands/rewrite"
	"github.com/arthur-debert/retarget/pkg/commands/scan"
	"github.com/arthur-debert/retarget/pkg/commands/show"
	"github.com/arthur-debert/retarget/pkg/report"
)

// Deps and Scope are shared by the commands that walk hosts
type (
	Deps  = pipeline.Deps
	Scope = pipeline.Scope
)

// RewriteOptions configures Rewrite
type RewriteOptions = rewrite.RewriteOptions

// Rewrite points matching shortcuts at the new target.
func Rewrite(ctx context.Context, opts RewriteOptions) (*report.Report, error) {
	return rewrite.Rewrite(ctx, opts)
}

// ScanOptions configures Scan
type ScanOptions = scan.ScanOptions

// Scan lists shortcuts and their targets.
func Scan(ctx context.Context, opts ScanOptions) (*report.Report, error) {
	return scan.Scan(ctx, opts)
}

// ProbeOptions configures Probe
type ProbeOptions = probe.ProbeOptions

// Probe reports profile roots and users per host.
func Probe(ctx context.Context, opts ProbeOptions) (*report.Report, error) {
	return probe.Probe(ctx, opts)
}

// ShowOptions configures Show
type ShowOptions = show.ShowOptions

// Show decodes shortcut files.
func Show(opts ShowOptions) (*report.Report, error) {
	return show.Show(opts)
}

// GenConfigOptions configures GenConfig
type GenConfigOptions = genconfig.GenConfigOptions

// GenConfig renders or writes configuration.
func GenConfig(opts GenConfigOptions) (*genconfig.GenConfigResult, error) {
	return genconfig.GenConfig(opts)
}
