// Package cli wires the retarget commands into a cobra command tree.
package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/retarget/internal/version"
	"github.com/arthur-debert/retarget/pkg/commands"
	"github.com/arthur-debert/retarget/pkg/config"
	"github.com/arthur-debert/retarget/pkg/logging"
	"github.com/arthur-debert/retarget/pkg/report"
)

// globalFlags are the persistent flags plus the configuration they load
type globalFlags struct {
	verbosity  int
	dryRun     bool
	configFile string
	format     string

	// config overrides, applied only when given on the command line
	profileRoot   string
	backend       string
	caseSensitive bool

	deps commands.Deps
}

// overrides maps the changed override flags onto config keys
func (g *globalFlags) overrides(cmd *cobra.Command) map[string]interface{} {
	flags := cmd.Flags()
	o := map[string]interface{}{}
	if flags.Changed("format") {
		o["output.format"] = g.format
	}
	if flags.Changed("profile-root") {
		o["profiles.root"] = g.profileRoot
	}
	if flags.Changed("backend") {
		o["shortcuts.backend"] = g.backend
	}
	if flags.Changed("case-sensitive") {
		o["shortcuts.case_sensitive"] = g.caseSensitive
	}
	return o
}

// render writes rep to the command's output in the configured format
func (g *globalFlags) render(cmd *cobra.Command, rep *report.Report) error {
	format, err := report.ParseFormat(g.deps.Config.Output.Format)
	if err != nil {
		return err
	}
	return report.Render(cmd.OutOrStdout(), rep, format)
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithDeps(commands.Deps{})
}

// NewRootCmdWithDeps creates the root command over the given collaborators.
// The configuration is always loaded from files, environment and flags.
func NewRootCmdWithDeps(deps commands.Deps) *cobra.Command {
	initTemplateFormatting()

	g := &globalFlags{deps: deps}

	rootCmd := &cobra.Command{
		Use:     "retarget",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLogger(g.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")

			cfg, err := config.Load(config.LoadOptions{
				ConfigFile: g.configFile,
				Overrides:  g.overrides(cmd),
			})
			if err != nil {
				return fmt.Errorf(MsgErrLoadConfig, err)
			}
			g.deps.Config = cfg
			log.Debug().Stringer("config", cfg).Msg("Configuration loaded")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	pf.BoolVar(&g.dryRun, "dry-run", false, MsgFlagDryRun)
	pf.StringVar(&g.configFile, "config", "", MsgFlagConfig)
	pf.StringVar(&g.format, "format", "auto", MsgFlagFormat)
	pf.StringVar(&g.profileRoot, "profile-root", "", MsgFlagProfileRoot)
	pf.StringVar(&g.backend, "backend", config.BackendNative, MsgFlagBackend)
	pf.BoolVar(&g.caseSensitive, "case-sensitive", false, MsgFlagCaseSensitive)

	_ = rootCmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return config.Formats, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("backend", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{config.BackendNative, config.BackendCOM}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newRewriteCmd(g))
	rootCmd.AddCommand(newScanCmd(g))
	rootCmd.AddCommand(newProbeCmd(g))
	rootCmd.AddCommand(newShowCmd(g))
	rootCmd.AddCommand(newConfigCmd(g))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	initTopics(rootCmd)

	return rootCmd
}
