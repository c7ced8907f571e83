package cli

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/retarget/internal/version"
	"github.com/arthur-debert/retarget/pkg/commands"
)

// scopeFlags select hosts and users for the walking commands
type scopeFlags struct {
	hosts    []string
	users    []string
	allUsers bool
	subdir   string
}

func (s *scopeFlags) register(cmd *cobra.Command, subdir bool) {
	f := cmd.Flags()
	f.StringArrayVar(&s.hosts, "host", nil, MsgFlagHost)
	f.StringArrayVarP(&s.users, "user", "u", nil, MsgFlagUser)
	f.BoolVarP(&s.allUsers, "all-users", "a", false, MsgFlagAllUsers)
	if subdir {
		f.StringVar(&s.subdir, "subdir", "", MsgFlagSubdir)
	}
	cmd.MarkFlagsMutuallyExclusive("user", "all-users")
}

func (s *scopeFlags) scope() commands.Scope {
	return commands.Scope{
		Hosts:    s.hosts,
		Users:    s.users,
		AllUsers: s.allUsers,
		Subdir:   s.subdir,
	}
}

func newRewriteCmd(g *globalFlags) *cobra.Command {
	var (
		scope                scopeFlags
		oldTarget, newTarget string
		backup               bool
	)

	cmd := &cobra.Command{
		Use:     "rewrite --old <target> --new <target>",
		Short:   MsgRewriteShort,
		Long:    MsgRewriteLong,
		Example: MsgRewriteExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Info().
				Str("old", oldTarget).
				Str("new", newTarget).
				Strs("hosts", scope.hosts).
				Bool("dry_run", g.dryRun).
				Msg("Rewriting shortcuts")

			rep, err := commands.Rewrite(cmd.Context(), commands.RewriteOptions{
				Deps:   g.deps,
				Scope:  scope.scope(),
				Old:    oldTarget,
				New:    newTarget,
				Backup: backup,
				DryRun: g.dryRun,
			})
			if err != nil {
				return err
			}
			if err := g.render(cmd, rep); err != nil {
				return err
			}
			if g.dryRun {
				pterm.Warning.WithWriter(cmd.ErrOrStderr()).Println(MsgDryRunNotice)
			}
			return nil
		},
	}

	scope.register(cmd, true)
	cmd.Flags().StringVar(&oldTarget, "old", "", MsgFlagOld)
	cmd.Flags().StringVar(&newTarget, "new", "", MsgFlagNew)
	cmd.Flags().BoolVar(&backup, "backup", false, MsgFlagBackup)
	_ = cmd.MarkFlagRequired("old")
	_ = cmd.MarkFlagRequired("new")

	return cmd
}

func newScanCmd(g *globalFlags) *cobra.Command {
	var (
		scope scopeFlags
		old   string
	)

	cmd := &cobra.Command{
		Use:     "scan",
		Short:   MsgScanShort,
		Long:    MsgScanLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := commands.Scan(cmd.Context(), commands.ScanOptions{
				Deps:  g.deps,
				Scope: scope.scope(),
				Old:   old,
			})
			if err != nil {
				return err
			}
			return g.render(cmd, rep)
		},
	}

	scope.register(cmd, true)
	cmd.Flags().StringVar(&old, "old", "", MsgFlagOldFilter)
	return cmd
}

func newProbeCmd(g *globalFlags) *cobra.Command {
	var scope scopeFlags

	cmd := &cobra.Command{
		Use:     "probe",
		Short:   MsgProbeShort,
		Long:    MsgProbeLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := commands.Probe(cmd.Context(), commands.ProbeOptions{
				Deps:  g.deps,
				Scope: scope.scope(),
			})
			if err != nil {
				return err
			}
			return g.render(cmd, rep)
		},
	}

	scope.register(cmd, false)
	return cmd
}

func newShowCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "show <file.lnk>...",
		Short:   MsgShowShort,
		Long:    MsgShowLong,
		GroupID: "core",
		Args:    cobra.MinimumNArgs(1),
		ValidArgsFunction: func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return []string{"lnk"}, cobra.ShellCompDirectiveFilterFileExt
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := commands.Show(commands.ShowOptions{
				FS:    g.deps.FS,
				Paths: args,
			})
			if err != nil {
				return err
			}
			return g.render(cmd, rep)
		},
	}
}

func newConfigCmd(g *globalFlags) *cobra.Command {
	var defaults, write bool

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := commands.GenConfig(commands.GenConfigOptions{
				FS:       g.deps.FS,
				Config:   g.deps.Config,
				Template: defaults,
				Write:    write,
			})
			if err != nil {
				return err
			}
			if result.Written != "" {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWritten, result.Written)
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), result.Content)
			return err
		},
	}

	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)
	cmd.Flags().BoolVar(&write, "write", false, MsgFlagWrite)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

func newManCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:     "man",
		Short:   MsgManShort,
		GroupID: "misc",
		Hidden:  true,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			header := &doc.GenManHeader{
				Title:   "RETARGET",
				Section: "1",
				Source:  "retarget " + version.Version,
				Manual:  "retarget manual",
			}
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}
			if err := doc.GenManTree(cmd.Root(), header, dir); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), MsgManWritten, dir)
			return err
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "man", MsgFlagManDir)
	return cmd
}

// PrintError reports a command failure on stderr
func PrintError(err error) {
	pterm.Error.WithWriter(os.Stderr).Println(err.Error())
}
