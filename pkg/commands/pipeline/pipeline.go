// Package pipeline holds the host/user/shortcut walk shared by the commands.
package pipeline

import (
	"context"

	"github.com/spf13/afero"

	"github.com/arthur-debert/retarget/pkg/config"
	"github.com/arthur-debert/retarget/pkg/errors"
	"github.com/arthur-debert/retarget/pkg/filesystem"
	"github.com/arthur-debert/retarget/pkg/logging"
	"github.com/arthur-debert/retarget/pkg/paths"
	"github.com/arthur-debert/retarget/pkg/profiles"
	"github.com/arthur-debert/retarget/pkg/report"
	"github.com/arthur-debert/retarget/pkg/scanner"
	"github.com/arthur-debert/retarget/pkg/shelllink"
)

// Deps are the collaborators of a command. Zero values are filled from the
// configuration.
type Deps struct {
	FS     afero.Fs
	Config *config.Config
	Runner profiles.CommandRunner
	Editor shelllink.Editor
}

// Resolve fills missing dependencies
func (d Deps) Resolve() (Deps, error) {
	if d.Config == nil {
		d.Config = config.Default()
	}
	if d.FS == nil {
		d.FS = filesystem.NewOS()
	}
	if d.Editor == nil {
		editor, err := shelllink.NewEditor(d.Config.Shortcuts.Backend, d.FS)
		if err != nil {
			return d, err
		}
		d.Editor = editor
	}
	return d, nil
}

// Scope selects hosts, users and the directory below each user
type Scope struct {
	Hosts    []string
	Users    []string
	AllUsers bool
	Subdir   string
}

// Validate rejects contradictory selections
func (s Scope) Validate() error {
	if s.AllUsers && len(s.Users) > 0 {
		return errors.New(errors.ErrInvalidInput, "--user and --all-users are mutually exclusive")
	}
	return nil
}

// UserVisitor handles the shortcuts found for one user. It fills in the
// shortcut entries of u.
type UserVisitor func(u *report.User, shortcuts []string)

// Walk resolves every host of scope, lists its users and scans them. Host
// and user failures are recorded in rep and do not stop the walk. A nil
// visit lists hosts and users without scanning.
func Walk(ctx context.Context, deps Deps, scope Scope, rep *report.Report, visit UserVisitor) {
	logger := logging.GetLogger("commands.walk")
	enum := profiles.NewEnumerator(deps.FS, deps.Config, deps.Runner)
	scan := scanner.New(deps.FS, deps.Config.Shortcuts.Extension, deps.Config.Shortcuts.BackupDir)

	hosts := scope.Hosts
	if len(hosts) == 0 {
		hosts = []string{""}
	}

	for _, host := range hosts {
		rh := report.Host{Name: host}

		root, err := enum.Root(ctx, host)
		if err != nil {
			logger.Warn().Err(err).Str("host", host).Msg("Skipping host")
			rh.Error = err.Error()
			rep.Hosts = append(rep.Hosts, rh)
			continue
		}
		rh.Root = root.Dir
		rh.Convention = string(root.Convention)
		rh.Method = string(root.Method)

		users, err := enum.Users(root, profiles.Selection{Names: scope.Users, All: scope.AllUsers})
		if err != nil {
			logger.Warn().Err(err).Str("host", host).Msg("Cannot list users")
			rh.Error = err.Error()
			rep.Hosts = append(rep.Hosts, rh)
			continue
		}

		for _, u := range users {
			ru := report.User{Name: u.Name, Dir: u.Dir}
			if u.Err != nil {
				ru.Error = u.Err.Error()
				rh.Users = append(rh.Users, ru)
				continue
			}
			if visit != nil {
				start := u.Dir
				if scope.Subdir != "" {
					start = paths.Join(u.Dir, scope.Subdir)
				}
				found, err := scan.Scan(start)
				if err != nil {
					ru.Error = err.Error()
				} else {
					ru.Scanned = len(found)
					visit(&ru, found)
				}
			}
			rh.Users = append(rh.Users, ru)
		}

		rep.Hosts = append(rep.Hosts, rh)
	}
}
