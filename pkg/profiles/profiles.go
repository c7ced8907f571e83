// Package profiles finds the directory holding user profiles on a host and
// the user directories beneath it.
package profiles

import (
	"context"
	"os"
	"os/user"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/arthur-debert/retarget/pkg/config"
	"github.com/arthur-debert/retarget/pkg/errors"
	"github.com/arthur-debert/retarget/pkg/filesystem"
	"github.com/arthur-debert/retarget/pkg/logging"
	"github.com/arthur-debert/retarget/pkg/paths"
)

// Convention is the profile layout a root was found with
type Convention string

// Profile layouts
const (
	Modern Convention = "modern" // <drive>\Users
	Legacy Convention = "legacy" // <drive>\Documents and Settings
	Custom Convention = "custom"
)

// Method tells how a root was located
type Method string

// Location methods
const (
	MethodOverride Method = "override"
	MethodLocal    Method = "local"
	MethodShare    Method = "share"
	MethodRegistry Method = "registry"
)

const legacyDirName = "Documents and Settings"

// Root is a resolved profile root
type Root struct {
	Host       string     `json:"host"`
	Dir        string     `json:"dir"`
	Convention Convention `json:"convention"`
	Method     Method     `json:"method"`
}

// Selection picks the users to process
type Selection struct {
	Names []string
	All   bool
}

// User is a selected user directory. Err is set when the user was requested
// by name and has no directory under the root.
type User struct {
	Name string
	Dir  string
	Err  error
}

// Enumerator resolves profile roots and users
type Enumerator struct {
	fs     afero.Fs
	cfg    config.Profiles
	remote config.Remote
	runner CommandRunner
	logger zerolog.Logger

	// CurrentUser returns the user processed when no selection is made
	CurrentUser func() (string, error)
}

// NewEnumerator returns an enumerator over fs. Remote registry lookups go
// through runner.
func NewEnumerator(fs afero.Fs, cfg *config.Config, runner CommandRunner) *Enumerator {
	logger := logging.GetLogger("profiles")
	if runner == nil {
		runner = NewExecRunner(logger)
	}
	return &Enumerator{
		fs:          fs,
		cfg:         cfg.Profiles,
		remote:      cfg.Remote,
		runner:      runner,
		logger:      logger,
		CurrentUser: currentUser,
	}
}

// Root finds the profile root of host. Errors are HOST_UNREACHABLE or
// PROFILE_ROOT and concern this host only.
func (e *Enumerator) Root(ctx context.Context, host string) (*Root, error) {
	if paths.IsLocalHost(host) {
		return e.localRoot(host)
	}
	return e.remoteRoot(ctx, host)
}

func (e *Enumerator) localRoot(host string) (*Root, error) {
	if e.cfg.Root != "" {
		dir := paths.ExpandHome(e.cfg.Root)
		if !filesystem.IsDir(e.fs, dir) {
			return nil, errors.Newf(errors.ErrProfileRoot, "profile root %s does not exist", dir).
				WithDetail("host", host)
		}
		e.logger.Debug().Str("dir", dir).Msg("Using configured profile root")
		return &Root{Host: host, Dir: dir, Convention: Custom, Method: MethodOverride}, nil
	}

	if root := e.probe(host, driveRoot(e.cfg.SystemDrive), MethodLocal); root != nil {
		return root, nil
	}
	return nil, errors.Newf(errors.ErrProfileRoot, "no profile root under %s (tried %s)",
		e.cfg.SystemDrive, strings.Join(e.cfg.Candidates, ", ")).WithDetail("host", host)
}

func (e *Enumerator) remoteRoot(ctx context.Context, host string) (*Root, error) {
	base := paths.ExpandTemplate(e.remote.ShareTemplate, host, e.remote.AdminShare)
	if _, err := e.fs.Stat(base); err != nil {
		return nil, errors.Wrapf(err, errors.ErrHostUnreachable, "cannot reach %s", base)
	}

	if root := e.probe(host, base, MethodShare); root != nil {
		return root, nil
	}

	if !e.remote.RegistryQuery || len(e.remote.Command) == 0 {
		return nil, errors.Newf(errors.ErrProfileRoot, "no profile root under %s", base).
			WithDetail("host", host)
	}

	dir, err := e.queryProfilesDirectory(ctx, host)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrProfileRoot, "no profile root under %s and registry lookup failed", base)
	}
	if !filesystem.IsDir(e.fs, dir) {
		return nil, errors.Newf(errors.ErrProfileRoot, "registry profile directory %s does not exist", dir).
			WithDetail("host", host)
	}
	return &Root{Host: host, Dir: dir, Convention: conventionFor(dir), Method: MethodRegistry}, nil
}

// probe returns the first candidate directory that exists under base
func (e *Enumerator) probe(host, base string, method Method) *Root {
	for _, candidate := range e.cfg.Candidates {
		dir := paths.Join(base, candidate)
		if filesystem.IsDir(e.fs, dir) {
			e.logger.Debug().Str("host", host).Str("dir", dir).Msg("Found profile root")
			return &Root{Host: host, Dir: dir, Convention: conventionFor(candidate), Method: method}
		}
		e.logger.Trace().Str("host", host).Str("dir", dir).Msg("Profile root candidate missing")
	}
	return nil
}

// queryProfilesDirectory asks the remote registry for ProfilesDirectory and
// maps the answer onto the host's administrative share for that drive.
func (e *Enumerator) queryProfilesDirectory(ctx context.Context, host string) (string, error) {
	if e.remote.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.remote.Timeout)
		defer cancel()
	}

	args := make([]string, len(e.remote.Command)-1)
	for i, a := range e.remote.Command[1:] {
		args[i] = paths.ExpandTemplate(a, host, e.remote.AdminShare)
	}

	out, err := e.runner.Run(ctx, e.remote.Command[0], args...)
	if err != nil {
		return "", err
	}

	value, ok := ParseRegValue(string(out), "ProfilesDirectory")
	if !ok {
		return "", errors.New(errors.ErrCommand, "ProfilesDirectory not found in registry output")
	}
	value = expandSystemDrive(value, e.cfg.SystemDrive)
	e.logger.Debug().Str("host", host).Str("value", value).Msg("Registry profile directory")

	if len(value) < 2 || value[1] != ':' {
		return "", errors.Newf(errors.ErrProfileRoot, "profile directory %q is not on a drive", value)
	}
	share := strings.ToUpper(value[:1]) + "$"
	base := paths.ExpandTemplate(e.remote.ShareTemplate, host, share)
	return paths.Join(base, strings.Split(strings.Trim(value[2:], `\`), `\`)...), nil
}

// ParseRegValue extracts the data of name from `reg query` output, e.g.
//
//	ProfilesDirectory    REG_EXPAND_SZ    %SystemDrive%\Users
func ParseRegValue(output, name string) (string, bool) {
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 || !strings.EqualFold(fields[0], name) || !strings.HasPrefix(fields[1], "REG_") {
			continue
		}
		idx := strings.Index(line, fields[1])
		return strings.TrimSpace(line[idx+len(fields[1]):]), true
	}
	return "", false
}

func expandSystemDrive(value, drive string) string {
	const token = "%systemdrive%"
	if i := strings.Index(strings.ToLower(value), token); i >= 0 {
		value = value[:i] + strings.TrimRight(drive, `\`) + value[i+len(token):]
	}
	return value
}

// driveRoot turns a bare drive such as C: into C:\ so joins stay absolute
func driveRoot(drive string) string {
	if len(drive) == 2 && drive[1] == ':' {
		return drive + `\`
	}
	return drive
}

func conventionFor(dir string) Convention {
	name := dir
	if i := strings.LastIndexAny(strings.TrimRight(dir, `\/`), `\/`); i >= 0 {
		name = strings.TrimRight(dir, `\/`)[i+1:]
	}
	if strings.EqualFold(name, legacyDirName) {
		return Legacy
	}
	return Modern
}

// Users returns the selected user directories under root. Named users that
// do not exist come back with Err set; listing failures are returned as err.
func (e *Enumerator) Users(root *Root, sel Selection) ([]User, error) {
	if sel.All {
		return e.allUsers(root)
	}

	names := sel.Names
	if len(names) == 0 {
		name, err := e.CurrentUser()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrUserNotFound, "cannot determine the current user")
		}
		names = []string{name}
	}

	users := make([]User, 0, len(names))
	for _, name := range names {
		u := User{Name: name, Dir: paths.Join(root.Dir, name)}
		if !filesystem.IsDir(e.fs, u.Dir) {
			u.Err = errors.Newf(errors.ErrUserNotFound, "user %s has no profile under %s", name, root.Dir).
				WithDetail("host", root.Host)
			e.logger.Warn().Str("user", name).Str("root", root.Dir).Msg("User profile not found")
		}
		users = append(users, u)
	}
	return users, nil
}

func (e *Enumerator) allUsers(root *Root) ([]User, error) {
	entries, err := afero.ReadDir(e.fs, root.Dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot list profiles under %s", root.Dir)
	}

	excluded := make(map[string]bool, len(e.cfg.ExcludeUsers))
	for _, name := range e.cfg.ExcludeUsers {
		excluded[strings.ToLower(name)] = true
	}

	var users []User
	for _, entry := range entries {
		if !entry.IsDir() || excluded[strings.ToLower(entry.Name())] {
			continue
		}
		users = append(users, User{Name: entry.Name(), Dir: paths.Join(root.Dir, entry.Name())})
	}
	sort.Slice(users, func(i, j int) bool { return strings.ToLower(users[i].Name) < strings.ToLower(users[j].Name) })
	e.logger.Debug().Str("root", root.Dir).Int("users", len(users)).Msg("Listed user profiles")
	return users, nil
}

func currentUser() (string, error) {
	if u, err := user.Current(); err == nil && u.Username != "" {
		name := u.Username
		if i := strings.LastIndex(name, `\`); i >= 0 {
			name = name[i+1:]
		}
		return name, nil
	}
	for _, key := range []string{"USERNAME", "USER"} {
		if v := os.Getenv(key); v != "" {
			return v, nil
		}
	}
	return "", errors.New(errors.ErrUserNotFound, "no current user")
}
