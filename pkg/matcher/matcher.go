// Package matcher decides which shortcuts a rewrite touches and how.
package matcher

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/retarget/pkg/errors"
	"github.com/arthur-debert/retarget/pkg/logging"
	"github.com/arthur-debert/retarget/pkg/paths"
	"github.com/arthur-debert/retarget/pkg/target"
)

// Kind is the kind of change an action makes
type Kind string

// Action kinds
const (
	// KindRetarget rewrites the target in place
	KindRetarget Kind = "retarget"
	// KindCopyReference replaces the shortcut with a copy of a reference
	KindCopyReference Kind = "copy-reference"
)

// Shortcut is a discovered shortcut and its current target
type Shortcut struct {
	Path   string
	Target string
}

// Action is a planned change to one shortcut
type Action struct {
	Kind          Kind   `json:"kind"`
	Path          string `json:"path"`
	CurrentTarget string `json:"current_target"`
	NewTarget     string `json:"new_target"`
	Reference     string `json:"reference,omitempty"`
	MatchedBy     string `json:"matched_by,omitempty"`
	Backup        string `json:"backup,omitempty"`
}

// Options tune matching
type Options struct {
	CaseSensitive bool
	Backup        bool
	BackupDir     string
}

// Matcher compares shortcut targets with the old target and plans the
// rewrite to the new one
type Matcher struct {
	old    *target.Specifier
	new    *target.Specifier
	opts   Options
	logger zerolog.Logger
}

// New returns a matcher. newSpec may be nil when only matching is needed.
func New(oldSpec, newSpec *target.Specifier, opts Options) *Matcher {
	return &Matcher{
		old:    oldSpec,
		new:    newSpec,
		opts:   opts,
		logger: logging.GetLogger("matcher"),
	}
}

// Equal compares two targets the way the matcher does. Trailing separators
// are ignored; case is ignored unless the matcher is case sensitive.
func (m *Matcher) Equal(a, b string) bool {
	a, b = normalize(a), normalize(b)
	if m.opts.CaseSensitive {
		return a == b
	}
	return strings.EqualFold(a, b)
}

func normalize(p string) string {
	p = strings.TrimSpace(p)
	if trimmed := strings.TrimRight(p, `\/`); trimmed != "" && !strings.HasSuffix(trimmed, ":") {
		return trimmed
	}
	return p
}

// Matches reports whether target equals the old target. For reference
// specifiers the matching reference is returned.
func (m *Matcher) Matches(tgt string) (*target.Reference, bool) {
	if m.old.IsLiteral() {
		return nil, m.Equal(tgt, m.old.Raw)
	}
	for i := range m.old.References {
		if m.Equal(tgt, m.old.References[i].Target) {
			return &m.old.References[i], true
		}
	}
	return nil, false
}

// Match plans the action for s. It returns nil when s is left alone and a
// NO_REFERENCE error when s matches but no new reference fits it.
func (m *Matcher) Match(s Shortcut) (*Action, error) {
	ref, ok := m.Matches(s.Target)
	if !ok {
		return nil, nil
	}

	dir, name := paths.Split(s.Path)
	action := &Action{Path: s.Path, CurrentTarget: s.Target}
	if ref != nil {
		action.MatchedBy = ref.Name
	}

	if m.new.IsLiteral() {
		action.Kind = KindRetarget
		action.NewTarget = m.new.Raw
	} else {
		newRef, found := target.Reference{}, false
		if ref != nil {
			newRef, found = m.new.Lookup(ref.Name)
		}
		if !found {
			newRef, found = m.new.Lookup(name)
		}
		if !found {
			return nil, errors.Newf(errors.ErrNoReference, "no reference shortcut for %s in %s", name, m.new.Path).
				WithDetail("path", s.Path)
		}
		action.Kind = KindCopyReference
		action.NewTarget = newRef.Target
		action.Reference = newRef.Path
	}

	if m.Equal(s.Target, action.NewTarget) {
		m.logger.Debug().Str("path", s.Path).Msg("Shortcut already points at the new target")
		return nil, nil
	}

	if m.opts.Backup {
		action.Backup = paths.Join(dir, m.opts.BackupDir, name)
	}
	return action, nil
}
