// Package target resolves the old and new target arguments of a rewrite.
// A value naming an existing directory or shortcut becomes a set of
// reference shortcuts; anything else is compared as a literal path string.
package target

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/arthur-debert/retarget/pkg/errors"
	"github.com/arthur-debert/retarget/pkg/logging"
	"github.com/arthur-debert/retarget/pkg/paths"
	"github.com/arthur-debert/retarget/pkg/shelllink"
)

// Kind tells how a specifier is matched
type Kind int

const (
	// Literal specifiers are compared as path strings
	Literal Kind = iota
	// References specifiers match against the targets of reference shortcuts
	References
)

func (k Kind) String() string {
	if k == References {
		return "references"
	}
	return "literal"
}

// Reference is one reference shortcut
type Reference struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	Target string `json:"target"`
}

// Specifier is a resolved old or new target
type Specifier struct {
	Raw        string      `json:"raw"`
	Kind       Kind        `json:"-"`
	Path       string      `json:"path,omitempty"`
	References []Reference `json:"references,omitempty"`
}

// IsLiteral reports whether the specifier is compared as a string
func (s *Specifier) IsLiteral() bool {
	return s.Kind == Literal
}

// Lookup finds the reference with the given file name, ignoring case
func (s *Specifier) Lookup(name string) (Reference, bool) {
	for _, ref := range s.References {
		if strings.EqualFold(ref.Name, name) {
			return ref, true
		}
	}
	return Reference{}, false
}

// Resolver turns user arguments into specifiers
type Resolver struct {
	fs        afero.Fs
	editor    shelllink.Editor
	extension string
	logger    zerolog.Logger
}

// NewResolver returns a resolver reading reference shortcuts with editor
func NewResolver(fs afero.Fs, editor shelllink.Editor, extension string) *Resolver {
	if extension == "" {
		extension = ".lnk"
	}
	return &Resolver{
		fs:        fs,
		editor:    editor,
		extension: extension,
		logger:    logging.GetLogger("target"),
	}
}

// Resolve classifies raw. A missing path is not an error: it is a literal.
func (r *Resolver) Resolve(raw string) (*Specifier, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, errors.New(errors.ErrInvalidInput, "target must not be empty")
	}

	spec := &Specifier{Raw: raw, Kind: Literal}
	path := paths.ExpandHome(raw)

	info, err := r.fs.Stat(path)
	if err != nil {
		r.logger.Debug().Str("target", raw).Msg("Target does not exist, comparing as literal")
		return spec, nil
	}

	switch {
	case info.IsDir():
		refs, err := r.readDir(path)
		if err != nil {
			return nil, err
		}
		spec.Kind = References
		spec.Path = path
		spec.References = refs
	case r.isShortcut(path):
		ref, err := r.readReference(path)
		if err != nil {
			return nil, err
		}
		spec.Kind = References
		spec.Path = path
		spec.References = []Reference{ref}
	default:
		r.logger.Debug().Str("target", raw).Msg("Target is a regular file, comparing as literal")
	}

	r.logger.Info().
		Str("target", raw).
		Str("kind", spec.Kind.String()).
		Int("references", len(spec.References)).
		Msg("Resolved target")
	return spec, nil
}

func (r *Resolver) isShortcut(path string) bool {
	return strings.EqualFold(filepath.Ext(path), r.extension)
}

func (r *Resolver) readDir(dir string) ([]Reference, error) {
	entries, err := afero.ReadDir(r.fs, dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot list reference directory %s", dir)
	}

	var refs []Reference
	for _, entry := range entries {
		if entry.IsDir() || !r.isShortcut(entry.Name()) {
			continue
		}
		ref, err := r.readReference(filepath.Join(dir, entry.Name()))
		if err != nil {
			r.logger.Warn().Err(err).Str("path", entry.Name()).Msg("Skipping unreadable reference shortcut")
			continue
		}
		refs = append(refs, ref)
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

func (r *Resolver) readReference(path string) (Reference, error) {
	tgt, err := r.editor.ReadTarget(path)
	if err != nil {
		return Reference{}, err
	}
	return Reference{Name: filepath.Base(path), Path: path, Target: tgt}, nil
}
