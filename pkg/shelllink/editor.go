package shelllink

import (
	"github.com/spf13/afero"

	"github.com/arthur-debert/retarget/pkg/config"
	"github.com/arthur-debert/retarget/pkg/errors"
	"github.com/arthur-debert/retarget/pkg/filesystem"
)

// Editor reads and rewrites shortcut targets
type Editor interface {
	ReadTarget(path string) (string, error)
	Retarget(path, newTarget string) error
}

// NewEditor returns the editor for a configured backend name
func NewEditor(backend string, fs afero.Fs) (Editor, error) {
	switch backend {
	case "", config.BackendNative:
		return NewNativeEditor(fs), nil
	case config.BackendCOM:
		return newCOMEditor()
	default:
		return nil, errors.Newf(errors.ErrConfigValid, "unknown shortcut backend %q", backend)
	}
}

// NativeEditor edits shortcuts with the built-in codec
type NativeEditor struct {
	fs afero.Fs
}

// NewNativeEditor returns a codec-backed editor over fs
func NewNativeEditor(fs afero.Fs) *NativeEditor {
	return &NativeEditor{fs: fs}
}

// Load reads and decodes the shortcut at path
func (e *NativeEditor) Load(path string) (*Link, error) {
	data, err := afero.ReadFile(e.fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrShortcutRead, "cannot read %s", path)
	}
	l, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrShortcutFormat, "cannot decode %s", path)
	}
	return l, nil
}

// Save encodes l and replaces the file at path
func (e *NativeEditor) Save(path string, l *Link) error {
	if err := filesystem.ReplaceFile(e.fs, path, l.Encode()); err != nil {
		return errors.Wrapf(err, errors.ErrShortcutWrite, "cannot write %s", path)
	}
	return nil
}

// ReadTarget returns the resolved target of the shortcut at path
func (e *NativeEditor) ReadTarget(path string) (string, error) {
	l, err := e.Load(path)
	if err != nil {
		return "", err
	}
	return l.Target(), nil
}

// Retarget points the shortcut at path to newTarget
func (e *NativeEditor) Retarget(path, newTarget string) error {
	l, err := e.Load(path)
	if err != nil {
		return err
	}
	l.SetTarget(newTarget)
	return e.Save(path, l)
}
