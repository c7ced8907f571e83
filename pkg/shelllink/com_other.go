//go:build !windows

package shelllink

import "github.com/arthur-debert/retarget/pkg/errors"

func newCOMEditor() (Editor, error) {
	return nil, errors.New(errors.ErrUnsupported, "the com shortcut backend is only available on Windows")
}
