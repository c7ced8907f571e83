package show

import (
	"github.com/spf13/afero"

	"github.com/arthur-debert/retarget/pkg/errors"
	"github.com/arthur-debert/retarget/pkg/filesystem"
	"github.com/arthur-debert/retarget/pkg/internal/hashutil"
	"github.com/arthur-debert/retarget/pkg/report"
	"github.com/arthur-debert/retarget/pkg/shelllink"
)

// ShowOptions holds options for the show command
type ShowOptions struct {
	FS    afero.Fs
	Paths []string
}

// Show decodes shortcut files. A file that fails to decode gets an error
// entry; the others are still shown.
func Show(opts ShowOptions) (*report.Report, error) {
	if len(opts.Paths) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "at least one shortcut file is required")
	}
	fs := opts.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}
	editor := shelllink.NewNativeEditor(fs)

	rep := report.New("show", false)
	for _, path := range opts.Paths {
		entry := report.Link{Path: path}
		l, err := editor.Load(path)
		if err != nil {
			entry.Error = err.Error()
			rep.Links = append(rep.Links, entry)
			continue
		}
		if sum, err := hashutil.FileChecksum(fs, path); err == nil {
			entry.Checksum = sum
		}
		entry.Target = l.Target()
		entry.Name = l.Name
		entry.Arguments = l.Arguments
		entry.WorkingDir = l.WorkingDir
		entry.IconLocation = l.IconLocation
		entry.RelativePath = l.RelativePath
		entry.Flags = l.Header.Flags.Names()
		for _, b := range l.Extra {
			entry.Blocks = append(entry.Blocks, shelllink.BlockName(b.Signature))
		}
		rep.Links = append(rep.Links, entry)
	}
	return rep.Finish(), nil
}
