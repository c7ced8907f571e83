package genconfig

import (
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"

	"github.com/arthur-debert/retarget/pkg/config"
	"github.com/arthur-debert/retarget/pkg/errors"
	"github.com/arthur-debert/retarget/pkg/filesystem"
	"github.com/arthur-debert/retarget/pkg/logging"
	"github.com/arthur-debert/retarget/pkg/paths"
)

// GenConfigOptions holds options for the config command
type GenConfigOptions struct {
	FS     afero.Fs
	Config *config.Config
	// Template outputs the commented defaults instead of the effective values
	Template bool
	// Write stores the template at Path instead of returning it only
	Write bool
	Path  string
}

// GenConfigResult is the generated content and the file written, if any
type GenConfigResult struct {
	Content string
	Written string
}

// GenConfig renders the effective configuration or the defaults template
func GenConfig(opts GenConfigOptions) (*GenConfigResult, error) {
	logger := logging.GetLogger("commands.genconfig")

	result := &GenConfigResult{}
	if opts.Template || opts.Write {
		result.Content = config.GenerateConfigContent()
	} else {
		cfg := opts.Config
		if cfg == nil {
			cfg = config.Default()
		}
		out, err := toml.Marshal(cfg.Map())
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "cannot render configuration")
		}
		result.Content = string(out)
	}

	if !opts.Write {
		logger.Debug().Msg("Outputting config to stdout")
		return result, nil
	}

	fs := opts.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}
	path := opts.Path
	if path == "" {
		path = paths.ConfigFile()
	}

	if filesystem.Exists(fs, path) {
		return nil, errors.Newf(errors.ErrInvalidInput, "config file %s already exists", path)
	}
	dir, _ := paths.Split(path)
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", dir)
	}
	if err := afero.WriteFile(fs, path, []byte(result.Content), 0644); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot write %s", path)
	}

	logger.Info().Str("path", path).Msg("Written config file")
	result.Written = path
	return result, nil
}
