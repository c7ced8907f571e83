package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	rterrors "github.com/arthur-debert/retarget/pkg/errors"
	"github.com/arthur-debert/retarget/pkg/logging"
	"github.com/arthur-debert/retarget/pkg/paths"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// EnvPrefix is the prefix of environment variables read into the config
const EnvPrefix = "RETARGET_"

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// LoadOptions selects the sources merged on top of the defaults
type LoadOptions struct {
	// ConfigFile is an explicit config path. When empty the XDG location is
	// used if it exists.
	ConfigFile string
	// Overrides are dotted keys set from command-line flags
	Overrides map[string]interface{}
}

// Load merges defaults, the user file, environment and overrides
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, rterrors.Wrap(err, rterrors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config file
	path, explicit := opts.ConfigFile, opts.ConfigFile != ""
	if !explicit {
		path = paths.ConfigFile()
	}
	path = paths.ExpandHome(path)
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
			return nil, rterrors.Wrapf(err, rterrors.ErrConfigParse, "failed to load config from %s", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded config file")
	} else if explicit {
		return nil, rterrors.Wrapf(err, rterrors.ErrConfigLoad, "config file %s", path)
	}

	// 3. Environment
	err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
	if err != nil {
		return nil, rterrors.Wrap(err, rterrors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Flag overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, rterrors.Wrap(err, rterrors.ErrConfigLoad, "failed to load overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, rterrors.Wrap(err, rterrors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the embedded defaults without reading files or env
func Default() *Config {
	k := koanf.New(".")
	var cfg Config
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return &cfg
	}
	_ = k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		},
	})
	return &cfg
}

// DefaultContent returns the embedded defaults file
func DefaultContent() string {
	return string(defaultConfig)
}

// envKey maps RETARGET_REMOTE_SHARE_TEMPLATE to remote.share_template.
// Only the first underscore separates the section from the key.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}

// Validate checks values that would otherwise fail late
func Validate(cfg *Config) error {
	if !contains(Formats, cfg.Output.Format) {
		return rterrors.Newf(rterrors.ErrConfigValid, "unknown output format %q (want one of %s)",
			cfg.Output.Format, strings.Join(Formats, ", "))
	}
	switch cfg.Shortcuts.Backend {
	case BackendNative, BackendCOM:
	default:
		return rterrors.Newf(rterrors.ErrConfigValid, "unknown shortcut backend %q", cfg.Shortcuts.Backend)
	}
	if !strings.HasPrefix(cfg.Shortcuts.Extension, ".") {
		return rterrors.Newf(rterrors.ErrConfigValid, "shortcut extension %q must start with a dot", cfg.Shortcuts.Extension)
	}
	if cfg.Shortcuts.BackupDir == "" || strings.ContainsAny(cfg.Shortcuts.BackupDir, `/\`) {
		return rterrors.Newf(rterrors.ErrConfigValid, "backup dir %q must be a single directory name", cfg.Shortcuts.BackupDir)
	}
	if len(cfg.Profiles.Candidates) == 0 && cfg.Profiles.Root == "" {
		return rterrors.New(rterrors.ErrConfigValid, "profiles.candidates is empty and no profiles.root is set")
	}
	if cfg.Remote.Timeout < 0 {
		return rterrors.New(rterrors.ErrConfigValid, "remote.timeout must not be negative")
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// String renders a short description used in debug logs
func (c *Config) String() string {
	return fmt.Sprintf("backend=%s format=%s candidates=%v", c.Shortcuts.Backend, c.Output.Format, c.Profiles.Candidates)
}
