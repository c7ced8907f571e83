package config

import "time"

// Config is the effective retarget configuration
type Config struct {
	Profiles  Profiles  `koanf:"profiles"`
	Remote    Remote    `koanf:"remote"`
	Shortcuts Shortcuts `koanf:"shortcuts"`
	Output    Output    `koanf:"output"`
}

// Profiles controls how profile roots and user directories are found
type Profiles struct {
	Root         string   `koanf:"root"`
	SystemDrive  string   `koanf:"system_drive"`
	Candidates   []string `koanf:"candidates"`
	ExcludeUsers []string `koanf:"exclude_users"`
}

// Remote controls access to other hosts
type Remote struct {
	ShareTemplate string        `koanf:"share_template"`
	AdminShare    string        `koanf:"admin_share"`
	RegistryQuery bool          `koanf:"registry_query"`
	Command       []string      `koanf:"command"`
	Timeout       time.Duration `koanf:"timeout"`
}

// Shortcuts controls shortcut discovery and rewriting
type Shortcuts struct {
	Extension     string `koanf:"extension"`
	Backend       string `koanf:"backend"`
	BackupDir     string `koanf:"backup_dir"`
	CaseSensitive bool   `koanf:"case_sensitive"`
}

// Output controls report rendering
type Output struct {
	Format string `koanf:"format"`
}

// Backend names
const (
	BackendNative = "native"
	BackendCOM    = "com"
)

// Formats lists the accepted output formats
var Formats = []string{"auto", "term", "text", "json", "yaml", "toml", "xml", "markdown"}

// Map returns the configuration as nested maps keyed like the config file
func (c *Config) Map() map[string]interface{} {
	return map[string]interface{}{
		"profiles": map[string]interface{}{
			"root":          c.Profiles.Root,
			"system_drive":  c.Profiles.SystemDrive,
			"candidates":    c.Profiles.Candidates,
			"exclude_users": c.Profiles.ExcludeUsers,
		},
		"remote": map[string]interface{}{
			"share_template": c.Remote.ShareTemplate,
			"admin_share":    c.Remote.AdminShare,
			"registry_query": c.Remote.RegistryQuery,
			"command":        c.Remote.Command,
			"timeout":        c.Remote.Timeout.String(),
		},
		"shortcuts": map[string]interface{}{
			"extension":      c.Shortcuts.Extension,
			"backend":        c.Shortcuts.Backend,
			"backup_dir":     c.Shortcuts.BackupDir,
			"case_sensitive": c.Shortcuts.CaseSensitive,
		},
		"output": map[string]interface{}{
			"format": c.Output.Format,
		},
	}
}
