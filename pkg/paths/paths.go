package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for retarget
	EnvConfigDir = "RETARGET_CONFIG_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

const (
	// AppDirName is the directory name for retarget-specific files
	AppDirName = "retarget"

	// ConfigFileName is the name of the user configuration file
	ConfigFileName = "config.toml"
)

// ConfigDir returns the directory holding the user configuration
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return ExpandHome(dir)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// ConfigFile returns the default path of the user configuration file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// ExpandHome expands a leading ~ to the home directory.
// Paths of the form ~user are returned as-is.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}

	if path[1] == '/' || path[1] == '\\' {
		return filepath.Join(homeDir, path[2:])
	}

	return path
}

// IsLocalHost reports whether host names the machine retarget runs on.
func IsLocalHost(host string) bool {
	switch strings.ToLower(strings.TrimSpace(host)) {
	case "", ".", "localhost", "127.0.0.1", "::1":
		return true
	}
	name, err := os.Hostname()
	if err != nil {
		return false
	}
	return strings.EqualFold(host, name)
}

// ExpandTemplate substitutes {host} and {share} placeholders.
func ExpandTemplate(template, host, share string) string {
	r := strings.NewReplacer("{host}", host, "{share}", share)
	return r.Replace(template)
}

// Join joins a base location with child elements. Bases written with
// backslashes (UNC shares, drive paths) keep backslash separators so that
// the result stays a valid Windows path regardless of the running OS.
func Join(base string, elem ...string) string {
	if !strings.Contains(base, `\`) || filepath.Separator == '\\' {
		return filepath.Join(append([]string{base}, elem...)...)
	}
	parts := []string{strings.TrimRight(base, `\`)}
	for _, e := range elem {
		e = strings.Trim(strings.ReplaceAll(e, "/", `\`), `\`)
		if e != "" {
			parts = append(parts, e)
		}
	}
	if len(parts) == 1 && strings.HasSuffix(base, `\`) {
		return base
	}
	return strings.Join(parts, `\`)
}

// Split returns the directory and file name of p. Paths written with
// backslashes are split on the last backslash on every OS.
func Split(p string) (dir, file string) {
	if filepath.Separator == '\\' || !strings.Contains(p, `\`) {
		return filepath.Dir(p), filepath.Base(p)
	}
	i := strings.LastIndex(p, `\`)
	return p[:i], p[i+1:]
}
