// Package paths provides centralized path handling for retarget.
//
// It resolves the XDG locations used for configuration and logs, expands
// "~" in user-supplied paths, and builds host-relative locations such as
// admin shares on remote machines.
//
// # Environment Variables
//
//   - RETARGET_CONFIG_DIR: Override XDG config directory (default: $XDG_CONFIG_HOME/retarget)
//   - XDG_STATE_HOME: Base of the log directory (default: ~/.local/state)
package paths
