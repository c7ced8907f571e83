package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Retarget Windows shortcuts across user profiles"
	MsgRewriteShort    = "Point matching shortcuts at a new target"
	MsgScanShort       = "List shortcuts and their targets"
	MsgProbeShort      = "Check profile roots and users of hosts"
	MsgShowShort       = "Decode shortcut files"
	MsgConfigShort     = "Print the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man pages"

	// Status messages
	MsgDryRunNotice  = "DRY RUN MODE - No changes were made"
	MsgConfigWritten = "Wrote configuration to %s\n"
	MsgVersionFormat = "retarget version %s\n  commit: %s\n  built:  %s\n"
	MsgManWritten    = "Wrote man pages to %s\n"

	// Flag descriptions
	MsgFlagVerbose       = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun        = "Preview changes without executing them"
	MsgFlagConfig        = "Config file (default $XDG_CONFIG_HOME/retarget/config.toml)"
	MsgFlagFormat        = "Output format (auto, term, text, json, yaml, toml, xml, markdown)"
	MsgFlagOld           = "Old target: a path, a reference shortcut or a directory of them"
	MsgFlagNew           = "New target: a path, a reference shortcut or a directory of them"
	MsgFlagOldFilter     = "Only list shortcuts pointing at this target"
	MsgFlagHost          = "Host to process (repeatable, default the local machine)"
	MsgFlagUser          = "User to process (repeatable, default the current user)"
	MsgFlagAllUsers      = "Process every user profile on the host"
	MsgFlagSubdir        = "Only scan this directory below each profile (e.g. Desktop)"
	MsgFlagBackup        = "Copy each shortcut into a Backup directory before changing it"
	MsgFlagProfileRoot   = "Profile root on the local machine (skips probing)"
	MsgFlagBackend       = "Shortcut backend (native, com)"
	MsgFlagCaseSensitive = "Compare targets case-sensitively"
	MsgFlagDefaults      = "Print the commented default configuration"
	MsgFlagWrite         = "Write the default configuration to the user config file"
	MsgFlagManDir        = "Directory to write man pages to"

	// Error messages
	MsgErrLoadConfig = "failed to load configuration: %w"
	MsgErrNoCommand  = "no command specified"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/rewrite-long.txt
	msgRewriteLongRaw string
	MsgRewriteLong    = strings.TrimSpace(msgRewriteLongRaw)

	//go:embed msgs/rewrite-example.txt
	msgRewriteExampleRaw string
	MsgRewriteExample    = strings.TrimRight(msgRewriteExampleRaw, "\n")

	//go:embed msgs/scan-long.txt
	msgScanLongRaw string
	MsgScanLong    = strings.TrimSpace(msgScanLongRaw)

	//go:embed msgs/probe-long.txt
	msgProbeLongRaw string
	MsgProbeLong    = strings.TrimSpace(msgProbeLongRaw)

	//go:embed msgs/show-long.txt
	msgShowLongRaw string
	MsgShowLong    = strings.TrimSpace(msgShowLongRaw)

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
