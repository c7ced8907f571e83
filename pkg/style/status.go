package style

import (
	"github.com/pterm/pterm"
)

// Status is the display status of a shortcut or host line
type Status string

const (
	StatusApplied    Status = "applied"    // Shortcut rewritten
	StatusPlanned    Status = "planned"    // Would be rewritten (dry run)
	StatusFailed     Status = "failed"     // Rewrite or backup failed
	StatusSkipped    Status = "skipped"    // Matched but left alone
	StatusMatch      Status = "match"      // Scan hit
	StatusUnreadable Status = "unreadable" // Could not be decoded
	StatusInfo       Status = "info"
)

// StatusStyle returns the pterm badge style for a status
func StatusStyle(status Status) *pterm.Style {
	switch status {
	case StatusApplied:
		return pterm.NewStyle(pterm.BgGreen, pterm.FgWhite)
	case StatusFailed, StatusUnreadable:
		return pterm.NewStyle(pterm.BgRed, pterm.FgWhite, pterm.Bold)
	case StatusPlanned:
		return pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	case StatusSkipped:
		return pterm.NewStyle(pterm.FgGray)
	case StatusMatch:
		return pterm.NewStyle(pterm.FgCyan)
	default:
		return pterm.NewStyle(pterm.FgDefault)
	}
}

// Indicator returns the one-character mark shown before a status badge
func Indicator(status Status) string {
	switch status {
	case StatusApplied:
		return SuccessIndicator
	case StatusFailed, StatusUnreadable:
		return ErrorIndicator
	case StatusPlanned:
		return PendingIndicator
	case StatusSkipped:
		return WarningIndicator
	default:
		return InfoIndicator
	}
}

// Badge renders the indicator and a fixed-width status label
func Badge(status Status) string {
	return Indicator(status) + " " + StatusStyle(status).Sprintf(" %-10s ", string(status))
}
