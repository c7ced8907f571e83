// Package executor applies planned shortcut changes.
//
// Each action optionally copies the shortcut into its backup location first,
// then either rewrites the target through a shelllink.Editor or replaces the
// file with a copy of a reference shortcut. In dry-run mode actions are only
// logged and reported as planned.
package executor
