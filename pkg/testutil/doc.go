// Package testutil provides fixtures for retarget tests.
//
// Key components:
//   - ProfileTree: an in-memory profile root with users and shortcuts
//   - WriteLink / ReadTarget: build and inspect .lnk files through the codec
//   - FakeRunner: a CommandRunner returning canned output
//
// Usage guidelines:
//   - Tests run against afero memory filesystems unless they exercise the OS
//   - Shortcut fixtures are synthesized, never checked in as binary files
package testutil
