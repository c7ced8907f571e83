// Package filesystem provides the filesystem used by retarget.
//
// Everything that touches profile directories goes through an afero.Fs so
// that the pipeline runs unchanged against the OS filesystem and against
// in-memory filesystems in tests.
package filesystem
