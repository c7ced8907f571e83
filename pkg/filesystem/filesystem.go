package filesystem

import (
	"io"
	"os"

	"github.com/spf13/afero"

	"github.com/arthur-debert/retarget/pkg/paths"
)

// NewOS returns the OS-backed filesystem
func NewOS() afero.Fs {
	return afero.NewOsFs()
}

// NewMemory returns an empty in-memory filesystem
func NewMemory() afero.Fs {
	return afero.NewMemMapFs()
}

// IsDir reports whether path exists and is a directory
func IsDir(fs afero.Fs, path string) bool {
	info, err := fs.Stat(path)
	return err == nil && info.IsDir()
}

// Exists reports whether path exists
func Exists(fs afero.Fs, path string) bool {
	_, err := fs.Stat(path)
	return err == nil
}

// CopyFile copies source to destination, creating the destination directory
// and replacing an existing destination. The source mode is preserved.
func CopyFile(fs afero.Fs, source, destination string) error {
	srcInfo, err := fs.Stat(source)
	if err != nil {
		return err
	}

	dir, _ := paths.Split(destination)
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return err
	}

	src, err := fs.Open(source)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	dst, err := fs.OpenFile(destination, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, srcInfo.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return err
	}
	if err := dst.Sync(); err != nil {
		_ = dst.Close()
		return err
	}
	return dst.Close()
}

// tmpSuffix names the staging file written next to a file being replaced.
// It does not end in .lnk, so the scanner never picks it up.
const tmpSuffix = ".retarget-tmp"

// ReplaceFile writes data to a staging file next to path and renames it over
// path. On failure the old file is left as it was.
func ReplaceFile(fs afero.Fs, path string, data []byte) error {
	mode := os.FileMode(0644)
	if info, err := fs.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp := path + tmpSuffix
	if err := afero.WriteFile(fs, tmp, data, mode); err != nil {
		_ = fs.Remove(tmp)
		return err
	}
	return commit(fs, tmp, path)
}

// ReplaceWithCopy copies source to a staging file next to destination and
// renames it over destination
func ReplaceWithCopy(fs afero.Fs, source, destination string) error {
	tmp := destination + tmpSuffix
	if err := CopyFile(fs, source, tmp); err != nil {
		_ = fs.Remove(tmp)
		return err
	}
	return commit(fs, tmp, destination)
}

func commit(fs afero.Fs, tmp, path string) error {
	if err := fs.Rename(tmp, path); err != nil {
		_ = fs.Remove(tmp)
		return err
	}
	return nil
}
