package hashutil

import (
	"crypto/sha256"
	"fmt"
	"io"

	"github.com/spf13/afero"
)

// FileChecksum calculates the SHA256 checksum of a file on fs
func FileChecksum(fs afero.Fs, path string) (string, error) {
	file, err := fs.Open(path)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = file.Close()
	}()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}

	return fmt.Sprintf("sha256:%x", hash.Sum(nil)), nil
}

// SameContent reports whether two files hold identical bytes
func SameContent(fs afero.Fs, a, b string) (bool, error) {
	sumA, err := FileChecksum(fs, a)
	if err != nil {
		return false, err
	}
	sumB, err := FileChecksum(fs, b)
	if err != nil {
		return false, err
	}
	return sumA == sumB, nil
}
