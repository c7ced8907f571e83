// Package scanner finds shortcut files below a directory.
package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/arthur-debert/retarget/pkg/errors"
	"github.com/arthur-debert/retarget/pkg/logging"
)

// Scanner walks directory trees for shortcuts
type Scanner struct {
	fs        afero.Fs
	extension string
	backupDir string
	logger    zerolog.Logger
}

// New returns a scanner matching files with extension (case-insensitive)
// and skipping directories named backupDir.
func New(fs afero.Fs, extension, backupDir string) *Scanner {
	return &Scanner{
		fs:        fs,
		extension: extension,
		backupDir: backupDir,
		logger:    logging.GetLogger("scanner"),
	}
}

// Scan returns the shortcuts below start in lexical order. A start
// directory that does not exist yields nothing and no error. Unreadable
// entries below start are logged and skipped.
func (s *Scanner) Scan(start string) ([]string, error) {
	info, err := s.fs.Stat(start)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug().Str("dir", start).Msg("Scan directory does not exist")
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot access %s", start)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrInvalidInput, "%s is not a directory", start)
	}

	var found []string
	err = afero.Walk(s.fs, start, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			s.logger.Warn().Err(err).Str("path", path).Msg("Skipping unreadable entry")
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			if path != start && s.backupDir != "" && strings.EqualFold(info.Name(), s.backupDir) {
				s.logger.Trace().Str("dir", path).Msg("Skipping backup directory")
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(info.Name()), s.extension) {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot walk %s", start)
	}

	sort.Strings(found)
	s.logger.Debug().Str("dir", start).Int("shortcuts", len(found)).Msg("Scanned directory")
	return found, nil
}
