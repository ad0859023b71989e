// Package backup keeps timestamped copies of launchers before they are
// overwritten.
package backup

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/arthur-debert/waylandify/pkg/errors"
	"github.com/arthur-debert/waylandify/pkg/logging"
	"github.com/arthur-debert/waylandify/pkg/types"
	"github.com/jonboulle/clockwork"
)

// DirPrefix starts the name of every backup directory.
const DirPrefix = "backup_"

// Manager copies files into per-call timestamped directories under Dir.
type Manager struct {
	fs    types.FS
	dir   string
	clock clockwork.Clock
}

// New returns a Manager writing under dir. A nil clock uses the real clock.
func New(fs types.FS, dir string, clock clockwork.Clock) *Manager {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Manager{fs: fs, dir: dir, clock: clock}
}

// Dir returns the root backup directory.
func (m *Manager) Dir() string {
	return m.dir
}

// Create copies path to <dir>/backup_<YYYYmmdd_HHMMSS_micro>/<basename>,
// keeping its file mode, and returns the backup location.
func (m *Manager) Create(path string) (string, error) {
	logger := logging.GetLogger("backup")

	info, err := m.fs.Stat(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrBackup, "cannot stat %s for backup", path).
			WithDetail("path", path)
	}
	content, err := m.fs.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrBackup, "cannot read %s for backup", path).
			WithDetail("path", path)
	}

	backupDir := filepath.Join(m.dir, DirPrefix+Timestamp(m.clock.Now()))
	if err := m.fs.MkdirAll(backupDir, 0755); err != nil {
		return "", errors.Wrapf(err, errors.ErrBackup, "cannot create backup directory %s", backupDir).
			WithDetail("path", path)
	}

	target := filepath.Join(backupDir, filepath.Base(path))
	mode := info.Mode().Perm()
	if err := m.fs.WriteFile(target, content, mode); err != nil {
		return "", errors.Wrapf(err, errors.ErrBackup, "cannot write backup %s", target).
			WithDetail("path", path)
	}
	// WriteFile mode is subject to umask
	if err := m.fs.Chmod(target, mode); err != nil {
		return "", errors.Wrapf(err, errors.ErrBackup, "cannot set mode on backup %s", target).
			WithDetail("path", path)
	}

	logger.Info().Str("source", path).Str("backup", target).Msg("Backup created")
	return target, nil
}

// Timestamp formats t the way backup directories are named.
func Timestamp(t time.Time) string {
	return fmt.Sprintf("%s_%06d", t.Format("20060102_150405"), t.Nanosecond()/int(time.Microsecond))
}
