// Package paths provides centralized path handling for waylandify.
// It implements XDG Base Directory specification compliance and
// provides a consistent API for all path operations in the codebase.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/waylandify/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for waylandify
	EnvConfigDir = "WAYLANDIFY_CONFIG_DIR"

	// EnvDataDir overrides the XDG data directory for waylandify
	EnvDataDir = "WAYLANDIFY_DATA_DIR"

	// EnvBackupDir overrides the backup directory
	EnvBackupDir = "WAYLANDIFY_BACKUP_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// AppDirName is the directory name for waylandify-specific files
	AppDirName = "waylandify"

	// ConfigFileName is the name of the configuration file
	ConfigFileName = "config.toml"

	// BackupsDir is the subdirectory of the data directory holding backups
	BackupsDir = "backups"

	// ApplicationsDir is the XDG subdirectory holding launcher files
	ApplicationsDir = "applications"

	// LauncherExt is the extension of launcher files
	LauncherExt = ".desktop"

	// LogFileName is the name of the log file
	LogFileName = "waylandify.log"
)

// SystemLauncherDirs are the system-wide launcher directories, lowest
// precedence last.
var SystemLauncherDirs = []string{
	"/usr/local/share/applications",
	"/usr/share/applications",
}

// Paths provides centralized path management for waylandify
type Paths interface {
	ConfigDir() string
	ConfigFile() string
	DataDir() string
	BackupDir() string
	StateDir() string
	LogFilePath() string
	UserApplicationsDir() string
	LauncherDirs() []string
	NormalizePath(path string) (string, error)
}

type paths struct {
	xdgConfig string
	xdgData   string
	xdgState  string
	backupDir string
	userApps  string
}

// New creates a new Paths instance. The XDG environment is re-read on every
// call so overrides set after process start are honoured.
func New() (Paths, error) {
	xdg.Reload()

	p := &paths{}

	if configDir := os.Getenv(EnvConfigDir); configDir != "" {
		p.xdgConfig = expandHome(configDir)
	} else {
		p.xdgConfig = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	if dataDir := os.Getenv(EnvDataDir); dataDir != "" {
		p.xdgData = expandHome(dataDir)
	} else {
		p.xdgData = filepath.Join(xdg.DataHome, AppDirName)
	}

	if backupDir := os.Getenv(EnvBackupDir); backupDir != "" {
		p.backupDir = expandHome(backupDir)
	} else {
		p.backupDir = filepath.Join(p.xdgData, BackupsDir)
	}

	p.xdgState = filepath.Join(xdg.StateHome, AppDirName)
	p.userApps = filepath.Join(xdg.DataHome, ApplicationsDir)

	for _, dir := range []*string{&p.xdgConfig, &p.xdgData, &p.backupDir, &p.xdgState, &p.userApps} {
		abs, err := filepath.Abs(*dir)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for %s", *dir)
		}
		*dir = abs
	}

	return p, nil
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = os.Getenv(EnvHome)
			if homeDir == "" {
				return path
			}
		}

		if len(path) == 1 {
			return homeDir
		}

		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}

		// ~something (not the user's home)
		return path
	}

	return path
}

// ConfigDir returns the XDG config directory for waylandify
func (p *paths) ConfigDir() string {
	return p.xdgConfig
}

// ConfigFile returns the path of the configuration file
func (p *paths) ConfigFile() string {
	return filepath.Join(p.xdgConfig, ConfigFileName)
}

// DataDir returns the XDG data directory for waylandify
func (p *paths) DataDir() string {
	return p.xdgData
}

// BackupDir returns the root directory for launcher backups
func (p *paths) BackupDir() string {
	return p.backupDir
}

// StateDir returns the XDG state directory for waylandify
func (p *paths) StateDir() string {
	return p.xdgState
}

// LogFilePath returns the path of the log file
func (p *paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}

// UserApplicationsDir returns the user's launcher directory, where rewritten
// launchers are written.
func (p *paths) UserApplicationsDir() string {
	return p.userApps
}

// LauncherDirs returns every directory scanned for launcher files ordered by
// precedence: the user directory first, then the system directories.
func (p *paths) LauncherDirs() []string {
	dirs := make([]string, 0, len(SystemLauncherDirs)+1)
	dirs = append(dirs, p.userApps)
	dirs = append(dirs, SystemLauncherDirs...)
	return dirs
}

// NormalizePath expands ~ and returns a clean absolute path
func (p *paths) NormalizePath(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "path cannot be empty")
	}

	abs, err := filepath.Abs(expandHome(path))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to normalize path %s", path)
	}
	return filepath.Clean(abs), nil
}
