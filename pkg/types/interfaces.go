package types

import (
	"io/fs"
)

// FS is the filesystem interface required for waylandify operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	Chmod(name string, mode fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Other operations
	Remove(name string) error
	Rename(oldpath, newpath string) error
}

// Pather provides paths for waylandify operations
type Pather interface {
	// ConfigFile returns the configuration file location
	ConfigFile() string

	// BackupDir returns the root directory for launcher backups
	BackupDir() string

	// UserApplicationsDir returns where rewritten launchers are written
	UserApplicationsDir() string

	// LauncherDirs returns the scanned launcher directories by precedence
	LauncherDirs() []string
}
