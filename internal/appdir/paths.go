package appdir

import (
	"os"
	"path/filepath"
)

// Base returns the data directory, ~/.fynd by default. An explicit
// override (from the -data flag) takes precedence.
func Base(override string) string {
	if override != "" {
		return override
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".fynd")
}

// ConfigPath returns the config file path inside the data directory.
func ConfigPath(base string) string {
	return filepath.Join(base, "config.toml")
}

// DBPath returns the app-owned fynd.db path.
func DBPath(base string) string {
	return filepath.Join(base, "fynd.db")
}

// LogDir returns the log directory.
func LogDir(base string) string {
	return filepath.Join(base, "logs")
}

// LogPath returns the application log file path.
func LogPath(base string) string {
	return filepath.Join(LogDir(base), "fynd.log")
}

// EnsureDir creates the data directory if it does not exist.
func EnsureDir(base string) error {
	return os.MkdirAll(base, 0700)
}
