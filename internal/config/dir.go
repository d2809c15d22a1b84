// Package config resolves devlogs user settings and sets up logging.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// SettingsFileName is the user settings file inside Dir.
const SettingsFileName = "config.yaml"

// Dir returns the devlogs user configuration directory.
//
// Resolution:
//   - $DEVLOGS_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/devlogs if set (respects XDG on any platform)
//   - %AppData%/devlogs on Windows
//   - ~/.config/devlogs on macOS and Linux
func Dir() string {
	if dir := os.Getenv("DEVLOGS_CONFIG_HOME"); dir != "" {
		return dir
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "devlogs")
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "devlogs")
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "devlogs")
}

// SettingsPath returns the user settings file path, or "" if Dir is unknown.
func SettingsPath() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, SettingsFileName)
}
