package config

import (
	"os"
	"path/filepath"

	"github.com/acme/acmeui/internal/config/data"
)

const AppName = "acmeui"

var (
	// AppConfigDir is ~/.config/acmeui
	AppConfigDir string

	// AppStateDir is ~/.local/state/acmeui
	AppStateDir string

	// AppConfigFile is ~/.config/acmeui/acmeui.yaml
	AppConfigFile string

	// AppHotkeysFile is ~/.config/acmeui/hotkeys.yaml
	AppHotkeysFile string

	// AppAliasesFile is ~/.config/acmeui/aliases.yaml
	AppAliasesFile string

	// AppViewsFile is ~/.local/state/acmeui/views.yaml
	AppViewsFile string

	// AppLogFile is ~/.local/state/acmeui/acmeui.log
	AppLogFile string

	// AppDownloadsDir is ~/.local/state/acmeui/downloads
	AppDownloadsDir string
)

// InitLocs initializes all application directory paths.
// It respects XDG environment variables if set.
func InitLocs() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		stateHome = filepath.Join(home, ".local", "state")
	}

	AppConfigDir = filepath.Join(configHome, AppName)
	AppStateDir = filepath.Join(stateHome, AppName)

	AppConfigFile = filepath.Join(AppConfigDir, "acmeui.yaml")
	AppHotkeysFile = filepath.Join(AppConfigDir, "hotkeys.yaml")
	AppAliasesFile = filepath.Join(AppConfigDir, "aliases.yaml")

	AppViewsFile = filepath.Join(AppStateDir, "views.yaml")
	AppLogFile = filepath.Join(AppStateDir, "acmeui.log")
	AppDownloadsDir = filepath.Join(AppStateDir, "downloads")

	for _, dir := range []string{AppConfigDir, AppStateDir, AppDownloadsDir} {
		if _, err := data.EnsureDirPath(dir, 0o700); err != nil {
			return err
		}
	}

	return nil
}

// InitLogLoc ensures the log directory exists
func InitLogLoc() error {
	return data.EnsureFullPath(AppLogFile, 0o700)
}
