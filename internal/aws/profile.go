package aws

import (
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"
)

// ConfigPath returns the shared AWS config file location.
func ConfigPath() string {
	if p := os.Getenv("AWS_CONFIG_FILE"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".aws", "config")
}

// ProfileRegion returns the region configured for profile in the shared
// config file at path, or an empty string.
func ProfileRegion(path, profile string) string {
	if path == "" {
		return ""
	}
	if _, err := os.Stat(path); err != nil {
		return ""
	}

	f, err := ini.Load(path)
	if err != nil {
		return ""
	}

	name := "profile " + profile
	if profile == "" || profile == "default" {
		name = "default"
	}
	section, err := f.GetSection(name)
	if err != nil {
		return ""
	}
	if !section.HasKey("region") {
		return ""
	}

	return section.Key("region").String()
}
