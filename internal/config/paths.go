package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	envConfigDir = "OTPFIELD_CONFIG_DIR"
	appDirName   = "otpfield"
)

// Dir resolves the configuration directory: $OTPFIELD_CONFIG_DIR, then the
// user config dir, then a dot directory under home.
func Dir() string {
	if dir := strings.TrimSpace(os.Getenv(envConfigDir)); dir != "" {
		return dir
	}
	if base, err := os.UserConfigDir(); err == nil && base != "" {
		return filepath.Join(base, appDirName)
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, "."+appDirName)
	}
	return "." + appDirName
}

func ThemeDir() string {
	return filepath.Join(Dir(), "themes")
}
