// Package config loads tk's settings from config.yaml, TK_* environment
// variables and built-in defaults, in increasing order of precedence:
// defaults < config.yaml < environment. Command-line flags are applied on top
// by cmd/tk.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	KeyFile        = "file"
	KeyJSON        = "json"
	KeyLockTimeout = "lock-timeout"
	KeyColor       = "color"
)

// ConfigFileName is the file searched for in each config directory.
const ConfigFileName = "config.yaml"

var v *viper.Viper

// Initialize sets up the viper configuration singleton.
// Should be called once at application startup.
func Initialize() error {
	v = viper.New()
	v.SetConfigType("yaml")

	v.SetDefault(KeyFile, filepath.Join("~", ".tk", "tickets.json"))
	v.SetDefault(KeyJSON, false)
	v.SetDefault(KeyLockTimeout, 5*time.Second)
	v.SetDefault(KeyColor, "auto")

	// TK_FILE, TK_LOCK_TIMEOUT, ...
	v.SetEnvPrefix("TK")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	configPath := os.Getenv("TK_CONFIG")
	if configPath == "" {
		configPath = findConfigFile()
	}
	if configPath == "" {
		return nil
	}

	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file %s: %w", configPath, err)
	}
	return nil
}

// SearchPaths lists the directories checked for config.yaml, in order.
func SearchPaths() []string {
	var dirs []string
	if cwd, err := os.Getwd(); err == nil {
		dirs = append(dirs, filepath.Join(cwd, ".tk"))
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, filepath.Join(xdg, "tk"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs,
			filepath.Join(home, ".config", "tk"),
			filepath.Join(home, ".tk"),
		)
	}
	return dirs
}

func findConfigFile() string {
	for _, dir := range SearchPaths() {
		path := filepath.Join(dir, ConfigFileName)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// ConfigFileUsed returns the config file that was loaded, or "" if none.
func ConfigFileUsed() string {
	if v == nil {
		return ""
	}
	return v.ConfigFileUsed()
}

// GetString retrieves a string configuration value
func GetString(key string) string {
	if v == nil {
		return ""
	}
	return v.GetString(key)
}

// GetBool retrieves a boolean configuration value
func GetBool(key string) bool {
	if v == nil {
		return false
	}
	return v.GetBool(key)
}

// GetDuration retrieves a duration configuration value
func GetDuration(key string) time.Duration {
	if v == nil {
		return 0
	}
	return v.GetDuration(key)
}

// Set sets a configuration value for the current process only.
func Set(key string, value interface{}) {
	if v != nil {
		v.Set(key, value)
	}
}

// AllSettings returns every effective setting after defaults, file and
// environment have been merged.
func AllSettings() map[string]interface{} {
	if v == nil {
		return map[string]interface{}{}
	}
	return v.AllSettings()
}

// DataFile returns the ticket data file path with a leading "~" expanded.
func DataFile() (string, error) {
	path := GetString(KeyFile)
	if path == "" {
		return "", fmt.Errorf("no data file configured (set %q in %s or TK_FILE)", KeyFile, ConfigFileName)
	}
	return ExpandHome(path)
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand %s: %w", path, err)
	}
	return filepath.Join(home, path[1:]), nil
}

// ResetForTesting drops the loaded configuration so the next Initialize
// starts clean.
func ResetForTesting() {
	v = nil
}
