// Package config loads tix settings from flags, environment and config file.
//
// Priority, highest first: command-line flags (applied by cmd/tix),
// TIX_* environment variables, the first config.yaml found, defaults.
//
// Config file search order:
//
//	./.tix/config.yaml
//	$XDG_CONFIG_HOME/tix/config.yaml
//	~/.config/tix/config.yaml
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Setting keys
const (
	KeyData        = "data"
	KeyJSON        = "json"
	KeyInitMissing = "init-missing"
	KeyLockTimeout = "lock-timeout"
	KeySort        = "sort"
)

// DefaultDataPath is the data file used when nothing else is configured.
const DefaultDataPath = "data/tickets.json"

var v *viper.Viper

// Initialize builds a fresh viper instance. It is safe to call repeatedly;
// each call re-reads the environment and the config file.
func Initialize() error {
	v = viper.New()
	v.SetConfigType("yaml")

	v.SetEnvPrefix("TIX")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyData, DefaultDataPath)
	v.SetDefault(KeyJSON, false)
	v.SetDefault(KeyInitMissing, true)
	v.SetDefault(KeyLockTimeout, 30*time.Second)
	v.SetDefault(KeySort, false)

	path := findConfigFile()
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	return nil
}

func findConfigFile() string {
	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, ".tix", "config.yaml"))
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		candidates = append(candidates, filepath.Join(xdg, "tix", "config.yaml"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "tix", "config.yaml"))
	}
	for _, c := range candidates {
		info, err := os.Stat(c)
		if err == nil && !info.IsDir() {
			return c
		}
	}
	return ""
}

func ensure() *viper.Viper {
	if v == nil {
		_ = Initialize()
	}
	return v
}

// GetString retrieves a string configuration value
func GetString(key string) string {
	return ensure().GetString(key)
}

// GetBool retrieves a boolean configuration value
func GetBool(key string) bool {
	return ensure().GetBool(key)
}

// GetDuration retrieves a duration configuration value
func GetDuration(key string) time.Duration {
	return ensure().GetDuration(key)
}

// Set sets a configuration value for the rest of the process.
func Set(key string, value interface{}) {
	ensure().Set(key, value)
}

// ConfigFileUsed returns the path of the loaded config file, or "".
func ConfigFileUsed() string {
	return ensure().ConfigFileUsed()
}

// AllSettings returns every known key with its effective value.
func AllSettings() map[string]interface{} {
	return ensure().AllSettings()
}
