// Package config provides centralized configuration for devosctl.
// Eliminates scattered os.Getenv calls and hardcoded repo paths.
package config

import (
	"os"
	"path/filepath"
	"sync"
)

// DevosEnv holds all devosctl environment variables.
type DevosEnv struct {
	// Repo is the DevOS repository root to validate (DEVOS_REPO)
	Repo string

	// Home overrides the devosctl home directory (DEVOS_HOME)
	Home string

	// Debug enables structured debug logging (DEVOS_DEBUG)
	Debug bool

	// NoColor disables colored output (NO_COLOR, any value)
	NoColor bool
}

var (
	env     *DevosEnv
	envOnce sync.Once
)

// Env returns the singleton environment configuration.
// Thread-safe, loads once on first call.
func Env() *DevosEnv {
	envOnce.Do(func() {
		_, noColor := os.LookupEnv("NO_COLOR")
		env = &DevosEnv{
			Repo:    getEnvDefault("DEVOS_REPO", "."),
			Home:    os.Getenv("DEVOS_HOME"),
			Debug:   os.Getenv("DEVOS_DEBUG") == "1",
			NoColor: noColor,
		}
	})
	return env
}

// ResetEnv resets the cached environment (for testing).
func ResetEnv() {
	envOnce = sync.Once{}
	env = nil
}

func getEnvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Paths holds standard devosctl directory paths.
type Paths struct {
	// Home is the devosctl home directory (~/.devosctl)
	Home string

	// HistoryDB is the validation run history database
	HistoryDB string
}

// GetPaths returns the standard devosctl paths.
// DEVOS_HOME overrides the default home directory.
func GetPaths() Paths {
	home := Env().Home
	if home == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			userHome = "."
		}
		home = filepath.Join(userHome, ".devosctl")
	}

	return Paths{
		Home:      home,
		HistoryDB: filepath.Join(home, "history.db"),
	}
}
