package testutil

import (
	"testing"

	"github.com/spf13/viper"

	"bookview/internal/config"
)

// ConfigState holds the state of the config package variables.
type ConfigState struct {
	OverwriteFiles    bool
	UpdateCovers      bool
	GoogleBooksAPIKey string
}

// SaveConfigState captures the current state of config package variables.
func SaveConfigState() ConfigState {
	return ConfigState{
		OverwriteFiles:    config.OverwriteFiles,
		UpdateCovers:      config.UpdateCovers,
		GoogleBooksAPIKey: config.GoogleBooksAPIKey,
	}
}

// RestoreConfigState restores the config package variables to a saved state.
func RestoreConfigState(state ConfigState) {
	config.OverwriteFiles = state.OverwriteFiles
	config.UpdateCovers = state.UpdateCovers
	config.GoogleBooksAPIKey = state.GoogleBooksAPIKey
}

// ResetConfig saves the current config state and schedules restoration
// when the test completes. It also resets viper.
func ResetConfig(t *testing.T) {
	t.Helper()

	state := SaveConfigState()

	viper.Reset()

	t.Cleanup(func() {
		RestoreConfigState(state)
		viper.Reset()
	})
}

// SetTestConfig sets up a test configuration with common defaults.
// It saves the current state and restores it when the test completes.
func SetTestConfig(t *testing.T) {
	t.Helper()

	state := SaveConfigState()

	viper.Reset()

	config.OverwriteFiles = true
	config.UpdateCovers = false
	config.GoogleBooksAPIKey = ""

	t.Cleanup(func() {
		RestoreConfigState(state)
		viper.Reset()
	})
}

// SetViperValue sets a viper configuration value and schedules cleanup.
func SetViperValue(t *testing.T, key string, value any) {
	t.Helper()

	oldValue := viper.Get(key)
	hadValue := viper.IsSet(key)

	viper.Set(key, value)

	t.Cleanup(func() {
		if hadValue {
			viper.Set(key, oldValue)
		}
		// viper has no Unset, so the unset state cannot be restored.
	})
}

// SetupTestCache configures viper for test caching with a temporary directory.
// It creates the cache directory and returns its path.
func SetupTestCache(t *testing.T, env *TestEnv) string {
	t.Helper()

	cacheDir := env.Path("cache")
	env.MkdirAll("cache")

	viper.Set("cache.dbfile", env.Path("cache", "test-cache.db"))
	viper.Set("cache.ttl", "24h")

	return cacheDir
}

// SetupDatastoreDB configures the local export database for tests.
// Returns the database path.
func SetupDatastoreDB(t *testing.T, env *TestEnv) string {
	t.Helper()

	dbPath := env.Path("test.db")

	SetViperValue(t, "datasette.enabled", true)
	SetViperValue(t, "datasette.mode", "local")
	SetViperValue(t, "datasette.dbfile", dbPath)

	return dbPath
}

// SetupMarkdownOutput points the markdown output directory at the test
// environment root.
func SetupMarkdownOutput(t *testing.T, env *TestEnv) {
	t.Helper()

	SetViperValue(t, "markdownoutputdir", env.RootDir())
}
