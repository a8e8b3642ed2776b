package config

import (
	"github.com/spf13/viper"
)

// Global configuration variables
var (
	// OverwriteFiles controls whether existing export files should be overwritten
	OverwriteFiles bool
	// UpdateCovers forces re-downloading cover images even if they already exist
	UpdateCovers bool
	// GoogleBooksAPIKey is the optional API key sent with every request
	GoogleBooksAPIKey string
)

// InitConfig initializes the global configuration from viper.
func InitConfig() {
	viper.SetDefault("MarkdownOutputDir", "./markdown/")
	viper.SetDefault("JSONOutputDir", "./json/")
	viper.SetDefault("OverwriteFiles", false)
	viper.SetDefault("googlebooks.queries", []string{"fiction", "history"})

	OverwriteFiles = viper.GetBool("OverwriteFiles")
	UpdateCovers = viper.GetBool("UpdateCovers")
	GoogleBooksAPIKey = viper.GetString("googlebooks.apikey")
}

// SetOverwriteFiles sets the OverwriteFiles flag.
func SetOverwriteFiles(overwrite bool) {
	OverwriteFiles = overwrite
}

// SetUpdateCovers sets the UpdateCovers flag.
func SetUpdateCovers(update bool) {
	UpdateCovers = update
}

// DefaultQueries returns the configured home-screen category queries.
func DefaultQueries() []string {
	return viper.GetStringSlice("googlebooks.queries")
}
