// Package cmd wires the kong command-line surface of bookview.
package cmd

import (
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	"bookview/internal/cache"
	"bookview/internal/config"
	"bookview/internal/googlebooks"
	"bookview/internal/repository"
)

// CLI represents the complete command structure for the bookview application
type CLI struct {
	// Global flags
	Overwrite    bool   `help:"Overwrite existing export files"`
	UpdateCovers bool   `help:"Re-download cover images even if they already exist"`
	APIKey       string `help:"Google Books API key (defaults to googlebooks.apikey in config)"`

	// Datasette flags
	Datasette   bool   `help:"Enable Datasette output for exports" default:"true"`
	DatasetteDB string `help:"Path to SQLite database file" default:"./bookview.db"`

	// Cache flags
	CacheDBFile string `help:"Path to cache SQLite database file" default:"./cache.db"`
	CacheTTL    string `help:"Cache time-to-live duration (e.g., 720h for 30 days)" default:"720h"`
	NoCache     bool   `help:"Bypass the response cache for this invocation"`

	Browse BrowseCmd `cmd:"" help:"Browse book shelves interactively"`
	Search SearchCmd `cmd:"" help:"Search books and print the results"`
	Show   ShowCmd   `cmd:"" help:"Show full details for a volume"`
	Export ExportCmd `cmd:"" help:"Export shelves to markdown, JSON and Datasette"`
	Cache  CacheCmd  `cmd:"" help:"Cache management"`
}

// CacheCmd groups the cache subcommands.
type CacheCmd struct {
	Invalidate cache.InvalidateCacheCmd `cmd:"" help:"Invalidate cached API responses"`
}

// Execute runs the Kong-based CLI
func Execute() {
	initLogging()
	initConfig()

	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("bookview"),
		kong.Description("A terminal browser and exporter for the Google Books catalog."),
		kong.UsageOnError(),
	)

	updateGlobalConfig(&cli)

	err := ctx.Run()
	if err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetDefault("MarkdownOutputDir", "./markdown/")
	viper.SetDefault("JSONOutputDir", "./json/")
	viper.SetDefault("OverwriteFiles", false)

	// Datasette defaults
	viper.SetDefault("datasette.enabled", true)
	viper.SetDefault("datasette.mode", "local")
	viper.SetDefault("datasette.dbfile", "./bookview.db")

	// Cache defaults
	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.dbfile", "./cache.db")
	viper.SetDefault("cache.ttl", "720h") // 30 days

	viper.AutomaticEnv()
	if err := viper.BindEnv("googlebooks.apikey", "GOOGLE_BOOKS_API_KEY"); err != nil {
		slog.Error("Failed to bind environment variable", "error", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Info("Config file not found, writing default config file...")
			if err := viper.SafeWriteConfig(); err != nil {
				slog.Error("Error writing config file", "error", err)
			}
			os.Exit(0)
		} else {
			slog.Error("Fatal error config file", "error", err)
			os.Exit(1)
		}
	}

	config.InitConfig()
}

func updateGlobalConfig(cli *CLI) {
	config.SetOverwriteFiles(cli.Overwrite)
	config.SetUpdateCovers(cli.UpdateCovers)
	if cli.APIKey != "" {
		config.GoogleBooksAPIKey = cli.APIKey
	}

	// Update datasette config
	viper.Set("datasette.enabled", cli.Datasette)
	viper.Set("datasette.dbfile", cli.DatasetteDB)

	// Update cache config
	viper.Set("cache.enabled", !cli.NoCache)
	viper.Set("cache.dbfile", cli.CacheDBFile)
	viper.Set("cache.ttl", cli.CacheTTL)
}

// newRepository builds the repository stack the one-shot commands use. The
// cache layer is skipped with --no-cache.
func newRepository(cached bool) repository.BookRepository {
	var opts []googlebooks.Option
	if key := config.GoogleBooksAPIKey; key != "" {
		opts = append(opts, googlebooks.WithAPIKey(key))
	}

	var repo repository.BookRepository = repository.NewNetworkBookRepository(googlebooks.NewClient(opts...))
	if cached {
		repo = repository.NewCachedBookRepository(repo)
	}
	return repo
}

func cacheEnabled() bool {
	return viper.GetBool("cache.enabled")
}

func initLogging() {
	level := slog.LevelInfo
	switch strings.ToLower(os.Getenv("BOOKVIEW_LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	handler := humanlog.NewHandler(os.Stdout, &humanlog.Options{
		Level: level,
	})

	slog.SetDefault(slog.New(handler))
}
