package cmd

import (
	"bytes"
	"os"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookview/internal/config"
	"bookview/internal/googlebooks"
	"bookview/internal/testutil"
)

func resetCmdState(t *testing.T) {
	t.Helper()
	testutil.ResetConfig(t)
}

func parseCLI(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()

	originalArgs := os.Args
	os.Args = append([]string{"bookview"}, args...)
	t.Cleanup(func() { os.Args = originalArgs })

	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("bookview"),
		kong.Description("A terminal browser and exporter for the Google Books catalog."),
		kong.UsageOnError(),
		kong.Exit(func(code int) {
			t.Fatalf("unexpected Kong exit %d", code)
		}),
	)

	return cli, ctx
}

func TestUpdateGlobalConfig(t *testing.T) {
	resetCmdState(t)

	cli := &CLI{
		Overwrite:    true,
		UpdateCovers: true,
		APIKey:       "test-key",
		Datasette:    false,
		DatasetteDB:  "/tmp/bookview.db",
		CacheDBFile:  "/tmp/cache.db",
		CacheTTL:     "12h",
		NoCache:      true,
	}

	updateGlobalConfig(cli)

	assert.True(t, config.OverwriteFiles)
	assert.True(t, config.UpdateCovers)
	assert.Equal(t, "test-key", config.GoogleBooksAPIKey)
	assert.False(t, viper.GetBool("datasette.enabled"))
	assert.Equal(t, "/tmp/bookview.db", viper.GetString("datasette.dbfile"))
	assert.False(t, viper.GetBool("cache.enabled"))
	assert.Equal(t, "/tmp/cache.db", viper.GetString("cache.dbfile"))
	assert.Equal(t, "12h", viper.GetString("cache.ttl"))
}

func TestSearchCommandParsing(t *testing.T) {
	resetCmdState(t)

	cli, _ := parseCLI(t, "search", "the", "history", "of", "jazz", "--json", "--limit", "5")

	assert.Equal(t, []string{"the", "history", "of", "jazz"}, cli.Search.Query)
	assert.True(t, cli.Search.JSON)
	assert.Equal(t, 5, cli.Search.Limit)
}

func TestShowCommandParsing(t *testing.T) {
	resetCmdState(t)

	cli, _ := parseCLI(t, "show", "ubERDAAAQBAJ", "--open", "--preview")

	assert.Equal(t, "ubERDAAAQBAJ", cli.Show.ID)
	assert.True(t, cli.Show.Open)
	assert.True(t, cli.Show.Preview)
	assert.False(t, cli.Show.JSON)
}

func TestExportCommandParsing(t *testing.T) {
	resetCmdState(t)

	cli, _ := parseCLI(t, "export", "fiction", "history", "-o", "shelves", "--json", "--no-covers")

	assert.Equal(t, []string{"fiction", "history"}, cli.Export.Queries)
	assert.Equal(t, "shelves", cli.Export.Output)
	assert.True(t, cli.Export.JSON)
	assert.False(t, cli.Export.Covers)
}

func TestBrowseCommandParsing(t *testing.T) {
	resetCmdState(t)

	cli, _ := parseCLI(t, "browse", "poetry")

	assert.Equal(t, []string{"poetry"}, cli.Browse.Queries)
}

func TestCacheInvalidateParsing(t *testing.T) {
	resetCmdState(t)

	cli, _ := parseCLI(t, "cache", "invalidate", "search")

	assert.Equal(t, "search", cli.Cache.Invalidate.Source)
}

func TestCLIDefaultFlags(t *testing.T) {
	resetCmdState(t)

	cli, _ := parseCLI(t, "search", "dune")

	assert.False(t, cli.Overwrite, "Overwrite should default to false")
	assert.False(t, cli.UpdateCovers, "UpdateCovers should default to false")
	assert.True(t, cli.Datasette, "Datasette should default to true")
	assert.Equal(t, "./bookview.db", cli.DatasetteDB)
	assert.Equal(t, "./cache.db", cli.CacheDBFile)
	assert.Equal(t, "720h", cli.CacheTTL)
	assert.False(t, cli.NoCache)
}

func TestNewRepositoryCacheToggle(t *testing.T) {
	resetCmdState(t)

	cli := &CLI{NoCache: true}
	updateGlobalConfig(cli)
	assert.False(t, cacheEnabled())

	cli = &CLI{NoCache: false}
	updateGlobalConfig(cli)
	assert.True(t, cacheEnabled())
}

func TestEnvironmentVariableBinding(t *testing.T) {
	resetCmdState(t)

	t.Setenv("GOOGLE_BOOKS_API_KEY", "env-api-key")

	viper.AutomaticEnv()
	require.NoError(t, viper.BindEnv("googlebooks.apikey", "GOOGLE_BOOKS_API_KEY"))

	assert.Equal(t, "env-api-key", viper.GetString("googlebooks.apikey"))
}

func TestInitLogging(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
	}{
		{"default", ""},
		{"debug", "debug"},
		{"DEBUG", "DEBUG"},
		{"warn", "warn"},
		{"error", "error"},
		{"invalid", "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				t.Setenv("BOOKVIEW_LOG_LEVEL", tt.envValue)
			}
			require.NotPanics(t, func() {
				initLogging()
			})
		})
	}
}

func TestWriteSearchResults(t *testing.T) {
	books := []googlebooks.Book{
		{
			ID: "ubERDAAAQBAJ",
			VolumeInfo: googlebooks.VolumeInfo{
				Title:         "The History of Jazz",
				Authors:       []string{"Ted Gioia"},
				PublishedDate: "2011-05-09",
				IndustryIdentifiers: []googlebooks.IndustryIdentifier{
					{Type: "ISBN_13", Identifier: "9780195399707"},
				},
			},
		},
	}

	var buf bytes.Buffer
	writeSearchResults(&buf, "jazz", 120, books)

	out := buf.String()
	assert.Contains(t, out, `120 results for "jazz"`)
	assert.Contains(t, out, "The History of Jazz")
	assert.Contains(t, out, "by Ted Gioia")
	assert.Contains(t, out, "ubERDAAAQBAJ")
	assert.Contains(t, out, "ISBN 9780195399707")
}
