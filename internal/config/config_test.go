package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestInitConfigReadsViperValues(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("OverwriteFiles", true)
	viper.Set("googlebooks.apikey", "test-key")

	InitConfig()

	require.True(t, OverwriteFiles)
	require.Equal(t, "test-key", GoogleBooksAPIKey)
}

func TestDefaultQueries(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	InitConfig()
	require.Equal(t, []string{"fiction", "history"}, DefaultQueries())

	viper.Set("googlebooks.queries", []string{"poetry"})
	require.Equal(t, []string{"poetry"}, DefaultQueries())
}

func TestSetOverwriteFiles(t *testing.T) {
	SetOverwriteFiles(true)
	require.True(t, OverwriteFiles)
	SetOverwriteFiles(false)
	require.False(t, OverwriteFiles)
}
