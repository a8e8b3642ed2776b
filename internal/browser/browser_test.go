package browser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenFallsBackToDefaultURL(t *testing.T) {
	orig := startCommand
	t.Cleanup(func() { startCommand = orig })

	var gotArgs []string
	startCommand = func(name string, args ...string) error {
		gotArgs = append([]string{name}, args...)
		return nil
	}

	require.NoError(t, Open(""))
	require.Contains(t, gotArgs, DefaultURL)
}

func TestOpenPassesURLThrough(t *testing.T) {
	orig := startCommand
	t.Cleanup(func() { startCommand = orig })

	var gotArgs []string
	startCommand = func(name string, args ...string) error {
		gotArgs = append([]string{name}, args...)
		return nil
	}

	require.NoError(t, Open("https://play.google.com/store/books/details?id=x"))
	require.Contains(t, gotArgs, "https://play.google.com/store/books/details?id=x")
}

func TestOpenRejectsNonHTTPURL(t *testing.T) {
	orig := startCommand
	t.Cleanup(func() { startCommand = orig })

	startCommand = func(name string, args ...string) error {
		t.Fatal("command should not run for non-http URLs")
		return nil
	}

	require.Error(t, Open("file:///etc/passwd"))
}
