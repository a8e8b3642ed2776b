// Package browser hands URLs off to the platform's default web browser.
package browser

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"
)

// DefaultURL is opened when a book has no buy or preview link.
const DefaultURL = "https://www.google.com"

var startCommand = func(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// Open launches the platform browser for the given URL, fire-and-forget.
// An empty URL falls back to DefaultURL. The browser process is not waited
// on and its outcome is not reported back.
func Open(url string) error {
	if url == "" {
		url = DefaultURL
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return fmt.Errorf("refusing to open non-http URL: %s", url)
	}

	slog.Debug("Opening browser", "url", url)

	switch runtime.GOOS {
	case "darwin":
		return startCommand("open", url)
	case "windows":
		return startCommand("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return startCommand("xdg-open", url)
	}
}
