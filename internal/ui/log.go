package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Logger is the process-wide structured logger. It always writes to stderr so
// stdout stays clean for command output.
var Logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "trestle",
	Level:  log.InfoLevel,
})

// ConfigureLogger applies the configured level, then the --verbose and
// --quiet overrides.
func ConfigureLogger(level string, verbose, quietMode bool) error {
	if level != "" {
		parsed, err := log.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("parsing log level: %w", err)
		}
		Logger.SetLevel(parsed)
	}

	switch {
	case quietMode:
		Logger.SetLevel(log.ErrorLevel)
	case verbose:
		Logger.SetLevel(log.DebugLevel)
	}

	return nil
}

// SetLogOutput redirects the logger, mainly for tests.
func SetLogOutput(w io.Writer) {
	Logger.SetOutput(w)
}
