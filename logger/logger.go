// Package logger provides the shared logger for eonkernel components,
// backed by github.com/rs/zerolog with a console writer. Logging is
// disabled under `go test` so kernel benchmarks stay quiet.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

var logger zerolog.Logger

func init() {
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	logger = zerolog.New(output).With().Timestamp().Logger()

	if strings.HasSuffix(os.Args[0], ".test") {
		logger = zerolog.Nop()
	}
}

// Logger returns the global logger.
func Logger() zerolog.Logger {
	return logger
}

// Set overrides the global logger.
func Set(l zerolog.Logger) {
	logger = l
}

// SetOutput redirects the global logger.
func SetOutput(w io.Writer) {
	logger = logger.Output(w)
}

// Disable silences all logging.
func Disable() {
	logger = zerolog.Nop()
}
