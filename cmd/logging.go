package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// logger is the package-wide structured logger. Progress messages go to
// stderr so that stdout stays clean for subcommands like `files`.
var logger = logrus.New()

// configureLogging applies --log-format and --log-level to logger.
//   - format: text [default] or json
//   - level: trace, debug, info [default], warn, error
func configureLogging(w io.Writer, format, level string) error {
	logger.SetOutput(w)

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("invalid --log-format %q (choose from text, json)", format)
	}

	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		logger.SetLevel(logrus.TraceLevel)
	case "debug":
		logger.SetLevel(logrus.DebugLevel)
	case "warn", "warning":
		logger.SetLevel(logrus.WarnLevel)
	case "error":
		logger.SetLevel(logrus.ErrorLevel)
	case "", "info":
		logger.SetLevel(logrus.InfoLevel)
	default:
		return fmt.Errorf("invalid --log-level %q", level)
	}
	return nil
}
