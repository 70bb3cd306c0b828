package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// ServiceName tags every log line.
const ServiceName = "tuiter-api"

// New builds the process logger.  format is "json" for machine-readable
// output and anything else for text; an unknown level falls back to info.
func New(level, format string) *logrus.Entry {
	return newWithOutput(level, format, os.Stderr)
}

func newWithOutput(level, format string, out io.Writer) *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(out)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	if strings.EqualFold(format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return logger.WithFields(logrus.Fields{"service": ServiceName})
}
