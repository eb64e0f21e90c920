// Package logging configures the logrus logger shared by the server and CLI.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Setup builds a logger writing to stderr. An unknown level falls back to info.
func Setup(level string, json bool) *logrus.Logger {
	return New(os.Stderr, level, json)
}

// New builds a logger writing to out.
func New(out io.Writer, level string, json bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)

	if json {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)

	return log
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
