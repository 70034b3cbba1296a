// Package config holds environment lookups and tunables for the binaries.
package config

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// NewLogger returns a structured logger writing to w at the level named by
// LOG_LEVEL. An unparsable level falls back to info and is reported once.
func NewLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		ReportTimestamp: true,
	})
	raw := GetEnv("LOG_LEVEL", DefaultLogLevel)
	level, err := log.ParseLevel(raw)
	if err != nil {
		logger.Warn("unknown LOG_LEVEL, using info", "value", raw)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}
