package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

const envLogFile = "OTPFIELD_LOG"

// New returns a JSON logger writing to path. The terminal belongs to the
// prompt, so with no path every entry is discarded. The returned closer
// must be called on exit.
func New(path string, level string) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(parseLevel(level))

	path = strings.TrimSpace(path)
	if path == "" {
		logger.SetOutput(io.Discard)
		return logger, nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		logger.SetOutput(io.Discard)
		return logger, nopCloser{}, fmt.Errorf("ensure log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		logger.SetOutput(io.Discard)
		return logger, nopCloser{}, fmt.Errorf("open log file %q: %w", path, err)
	}
	logger.SetOutput(f)
	return logger, f, nil
}

// PathFromEnv returns $OTPFIELD_LOG, trimmed.
func PathFromEnv(getenv func(string) string) string {
	return strings.TrimSpace(getenv(envLogFile))
}

func parseLevel(raw string) logrus.Level {
	level, err := logrus.ParseLevel(strings.TrimSpace(raw))
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
