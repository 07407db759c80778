// ABOUTME: Routes structured logging to a file while the TUI owns the terminal
// ABOUTME: Points the default slog logger at debug.log in the config directory

package debuglog

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ubaidashraf22/RF/backend/logger"
)

// FileName is the log file created inside the config directory.
const FileName = "debug.log"

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open sends the default slog logger to configDir/debug.log, honouring
// LOG_LEVEL and LOG_FORMAT. An empty configDir discards log output.
// The previous default logger is restored on Close.
func Open(configDir string) (io.Closer, error) {
	prev := slog.Default()

	if configDir == "" {
		slog.SetDefault(logger.New(io.Discard, "", ""))
		return restore{prev: prev, c: nopCloser{}}, nil
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(filepath.Join(configDir, FileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, err
	}

	slog.SetDefault(logger.New(f, os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT")))
	return restore{prev: prev, c: f}, nil
}

type restore struct {
	prev *slog.Logger
	c    io.Closer
}

func (r restore) Close() error {
	slog.SetDefault(r.prev)
	return r.c.Close()
}
