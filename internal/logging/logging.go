// Package logging builds the charmbracelet loggers used by every host, with
// an optional size-rotated file sink.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/vovakirdan/pocket-tanks/internal/config"
)

// DefaultFile is where interactive hosts log when no file is configured,
// since stderr belongs to the terminal UI.
const DefaultFile = "~/.pockettanks/logs/pockettanks.log"

// Options configures New.
type Options struct {
	Level      string
	File       string // Empty writes to Fallback
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Prefix     string
	Fallback   io.Writer // Defaults to os.Stderr
}

// FromConfig copies the logging section of cfg.
func FromConfig(cfg config.LoggingConfig) Options {
	return Options{
		Level:      cfg.Level,
		File:       cfg.File,
		MaxSizeMB:  cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAgeDays: cfg.MaxAgeDays,
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a logger and the closer for its sink.
func New(opts Options) (*log.Logger, io.Closer, error) {
	level := log.InfoLevel
	if opts.Level != "" {
		l, err := log.ParseLevel(opts.Level)
		if err != nil {
			return nil, nil, err
		}
		level = l
	}

	var (
		out    io.Writer = opts.Fallback
		closer io.Closer = nopCloser{}
	)
	if out == nil {
		out = os.Stderr
	}
	if opts.File != "" {
		path, err := config.ExpandHome(opts.File)
		if err != nil {
			return nil, nil, err
		}
		lj := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
		}
		out, closer = lj, lj
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          opts.Prefix,
		Level:           level,
	})
	return logger, closer, nil
}
