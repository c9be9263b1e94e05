package config

import (
	"fmt"
	"io"
	"strings"

	"cosmossdk.io/log"
	"github.com/rs/zerolog"
)

// ParseLevel accepts zerolog level names.
func ParseLevel(level string) (zerolog.Level, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if lvl == zerolog.NoLevel {
		return zerolog.InfoLevel, nil
	}
	return lvl, nil
}

// NewLogger builds the node logger from the log section.
func NewLogger(cfg LogConfig, w io.Writer) (log.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	opts := []log.Option{log.LevelOption(level)}
	switch cfg.Format {
	case LogFormatJSON:
		opts = append(opts, log.OutputJSONOption())
	case LogFormatPlain, "":
		opts = append(opts, log.ColorOption(false))
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
	return log.NewLogger(w, opts...), nil
}
