package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/tessro/riffle/internal/config"
)

// newLogger builds the process logger. Logs go to the configured file when
// set and to a console writer on stderr otherwise. The returned close func
// releases the file and is always safe to call.
func newLogger(c config.LogConfig, debug bool, stderr io.Writer) (zerolog.Logger, func() error, error) {
	level, err := zerolog.ParseLevel(c.Level)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("invalid log level %q: %w", c.Level, err)
	}
	if debug {
		level = zerolog.DebugLevel
	}

	closer := func() error { return nil }
	var w io.Writer = zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.Kitchen}

	if c.File != "" {
		f, err := os.OpenFile(c.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
		closer = f.Close
	}

	log := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return log, closer, nil
}
