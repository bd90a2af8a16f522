// Package log builds the daemon's dual console/file logging handler and
// hands out subsystem-tagged btclog.Logger instances for UseLogger calls
// across the actor runtime and its adapters.
package log

import (
	"fmt"
	"os"

	"github.com/btcsuite/btclog"
)

// Options configures Bootstrap.
type Options struct {
	// Level is the minimum level logged by both the console and file
	// handlers.
	Level btclog.Level

	// FileLogging enables the rotating file handler in addition to the
	// console handler. When false, RotatorConfig is unused.
	FileLogging bool

	Rotator RotatorConfig
}

// Bootstrap constructs the combined console/file handler described by
// opts and returns a root logger plus a closer that must run during
// shutdown to flush the file handler. Subsystem loggers are obtained by
// calling root.WithPrefix(tag) once per package before wiring it with
// that package's UseLogger.
func Bootstrap(opts Options) (btclog.Logger, func() error, error) {
	handlers := []btclog.Handler{btclog.NewDefaultHandler(os.Stderr)}
	closer := func() error { return nil }

	if opts.FileLogging {
		writer := NewRotatingLogWriter()
		if err := writer.Init(opts.Rotator); err != nil {
			return nil, nil, fmt.Errorf("initializing log rotator: %w", err)
		}
		handlers = append(handlers, btclog.NewDefaultHandler(writer))
		closer = writer.Close
	}

	combined := NewHandlerSet(handlers...)
	combined.SetLevel(opts.Level)

	return btclog.NewSLogger(combined), closer, nil
}
