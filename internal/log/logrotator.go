package log

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jrick/logrotate/rotator"
)

const (
	// DefaultMaxLogFiles is the default number of rotated log files to
	// keep on disk.
	DefaultMaxLogFiles = 10

	// DefaultMaxLogFileSize is the default log file size in MB before
	// rotation occurs.
	DefaultMaxLogFileSize = 20

	// DefaultLogFilename is the log file name used when none is given.
	DefaultLogFilename = "nowhered.log"
)

// RotatorConfig holds the configuration for the log file rotator.
type RotatorConfig struct {
	// Dir is the directory where log files are written.
	Dir string

	// MaxFiles is the maximum number of rotated log files to keep. Zero
	// disables rotation (single file, unbounded growth).
	MaxFiles int

	// MaxSizeMB is the maximum log file size in megabytes before it is
	// rotated.
	MaxSizeMB int

	// Filename overrides DefaultLogFilename.
	Filename string
}

// RotatingLogWriter wraps a jrick/logrotate rotator with a pipe-based
// io.Writer, supporting gzip compression of rotated files.
type RotatingLogWriter struct {
	pipe    *io.PipeWriter
	rotator *rotator.Rotator
}

// NewRotatingLogWriter creates a writer. Init must be called before use.
func NewRotatingLogWriter() *RotatingLogWriter {
	return &RotatingLogWriter{}
}

// Init creates the log directory if needed, configures rotation, and
// starts the rotator goroutine. Must be called before the first Write.
func (r *RotatingLogWriter) Init(cfg RotatorConfig) error {
	filename := cfg.Filename
	if filename == "" {
		filename = DefaultLogFilename
	}

	logFile := filepath.Join(cfg.Dir, filename)
	logDir := filepath.Dir(logFile)

	if err := os.MkdirAll(logDir, 0o700); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}

	var err error
	r.rotator, err = rotator.New(
		logFile, int64(cfg.MaxSizeMB*1024), false, cfg.MaxFiles,
	)
	if err != nil {
		return fmt.Errorf("creating file rotator: %w", err)
	}
	r.rotator.SetCompressor(gzip.NewWriter(nil), ".gz")

	pr, pw := io.Pipe()
	go func() {
		if err := r.rotator.Run(pr); err != nil {
			fmt.Fprintf(os.Stderr, "log rotator stopped: %v\n", err)
		}
	}()
	r.pipe = pw

	return nil
}

// Write writes to the rotator pipe. If Init has not been called, the
// write is silently discarded.
func (r *RotatingLogWriter) Write(b []byte) (int, error) {
	if r.pipe != nil {
		return r.pipe.Write(b)
	}

	return len(b), nil
}

// Close signals the rotator goroutine to flush and exit.
func (r *RotatingLogWriter) Close() error {
	if r.pipe != nil {
		return r.pipe.Close()
	}

	return nil
}
