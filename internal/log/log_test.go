package log

import (
	"path/filepath"
	"testing"

	"github.com/btcsuite/btclog"
	"github.com/stretchr/testify/require"
)

func TestBootstrapConsoleOnly(t *testing.T) {
	root, closer, err := Bootstrap(Options{Level: btclog.LevelInfo})
	require.NoError(t, err)
	require.NotNil(t, root)
	require.NoError(t, closer())
}

func TestBootstrapWithFileLoggingCreatesLogFile(t *testing.T) {
	dir := t.TempDir()
	root, closer, err := Bootstrap(Options{
		Level:       btclog.LevelDebug,
		FileLogging: true,
		Rotator: RotatorConfig{
			Dir:       dir,
			MaxFiles:  DefaultMaxLogFiles,
			MaxSizeMB: DefaultMaxLogFileSize,
		},
	})
	require.NoError(t, err)

	sub := root.WithPrefix("TEST")
	sub.Info("hello from test")

	require.NoError(t, closer())
	require.FileExists(t, filepath.Join(dir, DefaultLogFilename))
}
