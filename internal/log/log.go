package log

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Plugin is one log destination with its own level filter.
type Plugin = zapcore.Core

// NewLogger builds a logger writing to every plugin.
func NewLogger(plugins []Plugin, options ...zap.Option) *zap.Logger {
	return zap.New(zapcore.NewTee(plugins...), append(DefaultOption(), options...)...)
}

// NewPlugin binds the default encoder to writer.
func NewPlugin(writer zapcore.WriteSyncer, enabler zapcore.LevelEnabler) Plugin {
	return zapcore.NewCore(DefaultEncoder(), writer, enabler)
}

// NewStdoutPlugin writes to standard output.
func NewStdoutPlugin(enabler zapcore.LevelEnabler) Plugin {
	return NewPlugin(zapcore.Lock(zapcore.AddSync(os.Stdout)), enabler)
}

// NewFilePlugin writes to a rotated log file.
//
// lumberjack does not implement Sync, so the returned Closer must be closed
// before the process exits to flush the file.
func NewFilePlugin(filePath string, enabler zapcore.LevelEnabler) (Plugin, io.Closer) {
	writer := DefaultLumberjackLogger()
	writer.Filename = filePath
	return NewPlugin(zapcore.AddSync(writer), enabler), writer
}

// New returns the logger used by the command-line tools: info and above on
// the console, debug and above in filePath. An empty filePath disables the
// file.
//
// Example:
//
//	logger, closer := log.New("grabr.log")
//	defer closer.Close()
//	defer logger.Sync()
func New(filePath string) (*zap.Logger, io.Closer) {
	plugins := []Plugin{NewStdoutPlugin(zapcore.InfoLevel)}
	if filePath == "" {
		return NewLogger(plugins), io.NopCloser(nil)
	}

	file, closer := NewFilePlugin(filePath, zapcore.DebugLevel)
	return NewLogger(append(plugins, file)), closer
}
