// Package log configures the zap loggers of the command-line tools.
//
// A logger is a tee of plugins, each a zapcore.Core with its own destination
// and level filter. The tools log info and above to the console and
// everything, including per-file debug details, to a rotated log file.
package log
