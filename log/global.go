// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

var globalLogger = New()

// NewFromGlobal creates a child logger from the global logger.
func NewFromGlobal(options ...Option) *Logger {
	return globalLogger.New(options...)
}

// Patch patches the global logger and all its child loggers.
func Patch(options ...Option) {
	globalLogger.Patch(options...)
}

// PatchLevel patches the level of the global logger and all
// its child loggers.
func PatchLevel(level Level) {
	globalLogger.PatchLevel(level)
}

// Trace logs with the trce level using the global logger.
func Trace(s string) {
	globalLogger.Trace(s)
}

// Debug logs with the dbug level using the global logger.
func Debug(s string) {
	globalLogger.Debug(s)
}

// Info logs with the info level using the global logger.
func Info(s string) {
	globalLogger.Info(s)
}

// Warn logs with the warn level using the global logger.
func Warn(s string) {
	globalLogger.Warn(s)
}

// Error logs with the eror level using the global logger.
func Error(s string) {
	globalLogger.Error(s)
}

// Critical logs with the crit level using the global logger.
func Critical(s string) {
	globalLogger.Critical(s)
}
