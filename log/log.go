// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339

func (l *Logger) logf(level Level, format string, args ...interface{}) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if level < *l.settings.level {
		return
	}

	s := format
	if len(args) > 0 {
		s = fmt.Sprintf(format, args...)
	}

	line := time.Now().Format(timeFormat) + " " +
		level.ColouredString() + " " + s

	if len(l.settings.context) > 0 {
		keyValues := make([]string, 0, len(l.settings.context))
		for _, kv := range l.settings.context {
			keyValues = append(keyValues, kv.key+"="+strings.Join(kv.values, ","))
		}
		line += "\t" + strings.Join(keyValues, " ")
	}

	fmt.Fprintln(l.settings.writer, line)
}

// Trace logs with the trce level.
func (l *Logger) Trace(s string) { l.logf(LevelTrace, "%s", s) }

// Tracef formats and logs with the trce level.
func (l *Logger) Tracef(format string, args ...interface{}) {
	l.logf(LevelTrace, format, args...)
}

// Debug logs with the dbug level.
func (l *Logger) Debug(s string) { l.logf(LevelDebug, "%s", s) }

// Debugf formats and logs with the dbug level.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.logf(LevelDebug, format, args...)
}

// Info logs with the info level.
func (l *Logger) Info(s string) { l.logf(LevelInfo, "%s", s) }

// Infof formats and logs with the info level.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.logf(LevelInfo, format, args...)
}

// Warn logs with the warn level.
func (l *Logger) Warn(s string) { l.logf(LevelWarn, "%s", s) }

// Warnf formats and logs with the warn level.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.logf(LevelWarn, format, args...)
}

// Error logs with the eror level.
func (l *Logger) Error(s string) { l.logf(LevelError, "%s", s) }

// Errorf formats and logs with the eror level.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.logf(LevelError, format, args...)
}

// Critical logs with the crit level.
func (l *Logger) Critical(s string) { l.logf(LevelCritical, "%s", s) }

// Criticalf formats and logs with the crit level.
func (l *Logger) Criticalf(format string, args ...interface{}) {
	l.logf(LevelCritical, format, args...)
}
