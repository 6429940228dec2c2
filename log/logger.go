// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"sync"
)

// Logger writes console lines to a writer.
// It is thread safe to use.
type Logger struct {
	settings settings
	mutex    *sync.Mutex // shared with child loggers
	childs   []*Logger
}

// New creates a new logger with the options given.
// Loggers sharing a writer should be created from one
// another with the New method to stay thread safe.
func New(options ...Option) (logger *Logger) {
	s := newSettings(options)
	s.setDefaults()

	return &Logger{
		settings: s,
		mutex:    new(sync.Mutex),
	}
}

// New creates a thread safe child logger inheriting the settings
// of the parent logger, overridden with the options given.
func (l *Logger) New(options ...Option) (child *Logger) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	s := newSettings(options)
	s.mergeWith(l.settings)
	s.setDefaults()

	child = &Logger{
		settings: s,
		mutex:    l.mutex,
	}
	l.childs = append(l.childs, child)
	return child
}

// Patch patches the existing settings with any option given.
// The patch propagates to all the child loggers.
func (l *Logger) Patch(options ...Option) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.patchWithoutLocking(options...)
	for _, child := range l.childs {
		child.patchWithoutLocking(options...)
	}
}

// PatchLevel patches the level of the logger and of
// all its child loggers.
func (l *Logger) PatchLevel(level Level) {
	l.Patch(SetLevel(level))
}

func (l *Logger) patchWithoutLocking(options ...Option) {
	for _, option := range options {
		option(&l.settings)
	}
}
