// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"io"
)

// Option is the type to specify settings modifiers
// for the logger operation.
type Option func(s *settings)

// SetLevel sets the level for the logger.
// The level defaults to LevelInfo.
func SetLevel(level Level) Option {
	return func(s *settings) {
		s.level = &level
	}
}

// SetWriter sets the writer for the logger.
// The writer defaults to os.Stdout.
func SetWriter(writer io.Writer) Option {
	return func(s *settings) {
		s.writer = writer
	}
}

// AddContext adds the context for the logger as a key values pair.
// Contexts are written in the order they are added. If a key already
// exists, the value is added to the existing values of the key.
func AddContext(key, value string) Option {
	return func(s *settings) {
		for i := range s.context {
			if s.context[i].key == key {
				s.context[i].values = append(s.context[i].values, value)
				return
			}
		}
		kv := contextKeyValues{key: key, values: []string{value}}
		s.context = append(s.context, kv)
	}
}
