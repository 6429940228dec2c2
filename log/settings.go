// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"io"
	"os"
)

type settings struct {
	writer  io.Writer
	level   *Level
	context []contextKeyValues
}

type contextKeyValues struct {
	key    string
	values []string
}

func newSettings(options []Option) (s settings) {
	for _, option := range options {
		option(&s)
	}
	return s
}

// mergeWith sets each setting left unset in s from the
// other settings given. Context key value pairs from the
// other settings are prepended to the ones already in s.
func (s *settings) mergeWith(other settings) {
	if s.writer == nil {
		s.writer = other.writer
	}

	if s.level == nil && other.level != nil {
		level := *other.level
		s.level = &level
	}

	if len(other.context) > 0 {
		context := make([]contextKeyValues, 0, len(other.context)+len(s.context))
		for _, kv := range other.context {
			values := make([]string, len(kv.values))
			copy(values, kv.values)
			context = append(context, contextKeyValues{key: kv.key, values: values})
		}
		s.context = append(context, s.context...)
	}
}

func (s *settings) setDefaults() {
	if s.writer == nil {
		s.writer = os.Stdout
	}

	if s.level == nil {
		level := LevelInfo
		s.level = &level
	}
}
