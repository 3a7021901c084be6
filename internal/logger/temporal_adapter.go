// Copyright (C) 2026 noxasaxon
// SPDX-License-Identifier: AGPL-3.0-or-later

package logger

import (
	"fmt"

	"github.com/rs/zerolog"
	"go.temporal.io/sdk/log"
)

// TemporalLogAdapter adapts zerolog to the Temporal SDK's logger interface
// so client internals log through the same outputs as the rest of the
// gateway.
type TemporalLogAdapter struct {
	logger zerolog.Logger
}

// NewTemporalLogAdapter creates a new Temporal log adapter
func NewTemporalLogAdapter(logger zerolog.Logger) *TemporalLogAdapter {
	return &TemporalLogAdapter{logger: logger}
}

// Debug logs at debug level
func (t *TemporalLogAdapter) Debug(msg string, keyvals ...interface{}) {
	addFields(t.logger.Debug(), keyvals...).Msg(msg)
}

// Info logs at info level
func (t *TemporalLogAdapter) Info(msg string, keyvals ...interface{}) {
	addFields(t.logger.Info(), keyvals...).Msg(msg)
}

// Warn logs at warn level
func (t *TemporalLogAdapter) Warn(msg string, keyvals ...interface{}) {
	addFields(t.logger.Warn(), keyvals...).Msg(msg)
}

// Error logs at error level
func (t *TemporalLogAdapter) Error(msg string, keyvals ...interface{}) {
	addFields(t.logger.Error(), keyvals...).Msg(msg)
}

// With returns a new logger with additional fields
func (t *TemporalLogAdapter) With(keyvals ...interface{}) log.Logger {
	logger := t.logger
	for i := 0; i+1 < len(keyvals); i += 2 {
		logger = logger.With().Interface(fmt.Sprint(keyvals[i]), keyvals[i+1]).Logger()
	}
	return &TemporalLogAdapter{logger: logger}
}

// addFields adds SDK key-value pairs to a zerolog event. A trailing key
// without a value is dropped.
func addFields(event *zerolog.Event, keyvals ...interface{}) *zerolog.Event {
	for i := 0; i+1 < len(keyvals); i += 2 {
		key := fmt.Sprint(keyvals[i])
		switch v := keyvals[i+1].(type) {
		case string:
			event = event.Str(key, v)
		case int:
			event = event.Int(key, v)
		case int64:
			event = event.Int64(key, v)
		case float64:
			event = event.Float64(key, v)
		case bool:
			event = event.Bool(key, v)
		case error:
			event = event.Err(v)
		case fmt.Stringer:
			event = event.Str(key, v.String())
		default:
			event = event.Interface(key, v)
		}
	}
	return event
}

// GetTemporalLogAdapter returns a Temporal logger adapter for the given package
func GetTemporalLogAdapter(pkg string) log.Logger {
	return NewTemporalLogAdapter(GetLogger(pkg))
}
