// Copyright (C) 2026 noxasaxon
// SPDX-License-Identifier: AGPL-3.0-or-later

package logger

import (
	"github.com/rs/zerolog"
)

// Static logger getters that map directly to config.yaml log.levels
// These ensure consistent logger names across the codebase

// GetAPILogger returns a logger for the HTTP API server
func GetAPILogger() zerolog.Logger {
	return GetLogger("api")
}

// GetCodecLogger returns a logger for identifier encode/decode
func GetCodecLogger() zerolog.Logger {
	return GetLogger("codec")
}

// GetSlackLogger returns a logger for the Slack webhook adapter
func GetSlackLogger() zerolog.Logger {
	return GetLogger("slack")
}

// GetTemporalLogger returns a logger for Temporal components
func GetTemporalLogger() zerolog.Logger {
	return GetLogger("temporal")
}
