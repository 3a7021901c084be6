// Copyright (C) 2026 noxasaxon
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package dispatch delivers fully populated interactions (post WithArgs) to
// the workflow engine. It is the only package that talks to Temporal; the
// codec and the HTTP layer have no dependency on its protocol.
package dispatch

import (
	"context"
	"encoding/json"

	"github.com/noxasaxon/temporal-apig/internal/interaction"
)

// Dispatcher executes an interaction against the workflow engine. The HTTP
// layer depends on this interface so handlers are testable without a
// cluster.
type Dispatcher interface {
	Dispatch(ctx context.Context, in interaction.Interaction) (*Response, error)
}

// Response is the engine's answer, tagged with the interaction kind that
// produced it. RunID is set for Execute; QueryResult and QueryRejected for
// Query; a Signal response carries only the tag.
type Response struct {
	Type          interaction.Kind  `json:"type"`
	RunID         string            `json:"run_id,omitempty"`
	QueryResult   []json.RawMessage `json:"query_result,omitempty"`
	QueryRejected string            `json:"query_rejected,omitempty"`
}
