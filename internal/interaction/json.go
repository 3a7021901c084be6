// Copyright (C) 2026 noxasaxon
// SPDX-License-Identifier: AGPL-3.0-or-later

package interaction

import (
	"encoding/json"
	"fmt"
)

// The HTTP API and the flattened string helpers exchange interactions as
// JSON objects with an adjacent "type" tag:
//
//	{"type": "Signal", "namespace": "...", "task_queue": "...", ...}

// Marshal serializes an interaction into its type-tagged JSON form.
func Marshal(in Interaction) ([]byte, error) {
	switch v := in.(type) {
	case ExecuteWorkflow:
		return json.Marshal(struct {
			Type Kind `json:"type"`
			ExecuteWorkflow
		}{KindExecute, v})
	case Signal:
		return json.Marshal(struct {
			Type Kind `json:"type"`
			Signal
		}{KindSignal, v})
	case Query:
		return json.Marshal(struct {
			Type Kind `json:"type"`
			Query
		}{KindQuery, v})
	default:
		return nil, fmt.Errorf("unhandled interaction variant %T", in)
	}
}

// Unmarshal parses a type-tagged JSON object into the matching variant.
func Unmarshal(data []byte) (Interaction, error) {
	var envelope struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("interaction is not a JSON object: %w", err)
	}

	kind, err := ParseKind(envelope.Type)
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindExecute:
		var v ExecuteWorkflow
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("invalid Execute interaction: %w", err)
		}
		return v, nil
	case KindSignal:
		var v Signal
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("invalid Signal interaction: %w", err)
		}
		return v, nil
	case KindQuery:
		var v Query
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("invalid Query interaction: %w", err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("unhandled interaction kind %q", kind)
	}
}
