// Copyright (C) 2026 noxasaxon
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/noxasaxon/temporal-apig/internal/dispatch"
	"github.com/noxasaxon/temporal-apig/internal/interaction"
	"github.com/noxasaxon/temporal-apig/internal/interaction/codec"
)

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	dispatcher dispatch.Dispatcher
}

// NewHandlers creates the handler set.
func NewHandlers(dispatcher dispatch.Dispatcher) *Handlers {
	return &Handlers{dispatcher: dispatcher}
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		getLog().Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeClientError is for failures caused entirely by the request: bad
// JSON, a corrupted or foreign identifier, an unknown version. Never a 500
// — those are reserved for faults on our side.
func writeClientError(w http.ResponseWriter, message string, err error) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": message, "context": err.Error()})
}

func readInteraction(r *http.Request) (interaction.Interaction, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	return interaction.Unmarshal(body)
}

// --- handlers ---

// VersionCheck handles GET /api/{version}/
func (h *Handlers) VersionCheck(w http.ResponseWriter, r *http.Request) {
	message := fmt.Sprintf("received request with version %s", GetAPIVersion(r.Context()))
	getLog().Info().Msg(message)
	w.Write([]byte(message))
}

// Encode handles POST /api/{version}/temporal/encode: a type-tagged
// interaction JSON body in, the callback identifier out.
func (h *Handlers) Encode(w http.ResponseWriter, r *http.Request) {
	in, err := readInteraction(r)
	if err != nil {
		writeClientError(w, "Invalid interaction payload", err)
		return
	}

	encoded, err := codec.Encode(codec.DefaultVersion(), in)
	if err != nil {
		writeClientError(w, "Failed to encode interaction", err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	w.Write([]byte(encoded))
}

// decodeRequest is the body of POST /api/{version}/temporal/decode.
type decodeRequest struct {
	Encoded string `json:"encoded"`
}

// Decode handles POST /api/{version}/temporal/decode: a callback identifier
// in, the type-tagged interaction JSON out. Every decode failure is a 400:
// the identifier came from untrusted external input.
func (h *Handlers) Decode(w http.ResponseWriter, r *http.Request) {
	var req decodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeClientError(w, "Invalid decode request", err)
		return
	}

	decoded, err := codec.DecodeToJSON(req.Encoded)
	if err != nil {
		writeClientError(w, "Failed to decode identifier", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	w.Write([]byte(decoded))
}

// Interact handles POST /api/{version}/temporal/interact (bearer
// protected): a fully populated interaction is dispatched to the workflow
// engine and the engine's response returned.
func (h *Handlers) Interact(w http.ResponseWriter, r *http.Request) {
	in, err := readInteraction(r)
	if err != nil {
		writeClientError(w, "Invalid interaction payload", err)
		return
	}

	resp, err := h.dispatcher.Dispatch(r.Context(), in)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to dispatch interaction", "context": err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}
