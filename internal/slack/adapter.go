// Copyright (C) 2026 noxasaxon
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package slack bridges Slack interactivity webhooks back into workflow
// interactions. A Slack UI element is created with an encoded callback
// identifier; when the user interacts, Slack posts the identifier back
// verbatim, and this adapter decodes it, attaches the event payload, and
// dispatches the result to the workflow engine.
package slack

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/rs/zerolog"
	"github.com/slack-go/slack"

	"github.com/noxasaxon/temporal-apig/internal/dispatch"
	"github.com/noxasaxon/temporal-apig/internal/interaction/codec"
	"github.com/noxasaxon/temporal-apig/internal/logger"
)

var (
	slackLog     *zerolog.Logger
	slackLogOnce sync.Once
)

func getLog() *zerolog.Logger {
	slackLogOnce.Do(func() {
		l := logger.GetSlackLogger()
		slackLog = &l
	})
	return slackLog
}

// Handler serves the Slack interactivity webhook.
type Handler struct {
	dispatcher dispatch.Dispatcher
}

// NewHandler creates the webhook handler.
func NewHandler(dispatcher dispatch.Dispatcher) *Handler {
	return &Handler{dispatcher: dispatcher}
}

// HandleInteraction handles POST /api/{version}/slack/interaction. Slack
// sends interaction events as a form with a single JSON-encoded `payload`
// field (https://api.slack.com/interactivity/handling#payloads).
func (h *Handler) HandleInteraction(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}

	payload := r.PostFormValue("payload")
	if payload == "" {
		http.Error(w, "missing payload field", http.StatusBadRequest)
		return
	}

	var event slack.InteractionCallback
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		getLog().Error().Err(err).Msg("Interaction payload is not a recognized Slack event")
		http.Error(w, "unrecognized interaction payload", http.StatusBadRequest)
		return
	}

	callbackID, err := callbackIdentifier(&event)
	if err != nil {
		getLog().Error().Err(err).Str("event_type", string(event.Type)).Msg("No callback identifier in event")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	in, err := codec.Decode(callbackID)
	if err != nil {
		// A foreign or corrupted identifier; the event wasn't minted by us.
		getLog().Warn().Err(err).Msg("Callback identifier failed to decode")
		http.Error(w, "callback identifier is not decodable", http.StatusBadRequest)
		return
	}

	// The identifier never carries the event's data; reattach the whole
	// interaction event as the single argument.
	eventJSON, err := json.Marshal(event)
	if err != nil {
		getLog().Error().Err(err).Msg("Failed to re-serialize Slack event")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp, err := h.dispatcher.Dispatch(r.Context(), in.WithArgs([]json.RawMessage{eventJSON}))
	if err != nil {
		getLog().Error().Err(err).Str("namespace", in.GetNamespace()).Msg("Failed to dispatch Slack interaction")
		http.Error(w, "failed to dispatch interaction", http.StatusInternalServerError)
		return
	}

	getLog().Info().
		Str("kind", string(in.Kind())).
		Str("namespace", in.GetNamespace()).
		Str("workflow_id", in.GetWorkflowID()).
		Msg("Dispatched Slack interaction")

	writeResponse(w, resp)
}

func writeResponse(w http.ResponseWriter, resp *dispatch.Response) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		getLog().Error().Err(err).Msg("Failed to encode response")
	}
}

// callbackIdentifier extracts the identifier we minted from whichever slot
// the event type carries it in. Block actions store it as the action id;
// dialogs and message actions use callback_id; view events nest it in the
// view.
func callbackIdentifier(event *slack.InteractionCallback) (string, error) {
	switch event.Type {
	case slack.InteractionTypeBlockActions:
		if len(event.ActionCallback.BlockActions) == 0 {
			return "", fmt.Errorf("block actions event carries no actions")
		}
		return event.ActionCallback.BlockActions[0].ActionID, nil
	case slack.InteractionTypeDialogSubmission, slack.InteractionTypeMessageAction:
		if event.CallbackID == "" {
			return "", fmt.Errorf("%s event carries no callback_id", event.Type)
		}
		return event.CallbackID, nil
	case slack.InteractionTypeViewSubmission, slack.InteractionTypeViewClosed:
		if event.View.CallbackID == "" {
			return "", fmt.Errorf("%s event carries no view callback_id", event.Type)
		}
		return event.View.CallbackID, nil
	default:
		return "", fmt.Errorf("unsupported interaction event type %q", event.Type)
	}
}
