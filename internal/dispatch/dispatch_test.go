// Copyright (C) 2026 noxasaxon
// SPDX-License-Identifier: AGPL-3.0-or-later

package dispatch

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noxasaxon/temporal-apig/internal/interaction"
)

func TestToPayloads(t *testing.T) {
	payloads, err := toPayloads(nil)
	require.NoError(t, err)
	assert.Nil(t, payloads)

	payloads, err = toPayloads([]json.RawMessage{})
	require.NoError(t, err)
	assert.Nil(t, payloads)

	args := []json.RawMessage{
		json.RawMessage(`{"name":"saxon"}`),
		json.RawMessage(`"plain string"`),
		json.RawMessage(`42`),
	}
	payloads, err = toPayloads(args)
	require.NoError(t, err)
	require.NotNil(t, payloads)
	require.Len(t, payloads.GetPayloads(), 3)

	// The default converter keeps raw JSON intact, so workers see exactly
	// what the caller sent.
	for i, p := range payloads.GetPayloads() {
		assert.JSONEq(t, string(args[i]), string(p.GetData()))
	}
}

func TestWorkflowExecution(t *testing.T) {
	assert.Nil(t, workflowExecution("", ""))
	assert.Nil(t, workflowExecution("", "run-id-without-workflow"))

	exec := workflowExecution("wf-1", "")
	require.NotNil(t, exec)
	assert.Equal(t, "wf-1", exec.GetWorkflowId())
	assert.Equal(t, "", exec.GetRunId())

	exec = workflowExecution("wf-1", "run-1")
	require.NotNil(t, exec)
	assert.Equal(t, "run-1", exec.GetRunId())
}

func TestResponseJSONShape(t *testing.T) {
	tests := []struct {
		name string
		resp Response
		want string
	}{
		{
			"signal_carries_only_tag",
			Response{Type: interaction.KindSignal},
			`{"type":"Signal"}`,
		},
		{
			"execute_carries_run_id",
			Response{Type: interaction.KindExecute, RunID: "run-1"},
			`{"type":"Execute","run_id":"run-1"}`,
		},
		{
			"query_result",
			Response{Type: interaction.KindQuery, QueryResult: []json.RawMessage{json.RawMessage(`{"state":"open"}`)}},
			`{"type":"Query","query_result":[{"state":"open"}]}`,
		},
		{
			"query_rejected",
			Response{Type: interaction.KindQuery, QueryRejected: "Completed"},
			`{"type":"Query","query_rejected":"Completed"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.resp)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
		})
	}
}
