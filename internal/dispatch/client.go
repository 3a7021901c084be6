// Copyright (C) 2026 noxasaxon
// SPDX-License-Identifier: AGPL-3.0-or-later

package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	commonpb "go.temporal.io/api/common/v1"
	enumspb "go.temporal.io/api/enums/v1"
	querypb "go.temporal.io/api/query/v1"
	taskqueuepb "go.temporal.io/api/taskqueue/v1"
	"go.temporal.io/api/workflowservice/v1"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/converter"

	"github.com/noxasaxon/temporal-apig/internal/config"
	"github.com/noxasaxon/temporal-apig/internal/interaction"
	"github.com/noxasaxon/temporal-apig/internal/logger"
)

var (
	dispatchLog     *zerolog.Logger
	dispatchLogOnce sync.Once
)

func getLog() *zerolog.Logger {
	dispatchLogOnce.Do(func() {
		l := logger.GetTemporalLogger().With().Str("component", "dispatch").Logger()
		dispatchLog = &l
	})
	return dispatchLog
}

// Client dispatches interactions over one Temporal connection. It calls the
// raw workflow service rather than the SDK convenience methods so that a
// single connection serves whatever namespace each interaction carries, and
// so Signal can pass identity, request id, control, and multi-payload input
// through unchanged.
type Client struct {
	temporalClient client.Client
	identity       string
}

// NewClient dials the Temporal frontend and returns a ready dispatcher.
func NewClient(cfg *config.TemporalConfig) (*Client, error) {
	options := client.Options{
		HostPort: cfg.HostPort,
		Identity: cfg.Identity,
		Logger:   logger.GetTemporalLogAdapter("temporal"),
	}

	temporalClient, err := client.Dial(options)
	if err != nil {
		return nil, fmt.Errorf("failed to create Temporal client: %w", err)
	}

	getLog().Info().Msgf("Connected to Temporal at %s", cfg.HostPort)

	return &Client{
		temporalClient: temporalClient,
		identity:       cfg.Identity,
	}, nil
}

// Dispatch routes an interaction to the matching workflow service call.
func (c *Client) Dispatch(ctx context.Context, in interaction.Interaction) (*Response, error) {
	switch v := in.(type) {
	case interaction.ExecuteWorkflow:
		return c.startWorkflow(ctx, v)
	case interaction.Signal:
		return c.signalWorkflow(ctx, v)
	case interaction.Query:
		return c.queryWorkflow(ctx, v)
	default:
		return nil, fmt.Errorf("unhandled interaction variant %T", in)
	}
}

func (c *Client) startWorkflow(ctx context.Context, v interaction.ExecuteWorkflow) (*Response, error) {
	input, err := toPayloads(v.Args)
	if err != nil {
		return nil, err
	}

	resp, err := c.temporalClient.WorkflowService().StartWorkflowExecution(ctx, &workflowservice.StartWorkflowExecutionRequest{
		Namespace:    v.Namespace,
		WorkflowId:   v.WorkflowID,
		WorkflowType: &commonpb.WorkflowType{Name: v.WorkflowType},
		TaskQueue: &taskqueuepb.TaskQueue{
			Name: v.TaskQueue,
			Kind: enumspb.TASK_QUEUE_KIND_NORMAL,
		},
		Input:     input,
		Identity:  c.identity,
		RequestId: uuid.NewString(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start workflow: %w", err)
	}

	getLog().Info().Str("workflow_id", v.WorkflowID).Str("run_id", resp.GetRunId()).Msg("Started workflow")
	return &Response{Type: interaction.KindExecute, RunID: resp.GetRunId()}, nil
}

func (c *Client) signalWorkflow(ctx context.Context, v interaction.Signal) (*Response, error) {
	input, err := toPayloads(v.Input)
	if err != nil {
		return nil, err
	}

	identity := v.Identity
	if identity == "" {
		identity = c.identity
	}
	requestID := v.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}

	_, err = c.temporalClient.WorkflowService().SignalWorkflowExecution(ctx, &workflowservice.SignalWorkflowExecutionRequest{
		Namespace:         v.Namespace,
		WorkflowExecution: workflowExecution(v.WorkflowID, v.RunID),
		SignalName:        v.SignalName,
		Input:             input,
		Identity:          identity,
		RequestId:         requestID,
		Control:           v.Control,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to signal workflow: %w", err)
	}

	getLog().Debug().Str("workflow_id", v.WorkflowID).Str("signal", v.SignalName).Msg("Sent signal")
	return &Response{Type: interaction.KindSignal}, nil
}

func (c *Client) queryWorkflow(ctx context.Context, v interaction.Query) (*Response, error) {
	queryArgs, err := toPayloads(v.QueryArgs)
	if err != nil {
		return nil, err
	}

	resp, err := c.temporalClient.WorkflowService().QueryWorkflow(ctx, &workflowservice.QueryWorkflowRequest{
		Namespace: v.Namespace,
		Execution: workflowExecution(v.WorkflowID, v.RunID),
		Query: &querypb.WorkflowQuery{
			QueryType: v.QueryType,
			QueryArgs: queryArgs,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query workflow: %w", err)
	}

	out := &Response{Type: interaction.KindQuery}
	if rejected := resp.GetQueryRejected(); rejected != nil {
		out.QueryRejected = rejected.GetStatus().String()
	}
	if result := resp.GetQueryResult(); result != nil {
		out.QueryResult = lo.Map(result.GetPayloads(), func(p *commonpb.Payload, _ int) json.RawMessage {
			return json.RawMessage(p.GetData())
		})
	}
	return out, nil
}

// Close closes the Temporal client connection.
func (c *Client) Close() {
	if c.temporalClient != nil {
		c.temporalClient.Close()
		getLog().Info().Msg("Temporal client closed")
	}
}

// workflowExecution mirrors the optional workflow_id semantics of the
// interaction model: no workflow id means no execution reference at all.
func workflowExecution(workflowID, runID string) *commonpb.WorkflowExecution {
	if workflowID == "" {
		return nil
	}
	return &commonpb.WorkflowExecution{WorkflowId: workflowID, RunId: runID}
}

// toPayloads converts raw JSON args into engine payloads via the SDK's
// default data converter. nil args stay nil.
func toPayloads(args []json.RawMessage) (*commonpb.Payloads, error) {
	if len(args) == 0 {
		return nil, nil
	}
	values := lo.Map(args, func(a json.RawMessage, _ int) interface{} { return a })
	payloads, err := converter.GetDefaultDataConverter().ToPayloads(values...)
	if err != nil {
		return nil, fmt.Errorf("failed to convert args to payloads: %w", err)
	}
	return payloads, nil
}
