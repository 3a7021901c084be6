// Copyright (C) 2026 noxasaxon
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package interaction defines the commands that third-party callback events
// are routed back into: start a workflow, signal a running workflow, or
// query a running workflow. Values are built per request, are immutable once
// built, and carry no identity beyond a single request/response cycle — the
// encoded callback identifier (see the codec subpackage) is the only thing
// that outlives the process.
package interaction

import (
	"encoding/json"
	"fmt"
)

// Kind discriminates the interaction variants. It is derived from the
// concrete type, never stored independently.
type Kind string

const (
	KindExecute Kind = "Execute"
	KindSignal  Kind = "Signal"
	KindQuery   Kind = "Query"
)

// ParseKind resolves a discriminant name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindExecute, KindSignal, KindQuery:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown interaction kind %q", s)
	}
}

// Interaction is the tagged union over Execute / Signal / Query. The Get
// accessors normalize absent fields to "" so the codec can treat every
// variant uniformly.
type Interaction interface {
	Kind() Kind
	GetNamespace() string
	GetTaskQueue() string
	GetWorkflowID() string

	// WithArgs returns a copy with the variant's argument field (Args for
	// Execute, Input for Signal, QueryArgs for Query) replaced. Used to merge
	// the externally-delivered event payload into a freshly decoded command;
	// the codec itself never reads or writes these fields.
	WithArgs(args []json.RawMessage) Interaction
}

// ExecuteWorkflow starts a new workflow execution.
type ExecuteWorkflow struct {
	Namespace    string            `json:"namespace"`
	TaskQueue    string            `json:"task_queue"`
	WorkflowID   string            `json:"workflow_id"`
	WorkflowType string            `json:"workflow_type"`
	Args         []json.RawMessage `json:"args,omitempty"`
}

func (e ExecuteWorkflow) Kind() Kind            { return KindExecute }
func (e ExecuteWorkflow) GetNamespace() string  { return e.Namespace }
func (e ExecuteWorkflow) GetTaskQueue() string  { return e.TaskQueue }
func (e ExecuteWorkflow) GetWorkflowID() string { return e.WorkflowID }

func (e ExecuteWorkflow) WithArgs(args []json.RawMessage) Interaction {
	e.Args = args
	return e
}

// Signal delivers a named signal to a running workflow. WorkflowID and RunID
// are optional ("" = absent); Identity, RequestID and Control are optional
// passthroughs for the engine's signal request.
type Signal struct {
	Namespace  string            `json:"namespace"`
	TaskQueue  string            `json:"task_queue"`
	WorkflowID string            `json:"workflow_id,omitempty"`
	RunID      string            `json:"run_id,omitempty"`
	SignalName string            `json:"signal_name"`
	Input      []json.RawMessage `json:"input,omitempty"`
	Identity   string            `json:"identity,omitempty"`
	RequestID  string            `json:"request_id,omitempty"`
	Control    string            `json:"control,omitempty"`
}

func (s Signal) Kind() Kind            { return KindSignal }
func (s Signal) GetNamespace() string  { return s.Namespace }
func (s Signal) GetTaskQueue() string  { return s.TaskQueue }
func (s Signal) GetWorkflowID() string { return s.WorkflowID }

func (s Signal) WithArgs(args []json.RawMessage) Interaction {
	s.Input = args
	return s
}

// Query runs a named query against a running workflow.
type Query struct {
	Namespace  string            `json:"namespace"`
	TaskQueue  string            `json:"task_queue"`
	WorkflowID string            `json:"workflow_id,omitempty"`
	RunID      string            `json:"run_id,omitempty"`
	QueryType  string            `json:"query_type"`
	QueryArgs  []json.RawMessage `json:"query_args,omitempty"`
}

func (q Query) Kind() Kind            { return KindQuery }
func (q Query) GetNamespace() string  { return q.Namespace }
func (q Query) GetTaskQueue() string  { return q.TaskQueue }
func (q Query) GetWorkflowID() string { return q.WorkflowID }

func (q Query) WithArgs(args []json.RawMessage) Interaction {
	q.QueryArgs = args
	return q
}
