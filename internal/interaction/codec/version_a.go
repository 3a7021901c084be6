// Copyright (C) 2026 noxasaxon
// SPDX-License-Identifier: AGPL-3.0-or-later

package codec

import (
	"fmt"
	"strings"

	"github.com/noxasaxon/temporal-apig/internal/interaction"
)

// versionA is the original scheme: the event-kind pair first, then the
// variant's fields in fieldKeyOrder, comma-joined. Optional fields that are
// empty are skipped rather than emitted as empty pairs.
//
//	E:Signal,W:some-workflow-id,N:my-namespace,T:my-taskqueue,R:some-run-id,S:my_signal_name
type versionA struct{}

func (versionA) encode(in interaction.Interaction) (string, error) {
	pairs := make([]string, 0, len(fieldKeyOrder))
	pairs = append(pairs, KeyEventKind.kv(string(in.Kind())))

	namespace := in.GetNamespace()
	taskQueue := in.GetTaskQueue()
	workflowID := in.GetWorkflowID()

	switch v := in.(type) {
	case interaction.ExecuteWorkflow:
		for _, key := range fieldKeyOrder {
			switch key {
			case KeyWorkflowID:
				pairs = append(pairs, key.kv(workflowID))
			case KeyNamespace:
				pairs = append(pairs, key.kv(namespace))
			case KeyTaskQueue:
				pairs = append(pairs, key.kv(taskQueue))
			case KeyWorkflowType:
				pairs = append(pairs, key.kv(v.WorkflowType))
			}
		}
	case interaction.Signal:
		for _, key := range fieldKeyOrder {
			switch key {
			case KeyWorkflowID:
				if workflowID != "" {
					pairs = append(pairs, key.kv(workflowID))
				}
			case KeyNamespace:
				pairs = append(pairs, key.kv(namespace))
			case KeyTaskQueue:
				pairs = append(pairs, key.kv(taskQueue))
			case KeyRunID:
				if v.RunID != "" {
					pairs = append(pairs, key.kv(v.RunID))
				}
			case KeySignalName:
				pairs = append(pairs, key.kv(v.SignalName))
			}
		}
	case interaction.Query:
		for _, key := range fieldKeyOrder {
			switch key {
			case KeyWorkflowID:
				if workflowID != "" {
					pairs = append(pairs, key.kv(workflowID))
				}
			case KeyNamespace:
				pairs = append(pairs, key.kv(namespace))
			case KeyTaskQueue:
				pairs = append(pairs, key.kv(taskQueue))
			case KeyRunID:
				if v.RunID != "" {
					pairs = append(pairs, key.kv(v.RunID))
				}
			case KeyQueryType:
				pairs = append(pairs, key.kv(v.QueryType))
			case KeyQueryArgs:
				if arg := firstQueryArg(v); arg != "" {
					pairs = append(pairs, key.kv(arg))
				}
			}
		}
	default:
		return "", fmt.Errorf("unhandled interaction variant %T", in)
	}

	return strings.Join(pairs, PairDelimiter), nil
}

// firstQueryArg renders the first query argument as a plain string, "" when
// there is none. Encode-side convenience only; decode ignores the U pair.
func firstQueryArg(q interaction.Query) string {
	if len(q.QueryArgs) == 0 {
		return ""
	}
	return string(q.QueryArgs[0])
}

func (versionA) decode(payload string) (interaction.Interaction, error) {
	// Anything after a second section delimiter is caller-appended user
	// data, not ours to parse.
	routing, _, _ := strings.Cut(payload, SectionDelimiter)

	fields := make(map[FieldKey]string)
	for _, token := range strings.Split(routing, PairDelimiter) {
		code, value, found := strings.Cut(token, KeyDelimiter)
		if !found {
			return nil, fmt.Errorf("%w: %q", ErrMalformedPair, token)
		}
		key, err := ParseFieldKey(code)
		if err != nil {
			return nil, err
		}
		// Encode never emits duplicates; if a hand-built identifier does,
		// last write wins.
		fields[key] = value
	}

	kindName, ok := take(fields, KeyEventKind)
	if !ok {
		return nil, ErrMissingEventKind
	}
	kind, err := interaction.ParseKind(kindName)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEventKind, kindName)
	}

	namespace, ok := take(fields, KeyNamespace)
	if !ok {
		return nil, &MissingFieldError{Field: "namespace"}
	}
	taskQueue, ok := take(fields, KeyTaskQueue)
	if !ok {
		return nil, &MissingFieldError{Field: "task_queue"}
	}

	// Argument fields stay nil on every path: they are never embedded in
	// the identifier and are reattached by the caller via WithArgs.
	switch kind {
	case interaction.KindExecute:
		workflowID, ok := take(fields, KeyWorkflowID)
		if !ok {
			return nil, &MissingFieldError{Field: "workflow_id"}
		}
		workflowType, ok := take(fields, KeyWorkflowType)
		if !ok {
			return nil, &MissingFieldError{Field: "workflow_type"}
		}
		return interaction.ExecuteWorkflow{
			Namespace:    namespace,
			TaskQueue:    taskQueue,
			WorkflowID:   workflowID,
			WorkflowType: workflowType,
		}, nil

	case interaction.KindSignal:
		workflowID, _ := take(fields, KeyWorkflowID)
		runID, _ := take(fields, KeyRunID)
		signalName, ok := take(fields, KeySignalName)
		if !ok {
			return nil, &MissingFieldError{Field: "signal_name"}
		}
		return interaction.Signal{
			Namespace:  namespace,
			TaskQueue:  taskQueue,
			WorkflowID: workflowID,
			RunID:      runID,
			SignalName: signalName,
		}, nil

	case interaction.KindQuery:
		workflowID, _ := take(fields, KeyWorkflowID)
		runID, _ := take(fields, KeyRunID)
		queryType, ok := take(fields, KeyQueryType)
		if !ok {
			return nil, &MissingFieldError{Field: "query_type"}
		}
		// The U pair, if present, is dropped: structured query args are
		// never reconstructed from their string rendering.
		take(fields, KeyQueryArgs)
		return interaction.Query{
			Namespace:  namespace,
			TaskQueue:  taskQueue,
			WorkflowID: workflowID,
			RunID:      runID,
			QueryType:  queryType,
		}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEventKind, kindName)
	}
}

// take reads and removes a key so leftovers can be inspected after the
// variant's fields are consumed.
func take(fields map[FieldKey]string, key FieldKey) (string, bool) {
	value, ok := fields[key]
	if ok {
		delete(fields, key)
	}
	return value, ok
}
