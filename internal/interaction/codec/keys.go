// Copyright (C) 2026 noxasaxon
// SPDX-License-Identifier: AGPL-3.0-or-later

package codec

import "fmt"

// FieldKey is a one-character field code used by version A to tag each
// key:value pair in the encoded identifier. Codes are this short because the
// whole identifier has to fit a 255-character callback budget.
type FieldKey string

const (
	// KeyEventKind tags the interaction kind (Execute, Signal, Query).
	KeyEventKind FieldKey = "E"
	// KeyWorkflowID tags the workflow id.
	KeyWorkflowID FieldKey = "W"
	// KeyNamespace tags the namespace.
	KeyNamespace FieldKey = "N"
	// KeyTaskQueue tags the task queue name.
	KeyTaskQueue FieldKey = "T"
	// KeyWorkflowType tags the workflow function name (Execute only).
	KeyWorkflowType FieldKey = "Y"
	// KeyRunID tags the workflow run id (Signal and Query).
	KeyRunID FieldKey = "R"
	// KeySignalName tags the signal name (Signal only).
	KeySignalName FieldKey = "S"
	// KeyQueryType tags the query type (Query only).
	KeyQueryType FieldKey = "Q"
	// KeyQueryArgs tags the first query argument rendered as a string.
	// Emitted on encode as a convenience for humans reading identifiers;
	// decode never reconstructs structured args from it.
	KeyQueryArgs FieldKey = "U"
)

// fieldKeyOrder is the canonical emission order for version A. It is an
// explicit literal rather than map iteration so encoded output stays
// byte-stable across processes and releases; already-issued identifiers
// depend on it.
var fieldKeyOrder = [...]FieldKey{
	KeyEventKind,
	KeyWorkflowID,
	KeyNamespace,
	KeyTaskQueue,
	KeyWorkflowType,
	KeyRunID,
	KeySignalName,
	KeyQueryType,
	KeyQueryArgs,
}

// FieldKeys returns version A's field codes in canonical emission order.
func FieldKeys() []FieldKey {
	keys := make([]FieldKey, len(fieldKeyOrder))
	copy(keys, fieldKeyOrder[:])
	return keys
}

// ParseFieldKey resolves a code from an encoded identifier.
func ParseFieldKey(s string) (FieldKey, error) {
	for _, key := range fieldKeyOrder {
		if string(key) == s {
			return key, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKey, s)
}

// kv renders a single encoded pair.
func (k FieldKey) kv(value string) string {
	return string(k) + KeyDelimiter + value
}
