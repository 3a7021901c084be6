// Copyright (C) 2026 noxasaxon
// SPDX-License-Identifier: AGPL-3.0-or-later

package codec

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noxasaxon/temporal-apig/internal/interaction"
)

func buildMockSignal() interaction.Signal {
	return interaction.Signal{
		Namespace:  "test-namespace",
		TaskQueue:  "test-task-queue-go",
		WorkflowID: "some-super-long-uuid-string",
		RunID:      "some-equally-long-uuid-string",
		SignalName: "signal_name_thats_defined_in_workflow",
	}
}

func buildMockExecute() interaction.ExecuteWorkflow {
	return interaction.ExecuteWorkflow{
		Namespace:    "test-namespace",
		TaskQueue:    "test-task-queue-go",
		WorkflowID:   "some-super-long-uuid-string",
		WorkflowType: "some-wf-function-name",
		Args:         []json.RawMessage{json.RawMessage(`{"arg1":"value1"}`)},
	}
}

func buildMockQuery() interaction.Query {
	return interaction.Query{
		Namespace:  "test-namespace",
		TaskQueue:  "test-task-queue-go",
		WorkflowID: "some-super-long-uuid-string",
		RunID:      "some-equally-long-uuid-string",
		QueryType:  "current_state",
		QueryArgs:  []json.RawMessage{json.RawMessage(`"latest"`)},
	}
}

// TestEncodeSignal checks the exact identifier for a fully populated Signal.
func TestEncodeSignal(t *testing.T) {
	encoded, err := Encode(VersionA, interaction.Signal{
		Namespace:  "my-namespace",
		TaskQueue:  "my-taskqueue",
		WorkflowID: "some-workflow-id",
		RunID:      "some-run-id",
		SignalName: "my_signal_name",
	})
	require.NoError(t, err)
	assert.Equal(t, "A~E:Signal,W:some-workflow-id,N:my-namespace,T:my-taskqueue,R:some-run-id,S:my_signal_name", encoded)
}

// TestDecodeSignal checks the inverse of TestEncodeSignal, with the input
// field absent.
func TestDecodeSignal(t *testing.T) {
	decoded, err := Decode("A~E:Signal,W:some-workflow-id,N:my-namespace,T:my-taskqueue,R:some-run-id,S:my_signal_name")
	require.NoError(t, err)
	assert.Equal(t, interaction.Signal{
		Namespace:  "my-namespace",
		TaskQueue:  "my-taskqueue",
		WorkflowID: "some-workflow-id",
		RunID:      "some-run-id",
		SignalName: "my_signal_name",
	}, decoded)
}

// TestRoundTripAllVersions covers every registered version with every
// variant: decode(encode(v, c)) must equal c with its argument field
// cleared.
func TestRoundTripAllVersions(t *testing.T) {
	fixtures := []interaction.Interaction{
		buildMockSignal(),
		buildMockExecute(),
		buildMockQuery(),
	}

	for _, version := range Versions() {
		for _, fixture := range fixtures {
			t.Run(string(version)+"_"+string(fixture.Kind()), func(t *testing.T) {
				expected := fixture.WithArgs(nil)

				encoded, err := Encode(version, fixture)
				require.NoError(t, err)

				decoded, err := Decode(encoded)
				require.NoError(t, err, "failed to decode %q", encoded)
				assert.Equal(t, expected, decoded)
			})
		}
	}
}

// TestEncodeStripsArgs: arguments never appear in the identifier.
func TestEncodeStripsArgs(t *testing.T) {
	withArgs := buildMockSignal()
	withArgs.Input = []json.RawMessage{json.RawMessage(`{"secret":"value"}`)}

	encoded, err := Encode(VersionA, withArgs)
	require.NoError(t, err)
	assert.NotContains(t, encoded, "secret")

	decoded, err := Decode(encoded)
	require.NoError(t, err)
	assert.Nil(t, decoded.(interaction.Signal).Input)
}

func TestEncodeDeterministic(t *testing.T) {
	for _, fixture := range []interaction.Interaction{buildMockSignal(), buildMockExecute(), buildMockQuery()} {
		first, err := Encode(VersionA, fixture)
		require.NoError(t, err)
		second, err := Encode(VersionA, fixture)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

func TestEncodeUnknownVersion(t *testing.T) {
	_, err := Encode(Version("Z"), buildMockSignal())
	assert.ErrorIs(t, err, ErrUnknownVersion)
}

// TestEncodeFitsCallbackBudget: realistic identifiers must leave headroom
// inside the 255-char callback limit for caller-appended user data.
func TestEncodeFitsCallbackBudget(t *testing.T) {
	encoded, err := Encode(VersionA, buildMockSignal())
	require.NoError(t, err)
	assert.LessOrEqual(t, len(encoded), 170, "routing section should leave user-data headroom")
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
		wantErr error
	}{
		{"no_section_delimiter", "E:Signal,N:ns,T:tq,S:sig", ErrMalformedVersion},
		{"empty_string", "", ErrMalformedVersion},
		{"unknown_version", "Z~E:Signal,N:ns,T:tq,S:sig", ErrUnknownVersion},
		{"token_without_key_delimiter", "A~E:Signal,notapair", ErrMalformedPair},
		{"unknown_field_code", "A~E:Signal,X:foo,N:ns,T:tq,S:sig", ErrUnknownKey},
		{"missing_event_kind", "A~N:ns,T:tq,S:sig", ErrMissingEventKind},
		{"unknown_event_kind", "A~E:Bogus,N:ns,T:tq", ErrUnknownEventKind},
		{"missing_namespace", "A~E:Signal,T:tq,S:sig", ErrMissingRequiredField},
		{"missing_task_queue", "A~E:Signal,N:ns,S:sig", ErrMissingRequiredField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := Decode(tt.encoded)
			assert.Nil(t, decoded, "failed decode must not partially parse")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// TestDecodeMissingRequiredFields checks each variant's required set and
// that the error names the semantic field, not the one-letter code.
func TestDecodeMissingRequiredFields(t *testing.T) {
	tests := []struct {
		name      string
		encoded   string
		wantField string
	}{
		{"signal_without_signal_name", "A~E:Signal,W:wf,N:ns,T:tq,R:run", "signal_name"},
		{"execute_without_workflow_type", "A~E:Execute,W:wf,N:ns,T:tq", "workflow_type"},
		{"execute_without_workflow_id", "A~E:Execute,N:ns,T:tq,Y:MyWorkflow", "workflow_id"},
		{"query_without_query_type", "A~E:Query,W:wf,N:ns,T:tq", "query_type"},
		{"missing_namespace", "A~E:Signal,T:tq,S:sig", "namespace"},
		{"missing_task_queue", "A~E:Signal,N:ns,S:sig", "task_queue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.encoded)
			require.ErrorIs(t, err, ErrMissingRequiredField)

			var missing *MissingFieldError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, tt.wantField, missing.Field)
		})
	}
}

// TestDecodeOptionalFieldsDefault: a Signal identifier without W and R
// pairs decodes cleanly with both absent.
func TestDecodeOptionalFieldsDefault(t *testing.T) {
	decoded, err := Decode("A~E:Signal,N:my-namespace,T:my-taskqueue,S:my_signal_name")
	require.NoError(t, err)

	signal, ok := decoded.(interaction.Signal)
	require.True(t, ok)
	assert.Empty(t, signal.WorkflowID)
	assert.Empty(t, signal.RunID)
}

// TestDecodeEmptyOptionalPairs: identifiers from the earlier encoder
// emitted optional fields as empty pairs (W:, R:); they must still decode.
func TestDecodeEmptyOptionalPairs(t *testing.T) {
	decoded, err := Decode("A~E:Signal,W:,N:my-namespace,T:my-taskqueue,R:,S:my_signal_name")
	require.NoError(t, err)

	signal, ok := decoded.(interaction.Signal)
	require.True(t, ok)
	assert.Empty(t, signal.WorkflowID)
	assert.Empty(t, signal.RunID)
}

func TestDecodeDuplicateKeyLastWins(t *testing.T) {
	decoded, err := Decode("A~E:Signal,N:first,N:second,T:tq,S:sig")
	require.NoError(t, err)
	assert.Equal(t, "second", decoded.GetNamespace())
}

// TestDecodeIgnoresUserData: caller-appended data after the second section
// delimiter never affects the decoded interaction.
func TestDecodeIgnoresUserData(t *testing.T) {
	base := "A~E:Signal,W:wf,N:ns,T:tq,R:run,S:sig"
	withSuffix := base + "~Some User Defined Data Under 80 chars"

	fromBase, err := Decode(base)
	require.NoError(t, err)
	fromSuffix, err := Decode(withSuffix)
	require.NoError(t, err)
	assert.Equal(t, fromBase, fromSuffix)
}

func TestTrailingData(t *testing.T) {
	data, ok := TrailingData("A~E:Signal,N:ns,T:tq,S:sig~user-data~with-extra-tilde")
	assert.True(t, ok)
	assert.Equal(t, "user-data~with-extra-tilde", data)

	_, ok = TrailingData("A~E:Signal,N:ns,T:tq,S:sig")
	assert.False(t, ok)

	_, ok = TrailingData("no delimiters at all")
	assert.False(t, ok)
}

// TestEncodeQueryArgsPair: Query emits the first query arg as the U pair
// for readability, but decode never rebuilds structured args from it.
func TestEncodeQueryArgsPair(t *testing.T) {
	query := buildMockQuery()

	encoded, err := Encode(VersionA, query)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(encoded, `,U:"latest"`), "got %q", encoded)

	decoded, err := Decode(encoded)
	require.NoError(t, err)
	assert.Nil(t, decoded.(interaction.Query).QueryArgs)
}

func TestValidate(t *testing.T) {
	clean := buildMockSignal()
	assert.NoError(t, Validate(clean))

	tests := []struct {
		name string
		in   interaction.Interaction
	}{
		{"namespace_with_pair_delimiter", interaction.Signal{Namespace: "bad,ns", TaskQueue: "tq", SignalName: "sig"}},
		{"task_queue_with_key_delimiter", interaction.Signal{Namespace: "ns", TaskQueue: "bad:tq", SignalName: "sig"}},
		{"signal_name_with_section_delimiter", interaction.Signal{Namespace: "ns", TaskQueue: "tq", SignalName: "bad~sig"}},
		{"workflow_type_with_pair_delimiter", interaction.ExecuteWorkflow{Namespace: "ns", TaskQueue: "tq", WorkflowID: "wf", WorkflowType: "bad,type"}},
		{"query_type_with_key_delimiter", interaction.Query{Namespace: "ns", TaskQueue: "tq", QueryType: "bad:query"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, Validate(tt.in))
		})
	}
}

func TestParseVersion(t *testing.T) {
	v, err := ParseVersion("A")
	require.NoError(t, err)
	assert.Equal(t, VersionA, v)

	_, err = ParseVersion("B")
	assert.ErrorIs(t, err, ErrUnknownVersion)
}

func TestVersionsEnumeration(t *testing.T) {
	versions := Versions()
	require.NotEmpty(t, versions)
	assert.Equal(t, VersionA, versions[0])
	assert.Equal(t, DefaultVersion(), VersionA)
}

func TestEncodeDefaultFromJSON(t *testing.T) {
	signalJSON := `{
		"type": "Signal",
		"namespace": "my-namespace",
		"task_queue": "my-taskqueue",
		"workflow_id": "some-workflow-id",
		"run_id": "some-run-id",
		"signal_name": "my_signal_name"
	}`

	encoded, err := EncodeDefaultFromJSON(signalJSON)
	require.NoError(t, err)
	assert.Equal(t, "A~E:Signal,W:some-workflow-id,N:my-namespace,T:my-taskqueue,R:some-run-id,S:my_signal_name", encoded)

	_, err = EncodeDefaultFromJSON(`{"not the right format": "at all"}`)
	assert.Error(t, err)
}

func TestDecodeToJSON(t *testing.T) {
	decoded, err := DecodeToJSON("A~E:Signal,W:some-workflow-id,N:my-namespace,T:my-taskqueue,R:some-run-id,S:my_signal_name")
	require.NoError(t, err)

	back, err := interaction.Unmarshal([]byte(decoded))
	require.NoError(t, err)
	assert.Equal(t, interaction.Signal{
		Namespace:  "my-namespace",
		TaskQueue:  "my-taskqueue",
		WorkflowID: "some-workflow-id",
		RunID:      "some-run-id",
		SignalName: "my_signal_name",
	}, back)

	_, err = DecodeToJSON("garbage with no delimiter")
	assert.ErrorIs(t, err, ErrMalformedVersion)
}
