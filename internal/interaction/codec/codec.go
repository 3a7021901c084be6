// Copyright (C) 2026 noxasaxon
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package codec turns interactions into compact, delimiter-separated
// callback identifiers and back. A third-party webhook system stores the
// identifier verbatim and returns it later, so the format is versioned: the
// leading tag selects the encode/decode strategy, and already-issued
// identifiers stay decodable when a new version is added.
//
// Identifier layout:
//
//	version~key:value,key:value,...~optional user data
//
// The total identifier is limited to 255 characters by the callback
// carrier; the routing section consumes roughly 170 of them, leaving the
// rest for caller-appended user data after the second section delimiter.
//
// Values are opaque UTF-8 with no escaping, so namespaces, task queues,
// workflow ids and signal/query names must not contain the three delimiter
// characters. That is a caller constraint; Validate offers an opt-in check.
//
// Encode and decode are pure and stateless — safe for concurrent use.
package codec

import (
	"fmt"
	"strings"

	"github.com/noxasaxon/temporal-apig/internal/interaction"
)

// Delimiters of the encoded form. Fixed forever: every issued identifier
// depends on them.
const (
	// SectionDelimiter separates version, routing payload, and user data.
	SectionDelimiter = "~"
	// PairDelimiter separates key:value pairs within the routing payload.
	PairDelimiter = ","
	// KeyDelimiter separates a field code from its value.
	KeyDelimiter = ":"
)

// Version tags one encode/decode strategy. New versions get new tags; an
// existing tag's behavior never changes.
type Version string

// VersionA is the original single-character key:value scheme.
const VersionA Version = "A"

type strategy interface {
	encode(in interaction.Interaction) (string, error)
	decode(payload string) (interaction.Interaction, error)
}

// versionOrder enumerates registered versions oldest-first; versions holds
// the decode dispatch table. Both must list every registered version.
var (
	versionOrder = [...]Version{VersionA}
	versions     = map[Version]strategy{
		VersionA: versionA{},
	}
)

// DefaultVersion is the version used when callers don't pick one.
func DefaultVersion() Version { return VersionA }

// Versions returns all registered versions, oldest first.
func Versions() []Version {
	out := make([]Version, len(versionOrder))
	copy(out, versionOrder[:])
	return out
}

// ParseVersion resolves a version tag. An unregistered tag is an error,
// never a silent fallback.
func ParseVersion(s string) (Version, error) {
	if _, ok := versions[Version(s)]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownVersion, s)
	}
	return Version(s), nil
}

// Encode renders an interaction as a callback identifier under the given
// version. It never reads the interaction's argument fields. The only
// failure modes are an unregistered version and an unhandled variant;
// for any well-formed interaction and registered version it is total,
// deterministic, and side-effect free.
//
// Callers may append SectionDelimiter plus their own data to the result.
func Encode(v Version, in interaction.Interaction) (string, error) {
	strat, ok := versions[v]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownVersion, string(v))
	}
	payload, err := strat.encode(in)
	if err != nil {
		return "", err
	}
	return string(v) + SectionDelimiter + payload, nil
}

// Decode parses a callback identifier back into an interaction. The version
// tag before the first SectionDelimiter selects the strategy; anything the
// caller appended after the second SectionDelimiter is ignored (use
// TrailingData to recover it). Argument fields of the result are always nil
// — they travel with the returned event, not the identifier.
func Decode(encoded string) (interaction.Interaction, error) {
	versionTag, payload, found := strings.Cut(encoded, SectionDelimiter)
	if !found {
		return nil, ErrMalformedVersion
	}

	v, err := ParseVersion(versionTag)
	if err != nil {
		return nil, err
	}

	return versions[v].decode(payload)
}

// TrailingData returns the caller-appended data after the second
// SectionDelimiter, if any. Decode discards this section; callers that
// embed their own suffix recover it here.
func TrailingData(encoded string) (string, bool) {
	_, rest, found := strings.Cut(encoded, SectionDelimiter)
	if !found {
		return "", false
	}
	_, trailing, found := strings.Cut(rest, SectionDelimiter)
	return trailing, found
}

// Validate reports whether any routed value of the interaction contains a
// delimiter character. Encode does not call it — the no-delimiter rule is a
// caller constraint — but callers minting identifiers from untrusted names
// can use it as a pre-flight check, since a violating value produces an
// identifier that fails (or mis-parses) on decode.
func Validate(in interaction.Interaction) error {
	values := map[string]string{
		"namespace":   in.GetNamespace(),
		"task_queue":  in.GetTaskQueue(),
		"workflow_id": in.GetWorkflowID(),
	}
	switch v := in.(type) {
	case interaction.ExecuteWorkflow:
		values["workflow_type"] = v.WorkflowType
	case interaction.Signal:
		values["run_id"] = v.RunID
		values["signal_name"] = v.SignalName
	case interaction.Query:
		values["run_id"] = v.RunID
		values["query_type"] = v.QueryType
	}

	for field, value := range values {
		if strings.ContainsAny(value, SectionDelimiter+PairDelimiter+KeyDelimiter) {
			return fmt.Errorf("field %q value %q contains a reserved delimiter (%q %q %q)",
				field, value, SectionDelimiter, PairDelimiter, KeyDelimiter)
		}
	}
	return nil
}
