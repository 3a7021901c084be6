// Copyright (C) 2026 noxasaxon
// SPDX-License-Identifier: AGPL-3.0-or-later

package codec

import (
	"errors"
	"fmt"
)

// Decode failures are deterministic parse errors: they mean the identifier
// is corrupted, foreign, or from an unregistered version. None are
// retryable. The HTTP layer maps all of them to client-error responses.
var (
	// ErrMalformedVersion means the identifier has no section delimiter, so
	// no version tag could be read.
	ErrMalformedVersion = errors.New("malformed identifier: no version section (want version~key:value,...~user_data)")

	// ErrUnknownVersion means the version tag is not in the registry. Decode
	// never falls back to another version.
	ErrUnknownVersion = errors.New("unknown encoder version")

	// ErrMalformedPair means a token between pair delimiters has no
	// key/value delimiter.
	ErrMalformedPair = errors.New("malformed key:value pair")

	// ErrUnknownKey means a field code is not in the version's registry.
	ErrUnknownKey = errors.New("unknown field code")

	// ErrMissingEventKind means the identifier carries no event-kind pair.
	ErrMissingEventKind = errors.New("event kind not supplied in identifier")

	// ErrUnknownEventKind means the event-kind value names no known variant.
	ErrUnknownEventKind = errors.New("unknown event kind")

	// ErrMissingRequiredField is the errors.Is target for MissingFieldError.
	ErrMissingRequiredField = errors.New("required field not supplied in identifier")
)

// MissingFieldError reports a required field absent from a decoded
// identifier, by semantic name ("namespace", "signal_name", ...).
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("required field %q not supplied in identifier", e.Field)
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingRequiredField
}
