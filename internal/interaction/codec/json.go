// Copyright (C) 2026 noxasaxon
// SPDX-License-Identifier: AGPL-3.0-or-later

package codec

import (
	"fmt"

	"github.com/noxasaxon/temporal-apig/internal/interaction"
)

// Flattened string-in/string-out helpers. Runtimes that can't share the Go
// types (and the HTTP encode/decode endpoints) treat the codec as a black
// box over JSON-serialized interactions via these two functions.

// EncodeDefaultFromJSON parses a type-tagged interaction JSON object and
// encodes it under the default version.
func EncodeDefaultFromJSON(interactionJSON string) (string, error) {
	in, err := interaction.Unmarshal([]byte(interactionJSON))
	if err != nil {
		return "", err
	}
	return Encode(DefaultVersion(), in)
}

// DecodeToJSON decodes a callback identifier and returns the interaction as
// a type-tagged JSON object.
func DecodeToJSON(encoded string) (string, error) {
	in, err := Decode(encoded)
	if err != nil {
		return "", err
	}
	data, err := interaction.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("unable to serialize decoded interaction: %w", err)
	}
	return string(data), nil
}
