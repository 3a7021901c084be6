// Copyright (C) 2026 noxasaxon
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// APIVersion is the HTTP API version resolved from the URL path. Like the
// codec's encoder versions, an unregistered tag is rejected outright rather
// than falling back.
type APIVersion string

// APIVersionV1 is the only supported API version.
const APIVersionV1 APIVersion = "v1"

// UnsupportedAPIVersionMsg is returned for any unregistered version segment.
const UnsupportedAPIVersionMsg = "unsupported API version, route is invalid"

const apiVersionKey contextKey = "api_version"

// ResolveAPIVersion validates the {version} path segment and stores the
// resolved APIVersion in the request context. Unknown versions get a 404
// before any handler runs.
func ResolveAPIVersion(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch APIVersion(chi.URLParam(r, "version")) {
		case APIVersionV1:
			ctx := context.WithValue(r.Context(), apiVersionKey, APIVersionV1)
			next.ServeHTTP(w, r.WithContext(ctx))
		default:
			http.Error(w, UnsupportedAPIVersionMsg, http.StatusNotFound)
		}
	})
}

// GetAPIVersion retrieves the resolved API version from context.
func GetAPIVersion(ctx context.Context) APIVersion {
	if v, ok := ctx.Value(apiVersionKey).(APIVersion); ok {
		return v
	}
	return ""
}
