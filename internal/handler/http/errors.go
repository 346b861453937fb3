// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	// ErrInvalidJSON is returned for request bodies that do not decode into
	// the expected model.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrNoCurrentUser means a handler behind requireUser found no user in
	// the request context; it indicates a routing mistake.
	ErrNoCurrentUser = errors.New("no authenticated user in request context")
)
