// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks account input before it reaches storage.
// Failures are [*FieldError] values that unwrap to the sentinels in
// errors.go.
package validators

import "context"

// Validator validates a value, optionally restricted to named fields.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
