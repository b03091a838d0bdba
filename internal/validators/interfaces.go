// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks the shape of vault records, backup envelopes and
// registry requests before the services act on them.
//
// A Validator receives the value and, optionally, the names of the fields to
// check (FieldTitle, FieldEmail, ...). With no names every field is checked.
// Rules that need vault state, such as password verification, live in the
// services.
package validators

import "context"

// Validator reports the first shape violation in obj as one of the package
// sentinels, or ErrUnsupportedType for a type it does not know.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
