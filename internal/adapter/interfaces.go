// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client side of the registry server used by
// the e-mail recovery tier.
//
// The primary abstraction is [RecoveryAdapter], which decouples the recovery
// service from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPRecoveryAdapter]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrNotFound] for 404).
package adapter

import (
	"context"

	"github.com/MKhiriev/forkeys/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/recovery_adapter_mock.go -package=mock

// RecoveryAdapter defines transport-agnostic communication with the registry
// server. The channel is not assumed to be confidential.
type RecoveryAdapter interface {
	// Register stores e-mail, question and answer on the server so that they
	// can be mailed back later. Returns an error if the request fails or the
	// server responds with a non-2xx status.
	Register(ctx context.Context, req models.RegisterRequest) error

	// RequestRecoveryEmail asks the server to mail the registered question
	// and answer to req.Email. Returns a wrapped [ErrNotFound] when the
	// e-mail is not registered.
	RequestRecoveryEmail(ctx context.Context, req models.RecoveryEmailRequest) error
}
