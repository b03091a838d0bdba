// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"io"

	"github.com/MKhiriev/forkeys/internal/config"
	"github.com/MKhiriev/forkeys/internal/logger"
	"github.com/MKhiriev/forkeys/internal/service"
)

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run executes the command line args and blocks until it is done.
	Run(ctx context.Context, args []string) error
}

// PasswordReader reads a secret without echoing it.
type PasswordReader interface {
	ReadPassword(prompt string) (string, error)
}

// LineReader reads one line of plain input.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// Clipboard receives copied secrets.
type Clipboard interface {
	WriteAll(text string) error
}

// Bootstrap wires the client services for cfg. The returned closer releases
// the vault store.
type Bootstrap func(ctx context.Context, cfg *config.ClientConfig, logger *logger.Logger) (*service.ClientServices, io.Closer, error)
