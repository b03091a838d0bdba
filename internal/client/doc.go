// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the forkeys command-line client.
//
// Every invocation is one cobra command. Commands that read or change
// records unlock the vault with the master password first; it is taken
// from FORKEYS_PASSWORD when set and prompted for otherwise. The vault is
// locked again when the process exits.
package client
