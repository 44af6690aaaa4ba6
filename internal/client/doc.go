// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Codechat Authors

// Package client implements the interactive client application runtime.
//
// It wires the terminal UI, the server adapter, the persisted identity, and
// background refresh into a single process lifecycle.
package client
