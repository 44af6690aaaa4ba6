// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Codechat Authors

// Package identity persists the client's authentication record (the backend
// access token plus the signed-in user profile) in a local SQLite database.
//
// Exactly one record exists. It is read once at startup and mutated only by
// the login, logout, and 401 paths.
package identity

import (
	"context"

	"github.com/codegenhq/codechat/models"
)

// Store is the lifecycle of the persisted identity record.
type Store interface {
	// Load reads the persisted record. The second return is false when no
	// usable record exists: absent, malformed, or holding an expired
	// token. Malformed and expired records are deleted, not reported as
	// errors.
	Load(ctx context.Context) (models.Identity, bool, error)

	// Save overwrites the record atomically.
	Save(ctx context.Context, id models.Identity) error

	// Clear removes the record. Clearing an absent record is a no-op.
	Clear(ctx context.Context) error

	// Close releases the underlying database handle.
	Close() error
}
