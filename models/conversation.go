// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Codechat Authors

package models

import "time"

// Conversation is a sidebar summary of one server-side chat thread.
//
// Identity is the ID; all other fields are display metadata. Title is derived
// by the server from the truncated first user message and is never mutated by
// the client.
type Conversation struct {
	// ID is the opaque server-assigned conversation identifier.
	ID string `json:"id"`

	// Title is the human-readable conversation name.
	Title string `json:"title"`

	// CreatedAt is when the conversation was created on the server.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the conversation last received a message.
	// Conversation lists are ordered by this field, newest first.
	UpdatedAt time.Time `json:"updated_at"`

	// MessageCount is the number of stored messages. It is authoritative
	// only immediately after a fresh list fetch; the client does not
	// increment it on optimistic sends.
	MessageCount int `json:"message_count"`
}
