// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Codechat Authors

package models

import "time"

// Role identifies the author of a chat message.
type Role string

const (
	// RoleUser marks a message typed by the local user.
	RoleUser Role = "user"

	// RoleAssistant marks a message produced by the code-generation
	// service, or a locally synthesized error placeholder for a failed
	// send.
	RoleAssistant Role = "assistant"
)

// Message is a single entry in a conversation's history.
//
// Messages are immutable once created. Display order within a session is
// always by Sequence, never by network completion order.
type Message struct {
	// Role is the author of the message.
	Role Role `json:"role"`

	// Content is the raw message body. Assistant content may interleave
	// prose with fenced code blocks; rendering splits it via the segment
	// package.
	Content string `json:"content"`

	// Timestamp is when the message was created (locally for user
	// messages, server-reported for assistant messages).
	Timestamp time.Time `json:"timestamp"`

	// Error marks a locally synthesized assistant message describing a
	// failed send. Error messages never have a server-side counterpart.
	Error bool `json:"error,omitempty"`

	// Sequence is a monotonically increasing per-session counter assigned
	// at creation. Values are never reused within a session.
	Sequence int64 `json:"-"`
}
