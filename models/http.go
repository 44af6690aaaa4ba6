// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Codechat Authors

package models

import "time"

// GoogleLoginRequest is the body of POST /api/auth/google. The token is the
// identity assertion obtained from the OAuth provider outside this client.
type GoogleLoginRequest struct {
	Token   string `json:"token"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
}

// GoogleLoginResponse is the backend's answer to a Google sign-in: an issued
// access token plus the resolved user profile.
type GoogleLoginResponse struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

// ConversationsResponse is the body of GET /api/chat/conversations.
type ConversationsResponse struct {
	Conversations []Conversation `json:"conversations"`
}

// HistoryResponse is the body of GET /api/chat/conversations/{id}.
type HistoryResponse struct {
	Messages []Message `json:"messages"`
}

// GenerateRequest is the body of POST /api/chat/generate. ConversationID is
// empty when the exchange starts a fresh, not-yet-saved conversation.
type GenerateRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// GenerateResponse is the backend's answer to a generate call. For a fresh
// conversation ConversationID carries the newly assigned id the client must
// adopt.
type GenerateResponse struct {
	Message        string    `json:"message"`
	Timestamp      time.Time `json:"timestamp"`
	ConversationID string    `json:"conversation_id"`
}

// CodeRequest is the body of the stateless code endpoints
// (POST /api/code/generate, /refactor, /explain). Fields are used selectively
// per endpoint.
type CodeRequest struct {
	Prompt       string `json:"prompt,omitempty"`
	Language     string `json:"language,omitempty"`
	Code         string `json:"code,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

// CodeResponse is the body returned by the stateless code endpoints.
type CodeResponse struct {
	Code        string `json:"code,omitempty"`
	Explanation string `json:"explanation,omitempty"`
	Language    string `json:"language,omitempty"`
}

// ErrorResponse is the backend's error body shape: a single human-readable
// detail string.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
