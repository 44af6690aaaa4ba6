// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Codechat Authors

// Package adapter implements the client's transport to the codechat backend.
//
// The adapter is stateless apart from the bearer token: it issues requests,
// attaches the credential when present, and classifies every failure into one
// of the sentinel errors in errors.go. It never retries; retry policy belongs
// to the caller.
package adapter

import (
	"context"

	"github.com/codegenhq/codechat/models"
)

// ServerAdapter is the client-side view of the backend REST surface.
// Operations map 1:1 to endpoints.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to subsequent requests.
	// An empty token means requests go out unauthenticated.
	SetToken(token string)

	// Token returns the bearer token currently held by the adapter.
	Token() string

	// SetUnauthorizedHandler registers fn to be called when a request
	// fails with HTTP 401. The handler runs at most once per failing
	// call and the request is never retried.
	SetUnauthorizedHandler(fn func())

	// LoginGoogle exchanges an externally obtained Google identity for a
	// backend access token via POST /api/auth/google. On success the
	// returned token is installed into the adapter.
	LoginGoogle(ctx context.Context, req models.GoogleLoginRequest) (models.GoogleLoginResponse, error)

	// ListConversations fetches all conversation summaries via
	// GET /api/chat/conversations, ordered most-recently-updated first.
	ListConversations(ctx context.Context) ([]models.Conversation, error)

	// GetConversation fetches the message history of one conversation via
	// GET /api/chat/conversations/{id}.
	GetConversation(ctx context.Context, id string) ([]models.Message, error)

	// Generate submits a chat message via POST /api/chat/generate and
	// returns the assistant reply. An empty ConversationID in the request
	// asks the server to start a new conversation.
	Generate(ctx context.Context, req models.GenerateRequest) (models.GenerateResponse, error)

	// DeleteConversation removes a conversation server-side via
	// DELETE /api/chat/conversations/{id}.
	DeleteConversation(ctx context.Context, id string) error

	// GenerateCode calls the stateless POST /api/code/generate endpoint.
	GenerateCode(ctx context.Context, req models.CodeRequest) (models.CodeResponse, error)

	// RefactorCode calls the stateless POST /api/code/refactor endpoint.
	RefactorCode(ctx context.Context, req models.CodeRequest) (models.CodeResponse, error)

	// ExplainCode calls the stateless POST /api/code/explain endpoint.
	ExplainCode(ctx context.Context, req models.CodeRequest) (models.CodeResponse, error)
}
