// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Codechat Authors

// Package session owns the client's conversational state: the cached
// conversation list, the active conversation's message history, and the
// optimistic-send state machine.
//
// The store is the single writer of that state. Operations lock around state
// transitions but never around network I/O; an async completion re-enters
// under the lock and is discarded when the session epoch it captured has been
// superseded by a NewChat or Select in the meantime.
package session

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/codegenhq/codechat/internal/adapter"
	"github.com/codegenhq/codechat/internal/logger"
	"github.com/codegenhq/codechat/models"
)

// titleLimit is how many runes of the first user message become the
// synthesized conversation title.
const titleLimit = 50

// Store holds one client's session state.
type Store struct {
	adapter adapter.ServerAdapter
	logger  *logger.Logger

	mu            sync.Mutex
	conversations []models.Conversation
	activeID      string
	messages      []models.Message
	sendInFlight  bool
	fetchingID    string
	epoch         uint64
	nextSeq       int64

	subscribers []func()
}

// NewStore constructs an empty session bound to the given adapter.
func NewStore(serverAdapter adapter.ServerAdapter, log *logger.Logger) *Store {
	return &Store{adapter: serverAdapter, logger: log}
}

// Subscribe registers fn to run after every state change. Notifications are
// delivered outside the store's lock, in registration order.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *Store) notify() {
	s.mu.Lock()
	subs := make([]func(), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

// Conversations returns a copy of the cached conversation summaries, ordered
// most-recently-updated first.
func (s *Store) Conversations() []models.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Conversation, len(s.conversations))
	copy(out, s.conversations)
	return out
}

// Messages returns a copy of the active session's history, ordered by
// sequence ascending.
func (s *Store) Messages() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// ActiveConversationID returns the server id of the active conversation, or
// an empty string for a new, unsaved conversation.
func (s *Store) ActiveConversationID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID
}

// SendInFlight reports whether a send is outstanding.
func (s *Store) SendInFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sendInFlight
}

// Refresh fetches the conversation list. On failure the previously cached
// list is kept unchanged and the error is returned as a non-fatal status for
// the caller to surface (or ignore, for background refreshes).
func (s *Store) Refresh(ctx context.Context) error {
	list, err := s.adapter.ListConversations(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("conversation list refresh failed, keeping cache")
		return err
	}

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].UpdatedAt.After(list[j].UpdatedAt)
	})

	s.mu.Lock()
	s.conversations = list
	s.mu.Unlock()
	s.notify()

	return nil
}

// Select makes id the active conversation, clears the visible history, and
// fetches the stored messages. Selecting an id whose history fetch is
// already in flight is a no-op. A result arriving after the session has
// moved on (NewChat or another Select) is discarded.
func (s *Store) Select(ctx context.Context, id string) error {
	s.mu.Lock()
	if s.fetchingID == id {
		s.mu.Unlock()
		return nil
	}
	s.epoch++
	epoch := s.epoch
	s.activeID = id
	s.messages = nil
	s.sendInFlight = false
	s.fetchingID = id
	s.mu.Unlock()
	s.notify()

	history, err := s.adapter.GetConversation(ctx, id)

	s.mu.Lock()
	if s.epoch != epoch {
		// Superseded session: the current owner of the state keeps its
		// own guards, nothing to touch here.
		s.mu.Unlock()
		return nil
	}
	s.fetchingID = ""
	if err != nil {
		s.mu.Unlock()
		s.notify()
		return err
	}

	for i := range history {
		s.nextSeq++
		history[i].Sequence = s.nextSeq
	}
	s.messages = history
	s.mu.Unlock()
	s.notify()

	return nil
}

// Send runs the optimistic send machine:
//
//  1. reject empty input or a second in-flight send, before any I/O;
//  2. append the user message and mark the send in flight;
//  3. issue the generate call;
//  4. on success append the assistant reply, adopting the server-assigned
//     conversation id (with a synthesized sidebar summary) when this was a
//     fresh conversation, otherwise refreshing the list in the background;
//  5. on failure append one error-flagged assistant message; the user's
//     message is never rolled back.
//
// A completion for a superseded session is discarded wholesale.
func (s *Store) Send(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyMessage
	}

	s.mu.Lock()
	if s.sendInFlight {
		s.mu.Unlock()
		return ErrSendInFlight
	}
	s.sendInFlight = true
	epoch := s.epoch
	convID := s.activeID
	s.nextSeq++
	s.messages = append(s.messages, models.Message{
		Role:      models.RoleUser,
		Content:   text,
		Timestamp: time.Now().UTC(),
		Sequence:  s.nextSeq,
	})
	s.mu.Unlock()
	s.notify()

	resp, err := s.adapter.Generate(ctx, models.GenerateRequest{
		Message:        text,
		ConversationID: convID,
	})

	s.mu.Lock()
	if s.epoch != epoch {
		s.mu.Unlock()
		s.logger.Debug().Str("conversation", convID).Msg("discarding stale send result")
		return nil
	}
	s.sendInFlight = false

	if err != nil {
		if !errors.Is(err, adapter.ErrUnauthorized) {
			s.nextSeq++
			s.messages = append(s.messages, models.Message{
				Role:      models.RoleAssistant,
				Content:   failureText(err),
				Timestamp: time.Now().UTC(),
				Error:     true,
				Sequence:  s.nextSeq,
			})
		}
		s.mu.Unlock()
		s.notify()
		return err
	}

	s.nextSeq++
	s.messages = append(s.messages, models.Message{
		Role:      models.RoleAssistant,
		Content:   resp.Message,
		Timestamp: resp.Timestamp,
		Sequence:  s.nextSeq,
	})

	if convID == "" && resp.ConversationID != "" {
		// First exchange of a fresh conversation: adopt the server id
		// and synthesize a sidebar summary instead of waiting for a
		// re-list. MessageCount 2 holds until the next list fetch.
		s.activeID = resp.ConversationID
		summary := models.Conversation{
			ID:           resp.ConversationID,
			Title:        truncateTitle(text),
			CreatedAt:    resp.Timestamp,
			UpdatedAt:    resp.Timestamp,
			MessageCount: 2,
		}
		s.conversations = append([]models.Conversation{summary}, s.conversations...)
	} else {
		go func() { _ = s.Refresh(context.Background()) }()
	}

	s.mu.Unlock()
	s.notify()
	return nil
}

// NewChat unconditionally resets the session to a fresh, unsaved
// conversation, even with a send or history fetch still in flight; those
// results are discarded when they land.
func (s *Store) NewChat() {
	s.mu.Lock()
	s.epoch++
	s.activeID = ""
	s.messages = nil
	s.sendInFlight = false
	s.fetchingID = ""
	s.mu.Unlock()
	s.notify()
}

// Delete removes a conversation server-side and, only on success, from the
// local list. Deleting the active conversation resets the session first.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.adapter.DeleteConversation(ctx, id); err != nil {
		return err
	}

	if s.ActiveConversationID() == id {
		s.NewChat()
	}

	s.mu.Lock()
	kept := s.conversations[:0]
	for _, c := range s.conversations {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	s.conversations = kept
	s.mu.Unlock()
	s.notify()

	return nil
}

// Filter returns the cached conversations whose title contains query,
// case-insensitively, preserving relative order. Pure; no I/O.
func (s *Store) Filter(query string) []models.Conversation {
	q := strings.ToLower(query)

	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Conversation
	for _, c := range s.conversations {
		if strings.Contains(strings.ToLower(c.Title), q) {
			out = append(out, c)
		}
	}
	return out
}

// truncateTitle derives a sidebar title from the first user message: the
// first 50 runes, with an ellipsis when cut short.
func truncateTitle(text string) string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) <= titleLimit {
		return string(runes)
	}
	return string(runes[:titleLimit]) + "..."
}

// failureText builds the inline diagnostic shown as an error-flagged
// assistant message for a failed send.
func failureText(err error) string {
	var apiErr *adapter.APIError

	switch {
	case errors.Is(err, adapter.ErrUnavailable):
		return "Unable to reach the code generation service. Check your connection and try again."
	case errors.As(err, &apiErr):
		return "Sorry, the request failed: " + apiErr.Detail
	default:
		return "Sorry, I encountered an error processing your request. Please try again."
	}
}
