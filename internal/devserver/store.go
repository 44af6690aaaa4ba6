package devserver

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/codegenhq/codechat/models"
)

const titleLimit = 50

var errConversationNotFound = errors.New("conversation not found")

// memoryStore keeps every user's conversations in process memory. State is
// lost on restart, which is the point of a dev server.
type memoryStore struct {
	mu    sync.Mutex
	users map[string]map[string]*conversation
}

type conversation struct {
	id        string
	title     string
	createdAt time.Time
	updatedAt time.Time
	messages  []models.Message
}

func newMemoryStore() *memoryStore {
	return &memoryStore{users: make(map[string]map[string]*conversation)}
}

func (s *memoryStore) userConversations(email string) map[string]*conversation {
	convs, ok := s.users[email]
	if !ok {
		convs = make(map[string]*conversation)
		s.users[email] = convs
	}
	return convs
}

// Append adds a user/assistant exchange, creating the conversation when id is
// empty. It returns the conversation id the exchange landed in.
func (s *memoryStore) Append(email, id string, user, assistant models.Message) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	convs := s.userConversations(email)

	var conv *conversation
	if id == "" {
		conv = &conversation{
			id:        uuid.NewString(),
			title:     makeTitle(user.Content),
			createdAt: user.Timestamp,
		}
		convs[conv.id] = conv
	} else {
		var ok bool
		if conv, ok = convs[id]; !ok {
			return "", errConversationNotFound
		}
	}

	conv.messages = append(conv.messages, user, assistant)
	conv.updatedAt = assistant.Timestamp

	return conv.id, nil
}

// List returns the user's conversation summaries, most recently updated first.
func (s *memoryStore) List(email string) []models.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	convs := s.userConversations(email)
	out := make([]models.Conversation, 0, len(convs))
	for _, c := range convs {
		out = append(out, models.Conversation{
			ID:           c.id,
			Title:        c.title,
			CreatedAt:    c.createdAt,
			UpdatedAt:    c.updatedAt,
			MessageCount: len(c.messages),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}

// History returns the conversation's messages in insertion order.
func (s *memoryStore) History(email, id string) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.userConversations(email)[id]
	if !ok {
		return nil, errConversationNotFound
	}

	out := make([]models.Message, len(conv.messages))
	copy(out, conv.messages)
	return out, nil
}

// Delete removes the conversation and its messages.
func (s *memoryStore) Delete(email, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	convs := s.userConversations(email)
	if _, ok := convs[id]; !ok {
		return errConversationNotFound
	}
	delete(convs, id)
	return nil
}

// makeTitle derives a conversation title from the first message: the first
// 50 runes, with an ellipsis when cut short.
func makeTitle(text string) string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) <= titleLimit {
		return string(runes)
	}
	return string(runes[:titleLimit]) + "..."
}
