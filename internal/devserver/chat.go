package devserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/codegenhq/codechat/internal/logger"
	"github.com/codegenhq/codechat/models"
)

func (h *Handler) listConversations(w http.ResponseWriter, r *http.Request) {
	email := userEmail(r.Context())

	writeJSON(w, r, http.StatusOK, models.ConversationsResponse{
		Conversations: h.store.List(email),
	})
}

func (h *Handler) getConversation(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	email := userEmail(r.Context())
	id := chi.URLParam(r, "id")

	history, err := h.store.History(email, id)
	if err != nil {
		if errors.Is(err, errConversationNotFound) {
			writeDetail(w, r, http.StatusNotFound, "Conversation not found")
			return
		}
		log.Err(err).Str("conversation", id).Msg("history lookup failed")
		writeDetail(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, models.HistoryResponse{Messages: history})
}

func (h *Handler) deleteConversation(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	email := userEmail(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.store.Delete(email, id); err != nil {
		if errors.Is(err, errConversationNotFound) {
			writeDetail(w, r, http.StatusNotFound, "Conversation not found")
			return
		}
		log.Err(err).Str("conversation", id).Msg("delete failed")
		writeDetail(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	email := userEmail(r.Context())

	var req models.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeDetail(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeDetail(w, r, http.StatusBadRequest, "Message is required")
		return
	}

	now := time.Now().UTC()
	userMsg := models.Message{
		Role:      models.RoleUser,
		Content:   req.Message,
		Timestamp: now,
	}
	assistantMsg := models.Message{
		Role:      models.RoleAssistant,
		Content:   cannedReply(req.Message),
		Timestamp: now,
	}

	convID, err := h.store.Append(email, req.ConversationID, userMsg, assistantMsg)
	if err != nil {
		if errors.Is(err, errConversationNotFound) {
			writeDetail(w, r, http.StatusNotFound, "Conversation not found")
			return
		}
		log.Err(err).Msg("append failed")
		writeDetail(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, models.GenerateResponse{
		Message:        assistantMsg.Content,
		Timestamp:      assistantMsg.Timestamp,
		ConversationID: convID,
	})
}

// cannedReply produces a deterministic assistant message with a fenced code
// block so the client's rendering and copy paths have something to chew on.
func cannedReply(prompt string) string {
	return fmt.Sprintf(
		"Here is a starting point for %q:\n\n```go\npackage main\n\nimport \"fmt\"\n\nfunc main() {\n\tfmt.Println(\"generated for: %s\")\n}\n```\nAdjust it to your needs.",
		makeTitle(prompt), makeTitle(prompt),
	)
}
