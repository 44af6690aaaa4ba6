// Package devserver implements a self-contained development server for the
// chat client. It speaks the same REST surface as the production backend but
// keeps everything in memory and answers generate requests with canned
// replies, so the client can be exercised without the real model service.
package devserver

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/codegenhq/codechat/internal/config"
	"github.com/codegenhq/codechat/internal/logger"
)

type Handler struct {
	store  *memoryStore
	tokens *tokenService
	logger *logger.Logger
}

func NewHandler(cfg config.ServerConfig, log *logger.Logger) *Handler {
	log.Info().Msg("devserver handler created")
	return &Handler{
		store:  newMemoryStore(),
		tokens: newTokenService(cfg.TokenSecret, cfg.TokenTTL),
		logger: log,
	}
}

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/google", h.loginGoogle)
	})

	// routes behind bearer auth
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/chat/conversations", h.listConversations)
		r.Get("/api/chat/conversations/{id}", h.getConversation)
		r.Delete("/api/chat/conversations/{id}", h.deleteConversation)
		r.Post("/api/chat/generate", h.generate)

		r.Post("/api/code/generate", h.generateCode)
		r.Post("/api/code/refactor", h.refactorCode)
		r.Post("/api/code/explain", h.explainCode)
	})

	return router
}
