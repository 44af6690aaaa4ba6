package devserver

import (
	"encoding/json"
	"net/http"

	"github.com/codegenhq/codechat/internal/logger"
	"github.com/codegenhq/codechat/models"
)

// loginGoogle accepts the client's Google sign-in payload and issues a local
// access token. The dev server trusts the asserted identity outright; there
// is no upstream verification here.
func (h *Handler) loginGoogle(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.GoogleLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeDetail(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" {
		log.Warn().Msg("login without email")
		writeDetail(w, r, http.StatusBadRequest, "Email is required")
		return
	}

	token, err := h.tokens.issue(req.Email)
	if err != nil {
		log.Err(err).Msg("token creation failed")
		writeDetail(w, r, http.StatusInternalServerError, "Could not create access token")
		return
	}

	log.Info().Str("email", req.Email).Msg("user logged in")

	writeJSON(w, r, http.StatusOK, models.GoogleLoginResponse{
		AccessToken: token,
		User: models.User{
			Email:   req.Email,
			Name:    req.Name,
			Picture: req.Picture,
		},
	})
}
