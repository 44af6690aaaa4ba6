package devserver

import (
	"encoding/json"
	"net/http"

	"github.com/codegenhq/codechat/internal/logger"
	"github.com/codegenhq/codechat/models"
)

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromRequest(r).Err(err).Msg("response encoding failed")
	}
}

// writeDetail writes the backend's error shape, {"detail": "..."}.
func writeDetail(w http.ResponseWriter, r *http.Request, status int, detail string) {
	writeJSON(w, r, status, models.ErrorResponse{Detail: detail})
}
