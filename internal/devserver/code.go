package devserver

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/codegenhq/codechat/internal/logger"
	"github.com/codegenhq/codechat/models"
)

// The code endpoints return canned results shaped like the real backend's,
// keyed off the request so responses are at least distinguishable.

func (h *Handler) generateCode(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCodeRequest(w, r)
	if !ok {
		return
	}
	if req.Prompt == "" {
		writeDetail(w, r, http.StatusBadRequest, "Prompt is required")
		return
	}

	lang := req.Language
	if lang == "" {
		lang = "go"
	}

	writeJSON(w, r, http.StatusOK, models.CodeResponse{
		Code:        fmt.Sprintf("// generated for: %s\n", makeTitle(req.Prompt)),
		Explanation: "Generated a stub from the prompt.",
		Language:    lang,
	})
}

func (h *Handler) refactorCode(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCodeRequest(w, r)
	if !ok {
		return
	}
	if req.Code == "" {
		writeDetail(w, r, http.StatusBadRequest, "Code is required")
		return
	}

	writeJSON(w, r, http.StatusOK, models.CodeResponse{
		Code:        req.Code,
		Explanation: "No changes suggested: " + makeTitle(req.Instructions),
		Language:    req.Language,
	})
}

func (h *Handler) explainCode(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCodeRequest(w, r)
	if !ok {
		return
	}
	if req.Code == "" {
		writeDetail(w, r, http.StatusBadRequest, "Code is required")
		return
	}

	writeJSON(w, r, http.StatusOK, models.CodeResponse{
		Code:        req.Code,
		Explanation: fmt.Sprintf("This snippet is %d bytes of %s.", len(req.Code), req.Language),
		Language:    req.Language,
	})
}

func (h *Handler) decodeCodeRequest(w http.ResponseWriter, r *http.Request) (models.CodeRequest, bool) {
	var req models.CodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.FromRequest(r).Err(err).Msg("invalid JSON was passed")
		writeDetail(w, r, http.StatusBadRequest, "Invalid request body")
		return models.CodeRequest{}, false
	}
	return req, true
}
