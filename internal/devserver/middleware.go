package devserver

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/codegenhq/codechat/internal/logger"
)

const traceIDHeader = "X-Trace-ID"

type ctxKey int

const userEmailCtxKey ctxKey = iota

// userEmail returns the authenticated user's email stored by the auth
// middleware, or an empty string on unauthenticated routes.
func userEmail(ctx context.Context) string {
	email, _ := ctx.Value(userEmailCtxKey).(string)
	return email
}

func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		traceID := r.Header.Get(traceIDHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}

		l := h.logger.GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("trace_id", traceID)
		})
		r = r.WithContext(l.WithContext(ctx))

		w.Header().Set(traceIDHeader, traceID)
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		start := time.Now()
		uri := r.RequestURI
		method := r.Method

		lw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(lw, r)

		log.Info().
			Str("uri", uri).
			Str("method", method).
			Int("status", lw.status).
			Dur("duration", time.Since(start)).
			Send()
	})
}

// auth enforces bearer authentication: it extracts the token from the
// Authorization header, validates it, and stores the subject email in the
// request context for downstream handlers.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Warn().Msg("authorization header is empty")
			writeDetail(w, r, http.StatusUnauthorized, "Not authenticated")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			log.Warn().Msg("malformed authorization header")
			writeDetail(w, r, http.StatusUnauthorized, "Invalid authentication credentials")
			return
		}

		email, err := h.tokens.parse(parts[1])
		if err != nil {
			log.Warn().Err(err).Msg("token rejected")
			writeDetail(w, r, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), userEmailCtxKey, email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}
