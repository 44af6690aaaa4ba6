package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codegenhq/codechat/internal/config"
	"github.com/codegenhq/codechat/internal/logger"
	"github.com/codegenhq/codechat/models"
)

// newTestAdapter builds an httpServerAdapter pointed at the test server.
func newTestAdapter(t *testing.T, serverURL string) *httpServerAdapter {
	t.Helper()
	cfg := config.ClientAdapter{BaseURL: serverURL, RequestTimeout: 5 * time.Second}

	a, err := NewHTTPServerAdapter(cfg, logger.Nop())
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

// ── base URL handling ────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "empty falls back to default", raw: "", want: "http://localhost:8000"},
		{name: "scheme added", raw: "localhost:9000", want: "http://localhost:9000"},
		{name: "trailing slash trimmed", raw: "http://api.test/", want: "http://api.test"},
		{name: "garbage rejected", raw: "://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// ── LoginGoogle ──────────────────────────────────────────────────────────────

func TestLoginGoogle_Success_InstallsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/google", r.URL.Path)

		var req models.GoogleLoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice@example.test", req.Email)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.GoogleLoginResponse{
			AccessToken: "issued-token",
			User:        models.User{Email: req.Email, Name: req.Name},
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.LoginGoogle(context.Background(), models.GoogleLoginRequest{
		Token: "google-assertion",
		Email: "alice@example.test",
		Name:  "Alice",
	})

	require.NoError(t, err)
	assert.Equal(t, "issued-token", got.AccessToken)
	assert.Equal(t, "issued-token", a.Token())
}

// ── ListConversations ────────────────────────────────────────────────────────

func TestListConversations_Success_AttachesBearer(t *testing.T) {
	want := []models.Conversation{
		{ID: "c1", Title: "Build an API", MessageCount: 4},
		{ID: "c2", Title: "Refactor", MessageCount: 2},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/chat/conversations", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.ConversationsResponse{Conversations: want})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("tok-123")

	got, err := a.ListConversations(context.Background())

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestListConversations_NoTokenNoHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.ConversationsResponse{})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.ListConversations(context.Background())
	require.NoError(t, err)
}

// ── GetConversation ──────────────────────────────────────────────────────────

func TestGetConversation_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat/conversations/c42", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.HistoryResponse{Messages: []models.Message{
			{Role: models.RoleUser, Content: "hi"},
			{Role: models.RoleAssistant, Content: "hello"},
		}})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.GetConversation(context.Background(), "c42")

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, models.RoleAssistant, got[1].Role)
}

func TestGetConversation_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(models.ErrorResponse{Detail: "Conversation not found"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.GetConversation(context.Background(), "missing")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "Conversation not found")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Conversation not found", apiErr.Detail)
}

// ── Generate ─────────────────────────────────────────────────────────────────

func TestGenerate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat/generate", r.URL.Path)

		var req models.GenerateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "write a loop", req.Message)
		assert.Empty(t, req.ConversationID)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.GenerateResponse{
			Message:        "```go\nfor {}\n```",
			Timestamp:      time.Now().UTC(),
			ConversationID: "c-new",
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.Generate(context.Background(), models.GenerateRequest{Message: "write a loop"})

	require.NoError(t, err)
	assert.Equal(t, "c-new", got.ConversationID)
	assert.Contains(t, got.Message, "for {}")
}

func TestGenerate_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(models.ErrorResponse{Detail: "Model service not available"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Generate(context.Background(), models.GenerateRequest{Message: "x"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrServer)
	assert.Contains(t, err.Error(), "Model service not available")
}

func TestGenerate_ServerDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	a := newTestAdapter(t, srv.URL)
	_, err := a.Generate(context.Background(), models.GenerateRequest{Message: "x"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

// ── DeleteConversation ───────────────────────────────────────────────────────

func TestDeleteConversation_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/chat/conversations/c7", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("{}"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	assert.NoError(t, a.DeleteConversation(context.Background(), "c7"))
}

// ── unauthorized cascade ─────────────────────────────────────────────────────

func TestUnauthorized_FiresHandlerOnce_NoRetry(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(models.ErrorResponse{Detail: "Invalid token"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("expired")

	var fired int
	a.SetUnauthorizedHandler(func() { fired++ })

	_, err := a.ListConversations(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, 1, fired, "handler must fire exactly once")
	assert.Equal(t, 1, requests, "401 must not be retried")
}

// ── code endpoints ───────────────────────────────────────────────────────────

func TestCodeEndpoints_Paths(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.CodeResponse{Code: "ok"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	ctx := context.Background()

	_, err := a.GenerateCode(ctx, models.CodeRequest{Prompt: "p", Language: "go"})
	require.NoError(t, err)
	assert.Equal(t, "/api/code/generate", gotPath)

	_, err = a.RefactorCode(ctx, models.CodeRequest{Code: "c", Instructions: "i"})
	require.NoError(t, err)
	assert.Equal(t, "/api/code/refactor", gotPath)

	_, err = a.ExplainCode(ctx, models.CodeRequest{Code: "c"})
	require.NoError(t, err)
	assert.Equal(t, "/api/code/explain", gotPath)
}
