package session

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/codegenhq/codechat/internal/adapter"
	"github.com/codegenhq/codechat/internal/logger"
	"github.com/codegenhq/codechat/internal/mock"
	"github.com/codegenhq/codechat/models"
)

func newTestStore(t *testing.T) (*Store, *mock.MockServerAdapter) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockAdapter := mock.NewMockServerAdapter(ctrl)
	return NewStore(mockAdapter, logger.Nop()), mockAdapter
}

func seed(t *testing.T, s *Store, m *mock.MockServerAdapter, list []models.Conversation) {
	t.Helper()
	m.EXPECT().ListConversations(gomock.Any()).Return(list, nil)
	require.NoError(t, s.Refresh(context.Background()))
}

// ── Send ─────────────────────────────────────────────────────────────────────

func TestSend_RejectsEmptyInput(t *testing.T) {
	s, _ := newTestStore(t)

	assert.ErrorIs(t, s.Send(context.Background(), ""), ErrEmptyMessage)
	assert.ErrorIs(t, s.Send(context.Background(), "   \n\t"), ErrEmptyMessage)
	assert.Empty(t, s.Messages())
}

func TestSend_FreshConversation_AdoptsServerID(t *testing.T) {
	s, m := newTestStore(t)
	ts := time.Now().UTC()

	m.EXPECT().
		Generate(gomock.Any(), models.GenerateRequest{Message: "write a fizzbuzz in Go"}).
		Return(models.GenerateResponse{
			Message:        "```go\nfunc FizzBuzz() {}\n```",
			Timestamp:      ts,
			ConversationID: "c-new",
		}, nil)

	require.NoError(t, s.Send(context.Background(), "write a fizzbuzz in Go"))

	assert.Equal(t, "c-new", s.ActiveConversationID())
	assert.False(t, s.SendInFlight())

	msgs := s.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, models.RoleUser, msgs[0].Role)
	assert.Equal(t, models.RoleAssistant, msgs[1].Role)
	assert.Less(t, msgs[0].Sequence, msgs[1].Sequence)

	convs := s.Conversations()
	require.Len(t, convs, 1)
	assert.Equal(t, "c-new", convs[0].ID)
	assert.Equal(t, "write a fizzbuzz in Go", convs[0].Title)
	assert.Equal(t, 2, convs[0].MessageCount)
}

func TestSend_TitleTruncatedAtFiftyRunes(t *testing.T) {
	s, m := newTestStore(t)
	long := "please refactor this very long legacy module so that it compiles again"

	m.EXPECT().
		Generate(gomock.Any(), gomock.Any()).
		Return(models.GenerateResponse{Message: "ok", Timestamp: time.Now(), ConversationID: "c1"}, nil)

	require.NoError(t, s.Send(context.Background(), long))

	convs := s.Conversations()
	require.Len(t, convs, 1)
	assert.Equal(t, string([]rune(long)[:50])+"...", convs[0].Title)
}

func TestSend_SecondCallWhileInFlightRejected(t *testing.T) {
	s, m := newTestStore(t)

	started := make(chan struct{})
	release := make(chan struct{})
	m.EXPECT().
		Generate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, models.GenerateRequest) (models.GenerateResponse, error) {
			close(started)
			<-release
			return models.GenerateResponse{Message: "late", Timestamp: time.Now(), ConversationID: "c1"}, nil
		})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = s.Send(context.Background(), "first")
	}()

	<-started
	err := s.Send(context.Background(), "second")
	assert.ErrorIs(t, err, ErrSendInFlight)

	close(release)
	wg.Wait()

	msgs := s.Messages()
	require.Len(t, msgs, 2, "rejected send must not append a user message")
	assert.Equal(t, "first", msgs[0].Content)
}

func TestSend_FailurePreservesUserMessage(t *testing.T) {
	s, m := newTestStore(t)

	m.EXPECT().
		Generate(gomock.Any(), gomock.Any()).
		Return(models.GenerateResponse{}, fmt.Errorf("generate: %w: connection refused", adapter.ErrUnavailable))

	err := s.Send(context.Background(), "hello?")

	require.Error(t, err)
	assert.False(t, s.SendInFlight())

	msgs := s.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, models.RoleUser, msgs[0].Role)
	assert.Equal(t, "hello?", msgs[0].Content)
	assert.Equal(t, models.RoleAssistant, msgs[1].Role)
	assert.True(t, msgs[1].Error)
	assert.Contains(t, msgs[1].Content, "Unable to reach")
}

func TestSend_UnauthorizedAppendsNoErrorMessage(t *testing.T) {
	s, m := newTestStore(t)

	m.EXPECT().
		Generate(gomock.Any(), gomock.Any()).
		Return(models.GenerateResponse{}, fmt.Errorf("generate: %w", adapter.ErrUnauthorized))

	err := s.Send(context.Background(), "hello?")

	require.ErrorIs(t, err, adapter.ErrUnauthorized)
	assert.False(t, s.SendInFlight())

	msgs := s.Messages()
	require.Len(t, msgs, 1, "401 is handled by the auth cascade, not an inline message")
	assert.Equal(t, models.RoleUser, msgs[0].Role)
}

func TestSend_ExistingConversation_TriggersBackgroundRefresh(t *testing.T) {
	s, m := newTestStore(t)
	seed(t, s, m, []models.Conversation{{ID: "c1", Title: "Build an API"}})

	m.EXPECT().GetConversation(gomock.Any(), "c1").Return(nil, nil)
	require.NoError(t, s.Select(context.Background(), "c1"))

	refreshed := make(chan struct{})
	m.EXPECT().
		Generate(gomock.Any(), models.GenerateRequest{Message: "more", ConversationID: "c1"}).
		Return(models.GenerateResponse{Message: "sure", Timestamp: time.Now(), ConversationID: "c1"}, nil)
	m.EXPECT().
		ListConversations(gomock.Any()).
		DoAndReturn(func(context.Context) ([]models.Conversation, error) {
			defer close(refreshed)
			return []models.Conversation{{ID: "c1", Title: "Build an API", MessageCount: 4}}, nil
		})

	require.NoError(t, s.Send(context.Background(), "more"))

	select {
	case <-refreshed:
	case <-time.After(2 * time.Second):
		t.Fatal("expected a background list refresh after send")
	}

	assert.Eventually(t, func() bool {
		convs := s.Conversations()
		return len(convs) == 1 && convs[0].MessageCount == 4
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSend_StaleResultAfterNewChatDiscarded(t *testing.T) {
	s, m := newTestStore(t)

	started := make(chan struct{})
	release := make(chan struct{})
	m.EXPECT().
		Generate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, models.GenerateRequest) (models.GenerateResponse, error) {
			close(started)
			<-release
			return models.GenerateResponse{Message: "stale", Timestamp: time.Now(), ConversationID: "c-old"}, nil
		})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = s.Send(context.Background(), "about to be abandoned")
	}()

	<-started
	s.NewChat()
	close(release)
	wg.Wait()

	assert.Empty(t, s.Messages(), "a stale send result must not repopulate a reset session")
	assert.Empty(t, s.ActiveConversationID())
	assert.False(t, s.SendInFlight())
}

// ── ordering ─────────────────────────────────────────────────────────────────

func TestMessages_OrderedBySequence(t *testing.T) {
	s, m := newTestStore(t)

	m.EXPECT().
		Generate(gomock.Any(), gomock.Any()).
		Return(models.GenerateResponse{Message: "one", Timestamp: time.Now(), ConversationID: "c1"}, nil)
	require.NoError(t, s.Send(context.Background(), "first"))

	refreshed := make(chan struct{})
	m.EXPECT().
		Generate(gomock.Any(), gomock.Any()).
		Return(models.GenerateResponse{Message: "two", Timestamp: time.Now().Add(-time.Hour), ConversationID: "c1"}, nil)
	m.EXPECT().
		ListConversations(gomock.Any()).
		DoAndReturn(func(context.Context) ([]models.Conversation, error) {
			defer close(refreshed)
			return nil, nil
		})
	require.NoError(t, s.Send(context.Background(), "second"))

	select {
	case <-refreshed:
	case <-time.After(2 * time.Second):
		t.Fatal("expected a background list refresh after send")
	}

	msgs := s.Messages()
	require.Len(t, msgs, 4)
	assert.True(t, sort.SliceIsSorted(msgs, func(i, j int) bool {
		return msgs[i].Sequence < msgs[j].Sequence
	}), "display order is by sequence, not timestamps or completion order")
	assert.Equal(t, "first", msgs[0].Content)
	assert.Equal(t, "one", msgs[1].Content)
	assert.Equal(t, "second", msgs[2].Content)
	assert.Equal(t, "two", msgs[3].Content)
}

// ── Select ───────────────────────────────────────────────────────────────────

func TestSelect_LoadsHistory(t *testing.T) {
	s, m := newTestStore(t)

	m.EXPECT().GetConversation(gomock.Any(), "c1").Return([]models.Message{
		{Role: models.RoleUser, Content: "q"},
		{Role: models.RoleAssistant, Content: "a"},
	}, nil)

	require.NoError(t, s.Select(context.Background(), "c1"))

	assert.Equal(t, "c1", s.ActiveConversationID())
	msgs := s.Messages()
	require.Len(t, msgs, 2)
	assert.Less(t, msgs[0].Sequence, msgs[1].Sequence)
}

func TestSelect_RepeatedWhileFetchInFlightIsNoOp(t *testing.T) {
	s, m := newTestStore(t)

	started := make(chan struct{})
	release := make(chan struct{})
	m.EXPECT().
		GetConversation(gomock.Any(), "c1").
		DoAndReturn(func(context.Context, string) ([]models.Message, error) {
			close(started)
			<-release
			return []models.Message{{Role: models.RoleUser, Content: "q"}}, nil
		})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = s.Select(context.Background(), "c1")
	}()

	<-started
	// Second select of the same id must not start another fetch; gomock
	// would fail on an unexpected extra GetConversation call.
	require.NoError(t, s.Select(context.Background(), "c1"))

	close(release)
	wg.Wait()

	assert.Len(t, s.Messages(), 1)
}

func TestSelect_FetchFailureLeavesMessagesEmpty(t *testing.T) {
	s, m := newTestStore(t)

	m.EXPECT().
		GetConversation(gomock.Any(), "c1").
		Return(nil, fmt.Errorf("get conversation c1: %w", adapter.ErrUnavailable))

	err := s.Select(context.Background(), "c1")

	require.Error(t, err)
	assert.Empty(t, s.Messages())
	assert.Equal(t, "c1", s.ActiveConversationID())
}

func TestNewChat_DiscardsInFlightHistoryFetch(t *testing.T) {
	s, m := newTestStore(t)

	started := make(chan struct{})
	release := make(chan struct{})
	m.EXPECT().
		GetConversation(gomock.Any(), "cX").
		DoAndReturn(func(context.Context, string) ([]models.Message, error) {
			close(started)
			<-release
			return []models.Message{{Role: models.RoleUser, Content: "old history"}}, nil
		})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = s.Select(context.Background(), "cX")
	}()

	<-started
	s.NewChat()
	close(release)
	wg.Wait()

	assert.Empty(t, s.Messages(), "history of a superseded conversation must not appear")
	assert.Empty(t, s.ActiveConversationID())
}

// ── Refresh ──────────────────────────────────────────────────────────────────

func TestRefresh_FailureKeepsCachedList(t *testing.T) {
	s, m := newTestStore(t)
	cached := []models.Conversation{{ID: "c1", Title: "Build an API"}}
	seed(t, s, m, cached)

	m.EXPECT().
		ListConversations(gomock.Any()).
		Return(nil, fmt.Errorf("list conversations: %w", adapter.ErrUnavailable))

	err := s.Refresh(context.Background())

	require.Error(t, err)
	assert.Equal(t, cached, s.Conversations())
}

func TestRefresh_OrdersMostRecentFirst(t *testing.T) {
	s, m := newTestStore(t)
	now := time.Now()

	m.EXPECT().ListConversations(gomock.Any()).Return([]models.Conversation{
		{ID: "old", UpdatedAt: now.Add(-time.Hour)},
		{ID: "new", UpdatedAt: now},
	}, nil)

	require.NoError(t, s.Refresh(context.Background()))

	convs := s.Conversations()
	require.Len(t, convs, 2)
	assert.Equal(t, "new", convs[0].ID)
	assert.Equal(t, "old", convs[1].ID)
}

// ── Delete ───────────────────────────────────────────────────────────────────

func TestDelete_RemovesFromListOnSuccess(t *testing.T) {
	s, m := newTestStore(t)
	seed(t, s, m, []models.Conversation{{ID: "c1"}, {ID: "c2"}})

	m.EXPECT().DeleteConversation(gomock.Any(), "c1").Return(nil)

	require.NoError(t, s.Delete(context.Background(), "c1"))

	convs := s.Conversations()
	require.Len(t, convs, 1)
	assert.Equal(t, "c2", convs[0].ID)
}

func TestDelete_FailureLeavesListUnchanged(t *testing.T) {
	s, m := newTestStore(t)
	cached := []models.Conversation{{ID: "c1"}, {ID: "c2"}}
	seed(t, s, m, cached)

	m.EXPECT().
		DeleteConversation(gomock.Any(), "c1").
		Return(fmt.Errorf("delete conversation c1: %w", adapter.ErrServer))

	err := s.Delete(context.Background(), "c1")

	require.Error(t, err)
	assert.Equal(t, cached, s.Conversations())
}

func TestDelete_ActiveConversationResetsSession(t *testing.T) {
	s, m := newTestStore(t)
	seed(t, s, m, []models.Conversation{{ID: "c1"}})

	m.EXPECT().GetConversation(gomock.Any(), "c1").Return([]models.Message{
		{Role: models.RoleUser, Content: "q"},
	}, nil)
	require.NoError(t, s.Select(context.Background(), "c1"))

	m.EXPECT().DeleteConversation(gomock.Any(), "c1").Return(nil)
	require.NoError(t, s.Delete(context.Background(), "c1"))

	assert.Empty(t, s.ActiveConversationID())
	assert.Empty(t, s.Messages())
	assert.Empty(t, s.Conversations())
}

// ── Filter ───────────────────────────────────────────────────────────────────

func TestFilter_CaseInsensitiveSubstring(t *testing.T) {
	s, m := newTestStore(t)
	seed(t, s, m, []models.Conversation{
		{ID: "c1", Title: "Build an API"},
		{ID: "c2", Title: "Refactor"},
		{ID: "c3", Title: "api docs"},
	})

	got := s.Filter("Api")

	require.Len(t, got, 2)
	assert.Equal(t, "c1", got[0].ID)
	assert.Equal(t, "c3", got[1].ID)
}

func TestFilter_EmptyQueryReturnsAll(t *testing.T) {
	s, m := newTestStore(t)
	seed(t, s, m, []models.Conversation{{ID: "c1"}, {ID: "c2"}})

	assert.Len(t, s.Filter(""), 2)
}

// ── subscriptions ────────────────────────────────────────────────────────────

func TestSubscribe_NotifiedOnStateChange(t *testing.T) {
	s, m := newTestStore(t)

	var notifications int
	s.Subscribe(func() { notifications++ })

	m.EXPECT().
		Generate(gomock.Any(), gomock.Any()).
		Return(models.GenerateResponse{Message: "ok", Timestamp: time.Now(), ConversationID: "c1"}, nil)

	require.NoError(t, s.Send(context.Background(), "hi"))

	// Once for the optimistic append, once for the commit.
	assert.GreaterOrEqual(t, notifications, 2)
}
