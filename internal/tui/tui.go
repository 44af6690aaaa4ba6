// Package tui implements the terminal user interface of the chat client:
// a sign-in screen and the main chat loop with the conversation sidebar.
package tui

import (
	"context"
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/codegenhq/codechat/internal/adapter"
	"github.com/codegenhq/codechat/internal/identity"
	"github.com/codegenhq/codechat/internal/logger"
	"github.com/codegenhq/codechat/internal/session"
	"github.com/codegenhq/codechat/models"
)

var ErrUserQuit = errors.New("user quit")

type TUI struct {
	adapter  adapter.ServerAdapter
	identity identity.Store
	store    *session.Store
	logger   *logger.Logger

	mu      sync.Mutex
	program *tea.Program
}

func New(serverAdapter adapter.ServerAdapter, identityStore identity.Store, store *session.Store, log *logger.Logger) *TUI {
	t := &TUI{
		adapter:  serverAdapter,
		identity: identityStore,
		store:    store,
		logger:   log,
	}

	// Repaint on any session change, including background refreshes.
	store.Subscribe(func() { t.send(storeChangedMsg{}) })

	return t
}

// LoginFlow runs the sign-in screen and returns the issued identity.
// Returns ErrUserQuit when the user bails out.
func (t *TUI) LoginFlow(ctx context.Context) (models.Identity, error) {
	model := newLoginModel(ctx, t.adapter, t.identity)

	finalModel, err := t.run(tea.NewProgram(model, tea.WithAltScreen()))
	if err != nil {
		return models.Identity{}, err
	}

	result, ok := finalModel.(loginModel)
	if !ok {
		return models.Identity{}, tea.ErrProgramKilled
	}
	if result.quitByUser || !result.done {
		return models.Identity{}, ErrUserQuit
	}
	return result.result, nil
}

// ChatLoop runs the main chat screen until the user quits or logs out.
// The second return reports whether the session expired server-side, in
// which case the caller should clear the stored identity and re-login.
func (t *TUI) ChatLoop(ctx context.Context) (logout, expired bool, err error) {
	model := newChatModel(ctx, t.adapter, t.store)

	finalModel, runErr := t.run(tea.NewProgram(model, tea.WithAltScreen()))
	if runErr != nil {
		return false, false, runErr
	}

	result, ok := finalModel.(chatModel)
	if !ok {
		return false, false, tea.ErrProgramKilled
	}
	return result.logout, result.expired, nil
}

// SessionExpired pushes the expiry signal into whichever screen is active.
func (t *TUI) SessionExpired() {
	t.send(sessionExpiredMsg{})
}

func (t *TUI) run(p *tea.Program) (tea.Model, error) {
	t.mu.Lock()
	t.program = p
	t.mu.Unlock()

	finalModel, err := p.Run()

	t.mu.Lock()
	t.program = nil
	t.mu.Unlock()

	return finalModel, err
}

func (t *TUI) send(msg tea.Msg) {
	t.mu.Lock()
	p := t.program
	t.mu.Unlock()

	if p != nil {
		p.Send(msg)
	}
}
