package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/codegenhq/codechat/internal/adapter"
	"github.com/codegenhq/codechat/internal/config"
	"github.com/codegenhq/codechat/internal/identity"
	"github.com/codegenhq/codechat/internal/logger"
	"github.com/codegenhq/codechat/internal/session"
	"github.com/codegenhq/codechat/internal/tui"
	"github.com/codegenhq/codechat/internal/workers"
)

type App struct {
	adapter    adapter.ServerAdapter
	identity   identity.Store
	store      *session.Store
	ui         *tui.TUI
	workersCfg config.ClientWorkers
	logger     *logger.Logger
}

func NewApp(
	serverAdapter adapter.ServerAdapter,
	identityStore identity.Store,
	store *session.Store,
	ui *tui.TUI,
	workersCfg config.ClientWorkers,
	log *logger.Logger,
) (*App, error) {
	app := &App{
		adapter:    serverAdapter,
		identity:   identityStore,
		store:      store,
		ui:         ui,
		workersCfg: workersCfg,
		logger:     log,
	}

	// A rejected token anywhere in the client tears the session down: the
	// persisted identity is dropped and the active screen is told to bail
	// out to the sign-in flow.
	serverAdapter.SetUnauthorizedHandler(func() {
		log.Warn().Msg("server rejected the access token, clearing identity")
		if err := identityStore.Clear(context.Background()); err != nil {
			log.Err(err).Msg("clearing identity failed")
		}
		serverAdapter.SetToken("")
		ui.SessionExpired()
	})

	return app, nil
}

// Run drives the sign-in and chat loops until the user quits for good.
func (a *App) Run() error {
	ctx := context.Background()

	id, ok, err := a.identity.Load(ctx)
	if err != nil {
		return fmt.Errorf("load identity: %w", err)
	}

	if ok {
		a.adapter.SetToken(id.Token)
		a.logger.Info().Str("email", id.User.Email).Msg("restored persisted session")
	} else {
		id, err = a.ui.LoginFlow(ctx)
		if err != nil {
			if errors.Is(err, tui.ErrUserQuit) {
				return nil
			}
			return fmt.Errorf("login flow: %w", err)
		}
		a.logger.Info().Str("email", id.User.Email).Msg("signed in")
	}

	// Workers are built per loop iteration: a stopped worker cannot be
	// restarted after logout.
	w := workers.NewWorkers(
		workers.NewRefreshWorker(a.store, a.workersCfg.RefreshInterval, a.logger),
	)
	w.Run()

	logout, expired, err := a.ui.ChatLoop(ctx)
	w.Stop()
	if err != nil {
		return fmt.Errorf("chat loop: %w", err)
	}

	if logout {
		if !expired {
			if clearErr := a.identity.Clear(ctx); clearErr != nil {
				a.logger.Err(clearErr).Msg("clearing identity on logout failed")
			}
			a.adapter.SetToken("")
		}
		a.store.NewChat()
		return a.Run()
	}

	return nil
}
