// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Codechat Authors

package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/codegenhq/codechat/internal/adapter"
	"github.com/codegenhq/codechat/internal/identity"
	"github.com/codegenhq/codechat/models"
)

// loginModel is the Bubble Tea model for the sign-in screen. It renders two
// text inputs (email and display name) and dispatches an async login command
// on form submission. On success the issued identity is persisted and the
// program quits so the chat loop can start.
type loginModel struct {
	ctx      context.Context
	adapter  adapter.ServerAdapter
	identity identity.Store

	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string

	result     models.Identity
	done       bool
	quitByUser bool
}

func newLoginModel(ctx context.Context, serverAdapter adapter.ServerAdapter, store identity.Store) loginModel {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 254
	email.Width = 40
	email.Focus()

	name := textinput.New()
	name.Placeholder = "display name"
	name.CharLimit = 60
	name.Width = 40

	return loginModel{
		ctx:      ctx,
		adapter:  serverAdapter,
		identity: store,
		inputs:   []textinput.Model{email, name},
	}
}

func (m loginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m loginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(loginResultMsg); ok {
		m.submitting = false
		if result.err != nil {
			m.errMsg = humanizeLoginError(result.err)
			return m, nil
		}
		m.result = result.identity
		m.done = true
		return m, tea.Quit
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "ctrl+c", "esc":
			m.quitByUser = true
			return m, tea.Quit
		case "tab":
			m.focusNext()
			return m, nil
		case "shift+tab":
			m.focusPrev()
			return m, nil
		case "enter":
			if m.submitting {
				return m, nil
			}

			email := strings.TrimSpace(m.inputs[0].Value())
			name := strings.TrimSpace(m.inputs[1].Value())
			if email == "" {
				m.errMsg = "Email is required"
				return m, nil
			}

			m.errMsg = ""
			m.submitting = true
			return m, m.cmdLogin(email, name)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m loginModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("codechat"))
	b.WriteString("\n\nSign in to the code generation service\n\n")
	b.WriteString("Email │ [")
	b.WriteString(m.inputs[0].View())
	b.WriteString("]\n")
	b.WriteString("Name  │ [")
	b.WriteString(m.inputs[1].View())
	b.WriteString("]\n")

	if m.submitting {
		b.WriteString("\n[Signing in...]\n")
	} else {
		b.WriteString("\n[Sign in]\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: sign in │ tab: next field │ esc: quit"))
	return b.String()
}

func (m loginModel) cmdLogin(email, name string) tea.Cmd {
	ctx := m.ctx
	serverAdapter := m.adapter
	store := m.identity

	return func() tea.Msg {
		resp, err := serverAdapter.LoginGoogle(ctx, models.GoogleLoginRequest{
			Token: "dev-sign-in",
			Email: email,
			Name:  name,
		})
		if err != nil {
			return loginResultMsg{err: err}
		}

		id := models.Identity{Token: resp.AccessToken, User: resp.User}
		if err := store.Save(ctx, id); err != nil {
			return loginResultMsg{err: err}
		}

		return loginResultMsg{identity: id}
	}
}

func (m *loginModel) focusNext() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m *loginModel) focusPrev() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func humanizeLoginError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, adapter.ErrUnavailable):
		return "Unable to reach the code generation service. Check your connection and try again."
	default:
		return err.Error()
	}
}
