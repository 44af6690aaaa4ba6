// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Codechat Authors

package tui

import (
	"context"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/codegenhq/codechat/internal/adapter"
	"github.com/codegenhq/codechat/internal/segment"
	"github.com/codegenhq/codechat/internal/session"
	"github.com/codegenhq/codechat/models"
)

type focusArea int

const (
	focusInput focusArea = iota
	focusSidebar
	focusFilter
)

const sidebarWidth = 32

// chatModel is the main chat screen: a sidebar with the filtered
// conversation list on the left and the active conversation plus the
// message input on the right. All conversational state lives in the session
// store; the model only holds presentation state and re-reads the store on
// every change notification.
type chatModel struct {
	ctx     context.Context
	adapter adapter.ServerAdapter
	store   *session.Store

	input   textarea.Model
	filter  textinput.Model
	spin    spinner.Model
	focus   focusArea
	idx     int
	loading bool

	status  string
	errMsg  string
	confirm string // conversation id pending delete confirmation

	width  int
	height int

	logout  bool
	expired bool
}

func newChatModel(ctx context.Context, serverAdapter adapter.ServerAdapter, store *session.Store) chatModel {
	input := textarea.New()
	input.Placeholder = "Describe the code you want..."
	input.SetHeight(3)
	input.CharLimit = 4000
	input.ShowLineNumbers = false
	input.KeyMap.InsertNewline.SetEnabled(false)
	input.Focus()

	filter := textinput.New()
	filter.Placeholder = "filter conversations"
	filter.CharLimit = 60

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return chatModel{
		ctx:     ctx,
		adapter: serverAdapter,
		store:   store,
		input:   input,
		filter:  filter,
		spin:    spin,
		loading: true,
	}
}

func (m chatModel) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spin.Tick, m.cmdRefresh())
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.SetWidth(max(20, msg.Width-sidebarWidth-6))
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case storeChangedMsg:
		m.clampIdx()
		return m, nil

	case sessionExpiredMsg:
		m.logout = true
		m.expired = true
		return m, tea.Quit

	case conversationsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = "Could not load conversations"
			return m, nil
		}
		m.errMsg = ""
		m.clampIdx()
		return m, nil

	case historyLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = "Could not load conversation history"
			return m, nil
		}
		m.errMsg = ""
		return m, nil

	case sendDoneMsg:
		// Failures already appear inline as an error-flagged assistant
		// message; an expired session quits via sessionExpiredMsg.
		return m, nil

	case deleteDoneMsg:
		if msg.err != nil {
			m.errMsg = "Could not delete the conversation"
			return m, nil
		}
		m.status = "Conversation deleted"
		m.errMsg = ""
		m.clampIdx()
		return m, m.cmdClearStatus()

	case copiedMsg:
		m.status = "Code copied to clipboard"
		return m, m.cmdClearStatus()

	case explainDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = "Could not explain the code"
			return m, nil
		}
		m.status = msg.explanation
		m.errMsg = ""
		return m, nil

	case clearStatusMsg:
		m.status = ""
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateFocused(msg)
	}

	switch {
	case key.Matches(keyMsg, keys.quit):
		return m, tea.Quit
	case key.Matches(keyMsg, keys.logout):
		m.logout = true
		return m, tea.Quit
	case key.Matches(keyMsg, keys.newChat):
		m.store.NewChat()
		m.confirm = ""
		m.focus = focusInput
		m.input.Focus()
		m.filter.Blur()
		return m, nil
	case key.Matches(keyMsg, keys.tab):
		m.cycleFocus()
		return m, nil
	}

	if m.confirm != "" {
		return m.updateConfirm(keyMsg)
	}

	switch m.focus {
	case focusSidebar:
		return m.updateSidebar(keyMsg)
	case focusFilter:
		return m.updateFilter(msg, keyMsg)
	default:
		return m.updateInput(msg, keyMsg)
	}
}

// updateFocused forwards non-key messages (cursor blinks, paste events) to
// whichever component currently owns the focus.
func (m chatModel) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusFilter:
		m.filter, cmd = m.filter.Update(msg)
	default:
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m chatModel) updateConfirm(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(keyMsg, keys.yes):
		id := m.confirm
		m.confirm = ""
		return m, m.cmdDelete(id)
	case key.Matches(keyMsg, keys.no):
		m.confirm = ""
	}
	return m, nil
}

func (m chatModel) updateSidebar(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.visibleConversations()

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.idx < len(visible)-1 {
			m.idx++
		}
	case key.Matches(keyMsg, keys.enter):
		if m.idx < len(visible) {
			m.loading = true
			m.errMsg = ""
			m.focus = focusInput
			m.input.Focus()
			return m, m.cmdSelect(visible[m.idx].ID)
		}
	case key.Matches(keyMsg, keys.delete):
		if m.idx < len(visible) {
			m.confirm = visible[m.idx].ID
		}
	case key.Matches(keyMsg, keys.copy):
		return m, m.cmdCopyCode()
	case key.Matches(keyMsg, keys.explain):
		m.loading = true
		return m, m.cmdExplain()
	case key.Matches(keyMsg, keys.filter):
		m.focus = focusFilter
		m.filter.Focus()
	case key.Matches(keyMsg, keys.esc):
		m.focus = focusInput
		m.input.Focus()
	}
	return m, nil
}

func (m chatModel) updateFilter(msg tea.Msg, keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyMsg.String() {
	case "esc":
		m.filter.SetValue("")
		m.filter.Blur()
		m.focus = focusSidebar
		m.clampIdx()
		return m, nil
	case "enter":
		m.filter.Blur()
		m.focus = focusSidebar
		m.clampIdx()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.clampIdx()
	return m, cmd
}

func (m chatModel) updateInput(msg tea.Msg, keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyMsg.String() {
	case "esc":
		m.input.Blur()
		m.focus = focusSidebar
		return m, nil
	case "ctrl+y":
		return m, m.cmdCopyCode()
	case "ctrl+e":
		m.loading = true
		return m, m.cmdExplain()
	case "enter":
		text := m.input.Value()
		if strings.TrimSpace(text) == "" {
			return m, nil
		}
		if m.store.SendInFlight() {
			m.status = "Still waiting for the previous reply"
			return m, m.cmdClearStatus()
		}
		m.input.Reset()
		m.errMsg = ""
		return m, m.cmdSend(text)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *chatModel) cycleFocus() {
	switch m.focus {
	case focusInput:
		m.input.Blur()
		m.focus = focusSidebar
	case focusSidebar:
		m.focus = focusInput
		m.input.Focus()
	case focusFilter:
		m.filter.Blur()
		m.focus = focusInput
		m.input.Focus()
	}
}

func (m *chatModel) clampIdx() {
	visible := m.visibleConversations()
	if m.idx >= len(visible) {
		m.idx = len(visible) - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

func (m chatModel) visibleConversations() []models.Conversation {
	return m.store.Filter(m.filter.Value())
}

// ── commands ─────────────────────────────────────────────────────────────────

func (m chatModel) cmdRefresh() tea.Cmd {
	ctx := m.ctx
	store := m.store
	return func() tea.Msg {
		return conversationsLoadedMsg{err: store.Refresh(ctx)}
	}
}

func (m chatModel) cmdSelect(id string) tea.Cmd {
	ctx := m.ctx
	store := m.store
	return func() tea.Msg {
		return historyLoadedMsg{err: store.Select(ctx, id)}
	}
}

func (m chatModel) cmdSend(text string) tea.Cmd {
	ctx := m.ctx
	store := m.store
	return func() tea.Msg {
		return sendDoneMsg{err: store.Send(ctx, text)}
	}
}

func (m chatModel) cmdDelete(id string) tea.Cmd {
	ctx := m.ctx
	store := m.store
	return func() tea.Msg {
		return deleteDoneMsg{err: store.Delete(ctx, id)}
	}
}

// cmdCopyCode copies the first fenced code block of the latest assistant
// message to the system clipboard.
func (m chatModel) cmdCopyCode() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		msgs := store.Messages()
		for i := len(msgs) - 1; i >= 0; i-- {
			if msgs[i].Role != models.RoleAssistant || msgs[i].Error {
				continue
			}
			code, ok := segment.FirstCode(msgs[i].Content)
			if !ok {
				break
			}
			if err := clipboard.WriteAll(code.Body); err != nil {
				return clearStatusMsg{}
			}
			return copiedMsg{}
		}
		return clearStatusMsg{}
	}
}

// cmdExplain asks the server to explain the first fenced code block of the
// latest assistant message and surfaces the explanation in the status line.
func (m chatModel) cmdExplain() tea.Cmd {
	ctx := m.ctx
	serverAdapter := m.adapter
	store := m.store
	return func() tea.Msg {
		msgs := store.Messages()
		for i := len(msgs) - 1; i >= 0; i-- {
			if msgs[i].Role != models.RoleAssistant || msgs[i].Error {
				continue
			}
			code, ok := segment.FirstCode(msgs[i].Content)
			if !ok {
				break
			}
			resp, err := serverAdapter.ExplainCode(ctx, models.CodeRequest{
				Code:     code.Body,
				Language: code.Language,
			})
			return explainDoneMsg{explanation: resp.Explanation, err: err}
		}
		return explainDoneMsg{explanation: "Nothing to explain yet"}
	}
}

func (m chatModel) cmdClearStatus() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// ── view ─────────────────────────────────────────────────────────────────────

func (m chatModel) View() string {
	if m.width == 0 {
		return "loading..."
	}

	chatWidth := max(20, m.width-sidebarWidth-4)
	paneHeight := max(5, m.height-7)

	sidebar := sidebarStyle.Render(
		lipgloss.NewStyle().Width(sidebarWidth).Height(paneHeight).Render(m.viewSidebar(paneHeight)))
	chat := lipgloss.NewStyle().Width(chatWidth).Height(paneHeight).
		Render(lastLines(m.viewChat(chatWidth), paneHeight))

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, sidebar, chat))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.viewStatusLine())
	return b.String()
}

func (m chatModel) viewSidebar(height int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Conversations"))
	b.WriteString("\n")

	if m.focus == focusFilter || m.filter.Value() != "" {
		b.WriteString("/")
		b.WriteString(m.filter.View())
		b.WriteString("\n")
	}

	visible := m.visibleConversations()
	if len(visible) == 0 {
		b.WriteString(helpStyle.Render("no conversations"))
		b.WriteString("\n")
		return b.String()
	}

	activeID := m.store.ActiveConversationID()
	for i, conv := range visible {
		if i >= height-3 {
			break
		}

		cursor := "  "
		if m.focus == focusSidebar && i == m.idx {
			cursor = "> "
		}

		title := fitText(conv.Title, sidebarWidth-4)
		if conv.Title == "" {
			title = "(untitled)"
		}

		line := cursor + title
		switch {
		case m.confirm != "" && conv.ID == m.confirm:
			line = cursor + "delete? y/n " + fitText(title, sidebarWidth-16)
			b.WriteString(errorStyle.Render(line))
		case conv.ID == activeID:
			b.WriteString(selectedStyle.Render(line))
		default:
			b.WriteString(line)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (m chatModel) viewChat(width int) string {
	msgs := m.store.Messages()

	var b strings.Builder
	if len(msgs) == 0 && !m.loading {
		b.WriteString(helpStyle.Render("Start a new conversation: type a prompt below and press enter."))
		b.WriteString("\n")
	}

	for _, msg := range msgs {
		b.WriteString(renderMessage(msg, width))
		b.WriteString("\n")
	}

	if m.loading {
		b.WriteString(m.spin.View())
		b.WriteString(" loading...\n")
	} else if m.store.SendInFlight() {
		b.WriteString(m.spin.View())
		b.WriteString(" generating...\n")
	}

	return b.String()
}

func (m chatModel) viewStatusLine() string {
	switch {
	case m.errMsg != "":
		return errorStyle.Render(m.errMsg)
	case m.status != "":
		return statusStyle.Render(m.status)
	}

	help := "enter: send │ tab: sidebar │ ctrl+y: copy code │ ctrl+e: explain │ ctrl+n: new chat │ ctrl+l: logout │ ctrl+c: quit"
	if m.focus == focusSidebar {
		help = "enter: open │ ctrl+d: delete │ e: explain │ /: filter │ tab: input │ ctrl+c: quit"
	}
	return helpStyle.Render(help)
}

// renderMessage renders one chat message, boxing fenced code blocks with
// their language caption.
func renderMessage(msg models.Message, width int) string {
	var b strings.Builder

	switch {
	case msg.Role == models.RoleUser:
		b.WriteString(userStyle.Render("you"))
	case msg.Error:
		b.WriteString(errorStyle.Render("assistant"))
	default:
		b.WriteString(roleStyle.Render("assistant"))
	}
	b.WriteString("\n")

	if msg.Error {
		b.WriteString(errorStyle.Render(msg.Content))
		b.WriteString("\n")
		return b.String()
	}

	for _, seg := range segment.Split(msg.Content) {
		switch seg.Kind {
		case models.SegmentCode:
			if seg.Language != "" {
				b.WriteString(codeLangStyle.Render(seg.Language))
				b.WriteString("\n")
			}
			b.WriteString(codeStyle.MaxWidth(width).Render(seg.Body))
			b.WriteString("\n")
		default:
			b.WriteString(strings.TrimSpace(seg.Body))
			b.WriteString("\n")
		}
	}

	return b.String()
}
