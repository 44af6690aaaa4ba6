package tui

import (
	"github.com/codegenhq/codechat/models"
)

type loginResultMsg struct {
	identity models.Identity
	err      error
}

type conversationsLoadedMsg struct {
	err error
}

type historyLoadedMsg struct {
	err error
}

type sendDoneMsg struct {
	err error
}

type deleteDoneMsg struct {
	err error
}

type copiedMsg struct{}

// explainDoneMsg carries the server's explanation of the latest code block.
type explainDoneMsg struct {
	explanation string
	err         error
}

type clearStatusMsg struct{}

// storeChangedMsg is pushed into the program whenever the session store
// notifies its subscribers, so background refreshes repaint the screen.
type storeChangedMsg struct{}

// sessionExpiredMsg is pushed when the server rejects the stored token.
type sessionExpiredMsg struct{}
