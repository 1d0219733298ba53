package tui

import "github.com/amonks/taskmate/task"

// noticeInbox collects store notices until the model shows them.
// Store calls happen inside Update, so no locking is needed.
type noticeInbox struct {
	pending []task.Notice
}

func (inbox *noticeInbox) Notify(notice task.Notice) {
	inbox.pending = append(inbox.pending, notice)
}

func (inbox *noticeInbox) drain() []task.Notice {
	if inbox == nil {
		return nil
	}
	notices := inbox.pending
	inbox.pending = nil
	return notices
}
