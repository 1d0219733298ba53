package task

import "errors"

// NoticeLevel classifies a notice.
type NoticeLevel int

const (
	NoticeSuccess NoticeLevel = iota
	NoticeInfo
	NoticeWarning
	NoticeError
)

// String returns the lowercase level name.
func (l NoticeLevel) String() string {
	switch l {
	case NoticeSuccess:
		return "success"
	case NoticeInfo:
		return "info"
	case NoticeWarning:
		return "warning"
	case NoticeError:
		return "error"
	default:
		return "unknown"
	}
}

// Notice is a one-line, fire-and-forget message about a mutation.
type Notice struct {
	Level   NoticeLevel
	Message string
}

// Notifier receives notices. Implementations must not call back into the store.
type Notifier interface {
	Notify(Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notice)

// Notify calls f.
func (f NotifierFunc) Notify(n Notice) {
	f(n)
}

type noopNotifier struct{}

func (noopNotifier) Notify(Notice) {}

// Notice messages for successful mutations.
const (
	MessageAdded    = "Task added"
	MessageUpdated  = "Task updated"
	MessageDeleted  = "Moved to deleted"
	MessageRestored = "Task restored"
	MessagePurged   = "Deleted permanently"
	MessagePurgeAll = "Deleted tasks purged"
)

// MessageEmptyText is the notice sent when Add is given blank text.
const MessageEmptyText = "Task cannot be empty"

func errorNotice(err error) Notice {
	message := err.Error()
	if errors.Is(err, ErrEmptyText) {
		message = MessageEmptyText
	}
	return Notice{Level: NoticeError, Message: message}
}
