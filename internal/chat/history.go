package chat

import "github.com/wtask/framechat/internal/chat/history"

// MessageHistory - interface to access ordered history of public chat lines.
type MessageHistory interface {
	// Push - push new line into history
	Push(line string)
	// Tail - get a number of latest entries from history in chronological order
	Tail(n int) []history.Entry
}

func historyPush(h MessageHistory, line string) {
	if h == nil {
		return
	}
	h.Push(line)
}

func historyTail(h MessageHistory, n int) []history.Entry {
	if h == nil || n <= 0 {
		return []history.Entry{}
	}
	return h.Tail(n)
}
