package service

import (
	"time"

	"github.com/quantum-forge/internal/types"
)

// Notice levels
const (
	NoticeInfo    = "info"
	NoticeSuccess = "success"
	NoticeFailure = "failure"
)

const maxNotices = 20

// noticeLog keeps the most recent notices, oldest first.
type noticeLog struct {
	items []types.Notice
}

func (n *noticeLog) add(level, message string, at time.Time) {
	n.items = append(n.items, types.Notice{Level: level, Message: message, At: at})
	if over := len(n.items) - maxNotices; over > 0 {
		n.items = append(n.items[:0], n.items[over:]...)
	}
}

func (n *noticeLog) list() []types.Notice {
	return append([]types.Notice(nil), n.items...)
}
