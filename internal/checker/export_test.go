package checker

import "time"

// SetNoticeTimeout overrides the notice delivery bound and returns a restore func.
func SetNoticeTimeout(d time.Duration) func() {
	prev := noticeTimeout
	noticeTimeout = d
	return func() { noticeTimeout = prev }
}
