package checker

import (
	"context"
	"errors"
	"log/slog"

	"github.com/couchcryptid/phone-temp-checker/internal/domain"
)

// LogNotifier writes notices to a structured logger at a level matching
// their severity.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, notice domain.Notice) error {
	level := slog.LevelInfo
	switch notice.Severity {
	case domain.SeverityWarning:
		level = slog.LevelWarn
	case domain.SeverityError:
		level = slog.LevelError
	}
	n.logger.Log(ctx, level, notice.Title,
		"notice_id", notice.ID,
		"severity", notice.Severity,
		"message", notice.Message,
	)
	return nil
}

// MultiNotifier fans a notice out to several notifiers. Every notifier is
// called; their errors are joined.
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(ctx context.Context, notice domain.Notice) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, notice); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
