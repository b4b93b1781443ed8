package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Severity of a user-facing notice.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notice is a transient message shown to the user after an action.
type Notice struct {
	ID        uuid.UUID `json:"id"`
	Severity  Severity  `json:"severity"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	EmittedAt time.Time `json:"emitted_at"`
}

// NewNotice stamps a notice with a fresh ID and the package clock.
func NewNotice(severity Severity, title, message string) Notice {
	return Notice{
		ID:        uuid.New(),
		Severity:  severity,
		Title:     title,
		Message:   message,
		EmittedAt: clock.Now(),
	}
}

// NoticeForReading describes a successful detection.
func NoticeForReading(r Reading) Notice {
	switch r.Source {
	case SourceMeasured:
		return NewNotice(SeverityInfo, "Temperature detected",
			fmt.Sprintf("Your battery reports %.1f°C.", r.Celsius))
	case SourceEstimated:
		return NewNotice(SeverityInfo, "Temperature estimated",
			fmt.Sprintf("Your device does not report its temperature. Estimated %.1f°C from %s.",
				r.Celsius, describeFactors(r.Factors)))
	default:
		return NewNotice(SeverityInfo, "Temperature checked",
			fmt.Sprintf("Checked %.1f°C.", r.Celsius))
	}
}

// NoticeForError maps a check or detection error to the notice the user sees.
func NoticeForError(err error) Notice {
	switch {
	case errors.Is(err, ErrInvalidTemperature):
		return NewNotice(SeverityWarning, "Invalid temperature",
			"Please enter a valid number in °C, for example 38.")
	case errors.Is(err, ErrDetectionUnsupported):
		return NewNotice(SeverityWarning, "Detection unavailable",
			"Your device does not expose battery information. Please enter the temperature manually.")
	case errors.Is(err, ErrDetectionFailed):
		return NewNotice(SeverityError, "Detection failed",
			"Could not read battery information. Please try again or enter the temperature manually.")
	default:
		return NewNotice(SeverityError, "Something went wrong", err.Error())
	}
}

func describeFactors(factors []Factor) string {
	parts := make([]string, 0, len(factors))
	for _, f := range factors {
		switch f.Name {
		case "base":
			parts = append(parts, fmt.Sprintf("a %.0f°C baseline", f.Delta))
		case "charging":
			parts = append(parts, fmt.Sprintf("charging (+%.0f°C)", f.Delta))
		case "low_battery":
			parts = append(parts, fmt.Sprintf("low battery (+%.0f°C)", f.Delta))
		default:
			parts = append(parts, fmt.Sprintf("%s (%+.0f°C)", f.Name, f.Delta))
		}
	}
	return strings.Join(parts, ", ")
}
