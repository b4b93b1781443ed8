package checker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/phone-temp-checker/internal/domain"
	"github.com/couchcryptid/phone-temp-checker/internal/observability"
	"github.com/google/uuid"
)

// ErrBusy is returned by Detect while another detection is still running.
var ErrBusy = errors.New("detection already in progress")

// noticeTimeout bounds a single notice delivery.
var noticeTimeout = 3 * time.Second

// Notifier delivers user-facing notices.
type Notifier interface {
	Notify(ctx context.Context, notice domain.Notice) error
}

// Outcome is the result of a user action: the status that is now current
// (nil when nothing changed) and the notice to show, if any.
type Outcome struct {
	Status *domain.Status `json:"status,omitempty"`
	Notice *domain.Notice `json:"notice,omitempty"`
}

// Checker holds the current temperature status and runs manual checks and
// battery detections against it.
type Checker struct {
	prober       domain.BatteryProber
	notifier     Notifier
	logger       *slog.Logger
	metrics      *observability.Metrics
	probeTimeout time.Duration

	mu      sync.RWMutex
	current *domain.Status

	busy  atomic.Bool
	ready atomic.Bool
}

// New creates a Checker. A nil prober means the platform has no battery
// capability; with a nil notifier notices are only returned to the caller.
func New(prober domain.BatteryProber, notifier Notifier, logger *slog.Logger, metrics *observability.Metrics, probeTimeout time.Duration) *Checker {
	return &Checker{
		prober:       prober,
		notifier:     notifier,
		logger:       logger,
		metrics:      metrics,
		probeTimeout: probeTimeout,
	}
}

// Current returns the most recent status, if any check has succeeded.
func (c *Checker) Current() (domain.Status, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.current == nil {
		return domain.Status{}, false
	}
	return *c.current, true
}

// Busy reports whether a detection is running.
func (c *Checker) Busy() bool {
	return c.busy.Load()
}

// CheckReadiness returns nil once the startup capability probe has run.
func (c *Checker) CheckReadiness(_ context.Context) error {
	if !c.ready.Load() {
		return errors.New("battery capability has not been probed yet")
	}
	return nil
}

// Check classifies a manually entered temperature. Invalid input leaves the
// current status untouched and returns an error wrapping
// domain.ErrInvalidTemperature together with a warning notice.
func (c *Checker) Check(ctx context.Context, input string) (Outcome, error) {
	celsius, err := domain.ParseTemperature(input)
	if err != nil {
		c.metrics.CheckRejections.WithLabelValues("invalid_input").Inc()
		c.logger.Info("manual check rejected", "input", input, "error", err)
		notice := c.emit(ctx, domain.NoticeForError(err))
		return Outcome{Notice: &notice}, err
	}

	status := c.apply(domain.ManualReading(celsius))
	return Outcome{Status: &status}, nil
}

// Detect queries the battery capability and classifies the result. Only one
// capability query runs at a time; a second call while one is in flight
// returns ErrBusy immediately. On any failure the current status is left
// untouched.
func (c *Checker) Detect(ctx context.Context) (Outcome, error) {
	if !c.busy.CompareAndSwap(false, true) {
		c.metrics.CheckRejections.WithLabelValues("busy").Inc()
		notice := c.emit(ctx, domain.NewNotice(domain.SeverityWarning, "Detection in progress",
			"Please wait for the current detection to finish."))
		return Outcome{Notice: &notice}, ErrBusy
	}

	reading, err := c.query(ctx)
	if err != nil {
		outcome := "failed"
		if errors.Is(err, domain.ErrDetectionUnsupported) {
			outcome = "unsupported"
			c.logger.Info("battery capability unavailable")
		} else {
			c.logger.Warn("battery detection failed", "error", err)
		}
		c.metrics.Detections.WithLabelValues(outcome).Inc()
		notice := c.emit(ctx, domain.NoticeForError(err))
		return Outcome{Notice: &notice}, err
	}

	c.metrics.Detections.WithLabelValues(string(reading.Source)).Inc()
	status := c.apply(reading)
	notice := c.emit(ctx, domain.NoticeForReading(reading))
	return Outcome{Status: &status, Notice: &notice}, nil
}

// ProbeCapability queries the battery capability once at startup so the logs
// and metrics show whether detection can work, then marks the checker ready.
// It never changes the current status.
func (c *Checker) ProbeCapability(ctx context.Context) {
	defer c.ready.Store(true)

	reading, err := c.estimate(ctx)
	switch {
	case err == nil:
		c.metrics.ProbeAvailable.Set(1)
		c.logger.Info("battery capability available", "source", reading.Source, "celsius", reading.Celsius)
	case errors.Is(err, domain.ErrDetectionUnsupported):
		c.metrics.ProbeAvailable.Set(0)
		c.logger.Info("battery capability unavailable, manual entry only")
	default:
		c.metrics.ProbeAvailable.Set(0)
		c.logger.Warn("battery capability probe failed", "error", err)
	}
}

// query runs the capability query while holding the busy flag.
func (c *Checker) query(ctx context.Context) (domain.Reading, error) {
	defer c.busy.Store(false)

	c.metrics.DetectionInFlight.Set(1)
	defer c.metrics.DetectionInFlight.Set(0)

	return c.estimate(ctx)
}

func (c *Checker) estimate(ctx context.Context) (domain.Reading, error) {
	if c.probeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.probeTimeout)
		defer cancel()
	}

	start := time.Now()
	reading, err := domain.Estimate(ctx, c.prober)
	c.metrics.DetectionDuration.Observe(time.Since(start).Seconds())
	return reading, err
}

// apply classifies a reading and makes it the current status.
func (c *Checker) apply(reading domain.Reading) domain.Status {
	status := domain.Status{
		ID:        uuid.New(),
		Reading:   reading,
		Info:      domain.Classify(reading.Celsius),
		CheckedAt: domain.Now(),
	}

	c.mu.Lock()
	c.current = &status
	c.mu.Unlock()

	c.metrics.Checks.WithLabelValues(string(reading.Source), status.Info.Band.String()).Inc()
	c.metrics.CurrentCelsius.Set(reading.Celsius)
	c.logger.Info("temperature checked",
		"status_id", status.ID,
		"source", reading.Source,
		"celsius", reading.Celsius,
		"band", status.Info.Band,
	)
	return status
}

// emit hands the notice to the notifier, bounded by noticeTimeout. Delivery
// failures are logged and counted but never surface to the caller.
func (c *Checker) emit(ctx context.Context, notice domain.Notice) domain.Notice {
	c.metrics.Notices.WithLabelValues(string(notice.Severity)).Inc()
	if c.notifier == nil {
		return notice
	}

	ctx, cancel := context.WithTimeout(ctx, noticeTimeout)
	defer cancel()
	if err := c.notifier.Notify(ctx, notice); err != nil {
		c.metrics.NoticePublishErrors.Inc()
		c.logger.Warn("notice delivery failed", "notice_id", notice.ID, "error", err)
	}
	return notice
}
