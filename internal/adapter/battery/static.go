package battery

import (
	"context"

	"github.com/couchcryptid/phone-temp-checker/internal/domain"
)

// StaticProber always reports the same battery status.
type StaticProber struct {
	Status domain.BatteryStatus
}

func (p StaticProber) Probe(ctx context.Context) (domain.BatteryStatus, error) {
	if err := ctx.Err(); err != nil {
		return domain.BatteryStatus{}, err
	}
	return p.Status, nil
}

// Unsupported is a prober for platforms without a battery capability.
type Unsupported struct{}

func (Unsupported) Probe(_ context.Context) (domain.BatteryStatus, error) {
	return domain.BatteryStatus{}, domain.ErrDetectionUnsupported
}
