package domain

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	// ErrDetectionUnsupported means the platform exposes no battery capability.
	// Callers should ask for manual entry instead.
	ErrDetectionUnsupported = errors.New("temperature detection not supported")

	// ErrDetectionFailed wraps any other failure while querying the capability.
	ErrDetectionFailed = errors.New("temperature detection failed")
)

// Estimation heuristic, used when the battery reports no temperature.
const (
	EstimateBase           = 30.0
	EstimateChargingDelta  = 8.0
	EstimateLowLevelDelta  = 3.0
	EstimateLowLevelCutoff = 0.20
)

// ReadingSource records where a temperature value came from.
type ReadingSource string

const (
	SourceManual    ReadingSource = "manual"
	SourceMeasured  ReadingSource = "measured"
	SourceEstimated ReadingSource = "estimated"
)

// Factor is one contribution to an estimated temperature.
type Factor struct {
	Name  string  `json:"name"`
	Delta float64 `json:"delta"`
}

// Reading is a temperature together with its provenance.
type Reading struct {
	Celsius float64       `json:"celsius"`
	Source  ReadingSource `json:"source"`
	Factors []Factor      `json:"factors,omitempty"`
	TakenAt time.Time     `json:"taken_at"`
}

// BatteryStatus is what a battery capability reports. Level is a fraction in
// [0, 1]. Temperature is nil when the capability does not expose it.
type BatteryStatus struct {
	Charging    bool     `json:"charging"`
	Level       float64  `json:"level"`
	Temperature *float64 `json:"temperature,omitempty"`
}

// BatteryProber queries an optional platform battery capability.
// Implementations return ErrDetectionUnsupported when the capability is absent.
type BatteryProber interface {
	Probe(ctx context.Context) (BatteryStatus, error)
}

// ManualReading wraps a user-supplied temperature.
func ManualReading(celsius float64) Reading {
	return Reading{Celsius: celsius, Source: SourceManual, TakenAt: clock.Now()}
}

// Estimate obtains a temperature from the battery capability. A reported
// temperature is used as-is; otherwise the value is estimated from charging
// state and level. A nil prober is treated as an absent capability.
func Estimate(ctx context.Context, prober BatteryProber) (Reading, error) {
	if prober == nil {
		return Reading{}, ErrDetectionUnsupported
	}

	status, err := prober.Probe(ctx)
	if err != nil {
		if errors.Is(err, ErrDetectionUnsupported) {
			return Reading{}, ErrDetectionUnsupported
		}
		return Reading{}, fmt.Errorf("%w: %w", ErrDetectionFailed, err)
	}

	if status.Temperature != nil {
		t := *status.Temperature
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return Reading{}, fmt.Errorf("%w: capability reported non-finite temperature", ErrDetectionFailed)
		}
		return Reading{Celsius: t, Source: SourceMeasured, TakenAt: clock.Now()}, nil
	}

	celsius, factors := EstimateFromBattery(status.Charging, status.Level)
	return Reading{
		Celsius: celsius,
		Source:  SourceEstimated,
		Factors: factors,
		TakenAt: clock.Now(),
	}, nil
}

// EstimateFromBattery applies the heuristic and lists the factors used.
// The base is always the first factor.
func EstimateFromBattery(charging bool, level float64) (float64, []Factor) {
	factors := []Factor{{Name: "base", Delta: EstimateBase}}
	celsius := EstimateBase

	if charging {
		factors = append(factors, Factor{Name: "charging", Delta: EstimateChargingDelta})
		celsius += EstimateChargingDelta
	}
	if level < EstimateLowLevelCutoff {
		factors = append(factors, Factor{Name: "low_battery", Delta: EstimateLowLevelDelta})
		celsius += EstimateLowLevelDelta
	}

	return celsius, factors
}
