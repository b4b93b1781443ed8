package battery

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/couchcryptid/phone-temp-checker/internal/domain"
	"github.com/prometheus/procfs/sysfs"
)

// SysfsProber implements domain.BatteryProber by reading the Linux
// power_supply class (Android devices expose the same tree).
type SysfsProber struct {
	mountPoint string
}

// NewSysfsProber creates a prober for the sysfs tree mounted at mountPoint,
// normally "/sys".
func NewSysfsProber(mountPoint string) *SysfsProber {
	return &SysfsProber{mountPoint: mountPoint}
}

// Probe reports the first battery found. It returns
// domain.ErrDetectionUnsupported when the power_supply class is missing or
// lists no battery.
func (p *SysfsProber) Probe(ctx context.Context) (domain.BatteryStatus, error) {
	if err := ctx.Err(); err != nil {
		return domain.BatteryStatus{}, err
	}

	classDir := filepath.Join(p.mountPoint, "class", "power_supply")
	if _, err := os.Stat(classDir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.BatteryStatus{}, domain.ErrDetectionUnsupported
		}
		return domain.BatteryStatus{}, fmt.Errorf("stat power_supply class: %w", err)
	}

	sys, err := sysfs.NewFS(p.mountPoint)
	if err != nil {
		return domain.BatteryStatus{}, fmt.Errorf("open sysfs: %w", err)
	}
	supplies, err := sys.PowerSupplyClass()
	if err != nil {
		return domain.BatteryStatus{}, fmt.Errorf("read power_supply class: %w", err)
	}

	names := make([]string, 0, len(supplies))
	for name := range supplies {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ps := supplies[name]
		if ps.Type != "Battery" {
			continue
		}
		return statusFromPowerSupply(ps), nil
	}
	return domain.BatteryStatus{}, domain.ErrDetectionUnsupported
}

// statusFromPowerSupply converts sysfs units: capacity is a percentage and
// temp is in tenths of a degree Celsius. A battery without a capacity
// attribute is treated as full so it never counts as low.
func statusFromPowerSupply(ps sysfs.PowerSupply) domain.BatteryStatus {
	status := domain.BatteryStatus{
		Charging: ps.Status == "Charging",
		Level:    1,
	}
	if ps.Capacity != nil {
		status.Level = float64(*ps.Capacity) / 100
	}
	if ps.Temp != nil {
		t := float64(*ps.Temp) / 10
		status.Temperature = &t
	}
	return status
}
