package engine

import (
	"slices"
	"time"

	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/core"
)

// DefaultMaxPatchAge is the oldest patch level still considered compliant.
const DefaultMaxPatchAge = 30 * 24 * time.Hour

type PostureChecker struct {
	devices     core.DeviceRepository
	now         func() time.Time
	maxPatchAge time.Duration
}

func NewPostureChecker(devices core.DeviceRepository, now func() time.Time, maxPatchAge time.Duration) *PostureChecker {
	if now == nil {
		now = time.Now
	}
	if maxPatchAge <= 0 {
		maxPatchAge = DefaultMaxPatchAge
	}
	return &PostureChecker{
		devices:     devices,
		now:         now,
		maxPatchAge: maxPatchAge,
	}
}

// CheckPosture evaluates every control required for the device and returns all failures
// in the order of core.PostureControls, regardless of the order the repository lists them.
// Unknown devices yield PostureUnknown and no failures.
func (p *PostureChecker) CheckPosture(deviceID string) (core.PostureStatus, []core.PostureControl) {
	device, required, ok := p.devices.LookupDevice(deviceID)
	if !ok {
		return core.PostureUnknown, nil
	}

	now := p.now()
	var failed []core.PostureControl
	for _, control := range core.PostureControls {
		if slices.Contains(required, control) && !p.satisfies(device, control, now) {
			failed = append(failed, control)
		}
	}
	// unknown controls cannot be satisfied
	for _, control := range required {
		if !slices.Contains(core.PostureControls, control) {
			failed = append(failed, control)
		}
	}

	if len(failed) > 0 {
		return core.PostureNonCompliant, failed
	}
	return core.PostureCompliant, nil
}

func (p *PostureChecker) satisfies(d core.Device, control core.PostureControl, now time.Time) bool {
	switch control {
	case core.ControlOSVersion:
		return d.OSVersion != ""
	case core.ControlFirewall:
		return d.FirewallEnabled
	case core.ControlAntivirus:
		return d.AntivirusEnabled
	case core.ControlDiskEncryption:
		return d.DiskEncrypted
	case core.ControlScreenLock:
		return d.ScreenLockEnabled
	case core.ControlPatchLevel:
		return now.Sub(d.LastPatchDate) <= p.maxPatchAge
	}
	return false
}
