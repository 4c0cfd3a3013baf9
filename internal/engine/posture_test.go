package engine

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/core"
	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/store"
)

func TestPostureChecker_CheckPosture(t *testing.T) {
	devices := store.DefaultDevices(fixedNow)
	devices.Put(store.DeviceRecord{
		Device: core.Device{
			ID:                "byod-7",
			OSVersion:         "",
			FirewallEnabled:   false,
			AntivirusEnabled:  false,
			DiskEncrypted:     true,
			ScreenLockEnabled: true,
			LastPatchDate:     fixedNow.Add(-90 * 24 * time.Hour),
		},
		Required: core.PostureControls,
	})
	devices.Put(store.DeviceRecord{
		Device: core.Device{
			ID:                "byod-8",
			OSVersion:         "14.2",
			DiskEncrypted:     true,
			ScreenLockEnabled: true,
			LastPatchDate:     fixedNow.Add(-90 * 24 * time.Hour),
		},
		Required: []core.PostureControl{core.ControlPatchLevel, core.ControlFirewall},
	})

	tests := []struct {
		name       string
		device     string
		now        time.Time
		wantStatus core.PostureStatus
		wantFailed []core.PostureControl
	}{
		{name: "Laptop Compliant", device: "laptop-1", now: fixedNow, wantStatus: core.PostureCompliant},
		{name: "Phone Antivirus Not Required", device: "phone-1", now: fixedNow, wantStatus: core.PostureCompliant},
		{name: "VM Screen Lock Not Required", device: "vm-2", now: fixedNow, wantStatus: core.PostureCompliant},
		{
			name:       "Patch Exactly 30 Days",
			device:     "laptop-1",
			now:        fixedNow.Add(25 * 24 * time.Hour),
			wantStatus: core.PostureCompliant,
		},
		{
			name:       "Patch Older Than 30 Days",
			device:     "laptop-1",
			now:        fixedNow.Add(25*24*time.Hour + time.Second),
			wantStatus: core.PostureNonCompliant,
			wantFailed: []core.PostureControl{core.ControlPatchLevel},
		},
		{
			name:       "All Failures In Order",
			device:     "byod-7",
			now:        fixedNow,
			wantStatus: core.PostureNonCompliant,
			wantFailed: []core.PostureControl{
				core.ControlOSVersion,
				core.ControlFirewall,
				core.ControlAntivirus,
				core.ControlPatchLevel,
			},
		},
		{
			name:       "Failures Ordered Regardless Of Required Order",
			device:     "byod-8",
			now:        fixedNow,
			wantStatus: core.PostureNonCompliant,
			wantFailed: []core.PostureControl{core.ControlFirewall, core.ControlPatchLevel},
		},
		{name: "Unknown Device", device: "attacker-3", now: fixedNow, wantStatus: core.PostureUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := tt.now
			checker := NewPostureChecker(devices, func() time.Time { return now }, 0)

			status, failed := checker.CheckPosture(tt.device)
			if status != tt.wantStatus {
				t.Errorf("CheckPosture() status = %q, want %q", status, tt.wantStatus)
			}
			if diff := cmp.Diff(tt.wantFailed, failed); diff != "" {
				t.Errorf("CheckPosture() failed controls mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPostureReasonListsAllFailures(t *testing.T) {
	r := core.Reason{
		Kind:           core.ReasonDeviceNonCompliant,
		FailedControls: []core.PostureControl{core.ControlFirewall, core.ControlAntivirus},
	}
	if got, want := r.String(), "Device non-compliant: firewall, antivirus"; got != want {
		t.Errorf("Reason.String() = %q, want %q", got, want)
	}
}
