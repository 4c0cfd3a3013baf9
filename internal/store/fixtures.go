package store

import (
	"time"

	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/core"
)

// Fixtures bundles the three repositories the decision engine reads from.
type Fixtures struct {
	Users    *InMemoryUserStore
	Devices  *InMemoryDeviceStore
	Policies *InMemoryPolicyStore
}

// DefaultFixtures returns the built-in users, devices and policies.
// Device patch dates are relative to now.
func DefaultFixtures(now time.Time) Fixtures {
	return Fixtures{
		Users:    DefaultUsers(),
		Devices:  DefaultDevices(now),
		Policies: DefaultPolicies(),
	}
}

func DefaultUsers() *InMemoryUserStore {
	return NewInMemoryUserStore(
		core.User{ID: "alice", Password: "alice123", MFASecret: "ALICE2FA", MFAEnabled: true},
		core.User{ID: "bob", Password: "bob456", MFASecret: "BOB2FA", MFAEnabled: true},
		core.User{ID: "carol", Password: "carol789", MFASecret: "CAROL2FA", MFAEnabled: false},
	)
}

func DefaultDevices(now time.Time) *InMemoryDeviceStore {
	day := 24 * time.Hour
	return NewInMemoryDeviceStore(
		DeviceRecord{
			Device: core.Device{
				ID:                "laptop-1",
				OSVersion:         "11.7.2",
				FirewallEnabled:   true,
				AntivirusEnabled:  true,
				DiskEncrypted:     true,
				ScreenLockEnabled: true,
				LastPatchDate:     now.Add(-5 * day),
			},
			Required: core.PostureControls,
		},
		DeviceRecord{
			Device: core.Device{
				ID:                "phone-1",
				OSVersion:         "16.5.1",
				FirewallEnabled:   true,
				AntivirusEnabled:  false,
				DiskEncrypted:     true,
				ScreenLockEnabled: true,
				LastPatchDate:     now.Add(-2 * day),
			},
			Required: []core.PostureControl{
				core.ControlOSVersion,
				core.ControlDiskEncryption,
				core.ControlScreenLock,
				core.ControlPatchLevel,
			},
		},
		DeviceRecord{
			Device: core.Device{
				ID:                "vm-2",
				OSVersion:         "20.04",
				FirewallEnabled:   true,
				AntivirusEnabled:  true,
				DiskEncrypted:     true,
				ScreenLockEnabled: false,
				LastPatchDate:     now.Add(-1 * day),
			},
			Required: []core.PostureControl{
				core.ControlOSVersion,
				core.ControlFirewall,
				core.ControlAntivirus,
				core.ControlDiskEncryption,
				core.ControlPatchLevel,
			},
		},
	)
}

func DefaultPolicies() *InMemoryPolicyStore {
	return NewInMemoryPolicyStore(
		map[string]core.Role{
			"alice": core.RoleAdmin,
			"bob":   core.RoleDeveloper,
			"carol": core.RoleAnalyst,
		},
		map[string]core.AccessPolicy{
			"/app/db": {
				AllowedRoles:     []core.Role{core.RoleAdmin, core.RoleDeveloper},
				AllowedDevices:   []string{"laptop-1", "vm-2"},
				RequireMFA:       true,
				RequireCompliant: true,
			},
			"/app/files": {
				AllowedRoles:     []core.Role{core.RoleAdmin, core.RoleDeveloper, core.RoleAnalyst},
				AllowedDevices:   []string{"laptop-1", "phone-1", "vm-2"},
				RequireMFA:       false,
				RequireCompliant: true,
			},
			"/app/admin": {
				AllowedRoles:     []core.Role{core.RoleAdmin},
				AllowedDevices:   []string{"laptop-1"},
				RequireMFA:       true,
				RequireCompliant: true,
			},
		},
	)
}
