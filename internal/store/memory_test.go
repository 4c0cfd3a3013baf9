package store

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/core"
)

func TestInMemoryUserStore_LookupUser(t *testing.T) {
	users := DefaultUsers()

	tests := []struct {
		name    string
		id      string
		wantOK  bool
		wantPwd string
		wantMFA bool
	}{
		{name: "alice", id: "alice", wantOK: true, wantPwd: "alice123", wantMFA: true},
		{name: "bob", id: "bob", wantOK: true, wantPwd: "bob456", wantMFA: true},
		{name: "carol without MFA", id: "carol", wantOK: true, wantPwd: "carol789", wantMFA: false},
		{name: "unknown user", id: "mallory", wantOK: false},
		{name: "empty id", id: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, ok := users.LookupUser(tt.id)
			if ok != tt.wantOK {
				t.Fatalf("LookupUser() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if u.Password != tt.wantPwd {
				t.Errorf("LookupUser() password = %q, want %q", u.Password, tt.wantPwd)
			}
			if u.MFAEnabled != tt.wantMFA {
				t.Errorf("LookupUser() mfa = %v, want %v", u.MFAEnabled, tt.wantMFA)
			}
		})
	}

	if diff := cmp.Diff([]string{"alice", "bob", "carol"}, users.ListUsers()); diff != "" {
		t.Errorf("ListUsers() mismatch (-want +got):\n%s", diff)
	}
}

func TestInMemoryDeviceStore_RequiredControls(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	devices := DefaultDevices(now)

	tests := []struct {
		id   string
		want []core.PostureControl
	}{
		{id: "laptop-1", want: core.PostureControls},
		{id: "phone-1", want: []core.PostureControl{"os_version", "disk_encryption", "screen_lock", "patch_level"}},
		{id: "vm-2", want: []core.PostureControl{"os_version", "firewall", "antivirus", "disk_encryption", "patch_level"}},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			_, required, ok := devices.LookupDevice(tt.id)
			if !ok {
				t.Fatalf("LookupDevice(%q) not found", tt.id)
			}
			if diff := cmp.Diff(tt.want, required); diff != "" {
				t.Errorf("required controls mismatch (-want +got):\n%s", diff)
			}
		})
	}

	d, _, _ := devices.LookupDevice("laptop-1")
	if got := now.Sub(d.LastPatchDate); got != 5*24*time.Hour {
		t.Errorf("laptop-1 patch age = %v, want 120h", got)
	}

	if _, _, ok := devices.LookupDevice("unknown-device"); ok {
		t.Error("LookupDevice(unknown-device) should not be found")
	}
}

func TestInMemoryDeviceStore_ReturnsCopy(t *testing.T) {
	devices := DefaultDevices(time.Now())

	_, required, _ := devices.LookupDevice("phone-1")
	required[0] = core.ControlFirewall

	_, again, _ := devices.LookupDevice("phone-1")
	if again[0] != core.ControlOSVersion {
		t.Errorf("store was mutated through returned slice: %v", again)
	}
}

func TestInMemoryPolicyStore(t *testing.T) {
	policies := DefaultPolicies()

	role, ok := policies.RoleOf("bob")
	if !ok || role != core.RoleDeveloper {
		t.Errorf("RoleOf(bob) = %v, %v; want developer, true", role, ok)
	}
	if _, ok := policies.RoleOf("mallory"); ok {
		t.Error("RoleOf(mallory) should not be found")
	}

	p, ok := policies.PolicyFor("/app/admin")
	if !ok {
		t.Fatal("PolicyFor(/app/admin) not found")
	}
	if !p.AllowsRole(core.RoleAdmin) || p.AllowsRole(core.RoleDeveloper) {
		t.Errorf("unexpected /app/admin roles: %v", p.AllowedRoles)
	}
	if !p.RequireMFA || !p.RequireCompliant {
		t.Errorf("/app/admin must require mfa and compliance, got %+v", p)
	}

	if diff := cmp.Diff([]string{"/app/admin", "/app/db", "/app/files"}, policies.Resources()); diff != "" {
		t.Errorf("Resources() mismatch (-want +got):\n%s", diff)
	}

	policies.SetPolicy("/app/new", core.AccessPolicy{AllowedRoles: []core.Role{core.RoleAnalyst}})
	policies.AssignRole("dave", core.RoleAnalyst)
	if _, ok := policies.PolicyFor("/app/new"); !ok {
		t.Error("SetPolicy did not store the policy")
	}
	if r, _ := policies.RoleOf("dave"); r != core.RoleAnalyst {
		t.Errorf("AssignRole did not store the role, got %q", r)
	}
}
