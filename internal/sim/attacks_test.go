package sim

import (
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/core"
)

func TestAttackSimulator_CredentialStuffing(t *testing.T) {
	events, err := NewAttackSimulator(NewRand(1)).CredentialStuffing([]string{"alice", "bob"}, 100)
	require.NoError(t, err)
	require.Len(t, events, 100)

	device := regexp.MustCompile(`^attacker-[1-5]$`)
	ip := regexp.MustCompile(`^192\.168\.1\.\d{1,3}$`)
	for _, ev := range events {
		assert.Equal(t, core.EventLogin, ev.Kind)
		assert.Contains(t, []string{"alice", "bob"}, ev.User)
		assert.Contains(t, commonPasswords, ev.AttemptedPassword)
		assert.Regexp(t, device, ev.Device)
		assert.Regexp(t, ip, ev.IP)
		assert.Equal(t, core.MethodPassword, ev.Method)
		assert.Equal(t, "non-compliant", ev.Posture)
		assert.False(t, ev.Success)
		assert.Equal(t, core.AttackCredentialStuffing, ev.AttackType)
		assert.Equal(t, core.PhaseInitialAccess, ev.AttackPhase)
	}
}

func TestAttackSimulator_LateralMovement(t *testing.T) {
	resources := []string{"/app/db", "/app/admin"}
	events, err := NewAttackSimulator(NewRand(2)).LateralMovement("bob", resources, 30)
	require.NoError(t, err)
	require.Len(t, events, 30)

	device := regexp.MustCompile(`^compromised-[1-3]$`)
	for _, ev := range events {
		assert.Equal(t, core.EventAccess, ev.Kind)
		assert.Equal(t, "bob", ev.User)
		assert.Contains(t, resources, ev.Resource)
		assert.Regexp(t, device, ev.Device)
		assert.Equal(t, core.PhaseLateralMovement, ev.AttackPhase)
	}
}

func TestAttackSimulator_Ransomware(t *testing.T) {
	events, err := NewAttackSimulator(NewRand(3)).Ransomware("alice", []string{"/app/files"}, 25)
	require.NoError(t, err)
	require.Len(t, events, 26)

	drop := events[0]
	assert.Equal(t, core.PhaseInitialAccess, drop.AttackPhase)
	assert.Contains(t, malwarePatterns, drop.Filename)
	assert.Equal(t, core.EventFileWrite, drop.Kind)

	locked := regexp.MustCompile(`^encrypted_\d{1,4}\.locked$`)
	for _, ev := range events[1:] {
		assert.Equal(t, core.PhaseImpact, ev.AttackPhase)
		assert.Regexp(t, locked, ev.Filename)
		assert.Equal(t, drop.Device, ev.Device)
		assert.Equal(t, drop.IP, ev.IP)
		assert.Equal(t, core.AttackRansomware, ev.AttackType)
	}
}

func TestAttackSimulator_Deterministic(t *testing.T) {
	profile := core.AttackProfile{
		Enabled:         true,
		Type:            "Ransomware",
		TargetUsers:     []string{"alice"},
		TargetResources: []string{"/app/db", "/app/files"},
		Attempts:        10,
	}

	a, err := NewAttackSimulator(NewRand(5)).Simulate(profile)
	require.NoError(t, err)
	b, err := NewAttackSimulator(NewRand(5)).Simulate(profile)
	require.NoError(t, err)

	if diff := cmp.Diff(a, b, cmpopts.IgnoreFields(core.Event{}, "Timestamp")); diff != "" {
		t.Errorf("same seed produced different attacks (-a +b):\n%s", diff)
	}
}

func TestAttackSimulator_SimulateErrors(t *testing.T) {
	tests := []struct {
		name    string
		profile core.AttackProfile
		wantErr error
	}{
		{
			name:    "Data Exfiltration Unsupported",
			profile: core.AttackProfile{Type: "data_exfiltration", TargetUsers: []string{"alice"}, TargetResources: []string{"/app/db"}, Attempts: 1},
			wantErr: core.ErrUnsupportedAttackType,
		},
		{
			name:    "Unknown Type",
			profile: core.AttackProfile{Type: "phishing", TargetUsers: []string{"alice"}, Attempts: 1},
			wantErr: core.ErrUnsupportedAttackType,
		},
		{
			name:    "No Target Users",
			profile: core.AttackProfile{Type: "credential_stuffing", Attempts: 1},
			wantErr: ErrNoTargetUsers,
		},
		{
			name:    "No Target Resources",
			profile: core.AttackProfile{Type: "lateral_movement", TargetUsers: []string{"bob"}, Attempts: 1},
			wantErr: ErrNoTargetResources,
		},
		{
			name:    "Negative Attempts",
			profile: core.AttackProfile{Type: "ransomware", TargetUsers: []string{"bob"}, TargetResources: []string{"/app/db"}, Attempts: -1},
			wantErr: ErrNegativeAttempts,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAttackSimulator(NewRand(1)).Simulate(tt.profile)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAttackProfile_CompromisedFallsBackToFirstTarget(t *testing.T) {
	events, err := NewAttackSimulator(NewRand(1)).Simulate(core.AttackProfile{
		Type:            "lateral_movement",
		TargetUsers:     []string{"carol", "bob"},
		TargetResources: []string{"/app/db"},
		Attempts:        3,
	})
	require.NoError(t, err)
	for _, ev := range events {
		assert.Equal(t, "carol", ev.User)
	}
}
