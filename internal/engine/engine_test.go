package engine

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/core"
	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/store"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T, controls core.Controls, now time.Time) *Engine {
	t.Helper()
	f := store.DefaultFixtures(fixedNow)
	return New(f.Users, f.Devices, f.Policies, controls, WithClock(func() time.Time { return now }))
}

func strPtr(s string) *string {
	return &s
}

func TestEngine_Decide(t *testing.T) {
	tests := []struct {
		name       string
		controls   core.Controls
		now        time.Time
		req        core.AccessRequest
		wantAllow  bool
		wantReason string
	}{
		{
			name:      "Admin On Laptop With MFA",
			controls:  core.AllControls(),
			req:       core.AccessRequest{User: "alice", Password: "alice123", Device: "laptop-1", Resource: "/app/db", Method: core.MethodMFA},
			wantAllow: true,
		},
		{
			name:       "Unknown User",
			controls:   core.AllControls(),
			req:        core.AccessRequest{User: "mallory", Password: "x", Device: "laptop-1", Method: core.MethodMFA},
			wantReason: "User not found",
		},
		{
			name:       "Wrong Password",
			controls:   core.AllControls(),
			req:        core.AccessRequest{User: "alice", Password: "letmein", Device: "laptop-1", Method: core.MethodMFA},
			wantReason: "Invalid password",
		},
		{
			name:       "MFA User Without Code",
			controls:   core.AllControls(),
			req:        core.AccessRequest{User: "bob", Password: "bob456", Device: "vm-2", Method: core.MethodPassword},
			wantReason: "MFA required but not provided",
		},
		{
			name:       "Malformed MFA Code",
			controls:   core.AllControls(),
			req:        core.AccessRequest{User: "alice", Password: "alice123", Device: "laptop-1", Method: core.MethodMFA, MFACode: strPtr("12ab56")},
			wantReason: "Invalid MFA code format",
		},
		{
			name:      "Login Without Resource",
			controls:  core.AllControls(),
			req:       core.AccessRequest{User: "carol", Password: "carol789", Device: "phone-1", Method: core.MethodPassword},
			wantAllow: true,
		},
		{
			name:       "Unknown Device",
			controls:   core.AllControls(),
			req:        core.AccessRequest{User: "carol", Password: "carol789", Device: "attacker-1", Method: core.MethodPassword},
			wantReason: "Device posture unknown",
		},
		{
			name:       "Stale Patch Level",
			controls:   core.AllControls(),
			now:        fixedNow.Add(40 * 24 * time.Hour),
			req:        core.AccessRequest{User: "carol", Password: "carol789", Device: "laptop-1", Method: core.MethodPassword},
			wantReason: "Device non-compliant: patch_level",
		},
		{
			name:       "Role Not Allowed",
			controls:   core.AllControls(),
			req:        core.AccessRequest{User: "carol", Password: "carol789", Device: "laptop-1", Resource: "/app/db", Method: core.MethodPassword},
			wantReason: "Role UserRole.ANALYST not allowed",
		},
		{
			name:       "Device Not Allowed",
			controls:   core.AllControls(),
			req:        core.AccessRequest{User: "bob", Password: "bob456", Device: "phone-1", Resource: "/app/db", Method: core.MethodMFA},
			wantReason: "Device phone-1 not allowed",
		},
		{
			name:       "Resource Not Found",
			controls:   core.AllControls(),
			req:        core.AccessRequest{User: "alice", Password: "alice123", Device: "laptop-1", Resource: "/app/unknown", Method: core.MethodMFA},
			wantReason: "Resource not found",
		},
		{
			name:       "MFA Code Supplied But Method Password",
			controls:   core.AllControls(),
			req:        core.AccessRequest{User: "alice", Password: "alice123", Device: "laptop-1", Resource: "/app/db", Method: core.MethodPassword, MFACode: strPtr("654321")},
			wantReason: "MFA required but not used",
		},
		{
			name:      "Analyst Files Without MFA",
			controls:  core.AllControls(),
			req:       core.AccessRequest{User: "carol", Password: "carol789", Device: "laptop-1", Resource: "/app/files", Method: core.MethodPassword},
			wantAllow: true,
		},
		{
			name:       "Compliance Enforced By Segmentation Only",
			controls:   core.Controls{Auth: true, Segmentation: true},
			now:        fixedNow.Add(40 * 24 * time.Hour),
			req:        core.AccessRequest{User: "alice", Password: "alice123", Device: "laptop-1", Resource: "/app/db", Method: core.MethodMFA},
			wantReason: "Compliant device required",
		},
		{
			name:      "Auth Disabled Ignores Password",
			controls:  core.Controls{Posture: true, Segmentation: true},
			req:       core.AccessRequest{User: "alice", Password: "wrong", Device: "laptop-1", Resource: "/app/admin", Method: core.MethodMFA},
			wantAllow: true,
		},
		{
			name:      "No Controls Allows Everything",
			controls:  core.Controls{},
			req:       core.AccessRequest{User: "mallory", Password: "x", Device: "attacker-1", Resource: "/app/admin", Method: core.MethodPassword},
			wantAllow: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := tt.now
			if now.IsZero() {
				now = fixedNow
			}
			eng := newTestEngine(t, tt.controls, now)

			got := eng.Decide(tt.req)
			if got.Allowed != tt.wantAllow {
				t.Errorf("Decide() allowed = %v, want %v (reason %q)", got.Allowed, tt.wantAllow, got.Reason)
			}
			if got.Reason.String() != tt.wantReason {
				t.Errorf("Decide() reason = %q, want %q", got.Reason.String(), tt.wantReason)
			}
		})
	}
}

func TestEngine_Trace(t *testing.T) {
	eng := newTestEngine(t, core.AllControls(), fixedNow)

	trace := eng.Trace(core.AccessRequest{
		User:     "carol",
		Password: "carol789",
		Device:   "laptop-1",
		Resource: "/app/admin",
		Method:   core.MethodPassword,
	})

	want := []core.StepResult{
		{Step: StepAuthentication, Passed: true, Reason: "Authentication successful"},
		{Step: StepPosture, Passed: true},
		{Step: StepSegmentation, Passed: false, Reason: "Role UserRole.ANALYST not allowed"},
	}
	if diff := cmp.Diff(want, trace.Steps); diff != "" {
		t.Errorf("Trace() steps mismatch (-want +got):\n%s", diff)
	}
	if trace.Posture != core.PostureCompliant {
		t.Errorf("Trace() posture = %q, want compliant", trace.Posture)
	}
	if trace.Verdict.Allowed {
		t.Error("Trace() verdict should deny")
	}
}

func TestEngine_TraceShortCircuits(t *testing.T) {
	eng := newTestEngine(t, core.AllControls(), fixedNow)

	trace := eng.Trace(core.AccessRequest{User: "alice", Password: "nope", Device: "laptop-1", Resource: "/app/db"})
	if len(trace.Steps) != 1 {
		t.Fatalf("expected evaluation to stop after authentication, got %d steps", len(trace.Steps))
	}
	if trace.Steps[0].Reason != "Invalid password" {
		t.Errorf("unexpected reason %q", trace.Steps[0].Reason)
	}
}

func TestManager_SetControls(t *testing.T) {
	m := NewManager(newTestEngine(t, core.AllControls(), fixedNow))
	req := core.AccessRequest{User: "mallory", Device: "attacker-1"}

	if m.Engine().Decide(req).Allowed {
		t.Fatal("expected deny with all controls")
	}

	m.SetControls(core.Controls{})
	if !m.Engine().Decide(req).Allowed {
		t.Error("expected allow after disabling all controls")
	}
	if m.Engine().Controls().Any() {
		t.Error("controls should all be disabled")
	}
}
