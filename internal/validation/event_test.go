package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/core"
)

func TestEventValidator_Validate(t *testing.T) {
	v, err := NewEventValidator()
	require.NoError(t, err)

	base := core.Event{
		Timestamp: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Kind:      core.EventAccess,
		User:      "alice",
		Device:    "laptop-1",
		Success:   true,
		Method:    core.MethodMFA,
		Posture:   "compliant",
		IP:        "10.0.0.12",
		Resource:  "/app/db",
		Decision:  core.DecisionAllow,
	}

	tests := []struct {
		name    string
		mutate  func(e *core.Event)
		wantErr bool
	}{
		{name: "Valid Access", mutate: func(*core.Event) {}},
		{name: "Valid Login Without Resource", mutate: func(e *core.Event) { e.Kind = core.EventLogin; e.Resource = "" }},
		{name: "Access Without Resource", mutate: func(e *core.Event) { e.Resource = "" }, wantErr: true},
		{name: "Unknown Kind", mutate: func(e *core.Event) { e.Kind = "teleport" }, wantErr: true},
		{name: "Bad IP", mutate: func(e *core.Event) { e.IP = "localhost" }, wantErr: true},
		{name: "Bad Posture", mutate: func(e *core.Event) { e.Posture = "fine" }, wantErr: true},
		{
			name: "Attack Without Phase",
			mutate: func(e *core.Event) {
				e.AttackType = core.AttackRansomware
			},
			wantErr: true,
		},
		{
			name: "Attack With Phase",
			mutate: func(e *core.Event) {
				e.AttackType = core.AttackRansomware
				e.AttackPhase = core.PhaseImpact
				e.Filename = "encrypted_1.locked"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := base
			tt.mutate(&ev)
			err := v.Validate(ev)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEventValidator_ValidateStream(t *testing.T) {
	v, err := NewEventValidator()
	require.NoError(t, err)

	input := strings.Join([]string{
		`{"timestamp":"2024-03-01T12:00:00Z","event":"login","user":"bob","device":"vm-2","success":false,"method":"password","device_posture":"compliant","ip":"10.0.0.1","decision":"deny","reason":"MFA required but not provided"}`,
		``,
		`{"timestamp":"2024-03-01T12:00:00Z","event":"login","user":"bob"}`,
		`not json`,
	}, "\n")

	report, err := v.ValidateStream(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 3, report.Records)
	assert.Equal(t, 1, report.Valid)
	require.Len(t, report.Errors, 2)
	assert.Equal(t, 3, report.Errors[0].Line)
	assert.Equal(t, 4, report.Errors[1].Line)
}
