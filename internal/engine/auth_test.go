package engine

import (
	"testing"

	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/core"
	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/store"
)

func TestAuthenticator_VerifyMFA(t *testing.T) {
	auth := NewAuthenticator(store.DefaultUsers())

	tests := []struct {
		name  string
		user  string
		code  string
		want  bool
		wantR core.ReasonKind
	}{
		{name: "Valid Code", user: "alice", code: "123456", want: true, wantR: core.ReasonMFAVerified},
		{name: "Any Six Digits", user: "bob", code: "000000", want: true, wantR: core.ReasonMFAVerified},
		{name: "Too Short", user: "alice", code: "12345", wantR: core.ReasonInvalidMFAFormat},
		{name: "Too Long", user: "alice", code: "1234567", wantR: core.ReasonInvalidMFAFormat},
		{name: "Letters", user: "alice", code: "abcdef", wantR: core.ReasonInvalidMFAFormat},
		{name: "Non ASCII Digits", user: "alice", code: "١٢٣٤٥٦", wantR: core.ReasonInvalidMFAFormat},
		{name: "MFA Disabled", user: "carol", code: "", want: true, wantR: core.ReasonMFANotRequired},
		{name: "Unknown User", user: "mallory", code: "123456", wantR: core.ReasonUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := auth.VerifyMFA(tt.user, tt.code)
			if got.Allowed != tt.want {
				t.Errorf("VerifyMFA() allowed = %v, want %v", got.Allowed, tt.want)
			}
			if got.Reason.Kind != tt.wantR {
				t.Errorf("VerifyMFA() reason = %q, want %q", got.Reason.Kind, tt.wantR)
			}
		})
	}
}

func TestAuthenticator_Authenticate(t *testing.T) {
	auth := NewAuthenticator(store.DefaultUsers())

	tests := []struct {
		name     string
		user     string
		password string
		code     *string
		want     bool
		reason   string
	}{
		{name: "Password And MFA", user: "alice", password: "alice123", code: strPtr("123456"), want: true, reason: "Authentication successful"},
		{name: "Missing MFA", user: "alice", password: "alice123", reason: "MFA required but not provided"},
		{name: "Empty MFA", user: "bob", password: "bob456", code: strPtr(""), reason: "MFA required but not provided"},
		{name: "Bad MFA", user: "bob", password: "bob456", code: strPtr("12"), reason: "Invalid MFA code format"},
		{name: "Wrong Password Wins", user: "alice", password: "x", code: strPtr("12"), reason: "Invalid password"},
		{name: "No MFA User", user: "carol", password: "carol789", want: true, reason: "Authentication successful"},
		{name: "No MFA User Ignores Bad Code", user: "carol", password: "carol789", code: strPtr("x"), want: true, reason: "Authentication successful"},
		{name: "Unknown User", user: "eve", password: "x", reason: "User not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := auth.Authenticate(tt.user, tt.password, tt.code)
			if got.Allowed != tt.want {
				t.Errorf("Authenticate() allowed = %v, want %v", got.Allowed, tt.want)
			}
			if got.Reason.String() != tt.reason {
				t.Errorf("Authenticate() reason = %q, want %q", got.Reason.String(), tt.reason)
			}
		})
	}
}
