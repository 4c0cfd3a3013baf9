package engine

import (
	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/core"
)

// SimulatedMFACode is presented for every mfa request that carries no code of its own.
const SimulatedMFACode = "123456"

// Authenticator verifies static credentials. It never returns an error,
// every failure is a negative verdict.
type Authenticator struct {
	users core.UserRepository
}

func NewAuthenticator(users core.UserRepository) *Authenticator {
	return &Authenticator{users: users}
}

func (a *Authenticator) VerifyPassword(userID, password string) core.Verdict {
	user, ok := a.users.LookupUser(userID)
	if !ok {
		return core.Deny(core.ReasonOf(core.ReasonUserNotFound))
	}
	if user.Password != password {
		return core.Deny(core.ReasonOf(core.ReasonInvalidPassword))
	}
	return core.Allow(core.ReasonPasswordVerified)
}

// VerifyMFA accepts any well-formed code for users with MFA enabled.
func (a *Authenticator) VerifyMFA(userID, code string) core.Verdict {
	user, ok := a.users.LookupUser(userID)
	if !ok {
		return core.Deny(core.ReasonOf(core.ReasonUserNotFound))
	}
	if !user.MFAEnabled {
		return core.Allow(core.ReasonMFANotRequired)
	}
	if !isMFACode(code) {
		return core.Deny(core.ReasonOf(core.ReasonInvalidMFAFormat))
	}
	return core.Allow(core.ReasonMFAVerified)
}

// Authenticate checks the password first and the second factor only if the user has one.
func (a *Authenticator) Authenticate(userID, password string, code *string) core.Verdict {
	if v := a.VerifyPassword(userID, password); !v.Allowed {
		return v
	}

	// the user exists, VerifyPassword would have failed otherwise
	user, _ := a.users.LookupUser(userID)
	if user.MFAEnabled {
		if code == nil || *code == "" {
			return core.Deny(core.ReasonOf(core.ReasonMFAMissing))
		}
		if v := a.VerifyMFA(userID, *code); !v.Allowed {
			return v
		}
	}

	return core.Allow(core.ReasonAuthenticated)
}

// isMFACode reports whether code consists of exactly six ASCII digits.
func isMFACode(code string) bool {
	if len(code) != 6 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}
