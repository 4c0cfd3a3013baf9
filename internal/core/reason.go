package core

import (
	"fmt"
	"strings"
)

// ReasonKind discriminates the outcome of an evaluation step.
type ReasonKind string

const (
	ReasonNone ReasonKind = ""

	// authentication
	ReasonUserNotFound     ReasonKind = "user_not_found"
	ReasonInvalidPassword  ReasonKind = "invalid_password"
	ReasonPasswordVerified ReasonKind = "password_verified"
	ReasonMFANotRequired   ReasonKind = "mfa_not_required"
	ReasonInvalidMFAFormat ReasonKind = "invalid_mfa_format"
	ReasonMFAVerified      ReasonKind = "mfa_verified"
	ReasonMFAMissing       ReasonKind = "mfa_missing"
	ReasonAuthenticated    ReasonKind = "authenticated"

	// posture
	ReasonDeviceNonCompliant ReasonKind = "device_non_compliant"
	ReasonDeviceUnknown      ReasonKind = "device_unknown"

	// segmentation
	ReasonResourceNotFound        ReasonKind = "resource_not_found"
	ReasonRoleNotAllowed          ReasonKind = "role_not_allowed"
	ReasonDeviceNotAllowed        ReasonKind = "device_not_allowed"
	ReasonMFANotUsed              ReasonKind = "mfa_not_used"
	ReasonCompliantDeviceRequired ReasonKind = "compliant_device_required"
)

// Reason explains a verdict. Kind selects the variant, the remaining fields
// carry the payload of the variants that need one.
type Reason struct {
	Kind ReasonKind `json:"kind,omitempty"`

	// Role is set for ReasonRoleNotAllowed.
	Role Role `json:"role,omitempty"`
	// Device is set for ReasonDeviceNotAllowed.
	Device string `json:"device,omitempty"`
	// FailedControls is set for ReasonDeviceNonCompliant.
	FailedControls []PostureControl `json:"failed_controls,omitempty"`
}

func ReasonOf(kind ReasonKind) Reason {
	return Reason{Kind: kind}
}

// IsDenial reports whether the reason only ever accompanies a negative verdict.
func (r Reason) IsDenial() bool {
	switch r.Kind {
	case ReasonNone, ReasonPasswordVerified, ReasonMFANotRequired, ReasonMFAVerified, ReasonAuthenticated:
		return false
	default:
		return true
	}
}

// String renders the human-readable reason text recorded in event logs.
func (r Reason) String() string {
	switch r.Kind {
	case ReasonNone:
		return ""
	case ReasonUserNotFound:
		return "User not found"
	case ReasonInvalidPassword:
		return "Invalid password"
	case ReasonPasswordVerified:
		return "Password verified"
	case ReasonMFANotRequired:
		return "MFA not required"
	case ReasonInvalidMFAFormat:
		return "Invalid MFA code format"
	case ReasonMFAVerified:
		return "MFA verified"
	case ReasonMFAMissing:
		return "MFA required but not provided"
	case ReasonAuthenticated:
		return "Authentication successful"
	case ReasonDeviceNonCompliant:
		names := make([]string, len(r.FailedControls))
		for i, c := range r.FailedControls {
			names[i] = string(c)
		}
		return "Device non-compliant: " + strings.Join(names, ", ")
	case ReasonDeviceUnknown:
		return "Device posture unknown"
	case ReasonResourceNotFound:
		return "Resource not found"
	case ReasonRoleNotAllowed:
		return fmt.Sprintf("Role %s not allowed", r.Role.QualifiedName())
	case ReasonDeviceNotAllowed:
		return fmt.Sprintf("Device %s not allowed", r.Device)
	case ReasonMFANotUsed:
		return "MFA required but not used"
	case ReasonCompliantDeviceRequired:
		return "Compliant device required"
	}
	return fmt.Sprintf("unknown reason '%s'", r.Kind)
}

// Verdict is the outcome of an evaluation step or of a full access decision.
type Verdict struct {
	Allowed bool   `json:"allowed"`
	Reason  Reason `json:"reason"`
}

func Allow(kind ReasonKind) Verdict {
	return Verdict{Allowed: true, Reason: ReasonOf(kind)}
}

func Deny(reason Reason) Verdict {
	return Verdict{Allowed: false, Reason: reason}
}
