package engine

import (
	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/core"
)

// Segmenter enforces per-resource access policies.
type Segmenter struct {
	policies core.PolicyRepository
}

func NewSegmenter(policies core.PolicyRepository) *Segmenter {
	return &Segmenter{policies: policies}
}

// CheckAccess applies the policy of resource. The checks run in a fixed order
// and the first failing one determines the reason.
func (s *Segmenter) CheckAccess(user, device, resource string, usedMFA, isCompliant bool) core.Verdict {
	role, ok := s.policies.RoleOf(user)
	if !ok {
		return core.Deny(core.ReasonOf(core.ReasonUserNotFound))
	}

	policy, ok := s.policies.PolicyFor(resource)
	if !ok {
		return core.Deny(core.ReasonOf(core.ReasonResourceNotFound))
	}

	if !policy.AllowsRole(role) {
		return core.Deny(core.Reason{Kind: core.ReasonRoleNotAllowed, Role: role})
	}
	if !policy.AllowsDevice(device) {
		return core.Deny(core.Reason{Kind: core.ReasonDeviceNotAllowed, Device: device})
	}
	if policy.RequireMFA && !usedMFA {
		return core.Deny(core.ReasonOf(core.ReasonMFANotUsed))
	}
	if policy.RequireCompliant && !isCompliant {
		return core.Deny(core.ReasonOf(core.ReasonCompliantDeviceRequired))
	}

	return core.Allow(core.ReasonNone)
}

// AllowedResources lists the resources whose policy admits the user's role,
// regardless of device, MFA or compliance.
func (s *Segmenter) AllowedResources(user string) []string {
	role, ok := s.policies.RoleOf(user)
	if !ok {
		return nil
	}

	var allowed []string
	for _, res := range s.policies.Resources() {
		if p, ok := s.policies.PolicyFor(res); ok && p.AllowsRole(role) {
			allowed = append(allowed, res)
		}
	}
	return allowed
}
