package engine

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/core"
)

const (
	StepAuthentication = "authentication"
	StepPosture        = "posture"
	StepSegmentation   = "segmentation"
)

// Engine composes authentication, device posture and segmentation into a single access decision.
type Engine struct {
	controls core.Controls

	auth    *Authenticator
	posture *PostureChecker
	seg     *Segmenter
}

type Option func(*options)

type options struct {
	now         func() time.Time
	maxPatchAge time.Duration
}

// WithClock overrides the clock used for patch age evaluation.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func WithMaxPatchAge(d time.Duration) Option {
	return func(o *options) {
		o.maxPatchAge = d
	}
}

// New creates a new Engine that enforces the given controls.
func New(
	users core.UserRepository,
	devices core.DeviceRepository,
	policies core.PolicyRepository,
	controls core.Controls,
	opts ...Option,
) *Engine {
	o := options{
		now:         time.Now,
		maxPatchAge: DefaultMaxPatchAge,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Engine{
		controls: controls,
		auth:     NewAuthenticator(users),
		posture:  NewPostureChecker(devices, o.now, o.maxPatchAge),
		seg:      NewSegmenter(policies),
	}
}

// WithControls returns an engine sharing the same repositories but enforcing other controls.
func (e *Engine) WithControls(controls core.Controls) *Engine {
	clone := *e
	clone.controls = controls
	return &clone
}

func (e *Engine) Controls() core.Controls {
	return e.controls
}

func (e *Engine) Authenticator() *Authenticator {
	return e.auth
}

func (e *Engine) Segmenter() *Segmenter {
	return e.seg
}

// CheckPosture measures the posture of a device, independently of the active controls.
func (e *Engine) CheckPosture(deviceID string) (core.PostureStatus, []core.PostureControl) {
	return e.posture.CheckPosture(deviceID)
}

// Decide evaluates the request and returns the final verdict.
// With all controls disabled every request is allowed without a reason.
func (e *Engine) Decide(req core.AccessRequest) core.Verdict {
	return e.Trace(req).Verdict
}

// Trace evaluates the request like Decide and records the result of every step.
// Evaluation stops at the first failing step, later steps are not recorded.
func (e *Engine) Trace(req core.AccessRequest) core.EvaluationTrace {
	trace := core.EvaluationTrace{
		User:     req.User,
		Device:   req.Device,
		Resource: req.Resource,
		Method:   req.Method,
		Steps:    make([]core.StepResult, 0, 3),
	}

	record := func(step string, v core.Verdict) {
		trace.Steps = append(trace.Steps, core.StepResult{
			Step:   step,
			Passed: v.Allowed,
			Reason: v.Reason.String(),
		})
	}
	skip := func(step string) {
		trace.Steps = append(trace.Steps, core.StepResult{
			Step:    step,
			Passed:  true,
			Skipped: true,
		})
	}
	deny := func(v core.Verdict) core.EvaluationTrace {
		trace.Verdict = v
		log.Debug().
			Str("user", req.User).
			Str("device", req.Device).
			Str("resource", req.Resource).
			Str("reason", v.Reason.String()).
			Msg("access denied")
		return trace
	}

	// authentication
	if e.controls.Auth {
		v := e.auth.Authenticate(req.User, req.Password, mfaCode(req))
		record(StepAuthentication, v)
		if !v.Allowed {
			return deny(v)
		}
	} else {
		skip(StepAuthentication)
	}

	// posture is always measured, segmentation depends on it
	status, failed := e.posture.CheckPosture(req.Device)
	trace.Posture = status
	if e.controls.Posture {
		var v core.Verdict
		switch status {
		case core.PostureNonCompliant:
			v = core.Deny(core.Reason{Kind: core.ReasonDeviceNonCompliant, FailedControls: failed})
		case core.PostureUnknown:
			v = core.Deny(core.ReasonOf(core.ReasonDeviceUnknown))
		default:
			v = core.Allow(core.ReasonNone)
		}
		record(StepPosture, v)
		if !v.Allowed {
			return deny(v)
		}
	} else {
		skip(StepPosture)
	}

	// segmentation, only for resource requests
	if e.controls.Segmentation && req.Resource != "" {
		usedMFA := req.Method == core.MethodMFA
		isCompliant := status == core.PostureCompliant
		v := e.seg.CheckAccess(req.User, req.Device, req.Resource, usedMFA, isCompliant)
		record(StepSegmentation, v)
		if !v.Allowed {
			return deny(v)
		}
	} else {
		skip(StepSegmentation)
	}

	trace.Verdict = core.Allow(core.ReasonNone)
	return trace
}

func mfaCode(req core.AccessRequest) *string {
	if req.MFACode != nil {
		return req.MFACode
	}
	if req.Method == core.MethodMFA {
		code := SimulatedMFACode
		return &code
	}
	return nil
}
