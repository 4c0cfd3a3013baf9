package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/api/middleware"
	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/api/presenter"
	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/buildinfo"
	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/core"
)

// handleHealth responds with a simple OK status to indicate the server is healthy.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handleAbout responds with service information including version and commit hash.
func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	presenter.JSON(w, r, buildinfo.GetBuildInfo(), http.StatusOK)
}

func DecodePayload(r *http.Request, dest any, allowEmpty bool) error {
	switch r.Header.Get("Content-Type") {
	case "application/json", "":
		// strict encoding for JSON
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(dest); err != nil {
			if !errors.Is(err, io.EOF) || !allowEmpty {
				return err
			}
		}
		// ensure there's no extra data
		if dec.More() {
			return errors.New("extra data in request body")
		}
		return nil
	default:
		return errors.New("unsupported content type")
	}
}

// handleDecide evaluates a full access request and responds with its trace.
// A denial is a successful evaluation, so the status is 200 either way.
func (s *Server) handleDecide(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.Ctx(ctx)

	var req core.AccessRequest
	if err := DecodePayload(r, &req, false); err != nil {
		logger.Warn().Err(err).Msg("failed to decode decide request payload")
		presenter.Error(w, r, "invalid request payload", http.StatusBadRequest)
		return
	}
	if req.User == "" || req.Device == "" {
		presenter.Error(w, r, "user and device are required", http.StatusBadRequest)
		return
	}
	if req.Method == "" {
		req.Method = core.MethodPassword
	}

	logger.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("user", req.User).Str("device", req.Device)
	})

	trace := s.manager.Engine().Trace(req)
	trace.CorrelationID = middleware.CorrelationCtx(ctx)

	kind := core.EventAccess
	if req.Resource == "" {
		kind = core.EventLogin
	}
	event := core.Event{
		Timestamp: time.Now().UTC(),
		Kind:      kind,
		User:      req.User,
		Device:    req.Device,
		Posture:   string(trace.Posture),
		Resource:  req.Resource,
		Method:    req.Method,
	}.WithVerdict(trace.Verdict)
	s.collector.Observe("api", event)
	_ = s.recent.Write(event)

	logger.Info().
		Bool("allowed", trace.Verdict.Allowed).
		Str("reason", trace.Verdict.Reason.String()).
		Msg("access decided")

	presenter.JSON(w, r, trace, http.StatusOK)
}

const defaultDecisionLimit = 50

// handleDecisions lists the most recent decisions made by this server.
// Supports the query parameters: limit, user, decision.
func (s *Server) handleDecisions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.Ctx(ctx)

	query := r.URL.Query()

	limit := defaultDecisionLimit
	if l := query.Get("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed <= 0 {
			presenter.Error(w, r, "invalid limit parameter", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	user := query.Get("user")
	decision := core.Decision(query.Get("decision"))
	if decision != "" && decision != core.DecisionAllow && decision != core.DecisionDeny {
		presenter.Error(w, r, "invalid decision parameter", http.StatusBadRequest)
		return
	}

	var events []core.Event
	if user == "" && decision == "" {
		events = s.recent.GetRecent(limit)
	} else {
		events = s.recent.Find(func(ev core.Event) bool {
			if user != "" && ev.User != user {
				return false
			}
			if decision != "" && ev.Decision != decision {
				return false
			}
			return true
		}, limit)
	}
	if events == nil {
		events = []core.Event{}
	}

	logger.Debug().Int("count", len(events)).Msg("listed recent decisions")
	presenter.JSON(w, r, events, http.StatusOK)
}

// AccessPayload is a segmentation check for an already authenticated user.
type AccessPayload struct {
	User      string `json:"user"`
	Device    string `json:"device"`
	Resource  string `json:"resource"`
	UsedMFA   bool   `json:"used_mfa"`
	Compliant bool   `json:"compliant"`
}

type VerdictResponse struct {
	Allowed bool        `json:"allowed"`
	Reason  string      `json:"reason,omitempty"`
	Detail  core.Reason `json:"detail"`
}

func verdictResponse(v core.Verdict) VerdictResponse {
	return VerdictResponse{
		Allowed: v.Allowed,
		Reason:  v.Reason.String(),
		Detail:  v.Reason,
	}
}

// handleAccess runs only the segmentation step.
func (s *Server) handleAccess(w http.ResponseWriter, r *http.Request) {
	var payload AccessPayload
	if err := DecodePayload(r, &payload, false); err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Msg("failed to decode access request payload")
		presenter.Error(w, r, "invalid request payload", http.StatusBadRequest)
		return
	}
	if payload.User == "" || payload.Resource == "" {
		presenter.Error(w, r, "user and resource are required", http.StatusBadRequest)
		return
	}

	v := s.manager.Engine().Segmenter().CheckAccess(
		payload.User, payload.Device, payload.Resource, payload.UsedMFA, payload.Compliant)
	presenter.JSON(w, r, verdictResponse(v), http.StatusOK)
}

type PostureResponse struct {
	Device         string                `json:"device"`
	Status         core.PostureStatus    `json:"status"`
	FailedControls []core.PostureControl `json:"failed_controls"`
}

func (s *Server) handlePosture(w http.ResponseWriter, r *http.Request) {
	device := r.PathValue("device")
	status, failed := s.manager.Engine().CheckPosture(device)
	if failed == nil {
		failed = []core.PostureControl{}
	}
	presenter.JSON(w, r, PostureResponse{
		Device:         device,
		Status:         status,
		FailedControls: failed,
	}, http.StatusOK)
}

type ResourcesResponse struct {
	User      string   `json:"user"`
	Resources []string `json:"resources"`
}

// handleResources lists the resources a user's role may reach.
func (s *Server) handleResources(w http.ResponseWriter, r *http.Request) {
	user := r.PathValue("user")
	resources := s.manager.Engine().Segmenter().AllowedResources(user)
	if resources == nil {
		resources = []string{}
	}
	presenter.JSON(w, r, ResourcesResponse{User: user, Resources: resources}, http.StatusOK)
}

func (s *Server) handleGetControls(w http.ResponseWriter, r *http.Request) {
	presenter.JSON(w, r, s.manager.Engine().Controls(), http.StatusOK)
}

// handleSetControls swaps the enforced controls. In-flight decisions keep the controls they started with.
func (s *Server) handleSetControls(w http.ResponseWriter, r *http.Request) {
	var controls core.Controls
	if err := DecodePayload(r, &controls, false); err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Msg("failed to decode controls payload")
		presenter.Error(w, r, "invalid request payload", http.StatusBadRequest)
		return
	}

	eng := s.manager.SetControls(controls)
	log.Ctx(r.Context()).Info().
		Bool("auth", controls.Auth).
		Bool("posture", controls.Posture).
		Bool("segmentation", controls.Segmentation).
		Msg("controls updated")

	presenter.JSON(w, r, eng.Controls(), http.StatusOK)
}
