package client

import (
	"context"

	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/api"
	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/core"
)

// Decide evaluates a full access request on the server and returns its trace.
func (c *Client) Decide(ctx context.Context, req core.AccessRequest) (*core.EvaluationTrace, string, error) {
	var trace core.EvaluationTrace
	correlation, err := c.post(ctx, c.url().
		setPath(api.DecideRoute).
		build(), req, &trace)
	return &trace, correlation, err
}

// CheckAccess runs only the segmentation step on the server.
func (c *Client) CheckAccess(ctx context.Context, payload api.AccessPayload) (*api.VerdictResponse, string, error) {
	var resp api.VerdictResponse
	correlation, err := c.post(ctx, c.url().
		setPath(api.AccessRoute).
		build(), payload, &resp)
	return &resp, correlation, err
}

func (c *Client) Posture(ctx context.Context, device string) (*api.PostureResponse, string, error) {
	var resp api.PostureResponse
	correlation, err := c.get(ctx, c.url().
		setPath(api.PostureRoute).
		setPathValue("device", device).
		build(), &resp)
	return &resp, correlation, err
}

func (c *Client) Resources(ctx context.Context, user string) (*api.ResourcesResponse, string, error) {
	var resp api.ResourcesResponse
	correlation, err := c.get(ctx, c.url().
		setPath(api.ResourcesRoute).
		setPathValue("user", user).
		build(), &resp)
	return &resp, correlation, err
}

func (c *Client) Controls(ctx context.Context) (core.Controls, string, error) {
	var controls core.Controls
	correlation, err := c.get(ctx, c.url().
		setPath(api.ControlsRoute).
		build(), &controls)
	return controls, correlation, err
}

// SetControls replaces the controls the server enforces and returns the active set.
func (c *Client) SetControls(ctx context.Context, controls core.Controls) (core.Controls, string, error) {
	var active core.Controls
	correlation, err := c.put(ctx, c.url().
		setPath(api.ControlsRoute).
		build(), controls, &active)
	return active, correlation, err
}

// DecisionsOptions filters the recent decisions listed by the server.
// Zero values are not sent.
type DecisionsOptions struct {
	Limit    int
	User     string
	Decision core.Decision
}

// ListDecisions returns the most recent decisions made by the server, oldest first.
func (c *Client) ListDecisions(ctx context.Context, opts DecisionsOptions) ([]core.Event, string, error) {
	b := c.url().setPath(api.DecisionsRoute)
	if opts.Limit > 0 {
		b.addQueryParam("limit", opts.Limit)
	}
	if opts.User != "" {
		b.addQueryParam("user", opts.User)
	}
	if opts.Decision != "" {
		b.addQueryParam("decision", opts.Decision)
	}

	var events []core.Event
	correlation, err := c.get(ctx, b.build(), &events)
	return events, correlation, err
}
