package client

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/api"
	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/core"
	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/engine"
	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/store"
)

func newClient(t *testing.T) *Client {
	t.Helper()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	fx := store.DefaultFixtures(now)
	eng := engine.New(fx.Users, fx.Devices, fx.Policies, core.AllControls(),
		engine.WithClock(func() time.Time { return now }))
	srv := httptest.NewServer(api.NewServer(engine.NewManager(eng), nil).Routes())
	t.Cleanup(srv.Close)
	return New(srv.URL)
}

func TestURLBuilder(t *testing.T) {
	c := New("localhost:8080/")
	assert.Equal(t, "http://localhost:8080/v1/posture/my%20laptop",
		c.url().setPath(api.PostureRoute).setPathValue("device", "my laptop").build())
	assert.Equal(t, "http://localhost:8080/v1/decide?limit=5",
		c.url().setPath(api.DecideRoute).addQueryParam("limit", 5).build())
}

func TestClient_Decide(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	trace, correlation, err := c.Decide(ctx, core.AccessRequest{
		User: "carol", Password: "carol789", Device: "phone-1",
		Resource: "/app/files", Method: core.MethodPassword,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, correlation)
	assert.Equal(t, correlation, trace.CorrelationID)
	assert.Equal(t, "carol", trace.User)

	_, _, err = c.Decide(ctx, core.AccessRequest{User: "carol"})
	var apiErr APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.StatusCode)
	assert.NotEmpty(t, apiErr.CorrelationID)
}

func TestClient_PostureAndResources(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	p, _, err := c.Posture(ctx, "laptop-1")
	require.NoError(t, err)
	assert.Equal(t, core.PostureCompliant, p.Status)

	res, _, err := c.Resources(ctx, "carol")
	require.NoError(t, err)
	assert.Equal(t, []string{"/app/files"}, res.Resources)
}

func TestClient_Controls(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	controls, _, err := c.Controls(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.AllControls(), controls)

	active, _, err := c.SetControls(ctx, core.Controls{Posture: true})
	require.NoError(t, err)
	assert.Equal(t, core.Controls{Posture: true}, active)

	v, _, err := c.CheckAccess(ctx, api.AccessPayload{
		User: "carol", Device: "vm-2", Resource: "/app/db", Compliant: true,
	})
	require.NoError(t, err)
	assert.False(t, v.Allowed)
}

func TestClient_Info(t *testing.T) {
	info, _, err := newClient(t).Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ztasim", info.Service)
}

func TestClient_ListDecisions(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	for _, password := range []string{"carol789", "wrong"} {
		_, _, err := c.Decide(ctx, core.AccessRequest{
			User: "carol", Password: password, Device: "laptop-1",
			Resource: "/app/files", Method: core.MethodPassword,
		})
		require.NoError(t, err)
	}

	events, _, err := c.ListDecisions(ctx, DecisionsOptions{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, core.DecisionAllow, events[0].Decision)

	denied, _, err := c.ListDecisions(ctx, DecisionsOptions{User: "carol", Decision: core.DecisionDeny, Limit: 5})
	require.NoError(t, err)
	require.Len(t, denied, 1)
	assert.Equal(t, "Invalid password", denied[0].Reason)

	_, _, err = c.ListDecisions(ctx, DecisionsOptions{Decision: "maybe"})
	var apiErr APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.StatusCode)
}
