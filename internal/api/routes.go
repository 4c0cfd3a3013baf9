package api

const (
	HealthCheckRoute = "/healthz"
	AboutRoute       = "/about"
	MetricsRoute     = "/metrics"

	DecideRoute    = "/v1/decide"
	DecisionsRoute = "/v1/decisions"
	AccessRoute    = "/v1/access"
	PostureRoute   = "/v1/posture/{device}"
	ResourcesRoute = "/v1/resources/{user}"
	ControlsRoute  = "/v1/controls"
)
