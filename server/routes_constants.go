package server

// Paths served outside the route table. Page paths come from routes.yaml.
const (
	RouteLogout  = "/logout/{app}"
	RouteHealth  = "/healthz"
	RouteMetrics = "/metrics"
	RouteStatic  = "/static/{file}"
)
