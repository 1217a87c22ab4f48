package server

import (
	"regexp"

	"github.com/jrsteele09/go-care-portal/routing"
)

var routeParam = regexp.MustCompile(`\[([^\]/]+)\]`)

func (s *Server) initRoutes() {
	registered := make(map[string]bool)
	for _, route := range s.table.Routes() {
		keys := routing.KeysFor(route.App)
		for _, locale := range routing.Locales() {
			pattern := muxPattern(route.Paths[locale])
			if registered[pattern] {
				continue // the same path in both locales
			}
			registered[pattern] = true

			if route.Activation {
				s.RegisterRouteFunc("GET "+pattern, s.ActivationHandler(route))
				continue
			}
			s.RegisterRouteFunc("GET "+pattern, s.PageHandler(route))

			switch {
			case route.Role == routing.RoleLogin:
				s.RegisterRouteFunc("POST "+pattern, s.LoginSubmissionHandler(route))
			case route.App != "" && route.Key == keys.Register:
				s.RegisterRouteFunc("POST "+pattern, s.RegisterSubmissionHandler(route))
			}
		}
	}

	s.RegisterRouteFunc("POST "+RouteLogout, s.LogoutHandler())
	s.RegisterRouteFunc("GET "+RouteHealth, s.HealthHandler())
	s.RegisterRouteHandler("GET "+RouteMetrics, s.metrics.Handler())
	s.RegisterRouteFunc("GET "+RouteStatic, s.StaticFileHandler())
	s.RegisterRouteFunc("/", s.NotFoundHandler())
}

// muxPattern turns a route table path into a ServeMux pattern.
func muxPattern(path string) string {
	if path == "/" {
		return "/{$}"
	}
	return routeParam.ReplaceAllString(path, "{$1}")
}
