package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-care-portal/apps"
	"github.com/jrsteele09/go-care-portal/auth"
	"github.com/jrsteele09/go-care-portal/routing"
	"github.com/jrsteele09/go-care-portal/sessions"
	"github.com/rs/zerolog/log"
)

const (
	formLogin    = "login"
	formRegister = "register"
)

// Link is a titled path rendered by the page template.
type Link struct {
	Path    string
	Title   string
	Current bool
}

type FormLabels struct {
	Email           string
	Password        string
	ConfirmPassword string
	FirstName       string
	LastName        string
	Login           string
	Register        string
}

// PageData is the model of page.html.
type PageData struct {
	Lang          string
	Title         string
	SiteName      string
	AppTitle      string
	HomePath      string
	Nav           []Link
	Links         []Link
	Alternate     string
	AlternateLang string
	LanguageLabel string
	LogoutPath    string
	LogoutLabel   string
	Welcome       string
	Error         string
	Notice        string
	Form          string
	FormAction    string
	Labels        FormLabels
}

// NotFoundData is the model of not_found.html.
type NotFoundData struct {
	Lang      string
	Title     string
	Body      string
	HomePath  string
	HomeTitle string
}

// PageHandler renders the page of route. Protected pages check the session
// again and answer with a not found page when it is missing.
func (s *Server) PageHandler(route *routing.Route) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := s.resolution(r)

		var user *sessions.Payload
		if route.App != "" && !route.Public {
			payload, ok := s.sessions.Current(r, route.App)
			if !ok {
				s.metrics.ObservePageRejection(route.App)
				s.renderNotFound(w, route.App, res.Locale)
				return
			}
			user = payload
		}

		data := s.pageData(r, route, res, user)
		s.pages.render(w, pageTemplate, http.StatusOK, data)
	}
}

// ActivationHandler activates the account named by the code in the path and
// renders the outcome.
func (s *Server) ActivationHandler(route *routing.Route) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := s.resolution(r)
		data := s.pageData(r, route, res, nil)

		code := ""
		if len(res.Params) > 0 {
			code = res.Params[0]
		}
		if _, err := s.service.Activate(r.Context(), route.App, code); err != nil {
			log.Debug().Err(err).Str("app", route.App.String()).Msg("Activation failed")
			data.Error = errorMessage(res.Locale, errorCode(err))
			s.pages.render(w, pageTemplate, http.StatusNotFound, data)
			return
		}

		data.Notice = message(res.Locale, "page.activated")
		s.pages.render(w, pageTemplate, http.StatusOK, data)
	}
}

// LoginSubmissionHandler checks the login form of route's application and
// starts a session on success.
func (s *Server) LoginSubmissionHandler(route *routing.Route) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := s.resolution(r)
		app := route.App
		loginPath := route.Paths[res.Locale]

		if err := r.ParseForm(); err != nil {
			redirectWithError(w, r, loginPath, errCodeInvalidForm)
			return
		}

		payload, err := s.service.Login(r.Context(), app, r.FormValue("email"), r.FormValue("password"))
		s.metrics.ObserveLogin(app, err == nil)
		if err != nil {
			log.Debug().Err(err).Str("app", app.String()).Msg("Login failed")
			redirectWithError(w, r, loginPath, errorCode(err))
			return
		}

		if err := s.sessions.Create(w, app, *payload); err != nil {
			log.Error().Err(err).Str("app", app.String()).Msg("Failed to create session")
			redirectWithError(w, r, loginPath, errCodeUnexpected)
			return
		}
		redirectSuccess(w, r, s.table.DashboardRoute(app).Paths[res.Locale])
	}
}

// RegisterSubmissionHandler creates an unverified account from the sign up
// form of route's application.
func (s *Server) RegisterSubmissionHandler(route *routing.Route) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := s.resolution(r)
		app := route.App
		registerPath := route.Paths[res.Locale]

		if err := r.ParseForm(); err != nil {
			redirectWithError(w, r, registerPath, errCodeInvalidForm)
			return
		}

		user, err := s.service.Register(r.Context(), app, auth.RegisterRequest{
			Email:           r.FormValue("email"),
			Password:        r.FormValue("password"),
			ConfirmPassword: r.FormValue("confirm_password"),
			FirstName:       r.FormValue("first_name"),
			LastName:        r.FormValue("last_name"),
		})
		if err != nil {
			log.Debug().Err(err).Str("app", app.String()).Msg("Registration failed")
			redirectWithError(w, r, registerPath, errorCode(err))
			return
		}

		keys := routing.KeysFor(app)
		if !s.config.IsProduction() {
			// No mail is sent; development logs the link instead.
			activation, err := s.table.Localize(keys.Activate, res.Locale, user.ActivationCode)
			if err == nil {
				log.Info().Str("app", app.String()).Str("email", user.Email).Str("link", activation).Msg("Account registered")
			}
		}
		redirectSuccess(w, r, s.table.MustLocalize(keys.RegisterSuccess, res.Locale))
	}
}

// LogoutHandler deletes the session cookie of the application in the path and
// returns to its login page in the locale given by ?lang=.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		app, err := apps.Parse(r.PathValue("app"))
		if err != nil {
			s.renderNotFound(w, "", routing.DefaultLocale)
			return
		}
		locale, err := routing.ParseLocale(r.URL.Query().Get("lang"))
		if err != nil {
			locale = routing.DefaultLocale
		}

		s.sessions.Destroy(w, app)
		redirectSuccess(w, r, s.table.LoginRoute(app).Paths[locale])
	}
}

func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

// NotFoundHandler answers every path the mux does not know.
func (s *Server) NotFoundHandler() http.HandlerFunc {
	classifier := routing.NewClassifier(s.table)
	return func(w http.ResponseWriter, r *http.Request) {
		res := s.resolution(r)
		cl := classifier.Classify(r.URL.Path)
		locale := res.Locale
		if cl.Matched() {
			locale = cl.Locale
		}
		s.renderNotFound(w, cl.App, locale)
	}
}

func (s *Server) renderNotFound(w http.ResponseWriter, app apps.App, locale routing.Locale) {
	data := NotFoundData{
		Lang:      locale.String(),
		Title:     message(locale, "page.not_found.title"),
		Body:      message(locale, "page.not_found.body"),
		HomePath:  s.table.MustLocalize(routing.KeyHome, locale),
		HomeTitle: s.config.GetAppName(),
	}
	if app != "" {
		data.HomePath = s.table.LoginRoute(app).Paths[locale]
		data.HomeTitle = message(locale, "app."+app.String())
	}
	s.pages.render(w, notFoundTemplate, http.StatusNotFound, data)
}

// resolution returns the locale resolution the pipeline stored on r.
func (s *Server) resolution(r *http.Request) routing.Resolution {
	if res, ok := ResolutionFromContext(r.Context()); ok {
		return res
	}
	return s.table.ResolveIncoming(r.URL.Path)
}

func (s *Server) pageData(r *http.Request, route *routing.Route, res routing.Resolution, user *sessions.Payload) PageData {
	locale := res.Locale
	alternate := otherLocale(locale)

	data := PageData{
		Lang:          locale.String(),
		Title:         route.Title(locale),
		SiteName:      s.config.GetAppName(),
		HomePath:      s.table.MustLocalize(routing.KeyHome, locale),
		Alternate:     s.table.Alternate(r.URL.Path, alternate),
		AlternateLang: alternate.String(),
		LanguageLabel: message(locale, "nav.language"),
		Error:         errorMessage(locale, r.URL.Query().Get("error")),
		FormAction:    r.URL.Path,
		Labels: FormLabels{
			Email:           message(locale, "form.email"),
			Password:        message(locale, "form.password"),
			ConfirmPassword: message(locale, "form.confirm_password"),
			FirstName:       message(locale, "form.first_name"),
			LastName:        message(locale, "form.last_name"),
			Login:           message(locale, "form.login"),
			Register:        message(locale, "form.register"),
		},
	}

	if route.App == "" {
		for _, app := range apps.All() {
			data.Links = append(data.Links, Link{
				Path:  s.table.LoginRoute(app).Paths[locale],
				Title: message(locale, "app."+app.String()),
			})
		}
		return data
	}

	keys := routing.KeysFor(route.App)
	data.AppTitle = message(locale, "app."+route.App.String())
	data.HomePath = s.table.MustLocalize(keys.Home, locale)

	switch route.Key {
	case keys.Login:
		data.Form = formLogin
		data.Links = s.links(locale, keys.Register, keys.ForgotPassword)
	case keys.Register:
		data.Form = formRegister
		data.Links = s.links(locale, keys.Login)
	case keys.RegisterSuccess:
		data.Notice = message(locale, "page.register_success")
		data.Links = s.links(locale, keys.Login)
	case keys.ForgotPassword:
		data.Notice = message(locale, "page.forgot_password")
		data.Links = s.links(locale, keys.Login)
	case keys.Activate:
		data.Links = s.links(locale, keys.Login)
	}

	if user != nil {
		data.Welcome = fmt.Sprintf(message(locale, "page.welcome"), user.DisplayName())
		data.LogoutPath = logoutPath(route.App, locale)
		data.LogoutLabel = message(locale, "nav.logout")
		data.Nav = s.navigation(route, locale)
	}
	return data
}

// links returns links to parameterless routes of the table.
func (s *Server) links(locale routing.Locale, keys ...routing.Key) []Link {
	links := make([]Link, 0, len(keys))
	for _, key := range keys {
		route, err := s.table.Route(key)
		if err != nil {
			continue
		}
		links = append(links, Link{Path: route.Paths[locale], Title: route.Title(locale)})
	}
	return links
}

// navigation lists the protected pages of the current application.
func (s *Server) navigation(current *routing.Route, locale routing.Locale) []Link {
	var nav []Link
	for _, route := range s.table.Routes() {
		if route.App != current.App || route.Public || len(route.Params()) > 0 {
			continue
		}
		nav = append(nav, Link{
			Path:    route.Paths[locale],
			Title:   route.Title(locale),
			Current: route.Key == current.Key,
		})
	}
	return nav
}

func logoutPath(app apps.App, locale routing.Locale) string {
	return strings.Replace(RouteLogout, "{app}", app.String(), 1) + "?lang=" + locale.String()
}

func otherLocale(locale routing.Locale) routing.Locale {
	for _, l := range routing.Locales() {
		if l != locale {
			return l
		}
	}
	return locale
}
