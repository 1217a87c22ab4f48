package server

import (
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/jrsteele09/go-care-portal/auth"
	"github.com/jrsteele09/go-care-portal/routing"
)

type ResultKind int

const (
	// Pass lets the request reach the page handlers.
	Pass ResultKind = iota
	// Redirect answers the request with a redirect.
	Redirect
)

// Result is the pipeline's outcome for one request.
type Result struct {
	Kind       ResultKind
	Status     int
	Location   string
	Decision   auth.Decision
	Resolution routing.Resolution
}

// Pipeline runs the session gate and then locale resolution. It holds no
// per-request state, so the same request always yields the same Result.
type Pipeline struct {
	gate     *auth.Gate
	table    *routing.Table
	observer func(Result)
}

type PipelineOption func(*Pipeline)

// WithObserver is called with every result before it is applied.
func WithObserver(observe func(Result)) PipelineOption {
	return func(p *Pipeline) {
		p.observer = observe
	}
}

func NewPipeline(gate *auth.Gate, table *routing.Table, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{gate: gate, table: table}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Handle decides what to do with r without writing anything.
func (p *Pipeline) Handle(r *http.Request) Result {
	reqPath := r.URL.Path
	if d := p.gate.Decide(reqPath, r); d.Redirect {
		return Result{
			Kind:     Redirect,
			Status:   redirectStatus(r.Method),
			Location: d.Location,
			Decision: d,
		}
	}
	return p.resolveLocale(r)
}

func (p *Pipeline) resolveLocale(r *http.Request) Result {
	reqPath := r.URL.Path

	// The URL never carries a locale prefix; a prefixed request is sent to
	// the page's spelling in that locale.
	if locale, rest, ok := splitLocalePrefix(reqPath); ok {
		target := localPath(rest)
		if res := p.table.ResolveIncoming(target); res.Matched {
			if localized, err := p.table.Localize(res.Key, locale, res.Params...); err == nil {
				target = localized
			}
		}
		return p.redirectTo(r, target, redirectStatus(r.Method), locale)
	}

	if len(reqPath) > 1 && strings.HasSuffix(reqPath, "/") {
		trimmed := localPath(reqPath)
		res := p.table.ResolveIncoming(trimmed)
		return p.redirectTo(r, trimmed, http.StatusPermanentRedirect, res.Locale)
	}

	return Result{Kind: Pass, Resolution: p.table.ResolveIncoming(reqPath)}
}

func (p *Pipeline) redirectTo(r *http.Request, target string, status int, locale routing.Locale) Result {
	target = localPath(target)
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	return Result{
		Kind:       Redirect,
		Status:     status,
		Location:   target,
		Resolution: routing.Resolution{Path: target, Locale: locale},
	}
}

// localPath reduces p to a clean path on this host. Repeated slashes and
// backslashes collapse into one slash so that a redirect built from the raw
// request path can never name another host.
func localPath(p string) string {
	cleaned := path.Clean("/" + strings.ReplaceAll(p, "\\", "/"))
	if u, err := url.Parse(cleaned); err != nil || u.Host != "" || u.Scheme != "" {
		return "/"
	}
	return cleaned
}

func splitLocalePrefix(reqPath string) (routing.Locale, string, bool) {
	trimmed := strings.TrimPrefix(reqPath, "/")
	first, rest, _ := strings.Cut(trimmed, "/")
	locale, err := routing.ParseLocale(first)
	if err != nil {
		return "", "", false
	}
	return locale, "/" + rest, true
}

// redirectStatus keeps GET and HEAD as they are and turns form posts into a GET.
func redirectStatus(method string) int {
	if method == http.MethodGet || method == http.MethodHead {
		return http.StatusTemporaryRedirect
	}
	return http.StatusSeeOther
}

// Middleware applies Handle in front of next. Passing requests carry their
// resolution in the context.
func (p *Pipeline) Middleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result := p.Handle(r)
		if p.observer != nil {
			p.observer(result)
		}
		if result.Kind == Redirect {
			http.Redirect(w, r, result.Location, result.Status)
			return
		}
		w.Header().Set("Content-Language", string(result.Resolution.Locale))
		next(w, r.WithContext(WithResolution(r.Context(), result.Resolution)))
	}
}
