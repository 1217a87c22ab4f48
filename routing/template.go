package routing

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/jrsteele09/go-care-portal/internal/errors"
)

// pathTemplate is a parsed path such as /medical-portal/patients/[id]. Segments
// wrapped in brackets are positional parameters matching exactly one segment.
type pathTemplate struct {
	raw      string
	segments []string
	params   []string
}

func parseTemplate(raw string) (pathTemplate, error) {
	if !strings.HasPrefix(raw, "/") {
		return pathTemplate{}, fmt.Errorf("path %q must start with /", raw)
	}
	t := pathTemplate{raw: raw, segments: splitPath(raw)}
	for _, seg := range t.segments {
		if seg == "" {
			return pathTemplate{}, fmt.Errorf("path %q has an empty segment", raw)
		}
		if name, ok := paramName(seg); ok {
			t.params = append(t.params, name)
		}
	}
	return t, nil
}

// splitPath returns the segments of p. The root path has no segments.
func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

func paramName(seg string) (string, bool) {
	if len(seg) > 2 && seg[0] == '[' && seg[len(seg)-1] == ']' {
		return seg[1 : len(seg)-1], true
	}
	return "", false
}

// match reports whether segs is exactly this template and returns the
// parameter values in positional order.
func (t pathTemplate) match(segs []string) ([]string, bool) {
	if len(segs) != len(t.segments) {
		return nil, false
	}
	return t.matchPrefix(segs)
}

// matchPrefix reports whether segs starts with this template.
func (t pathTemplate) matchPrefix(segs []string) ([]string, bool) {
	if len(segs) < len(t.segments) {
		return nil, false
	}
	var params []string
	for i, seg := range t.segments {
		if _, ok := paramName(seg); ok {
			if segs[i] == "" {
				return nil, false
			}
			params = append(params, segs[i])
			continue
		}
		if segs[i] != seg {
			return nil, false
		}
	}
	return params, true
}

// overlaps reports whether some concrete path would match both templates.
func (t pathTemplate) overlaps(other pathTemplate) bool {
	if len(t.segments) != len(other.segments) {
		return false
	}
	for i := range t.segments {
		_, p1 := paramName(t.segments[i])
		_, p2 := paramName(other.segments[i])
		if !p1 && !p2 && t.segments[i] != other.segments[i] {
			return false
		}
	}
	return true
}

func (t pathTemplate) fill(params []string) (string, error) {
	if len(params) != len(t.params) {
		return "", fmt.Errorf("%s wants %d parameter(s), got %d: %w", t.raw, len(t.params), len(params), errors.ErrMissingRouteParam)
	}
	if len(t.segments) == 0 {
		return "/", nil
	}
	out := make([]string, len(t.segments))
	next := 0
	for i, seg := range t.segments {
		if _, ok := paramName(seg); ok {
			if params[next] == "" {
				return "", fmt.Errorf("%s: empty value for [%s]: %w", t.raw, t.params[next], errors.ErrMissingRouteParam)
			}
			out[i] = url.PathEscape(params[next])
			next++
			continue
		}
		out[i] = seg
	}
	return "/" + strings.Join(out, "/"), nil
}

// hasSegmentPrefix reports whether path equals prefix or continues it with a slash.
func hasSegmentPrefix(path, prefix string) bool {
	if prefix == "/" {
		return true
	}
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}
