package kit

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RoutePatternLabel keeps metric path labels bounded: chi's own pattern when
// the request hit a chi route, otherwise the pattern of the dispatcher rule.
func RoutePatternLabel(d *Dispatcher) func(*http.Request) string {
	return func(r *http.Request) string {
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if rp := rctx.RoutePattern(); rp != "" && rp != "/*" {
				return rp
			}
		}
		if d == nil {
			return r.URL.Path
		}
		return d.RouteLabel(r)
	}
}
