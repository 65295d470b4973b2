package kit

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
)

const notFoundMsg = "Not Found"

// Rule binds a method and a path pattern to a handler. A pattern segment
// written as {name} captures a run of decimal digits.
type Rule struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

type route struct {
	method  string
	pattern string
	re      *regexp.Regexp
	names   []string
	handler http.HandlerFunc
}

// Dispatcher matches requests against an ordered rule table. The first rule
// whose method and pattern both match wins. The table is fixed at construction.
type Dispatcher struct {
	routes []route
}

func NewDispatcher(rules ...Rule) (*Dispatcher, error) {
	routes := make([]route, 0, len(rules))
	for _, rule := range rules {
		if rule.Handler == nil {
			return nil, fmt.Errorf("rule %s %s: nil handler", rule.Method, rule.Pattern)
		}
		re, names, err := compilePattern(rule.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule %s %s: %w", rule.Method, rule.Pattern, err)
		}
		routes = append(routes, route{
			method:  rule.Method,
			pattern: rule.Pattern,
			re:      re,
			names:   names,
			handler: rule.Handler,
		})
	}
	return &Dispatcher{routes: routes}, nil
}

func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rt, params, ok := d.match(r.Method, r.URL.Path)
	if !ok {
		WriteError(w, http.StatusNotFound, notFoundMsg)
		return
	}
	if len(params) > 0 {
		r = r.WithContext(context.WithValue(r.Context(), paramsKey, params))
	}
	rt.handler(w, r)
}

// RouteLabel returns the pattern of the rule r would be dispatched to.
func (d *Dispatcher) RouteLabel(r *http.Request) string {
	if rt, _, ok := d.match(r.Method, r.URL.Path); ok {
		return rt.pattern
	}
	return "unmatched"
}

func (d *Dispatcher) match(method, path string) (route, map[string]string, bool) {
	for _, rt := range d.routes {
		if rt.method != method {
			continue
		}
		m := rt.re.FindStringSubmatch(path)
		if m == nil {
			continue
		}
		var params map[string]string
		if len(rt.names) > 0 {
			params = make(map[string]string, len(rt.names))
			for i, name := range rt.names {
				params[name] = m[i+1]
			}
		}
		return rt, params, true
	}
	return route{}, nil, false
}

func compilePattern(pattern string) (*regexp.Regexp, []string, error) {
	if !strings.HasPrefix(pattern, "/") {
		return nil, nil, fmt.Errorf("pattern must start with /")
	}

	var (
		b     strings.Builder
		names []string
	)
	b.WriteString("^")
	for _, seg := range strings.Split(pattern[1:], "/") {
		b.WriteString("/")
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			name := seg[1 : len(seg)-1]
			if name == "" {
				return nil, nil, fmt.Errorf("empty parameter name")
			}
			names = append(names, name)
			b.WriteString(`(\d+)`)
			continue
		}
		b.WriteString(regexp.QuoteMeta(seg))
	}
	b.WriteString("$")

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, nil, err
	}
	return re, names, nil
}

type ctxKey string

const paramsKey ctxKey = "path_params"

// PathParam returns a segment captured by the matched rule, or "".
func PathParam(r *http.Request, name string) string {
	params, _ := r.Context().Value(paramsKey).(map[string]string)
	return params[name]
}
