// Package router maps front-end paths to view names. The table is fixed at
// construction and resolved in order, first exact match wins.
package router

import (
	"fmt"
	"strings"
)

// View names
const (
	ViewInicio          = "inicio"
	ViewAlumnos         = "alumnos"
	ViewCarreras        = "carreras"
	ViewCiclosEscolares = "ciclos-escolares"
	ViewCuentas         = "cuentas"
	ViewMetodosPago     = "metodos-pago"
	ViewConceptos       = "conceptos"
	ViewObservaciones   = "observaciones"
	ViewRoles           = "roles"
	ViewUsuarios        = "usuarios"
)

// Route binds a path pattern to a view
type Route struct {
	Pattern string `json:"path"`
	View    string `json:"view"`
}

// Router is an immutable ordered route table
type Router struct {
	routes []Route
}

// New validates routes and builds a router. Patterns must start with "/" and
// neither patterns nor view names may repeat.
func New(routes ...Route) (*Router, error) {
	patterns := make(map[string]bool, len(routes))
	views := make(map[string]bool, len(routes))
	table := make([]Route, 0, len(routes))

	for _, r := range routes {
		if !strings.HasPrefix(r.Pattern, "/") {
			return nil, fmt.Errorf("route pattern %q must start with /", r.Pattern)
		}
		if r.View == "" {
			return nil, fmt.Errorf("route %q has no view", r.Pattern)
		}
		pattern := normalize(r.Pattern)
		if patterns[pattern] {
			return nil, fmt.Errorf("duplicate route pattern %q", pattern)
		}
		if views[r.View] {
			return nil, fmt.Errorf("duplicate view %q", r.View)
		}
		patterns[pattern] = true
		views[r.View] = true
		table = append(table, Route{Pattern: pattern, View: r.View})
	}

	return &Router{routes: table}, nil
}

// Default returns the application route table. The root path mounts the
// home view directly.
func Default() *Router {
	r, err := New(
		Route{Pattern: "/", View: ViewInicio},
		Route{Pattern: "/alumnos", View: ViewAlumnos},
		Route{Pattern: "/carreras", View: ViewCarreras},
		Route{Pattern: "/ciclos-escolares", View: ViewCiclosEscolares},
		Route{Pattern: "/cuentas", View: ViewCuentas},
		Route{Pattern: "/metodos-pago", View: ViewMetodosPago},
		Route{Pattern: "/conceptos", View: ViewConceptos},
		Route{Pattern: "/observaciones", View: ViewObservaciones},
		Route{Pattern: "/roles", View: ViewRoles},
		Route{Pattern: "/usuarios", View: ViewUsuarios},
	)
	if err != nil {
		panic(err)
	}
	return r
}

// Resolve returns the route mounted at path
func (r *Router) Resolve(path string) (Route, bool) {
	path = normalize(path)
	for _, route := range r.routes {
		if route.Pattern == path {
			return route, true
		}
	}
	return Route{}, false
}

// Routes returns a copy of the table in resolution order
func (r *Router) Routes() []Route {
	out := make([]Route, len(r.routes))
	copy(out, r.routes)
	return out
}

// normalize drops trailing slashes, keeping the root as "/"
func normalize(path string) string {
	if path == "" {
		return "/"
	}
	trimmed := strings.TrimRight(path, "/")
	if trimmed == "" {
		return "/"
	}
	return trimmed
}
