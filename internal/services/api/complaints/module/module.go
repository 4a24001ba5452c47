// Package module wires complaint queries into the API using modkit
package module

import (
	"net/http"

	modkit "gripewatch/internal/modkit"
	"gripewatch/internal/modkit/httpkit"
	str "gripewatch/internal/platform/strings"

	comphttp "gripewatch/internal/services/api/complaints/http"
	compdom "gripewatch/internal/services/complaints/domain"
)

// Ports declares the required injected service port(s) for this API module
type Ports struct {
	Query     compdom.QueryPort
	Retention compdom.RetentionPort
}

// Module implements the complaints API module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)
}

// New constructs the complaints API module around injected service ports
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("complaints"),
		modkit.WithPrefix("/complaints"),
	}, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Query == nil || injected.Retention == nil {
		panic("complaints API module requires Query and Retention ports (from services/complaints)")
	}

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		ports:     injected,
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		comphttp.Register(r, comphttp.Deps{
			Query:     injected.Query,
			Retention: injected.Retention,
		})
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }
