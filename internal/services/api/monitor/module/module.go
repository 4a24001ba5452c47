// Package module wires monitor commands into the API using modkit
package module

import (
	"net/http"

	modkit "gripewatch/internal/modkit"
	"gripewatch/internal/modkit/httpkit"
	str "gripewatch/internal/platform/strings"

	monhttp "gripewatch/internal/services/api/monitor/http"
	mondom "gripewatch/internal/services/monitor/domain"
)

// Ports declares the required injected worker port(s) for this API module
type Ports struct {
	Registry mondom.RegistryPort
	Ledger   mondom.LedgerPort
	Journal  mondom.JournalPort
}

// Module implements the monitor API module
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

// New constructs the monitor API module around injected worker ports
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("monitor"),
		modkit.WithPrefix("/monitor"),
	}, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Registry == nil || injected.Ledger == nil || injected.Journal == nil {
		panic("monitor API module requires Registry, Ledger and Journal ports (from services/monitor)")
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
		monhttp.Register(r, monhttp.Deps{
			Registry: injected.Registry,
			Ledger:   injected.Ledger,
			Journal:  injected.Journal,
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
