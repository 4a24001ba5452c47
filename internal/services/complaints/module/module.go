// Package module implements the complaints service module
package module

import (
	"gripewatch/internal/modkit"
	"gripewatch/internal/modkit/httpkit"
	"gripewatch/internal/modkit/repokit"
	"gripewatch/internal/services/complaints/domain"
	"gripewatch/internal/services/complaints/repo"
	"gripewatch/internal/services/complaints/service"
)

// Ports exposed by the complaints module
type Ports struct {
	Writer    domain.WriterPort
	Query     domain.QueryPort
	Retention domain.RetentionPort
}

// Module implements the complaints service module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new complaints module
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)

	binder := repo.NewPG()
	svc := service.New(repokit.TxRunner(deps.PG), binder, service.Config{
		DefaultLimit: opts.DefaultLimit,
		MaxLimit:     opts.MaxLimit,
	})

	m := &Module{deps: deps}
	m.ports = Ports{
		Writer:    svc,
		Query:     svc,
		Retention: svc,
	}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "complaints" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}
