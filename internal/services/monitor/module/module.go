// Package module wires the monitor scheduler as a worker module
package module

import (
	"context"

	"gripewatch/internal/adapters/scrape"
	modkit "gripewatch/internal/modkit"
	"gripewatch/internal/modkit/httpkit"
	compdom "gripewatch/internal/services/complaints/domain"
	complaintsmod "gripewatch/internal/services/complaints/module"
	"gripewatch/internal/services/monitor/domain"
	"gripewatch/internal/services/monitor/repo"
	monsvc "gripewatch/internal/services/monitor/service"
)

// Ports exposed by the monitor module
type Ports struct {
	Registry domain.RegistryPort
	Ledger   domain.LedgerPort
	Journal  domain.JournalPort
}

// Module owns the scheduler lifecycle. Transport lives in the api layer,
// so it mounts no routes of its own
type Module struct {
	deps  modkit.Deps
	ports Ports
	svc   *monsvc.Service
}

// New constructs the monitor module. The scrape client is built from SCRAPE_*
// config; writer and retention ports come from the complaints module
func New(deps modkit.Deps, opts Options, cp complaintsmod.Ports) *Module {
	if cp.Writer == nil {
		panic("monitor module requires the complaints Writer port")
	}

	client := scrape.NewClient(scrape.FromConfig(deps.Cfg.Prefix("SCRAPE_")))

	journal := repo.NewJournalNoop()
	if deps.CH != nil {
		journal = repo.NewJournalCH(deps.CH)
	}

	svc := monsvc.New(
		deps.PG,
		repo.NewLedgerPG(),
		journal,
		domain.Ports{
			Fetcher:   fetchAdapter{c: client},
			Writer:    cp.Writer,
			Retention: cp.Retention,
		},
		monsvc.Config{
			InflightGuard: opts.InflightGuard,
			RetentionDays: opts.RetentionDays,
			CycleTimeout:  opts.CycleTimeout,
		},
	)

	m := &Module{deps: deps, svc: svc}
	m.ports = Ports{Registry: svc, Ledger: svc, Journal: svc}
	return m
}

// Resume installs one job per active ledger row, used once after boot
func (m *Module) Resume(ctx context.Context) (int, error) { return m.svc.Resume(ctx) }

// Shutdown stops the cron runner and drains in-flight cycles, bounded by ctx
func (m *Module) Shutdown(ctx context.Context) error { return m.svc.Shutdown(ctx) }

// Name satisfies modkit.Module
func (m *Module) Name() string { return "monitor" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(httpkit.Router) {}

// fetchAdapter narrows the scrape client onto the domain Fetcher port
type fetchAdapter struct{ c *scrape.Client }

func (f fetchAdapter) Fetch(ctx context.Context, entity string) ([]compdom.RecordWrite, error) {
	xs, err := f.c.Fetch(ctx, entity)
	if err != nil {
		return nil, err
	}
	out := make([]compdom.RecordWrite, 0, len(xs))
	for _, x := range xs {
		out = append(out, compdom.RecordWrite{
			ExternalID:  x.ExternalID,
			Entity:      x.Entity,
			Title:       x.Title,
			Description: x.Description,
			Status:      x.Status,
			OccurredAt:  x.OccurredAt,
			Location:    x.Location,
			Link:        x.Link,
			CollectedAt: x.CollectedAt,
		})
	}
	return out, nil
}
