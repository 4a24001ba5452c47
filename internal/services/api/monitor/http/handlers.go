// Package http provides http transport for monitor commands
package http

import (
	stdhttp "net/http"
	"strconv"

	"gripewatch/internal/modkit/httpkit"
	"gripewatch/internal/services/api/monitor/domain"
	mondom "gripewatch/internal/services/monitor/domain"
)

// Deps are the monitor worker ports the handlers call
type Deps struct {
	Registry mondom.RegistryPort
	Ledger   mondom.LedgerPort
	Journal  mondom.JournalPort
}

// Register mounts monitor endpoints on the given router
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}
	httpkit.PostJSON[domain.StartInput](r, "/start", h.start)
	httpkit.PostJSON[domain.StopInput](r, "/stop", h.stop)
	httpkit.Get(r, "/list", h.list)
	httpkit.Get(r, "/jobs", h.jobs)
	httpkit.PostJSON[domain.FetchInput](r, "/fetch", h.fetch)
	httpkit.Get(r, "/cycles", h.cycles)
}

type handlers struct{ deps Deps }

// swagger:route POST /monitor/start Monitor monitorStart
// @Summary Start or replace recurring monitoring for an entity
// @Tags Monitor
// @Accept json
// @Produce json
// @Param payload body domain.StartInput true "Registration"
// @Success 200 {object} domain.StartOutput "ok"
// @Router /monitor/start [post]
func (h *handlers) start(r *stdhttp.Request, in domain.StartInput) (any, error) {
	job, err := h.deps.Registry.Start(r.Context(), in.Entity, in.Interval)
	if err != nil {
		return nil, err
	}
	return domain.StartOutput{Entity: job.Entity, Interval: job.Token}, nil
}

// swagger:route POST /monitor/stop Monitor monitorStop
// @Summary Stop monitoring an entity, idempotent when no job runs
// @Tags Monitor
// @Accept json
// @Produce json
// @Param payload body domain.StopInput true "Entity"
// @Success 200 {object} domain.StopOutput "ok"
// @Router /monitor/stop [post]
func (h *handlers) stop(r *stdhttp.Request, in domain.StopInput) (any, error) {
	found := h.deps.Registry.Stop(r.Context(), in.Entity)

	// keep the ledger view honest: list reads the ledger, not the registry
	if err := h.deps.Ledger.Deactivate(r.Context(), in.Entity); err != nil {
		return nil, err
	}
	return domain.StopOutput{Entity: in.Entity, Stopped: found}, nil
}

// swagger:route GET /monitor/list Monitor monitorList
// @Summary List monitored entities from the configuration ledger
// @Tags Monitor
// @Produce json
// @Success 200 {array} domain.WatchRow "ok"
// @Router /monitor/list [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	ws, err := h.deps.Ledger.Watches(r.Context())
	if err != nil {
		return nil, err
	}
	return domain.WatchRows(ws), nil
}

// swagger:route GET /monitor/jobs Monitor monitorJobs
// @Summary Snapshot the in-memory job registry
// @Tags Monitor
// @Produce json
// @Success 200 {array} domain.JobRow "ok"
// @Router /monitor/jobs [get]
func (h *handlers) jobs(_ *stdhttp.Request) (any, error) {
	return domain.JobRows(h.deps.Registry.Jobs()), nil
}

// swagger:route POST /monitor/fetch Monitor monitorFetch
// @Summary Fetch live complaints for an entity without persisting them
// @Tags Monitor
// @Accept json
// @Produce json
// @Param payload body domain.FetchInput true "Entity"
// @Success 200 {array} domain.Complaint "ok"
// @Router /monitor/fetch [post]
func (h *handlers) fetch(r *stdhttp.Request, in domain.FetchInput) (any, error) {
	recs, err := h.deps.Registry.FetchNow(r.Context(), in.Entity)
	if err != nil {
		return nil, err
	}
	return domain.Complaints(recs), nil
}

// swagger:route GET /monitor/cycles Monitor monitorCycles
// @Summary Recent journaled fetch cycles, newest first
// @Tags Monitor
// @Produce json
// @Param entity query string false "Filter by entity"
// @Param limit query int false "Max rows"
// @Success 200 {array} domain.CycleRow "ok"
// @Router /monitor/cycles [get]
func (h *handlers) cycles(r *stdhttp.Request) (any, error) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))

	es, err := h.deps.Journal.RecentCycles(r.Context(), q.Get("entity"), limit)
	if err != nil {
		return nil, err
	}
	return domain.CycleRows(es), nil
}
