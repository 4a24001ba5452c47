// Package http provides http transport for stored complaint queries
package http

import (
	stdhttp "net/http"
	"time"

	"gripewatch/internal/modkit/httpkit"
	perr "gripewatch/internal/platform/errors"
	"gripewatch/internal/services/api/complaints/domain"
	compdom "gripewatch/internal/services/complaints/domain"
)

// Deps are the complaints service ports the handlers call
type Deps struct {
	Query     compdom.QueryPort
	Retention compdom.RetentionPort
}

// Register mounts complaints endpoints on the given router
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}
	httpkit.PostJSON[domain.RecentInput](r, "/recent", h.recent)
	httpkit.PostJSON[domain.QueryInput](r, "/query", h.query)
	httpkit.PostJSON[domain.PurgeInput](r, "/purge", h.purge)
}

type handlers struct{ deps Deps }

// swagger:route POST /complaints/recent Complaints complaintsRecent
// @Summary Latest stored complaints for an entity, newest first
// @Tags Complaints
// @Accept json
// @Produce json
// @Param payload body domain.RecentInput true "Query"
// @Success 200 {array} domain.Complaint "ok"
// @Router /complaints/recent [post]
func (h *handlers) recent(r *stdhttp.Request, in domain.RecentInput) (any, error) {
	recs, err := h.deps.Query.Recent(r.Context(), in.Entity, in.Limit)
	if err != nil {
		return nil, err
	}
	return domain.Complaints(recs), nil
}

// swagger:route POST /complaints/query Complaints complaintsQuery
// @Summary Search stored complaints with combined filters
// @Tags Complaints
// @Accept json
// @Produce json
// @Param payload body domain.QueryInput true "Filters"
// @Success 200 {array} domain.Complaint "ok"
// @Router /complaints/query [post]
func (h *handlers) query(r *stdhttp.Request, in domain.QueryInput) (any, error) {
	q := compdom.Query{Entity: in.Entity, Status: in.Status, Limit: in.Limit}

	var err error
	if q.From, err = parseTime("from", in.From); err != nil {
		return nil, err
	}
	if q.To, err = parseTime("to", in.To); err != nil {
		return nil, err
	}

	recs, err := h.deps.Query.Search(r.Context(), q)
	if err != nil {
		return nil, err
	}
	return domain.Complaints(recs), nil
}

// swagger:route POST /complaints/purge Complaints complaintsPurge
// @Summary Remove stored complaints older than the keep window
// @Tags Complaints
// @Accept json
// @Produce json
// @Param payload body domain.PurgeInput true "Keep window"
// @Success 200 {object} domain.PurgeOutput "ok"
// @Router /complaints/purge [post]
func (h *handlers) purge(r *stdhttp.Request, in domain.PurgeInput) (any, error) {
	removed, err := h.deps.Retention.PurgeOlderThan(r.Context(), in.Days)
	if err != nil {
		return nil, err
	}
	return domain.PurgeOutput{Removed: removed}, nil
}

// parseTime turns an optional RFC3339 field into a bound
func parseTime(field, v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, perr.InvalidArgf("%s must be RFC3339, got %q", field, v)
	}
	return &t, nil
}
