// Package repo provides the monitor ledger and cycle journal
package repo

import (
	"context"

	"gripewatch/internal/modkit/repokit"
	perr "gripewatch/internal/platform/errors"
	"gripewatch/internal/services/monitor/domain"
)

// LedgerStore is the durable desired state, one row per entity
type LedgerStore interface {
	UpsertActive(ctx context.Context, entity, token string) error
	Deactivate(ctx context.Context, entity string) (bool, error)
	ListAll(ctx context.Context) ([]domain.Watch, error)
	ListActive(ctx context.Context) ([]domain.Watch, error)
}

type ledgerBinder struct{}

// NewLedgerPG constructs a new ledger binder for Postgres
func NewLedgerPG() repokit.Binder[LedgerStore] { return ledgerBinder{} }

// Bind implements repokit.Binder
func (ledgerBinder) Bind(q repokit.Queryer) LedgerStore { return &ledgerPG{q: q} }

type ledgerPG struct{ q repokit.Queryer }

// UpsertActive implements LedgerStore
// Re-registering an entity overwrites the interval and reactivates the row
func (s *ledgerPG) UpsertActive(ctx context.Context, entity, token string) error {
	const sql = `
INSERT INTO monitor_configs (entity, interval_token)
VALUES ($1, $2)
ON CONFLICT (entity) DO UPDATE
SET interval_token = EXCLUDED.interval_token,
	active = TRUE,
	updated_at = now()
`
	if _, err := s.q.Exec(ctx, sql, entity, token); err != nil {
		return perr.FromPostgresf(err, "monitor ledger upsert failed for %q", entity)
	}
	return nil
}

// Deactivate implements LedgerStore
// Reports whether a row was actually flipped
func (s *ledgerPG) Deactivate(ctx context.Context, entity string) (bool, error) {
	const sql = `UPDATE monitor_configs SET active = FALSE, updated_at = now() WHERE entity = $1 AND active`
	tag, err := s.q.Exec(ctx, sql, entity)
	if err != nil {
		return false, perr.FromPostgresf(err, "monitor ledger deactivate failed for %q", entity)
	}
	return tag.RowsAffected() > 0, nil
}

const watchCols = `entity, interval_token, active, created_at, updated_at`

// ListAll implements LedgerStore
func (s *ledgerPG) ListAll(ctx context.Context) ([]domain.Watch, error) {
	return s.list(ctx, `SELECT `+watchCols+` FROM monitor_configs ORDER BY entity`)
}

// ListActive implements LedgerStore
func (s *ledgerPG) ListActive(ctx context.Context) ([]domain.Watch, error) {
	return s.list(ctx, `SELECT `+watchCols+` FROM monitor_configs WHERE active ORDER BY entity`)
}

func (s *ledgerPG) list(ctx context.Context, sql string) ([]domain.Watch, error) {
	rows, err := s.q.Query(ctx, sql)
	if err != nil {
		return nil, perr.FromPostgres(err, "monitor ledger list failed")
	}
	defer rows.Close()

	var out []domain.Watch
	for rows.Next() {
		var w domain.Watch
		if err := rows.Scan(&w.Entity, &w.IntervalToken, &w.Active, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, perr.FromPostgres(err, "monitor ledger row scan failed")
		}
		out = append(out, w)
	}
	return out, rows.Err()
}
