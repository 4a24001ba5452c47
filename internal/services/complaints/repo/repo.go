// Package repo provides postgres access for complaints
package repo

import (
	"context"
	"fmt"
	"strings"

	"gripewatch/internal/modkit/repokit"
	perr "gripewatch/internal/platform/errors"
	"gripewatch/internal/services/complaints/domain"
)

type binder struct{}

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the complaints repository
type Storage interface {
	UpsertBatch(ctx context.Context, xs []domain.RecordWrite) (domain.UpsertResult, error)
	Recent(ctx context.Context, entity string, limit int) ([]domain.Record, error)
	Search(ctx context.Context, q domain.Query) ([]domain.Record, error)
	PurgeOlderThan(ctx context.Context, days int) (int64, error)
	CountOlderThan(ctx context.Context, days int) (int64, error)
}

type pg struct{ q repokit.Queryer }

const insertSQL = `
INSERT INTO complaints
	(external_id, entity, title, description, status, occurred_at, location, link, collected_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (external_id, entity) DO NOTHING
`

// UpsertBatch implements Storage
// Each record is its own statement so a mid-batch failure keeps prior inserts;
// NULL external ids never conflict and always insert
func (s *pg) UpsertBatch(ctx context.Context, xs []domain.RecordWrite) (domain.UpsertResult, error) {
	var res domain.UpsertResult
	for i, x := range xs {
		tag, err := s.q.Exec(ctx, insertSQL,
			x.ExternalID, x.Entity, x.Title, x.Description,
			x.Status, x.OccurredAt, x.Location, x.Link, x.CollectedAt,
		)
		if err != nil {
			return res, perr.FromPostgresf(err, "complaints upsert aborted at record %d of %d", i+1, len(xs))
		}
		if tag.RowsAffected() == 0 {
			res.Duplicate++
			continue
		}
		res.Inserted++
	}
	return res, nil
}

const selectCols = `
	id, external_id, entity, title, description, status,
	occurred_at, location, link, collected_at`

// Recent implements Storage
func (s *pg) Recent(ctx context.Context, entity string, limit int) ([]domain.Record, error) {
	sql := `SELECT` + selectCols + `
FROM complaints
WHERE entity = $1
ORDER BY collected_at DESC, id DESC
LIMIT $2`

	rows, err := s.q.Query(ctx, sql, entity, limit)
	if err != nil {
		return nil, perr.FromPostgres(err, "complaints recent query failed")
	}
	defer rows.Close()
	return scanRecords(rows, limit)
}

// Search implements Storage
func (s *pg) Search(ctx context.Context, q domain.Query) ([]domain.Record, error) {
	var args []any
	arg := func(v any) string { args = append(args, v); return fmt.Sprintf("$%d", len(args)) }

	var conds []string
	if q.Entity != "" {
		conds = append(conds, "entity = "+arg(q.Entity))
	}
	if q.Status != "" {
		conds = append(conds, "status = "+arg(q.Status))
	}
	if q.From != nil {
		conds = append(conds, "collected_at >= "+arg(*q.From))
	}
	if q.To != nil {
		conds = append(conds, "collected_at < "+arg(*q.To))
	}

	var sb strings.Builder
	sb.WriteString(`SELECT` + selectCols + "\nFROM complaints\n")
	if len(conds) > 0 {
		sb.WriteString("WHERE " + strings.Join(conds, "\n  AND ") + "\n")
	}
	sb.WriteString("ORDER BY collected_at DESC, id DESC\nLIMIT " + arg(q.Limit))

	rows, err := s.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, perr.FromPostgres(err, "complaints search query failed")
	}
	defer rows.Close()
	return scanRecords(rows, q.Limit)
}

// PurgeOlderThan implements Storage
func (s *pg) PurgeOlderThan(ctx context.Context, days int) (int64, error) {
	const sql = `DELETE FROM complaints WHERE collected_at < now() - ($1::int * INTERVAL '1 day')`
	tag, err := s.q.Exec(ctx, sql, days)
	if err != nil {
		return 0, perr.FromPostgresf(err, "complaints purge failed for %d days", days)
	}
	return tag.RowsAffected(), nil
}

// CountOlderThan implements Storage
func (s *pg) CountOlderThan(ctx context.Context, days int) (int64, error) {
	const sql = `SELECT count(*) FROM complaints WHERE collected_at < now() - ($1::int * INTERVAL '1 day')`
	var n int64
	if err := s.q.QueryRow(ctx, sql, days).Scan(&n); err != nil {
		return 0, perr.FromPostgresf(err, "complaints retention count failed for %d days", days)
	}
	return n, nil
}

func scanRecords(rows repokit.Rows, capHint int) ([]domain.Record, error) {
	if capHint < 0 {
		capHint = 0
	}
	out := make([]domain.Record, 0, capHint)
	for rows.Next() {
		var r domain.Record
		if err := rows.Scan(
			&r.ID, &r.ExternalID, &r.Entity, &r.Title, &r.Description,
			&r.Status, &r.OccurredAt, &r.Location, &r.Link, &r.CollectedAt,
		); err != nil {
			return nil, perr.FromPostgres(err, "complaints row scan failed")
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
