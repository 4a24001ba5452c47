package repo

import (
	"context"

	perr "gripewatch/internal/platform/errors"
	"gripewatch/internal/platform/store"
	"gripewatch/internal/services/monitor/domain"
)

// cycleTable is the append-only journal of fetch cycle outcomes
const cycleTable = "cycle_log"

const (
	journalDefaultLimit = 50
	journalMaxLimit     = 500
)

// Journal appends and reads fetch cycle outcomes
type Journal interface {
	Record(ctx context.Context, e domain.CycleEntry) error
	Recent(ctx context.Context, entity string, limit int) ([]domain.CycleEntry, error)
}

// NewJournalCH constructs a journal over the clickhouse seam
func NewJournalCH(ch store.Clickhouse) Journal { return &chJournal{ch: ch} }

// NewJournalNoop returns a journal that drops writes and reads empty,
// used when the process runs without clickhouse
func NewJournalNoop() Journal { return noopJournal{} }

type chJournal struct{ ch store.Clickhouse }

// Record implements Journal
func (j *chJournal) Record(ctx context.Context, e domain.CycleEntry) error {
	row := []any{
		e.CycleID, e.Entity, e.Trigger,
		e.Fetched, e.Inserted, e.Duplicates,
		e.Outcome, e.Detail, e.DurationMS, e.StartedAt,
	}
	if err := j.ch.Insert(ctx, cycleTable, [][]any{row}); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeDB, "cycle journal append failed for %q", e.Entity)
	}
	return nil
}

// Recent implements Journal, newest first
func (j *chJournal) Recent(ctx context.Context, entity string, limit int) ([]domain.CycleEntry, error) {
	if limit <= 0 {
		limit = journalDefaultLimit
	}
	if limit > journalMaxLimit {
		limit = journalMaxLimit
	}

	sql := `
SELECT cycle_id, entity, trigger, fetched, inserted, duplicates,
	outcome, detail, duration_ms, started_at
FROM ` + cycleTable
	var args []any
	if entity != "" {
		sql += `
WHERE entity = ?`
		args = append(args, entity)
	}
	sql += `
ORDER BY started_at DESC
LIMIT ?`
	args = append(args, limit)

	rows, err := j.ch.Query(ctx, sql, args...)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "cycle journal query failed")
	}
	defer rows.Close()

	out := make([]domain.CycleEntry, 0, limit)
	for rows.Next() {
		var e domain.CycleEntry
		if err := rows.Scan(
			&e.CycleID, &e.Entity, &e.Trigger,
			&e.Fetched, &e.Inserted, &e.Duplicates,
			&e.Outcome, &e.Detail, &e.DurationMS, &e.StartedAt,
		); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeDB, "cycle journal row scan failed")
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type noopJournal struct{}

func (noopJournal) Record(context.Context, domain.CycleEntry) error { return nil }

func (noopJournal) Recent(context.Context, string, int) ([]domain.CycleEntry, error) {
	return nil, nil
}
