package service

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	perr "gripewatch/internal/platform/errors"
	"gripewatch/internal/services/monitor/domain"
)

// journalTimeout bounds the best-effort journal append after a cycle
const journalTimeout = 5 * time.Second

// runCycle fetches for one entity and reconciles results into storage.
// Failures are logged and journaled; the schedule always continues
func (s *Service) runCycle(ctx context.Context, entity string, tr domain.Trigger, inflight *atomic.Bool) {
	started := s.now().UTC()
	e := domain.CycleEntry{
		CycleID:   uuid.NewString(),
		Entity:    entity,
		Trigger:   string(tr),
		StartedAt: started,
	}

	if s.cfg.InflightGuard && inflight != nil {
		if !inflight.CompareAndSwap(false, true) {
			s.log.Warn().Str("entity", entity).Str("trigger", string(tr)).Msg("cycle skipped, previous still running")
			e.Outcome = domain.OutcomeSkipped
			s.journalCycle(e)
			return
		}
		defer inflight.Store(false)
	}

	log := s.log.With().
		Str("entity", entity).
		Str("trigger", string(tr)).
		Str("cycle", e.CycleID).
		Logger()
	log.Debug().Msg("cycle started")

	recs, err := s.ports.Fetcher.Fetch(ctx, entity)
	if err != nil {
		e.Outcome = outcomeFor(err)
		e.Detail = err.Error()
		e.DurationMS = s.sinceMS(started)
		log.Error().Err(err).Str("outcome", e.Outcome).Msg("cycle fetch failed")
		s.journalCycle(e)
		return
	}
	e.Fetched = uint32(len(recs))

	if len(recs) == 0 {
		e.Outcome = domain.OutcomeEmpty
		e.DurationMS = s.sinceMS(started)
		log.Info().Msg("cycle found no complaints")
		s.journalCycle(e)
		return
	}

	res, err := s.ports.Writer.UpsertBatch(ctx, recs)
	e.Inserted = uint32(res.Inserted)
	e.Duplicates = uint32(res.Duplicate)
	if err != nil {
		e.Outcome = outcomeFor(err)
		e.Detail = err.Error()
		e.DurationMS = s.sinceMS(started)
		log.Error().Err(err).
			Int("fetched", len(recs)).
			Int("inserted", res.Inserted).
			Msg("cycle persist failed")
		s.journalCycle(e)
		return
	}

	e.Outcome = domain.OutcomeOK
	e.DurationMS = s.sinceMS(started)
	log.Info().
		Int("fetched", len(recs)).
		Int("inserted", res.Inserted).
		Int("duplicate", res.Duplicate).
		Uint64("duration_ms", e.DurationMS).
		Msg("cycle complete")
	s.journalCycle(e)
}

// journalCycle appends best-effort with its own deadline,
// the cycle context may already be exhausted by a slow fetch
func (s *Service) journalCycle(e domain.CycleEntry) {
	ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
	defer cancel()
	if err := s.journal.Record(ctx, e); err != nil {
		s.log.Warn().Err(err).Str("entity", e.Entity).Msg("cycle journal write failed")
	}
}

func (s *Service) sinceMS(started time.Time) uint64 {
	d := s.now().UTC().Sub(started)
	if d < 0 {
		return 0
	}
	return uint64(d.Milliseconds())
}

// outcomeFor names the failure class for the journal
func outcomeFor(err error) string {
	switch perr.CodeOf(err) {
	case perr.ErrorCodeNotFound:
		return "not_found"
	case perr.ErrorCodeBlocked:
		return "blocked"
	case perr.ErrorCodeNetwork:
		return "network"
	case perr.ErrorCodeInvalidArgument, perr.ErrorCodeValidation:
		return "invalid"
	case perr.ErrorCodeDB, perr.ErrorCodeUnavailable:
		return "storage"
	default:
		return "unknown"
	}
}
