// Package service implements the monitor scheduling service
package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"gripewatch/internal/core/interval"
	"gripewatch/internal/modkit/repokit"
	perr "gripewatch/internal/platform/errors"
	"gripewatch/internal/platform/logger"
	"gripewatch/internal/platform/store"
	compdom "gripewatch/internal/services/complaints/domain"
	"gripewatch/internal/services/monitor/domain"
	"gripewatch/internal/services/monitor/repo"
)

// retentionCron fires the nightly purge when retention is configured
const retentionCron = "0 4 * * *"

const defaultCycleTimeout = 60 * time.Second

// Config for the monitor service
type Config struct {
	// InflightGuard skips a firing while the previous cycle for the entity runs
	InflightGuard bool

	// RetentionDays enables the nightly purge when > 0
	RetentionDays int

	// CycleTimeout bounds one fetch-and-persist cycle
	CycleTimeout time.Duration
}

// entry is one installed recurring job
type entry struct {
	id        cron.EntryID
	token     string
	startedAt time.Time
	inflight  *atomic.Bool
}

// Service owns the job registry and implements domain.RegistryPort,
// domain.LedgerPort and domain.JournalPort
type Service struct {
	db      repokit.TxRunner
	binder  repokit.Binder[repo.LedgerStore]
	ledger  repo.LedgerStore
	journal repo.Journal
	ports   domain.Ports
	cfg     Config

	cron *cron.Cron
	mu   sync.Mutex
	jobs map[string]*entry
	wg   sync.WaitGroup

	log *logger.Logger
	now func() time.Time
}

// New constructs the monitor service and starts its cron runner.
// The runner fires nothing until Start or Resume installs a job
func New(
	db repokit.TxRunner,
	binder repokit.Binder[repo.LedgerStore],
	journal repo.Journal,
	ports domain.Ports,
	cfg Config,
) *Service {
	if db == nil {
		panic("monitor.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("monitor.Service requires a non nil ledger binder")
	}
	if ports.Fetcher == nil {
		panic("monitor.Service requires a Fetcher port")
	}
	if ports.Writer == nil {
		panic("monitor.Service requires a complaints Writer port")
	}
	if journal == nil {
		journal = repo.NewJournalNoop()
	}
	if cfg.CycleTimeout <= 0 {
		cfg.CycleTimeout = defaultCycleTimeout
	}

	log := logger.Named("monitor")
	s := &Service{
		db:      db,
		binder:  binder,
		ledger:  binder.Bind(db),
		journal: journal,
		ports:   ports,
		cfg:     cfg,
		jobs:    make(map[string]*entry),
		log:     log,
		now:     time.Now,
	}

	cl := cronLog{log: log}
	s.cron = cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl)))

	if cfg.RetentionDays > 0 && ports.Retention != nil {
		if _, err := s.cron.AddFunc(retentionCron, s.runRetention); err != nil {
			panic(err)
		}
		log.Info().Int("days", cfg.RetentionDays).Str("at", retentionCron).Msg("retention job installed")
	}

	s.cron.Start()
	return s
}

// Start implements domain.RegistryPort
// The ledger write comes first: when it fails nothing is scheduled
func (s *Service) Start(ctx context.Context, entity, token string) (domain.Job, error) {
	entity = strings.TrimSpace(entity)
	if entity == "" {
		return domain.Job{}, perr.InvalidArgf("entity is required")
	}
	token = strings.ToLower(strings.TrimSpace(token))

	spec := interval.Resolve(token)
	if !spec.Recognized {
		s.log.Warn().
			Str("entity", entity).
			Str("token", token).
			Str("fallback", spec.Token).
			Msg("unrecognized interval token")
	}

	err := store.RunForEntity(ctx, s.db, entity, func(ctx context.Context, q store.RowQuerier) error {
		return s.binder.Bind(q).UpsertActive(ctx, entity, token)
	})
	if err != nil {
		return domain.Job{}, err
	}

	job, flag, err := s.install(entity, token, spec)
	if err != nil {
		return domain.Job{}, err
	}
	s.launch(entity, domain.TriggerManual, flag)
	return job, nil
}

// Stop implements domain.RegistryPort
// Only the in-memory job is removed; an in-flight cycle finishes on its own
func (s *Service) Stop(_ context.Context, entity string) bool {
	entity = strings.TrimSpace(entity)

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.jobs[entity]
	if !ok {
		return false
	}
	s.cron.Remove(e.id)
	delete(s.jobs, entity)
	s.log.Info().Str("entity", entity).Msg("job stopped")
	return true
}

// Jobs implements domain.RegistryPort
func (s *Service) Jobs() []domain.Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Job, 0, len(s.jobs))
	for entity, e := range s.jobs {
		out = append(out, domain.Job{Entity: entity, Token: e.token, StartedAt: e.startedAt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Entity < out[j].Entity })
	return out
}

// Watches implements domain.LedgerPort
func (s *Service) Watches(ctx context.Context) ([]domain.Watch, error) {
	return s.ledger.ListAll(ctx)
}

// Deactivate implements domain.LedgerPort
// Flipping an absent or already inactive row is not an error
func (s *Service) Deactivate(ctx context.Context, entity string) error {
	entity = strings.TrimSpace(entity)
	if entity == "" {
		return perr.InvalidArgf("entity is required")
	}
	return store.RunForEntity(ctx, s.db, entity, func(ctx context.Context, q store.RowQuerier) error {
		flipped, err := s.binder.Bind(q).Deactivate(ctx, entity)
		if err != nil {
			return err
		}
		if !flipped {
			s.log.Debug().Str("entity", entity).Msg("ledger row already inactive")
		}
		return nil
	})
}

// FetchNow implements domain.RegistryPort
// Live fetch only: no ledger write, no persistence, no journal entry
func (s *Service) FetchNow(ctx context.Context, entity string) ([]compdom.RecordWrite, error) {
	entity = strings.TrimSpace(entity)
	if entity == "" {
		return nil, perr.InvalidArgf("entity is required")
	}
	return s.ports.Fetcher.Fetch(ctx, entity)
}

// Resume implements domain.RegistryPort
// Installs one job per active ledger row, used once after boot
func (s *Service) Resume(ctx context.Context) (int, error) {
	watches, err := s.ledger.ListActive(ctx)
	if err != nil {
		return 0, err
	}

	installed := 0
	for _, w := range watches {
		spec := interval.Resolve(w.IntervalToken)
		if !spec.Recognized {
			s.log.Warn().
				Str("entity", w.Entity).
				Str("token", w.IntervalToken).
				Str("fallback", spec.Token).
				Msg("unrecognized interval token in ledger")
		}
		_, flag, err := s.install(w.Entity, w.IntervalToken, spec)
		if err != nil {
			s.log.Error().Err(err).Str("entity", w.Entity).Msg("resume install failed")
			continue
		}
		s.launch(w.Entity, domain.TriggerStartup, flag)
		installed++
	}

	if installed > 0 {
		s.log.Info().Int("jobs", installed).Msg("monitoring resumed from ledger")
	}
	return installed, nil
}

// RecentCycles implements domain.JournalPort
func (s *Service) RecentCycles(ctx context.Context, entity string, limit int) ([]domain.CycleEntry, error) {
	return s.journal.Recent(ctx, entity, limit)
}

// Shutdown implements domain.RegistryPort
// Stops the runner, then waits for scheduled and detached cycles, bounded by ctx
func (s *Service) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	n := len(s.jobs)
	s.jobs = make(map[string]*entry)
	s.mu.Unlock()

	drain := s.cron.Stop()

	detached := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(detached)
	}()

	for _, done := range []<-chan struct{}{drain.Done(), detached} {
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	s.log.Info().Int("jobs", n).Msg("scheduler drained")
	return nil
}

// install replaces any prior cron entry for the entity and records the job
func (s *Service) install(entity, token string, spec interval.Spec) (domain.Job, *atomic.Bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.jobs[entity]; ok {
		s.cron.Remove(prev.id)
		delete(s.jobs, entity)
	}

	flag := &atomic.Bool{}
	id, err := s.cron.AddFunc(spec.Cron, func() { s.fire(entity, domain.TriggerScheduled, flag) })
	if err != nil {
		return domain.Job{}, nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "cron install failed for %q", entity)
	}

	started := s.now().UTC()
	s.jobs[entity] = &entry{id: id, token: token, startedAt: started, inflight: flag}
	s.log.Info().
		Str("entity", entity).
		Str("token", token).
		Str("rule", spec.Cron).
		Msg("job installed")
	return domain.Job{Entity: entity, Token: token, StartedAt: started}, flag, nil
}

// launch runs one detached cycle tracked for shutdown draining
func (s *Service) launch(entity string, tr domain.Trigger, flag *atomic.Bool) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.fire(entity, tr, flag)
	}()
}

// fire runs one cycle under the service cycle timeout
// Scheduled firings have no caller context, so each cycle gets its own
func (s *Service) fire(entity string, tr domain.Trigger, flag *atomic.Bool) {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.CycleTimeout)
	defer cancel()
	s.runCycle(ctx, entity, tr, flag)
}

func (s *Service) runRetention() {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.CycleTimeout)
	defer cancel()

	removed, err := s.ports.Retention.PurgeOlderThan(ctx, s.cfg.RetentionDays)
	if err != nil {
		s.log.Error().Err(err).Int("days", s.cfg.RetentionDays).Msg("retention purge failed")
		return
	}
	s.log.Info().Int("days", s.cfg.RetentionDays).Int64("removed", removed).Msg("retention purge complete")
}
