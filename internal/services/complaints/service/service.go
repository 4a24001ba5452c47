// Package service contains complaints workflows
package service

import (
	"context"

	"gripewatch/internal/modkit/repokit"
	perr "gripewatch/internal/platform/errors"
	"gripewatch/internal/services/complaints/domain"
	"gripewatch/internal/services/complaints/repo"
)

// Config bounds query sizes for the complaints service
type Config struct {
	DefaultLimit int
	MaxLimit     int
}

// Service implements domain.WriterPort, domain.QueryPort and domain.RetentionPort
type Service struct {
	Storage repo.Storage
	Cfg     Config
}

// New constructs a new complaints service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Storage], cfg Config) *Service {
	if db == nil {
		panic("complaints.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("complaints.Service requires a non nil Storage binder")
	}
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 50
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = 200
	}
	return &Service{Storage: binder.Bind(db), Cfg: cfg}
}

// UpsertBatch implements domain.WriterPort
// An empty batch is a no op; mid-batch storage failures keep prior inserts
func (s *Service) UpsertBatch(ctx context.Context, xs []domain.RecordWrite) (domain.UpsertResult, error) {
	if len(xs) == 0 {
		return domain.UpsertResult{}, nil
	}
	return s.Storage.UpsertBatch(ctx, xs)
}

// Recent implements domain.QueryPort
func (s *Service) Recent(ctx context.Context, entity string, limit int) ([]domain.Record, error) {
	if entity == "" {
		return nil, perr.InvalidArgf("entity is required")
	}
	return s.Storage.Recent(ctx, entity, s.clamp(limit))
}

// Search implements domain.QueryPort
func (s *Service) Search(ctx context.Context, q domain.Query) ([]domain.Record, error) {
	q.Limit = s.clamp(q.Limit)
	return s.Storage.Search(ctx, q)
}

// PurgeOlderThan implements domain.RetentionPort
func (s *Service) PurgeOlderThan(ctx context.Context, days int) (int64, error) {
	if days < 1 {
		return 0, perr.InvalidArgf("retention days must be at least 1, got %d", days)
	}
	return s.Storage.PurgeOlderThan(ctx, days)
}

// CountOlderThan reports how many records a purge with the same days would remove
func (s *Service) CountOlderThan(ctx context.Context, days int) (int64, error) {
	if days < 1 {
		return 0, perr.InvalidArgf("retention days must be at least 1, got %d", days)
	}
	return s.Storage.CountOlderThan(ctx, days)
}

func (s *Service) clamp(limit int) int {
	if limit <= 0 {
		return s.Cfg.DefaultLimit
	}
	if limit > s.Cfg.MaxLimit {
		return s.Cfg.MaxLimit
	}
	return limit
}
