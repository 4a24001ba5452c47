package domain

import "context"

// WriterPort persists parsed complaints
type WriterPort interface {
	UpsertBatch(ctx context.Context, xs []RecordWrite) (UpsertResult, error)
}

// QueryPort reads stored complaints
type QueryPort interface {
	Recent(ctx context.Context, entity string, limit int) ([]Record, error)
	Search(ctx context.Context, q Query) ([]Record, error)
}

// RetentionPort removes complaints past their keep window
type RetentionPort interface {
	PurgeOlderThan(ctx context.Context, days int) (int64, error)
}
