package store

import "context"

// RunForEntity tags ctx with the entity and calls fn inside the provided TxRunner
func RunForEntity(ctx context.Context, tx TxRunner, entity string, fn func(ctx context.Context, q RowQuerier) error) error {
	ctx = WithEntity(ctx, entity)
	return tx.Tx(ctx, func(q RowQuerier) error {
		return fn(ctx, q)
	})
}
