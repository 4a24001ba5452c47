// Package ch provides the clickhouse client used by the store seams
package ch

import (
	"context"
	"errors"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// Config configures clickhouse client
type Config struct {
	URL string

	// Role and Tag identify this process in server side query logs
	// role examples: "api", "sweeper"
	Role string
	Tag  string
}

// Rows is the minimal result set iteration for ch
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
	Columns() []string
}

// CH wraps a native clickhouse connection pool
type CH struct {
	conn driver.Conn
}

// Open parses the DSN and constructs a client
// dialing is deferred to first use, so Open stays cheap and offline safe
func Open(_ context.Context, cfg Config) (*CH, error) {
	if cfg.URL == "" {
		return nil, errors.New("ch: empty URL")
	}
	opts, err := clickhouse.ParseDSN(cfg.URL)
	if err != nil {
		return nil, err
	}
	opts.ClientInfo = BuildClientInfo(cfg.Role, cfg.Tag)

	conn, err := clickhouse.Open(opts)
	if err != nil {
		return nil, err
	}
	return &CH{conn: conn}, nil
}

// Ping verifies the server responds, dialing if needed
func (c *CH) Ping(ctx context.Context) error {
	if c == nil || c.conn == nil {
		return errors.New("ch: client not opened")
	}
	return c.conn.Ping(ctx)
}

// Insert appends rows to table via a native batch
// row values must follow the table's column order
func (c *CH) Insert(ctx context.Context, table string, rows [][]any) error {
	if c == nil || c.conn == nil {
		return errors.New("ch: client not opened")
	}

	batch, err := c.conn.PrepareBatch(ctx, "INSERT INTO "+table)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if appendErr := batch.Append(row...); appendErr != nil {
			_ = batch.Abort()
			return appendErr
		}
	}
	return batch.Send()
}

// Query runs a query and returns ch.Rows
func (c *CH) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	if c == nil || c.conn == nil {
		return nil, errors.New("ch: client not opened")
	}
	rows, err := c.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return &chRows{rows: rows}, nil
}

// Close releases the underlying connection pool
func (c *CH) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// chRows adapts driver.Rows to the ch.Rows seam
type chRows struct {
	rows driver.Rows
}

var _ Rows = (*chRows)(nil)

func (r *chRows) Next() bool             { return r.rows.Next() }
func (r *chRows) Scan(dest ...any) error { return r.rows.Scan(dest...) }
func (r *chRows) Err() error             { return r.rows.Err() }
func (r *chRows) Close() error           { return r.rows.Close() }
func (r *chRows) Columns() []string      { return r.rows.Columns() }
