package domain

import (
	"context"

	compdom "gripewatch/internal/services/complaints/domain"
)

// RegistryPort is the scheduling command surface
type RegistryPort interface {
	// Start records desired state and installs the recurring job, replacing
	// any prior job for the entity, then launches one immediate cycle
	Start(ctx context.Context, entity, token string) (Job, error)

	// Stop removes the job if present and reports whether one was found.
	// The ledger row is untouched; see LedgerPort.Deactivate
	Stop(ctx context.Context, entity string) bool

	// Jobs snapshots the in-memory registry
	Jobs() []Job

	// FetchNow fetches live records for the entity without persisting them
	FetchNow(ctx context.Context, entity string) ([]compdom.RecordWrite, error)

	// Resume installs a job for every active ledger row and reports how many
	Resume(ctx context.Context) (int, error)

	// Shutdown stops the runner and waits for in-flight cycles, bounded by ctx
	Shutdown(ctx context.Context) error
}

// LedgerPort reads and amends the durable desired state
type LedgerPort interface {
	Watches(ctx context.Context) ([]Watch, error)
	Deactivate(ctx context.Context, entity string) error
}

// JournalPort reads back journaled fetch cycles
type JournalPort interface {
	RecentCycles(ctx context.Context, entity string, limit int) ([]CycleEntry, error)
}

// Fetcher retrieves live complaints for an entity
type Fetcher interface {
	Fetch(ctx context.Context, entity string) ([]compdom.RecordWrite, error)
}

// Ports are dependencies injected into the monitor module
type Ports struct {
	Fetcher   Fetcher               // required
	Writer    compdom.WriterPort    // required
	Retention compdom.RetentionPort // optional, enables the nightly purge job
}
