// Package domain defines the types and interfaces for the monitor service
package domain

import "time"

// Watch is one ledger row: the durable desired schedule for an entity
type Watch struct {
	Entity        string
	IntervalToken string
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Job is the in-memory view of one installed recurring job
type Job struct {
	Entity    string
	Token     string
	StartedAt time.Time
}

// Trigger says what caused a fetch cycle to run
type Trigger string

const (
	// TriggerScheduled marks cycles fired by the cron runner
	TriggerScheduled Trigger = "scheduled"

	// TriggerManual marks the immediate cycle launched by a start command
	TriggerManual Trigger = "manual"

	// TriggerStartup marks cycles launched while resuming ledger state at boot
	TriggerStartup Trigger = "startup"
)

// Cycle outcomes beyond plain error codes
const (
	OutcomeOK      = "ok"
	OutcomeEmpty   = "empty"
	OutcomeSkipped = "skipped"
)

// CycleEntry is one journaled fetch cycle
// Field types follow the cycle_log column types
type CycleEntry struct {
	CycleID    string
	Entity     string
	Trigger    string
	Fetched    uint32
	Inserted   uint32
	Duplicates uint32
	Outcome    string
	Detail     string
	DurationMS uint64
	StartedAt  time.Time
}
