// Package domain holds DTOs for the monitor http contracts
package domain

import (
	"time"

	compdom "gripewatch/internal/services/complaints/domain"
	mondom "gripewatch/internal/services/monitor/domain"
)

// StartInput registers or replaces monitoring for an entity
type StartInput struct {
	Entity   string `json:"entity"   validate:"required,min=1,max=200" example:"Acme Telecom"`
	Interval string `json:"interval" validate:"required,min=1,max=20"  example:"30min"`
}

// StartOutput echoes the accepted registration
type StartOutput struct {
	Entity   string `json:"entity"`
	Interval string `json:"interval"`
}

// StopInput names the entity to stop monitoring
type StopInput struct {
	Entity string `json:"entity" validate:"required,min=1,max=200" example:"Acme Telecom"`
}

// StopOutput reports whether a running job was actually found
type StopOutput struct {
	Entity  string `json:"entity"`
	Stopped bool   `json:"stopped"`
}

// FetchInput requests one live fetch with no persistence
type FetchInput struct {
	Entity string `json:"entity" validate:"required,min=1,max=200" example:"Acme Telecom"`
}

// WatchRow is one ledger row, the durable desired state
type WatchRow struct {
	Entity   string `json:"entity"`
	Interval string `json:"interval"`
	Active   bool   `json:"active"`
}

// JobRow is one in-memory recurring job
type JobRow struct {
	Entity    string `json:"entity"`
	Interval  string `json:"interval"`
	StartedAt string `json:"started_at"`
}

// CycleRow is one journaled fetch cycle
type CycleRow struct {
	CycleID    string `json:"cycle_id"`
	Entity     string `json:"entity"`
	Trigger    string `json:"trigger"`
	Fetched    uint32 `json:"fetched"`
	Inserted   uint32 `json:"inserted"`
	Duplicates uint32 `json:"duplicates"`
	Outcome    string `json:"outcome"`
	Detail     string `json:"detail,omitempty"`
	DurationMS uint64 `json:"duration_ms"`
	StartedAt  string `json:"started_at"`
}

// Complaint is one live fetched record, never persisted by this surface
type Complaint struct {
	ExternalID  *string `json:"external_id,omitempty"`
	Entity      string  `json:"entity"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	OccurredAt  string  `json:"occurred_at"`
	Location    string  `json:"location"`
	Link        *string `json:"link,omitempty"`
	CollectedAt string  `json:"collected_at"`
}

// WatchRows maps ledger rows onto the wire shape
func WatchRows(xs []mondom.Watch) []WatchRow {
	out := make([]WatchRow, 0, len(xs))
	for _, w := range xs {
		out = append(out, WatchRow{Entity: w.Entity, Interval: w.IntervalToken, Active: w.Active})
	}
	return out
}

// JobRows maps registry snapshots onto the wire shape
func JobRows(xs []mondom.Job) []JobRow {
	out := make([]JobRow, 0, len(xs))
	for _, j := range xs {
		out = append(out, JobRow{
			Entity:    j.Entity,
			Interval:  j.Token,
			StartedAt: j.StartedAt.UTC().Format(time.RFC3339),
		})
	}
	return out
}

// CycleRows maps journal entries onto the wire shape
func CycleRows(xs []mondom.CycleEntry) []CycleRow {
	out := make([]CycleRow, 0, len(xs))
	for _, e := range xs {
		out = append(out, CycleRow{
			CycleID:    e.CycleID,
			Entity:     e.Entity,
			Trigger:    e.Trigger,
			Fetched:    e.Fetched,
			Inserted:   e.Inserted,
			Duplicates: e.Duplicates,
			Outcome:    e.Outcome,
			Detail:     e.Detail,
			DurationMS: e.DurationMS,
			StartedAt:  e.StartedAt.UTC().Format(time.RFC3339),
		})
	}
	return out
}

// Complaints maps fetched records onto the wire shape
func Complaints(xs []compdom.RecordWrite) []Complaint {
	out := make([]Complaint, 0, len(xs))
	for _, x := range xs {
		out = append(out, Complaint{
			ExternalID:  x.ExternalID,
			Entity:      x.Entity,
			Title:       x.Title,
			Description: x.Description,
			Status:      x.Status,
			OccurredAt:  x.OccurredAt,
			Location:    x.Location,
			Link:        x.Link,
			CollectedAt: x.CollectedAt.UTC().Format(time.RFC3339),
		})
	}
	return out
}
