// Package domain defines the types and interfaces for the complaints service
package domain

import "time"

// Record is one stored complaint for an entity
type Record struct {
	ID          int64
	ExternalID  *string // upstream id, nil when the listing omitted it
	Entity      string
	Title       string
	Description string
	Status      string
	OccurredAt  string // upstream date text, RFC3339 of collection time when absent
	Location    string
	Link        *string
	CollectedAt time.Time
}

// RecordWrite is the insert shape for one complaint
// ID is assigned by storage
type RecordWrite struct {
	ExternalID  *string
	Entity      string
	Title       string
	Description string
	Status      string
	OccurredAt  string
	Location    string
	Link        *string
	CollectedAt time.Time
}

// UpsertResult reports how a batch landed against the unique key
type UpsertResult struct {
	Inserted  int
	Duplicate int
}

// Query narrows a search over stored complaints
// zero fields are not applied
type Query struct {
	Entity string
	Status string
	From   *time.Time
	To     *time.Time
	Limit  int
}
