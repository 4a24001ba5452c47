// Package domain holds DTOs for the complaints http contracts
package domain

import (
	"time"

	compdom "gripewatch/internal/services/complaints/domain"
)

// RecentInput asks for the latest stored complaints of one entity
type RecentInput struct {
	Entity string `json:"entity"          validate:"required,min=1,max=200" example:"Acme Telecom"`
	Limit  int    `json:"limit,omitempty" validate:"omitempty,min=1,max=200" example:"50"`
}

// QueryInput narrows a search over stored complaints, filters are ANDed
type QueryInput struct {
	Entity string `json:"entity,omitempty" validate:"omitempty,min=1,max=200" example:"Acme Telecom"`
	Status string `json:"status,omitempty" validate:"omitempty,min=1,max=100" example:"unanswered"`
	From   string `json:"from,omitempty"   validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00" example:"2026-08-01T00:00:00Z"`
	To     string `json:"to,omitempty"     validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00" example:"2026-08-29T00:00:00Z"`
	Limit  int    `json:"limit,omitempty"  validate:"omitempty,min=1,max=200" example:"50"`
}

// PurgeInput sets the keep window for a retention purge
type PurgeInput struct {
	Days int `json:"days" validate:"required,min=1,max=3650" example:"90"`
}

// PurgeOutput reports how many rows the purge removed
type PurgeOutput struct {
	Removed int64 `json:"removed"`
}

// Complaint is one stored complaint on the wire
type Complaint struct {
	ID          int64   `json:"id"`
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

// Complaints maps stored records onto the wire shape
func Complaints(xs []compdom.Record) []Complaint {
	out := make([]Complaint, 0, len(xs))
	for _, x := range xs {
		out = append(out, Complaint{
			ID:          x.ID,
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
