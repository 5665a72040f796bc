package entities

import (
	"time"
)

// BusinessEventType identifies what happened to a business record
type BusinessEventType string

const (
	BusinessCreated  BusinessEventType = "business.created"
	BusinessUpdated  BusinessEventType = "business.updated"
	BusinessApproved BusinessEventType = "business.approved"
	BusinessRejected BusinessEventType = "business.rejected"
	BusinessUpgraded BusinessEventType = "business.upgraded"
)

// BusinessEvent is published on the event bus whenever a business
// changes, so caches covering public listings can be invalidated.
type BusinessEvent struct {
	ID         string            `json:"id"`
	Type       BusinessEventType `json:"type"`
	BusinessID string            `json:"business_id"`
	Slug       string            `json:"slug,omitempty"`
	Category   string            `json:"category,omitempty"`
	City       string            `json:"city,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}
