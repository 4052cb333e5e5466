package dto

import (
	"time"

	"github.com/ayodele/clearflow/internal/app/models"
)

// EventResponse is one audit trail entry projection
type EventResponse struct {
	Seq        int64     `json:"seq" example:"3"`
	EventType  string    `json:"eventType" example:"document.reviewed"`
	Subject    string    `json:"subject,omitempty" example:"SSCE"`
	Actor      string    `json:"actor" example:"registrar@school.edu"`
	Detail     string    `json:"detail,omitempty" example:"rejected: blurry scan"`
	Digest     string    `json:"digest"`
	PrevDigest string    `json:"prevDigest"`
	OccurredAt time.Time `json:"occurredAt"`
}

// EventListResponse is the audit trail of one application
type EventListResponse struct {
	ApplicationID string          `json:"applicationId" example:"STU001"`
	Events        []EventResponse `json:"events"`
}

// FromEvents converts model events to their response projection
func FromEvents(applicationID string, events []models.ReviewEvent) *EventListResponse {
	out := &EventListResponse{
		ApplicationID: applicationID,
		Events:        make([]EventResponse, 0, len(events)),
	}
	for _, ev := range events {
		out.Events = append(out.Events, EventResponse{
			Seq:        ev.Seq,
			EventType:  string(ev.EventType),
			Subject:    ev.Subject,
			Actor:      ev.Actor,
			Detail:     ev.Detail,
			Digest:     ev.Digest,
			PrevDigest: ev.PrevDigest,
			OccurredAt: ev.OccurredAt,
		})
	}
	return out
}
