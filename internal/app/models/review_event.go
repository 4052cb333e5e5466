package models

import "time"

// EventType labels an entry in the audit trail
type EventType string

const (
	EventApplicationRegistered EventType = "application.registered"
	EventApplicationVerified   EventType = "application.verified"
	EventApplicationStatusSet  EventType = "application.status_set"
	EventDeadlineSet           EventType = "application.deadline_set"
	EventDocumentSubmitted     EventType = "document.submitted"
	EventDocumentReviewed      EventType = "document.reviewed"
	EventFormSubmitted         EventType = "form.submitted"
	EventFormFirstApproved     EventType = "form.first_approved"
	EventFormSecondApproved    EventType = "form.second_approved"
)

// ReviewEvent is one immutable entry of the append-only audit trail,
// based on the 'review_events' table. Digest chains to the previous
// event of the same application; Seq orders the chain. Rows are never
// updated or deleted — corrections are new facts, not history edits.
type ReviewEvent struct {
	ID            int64     `json:"id" db:"id"`
	ApplicationID string    `json:"applicationId" db:"application_id" example:"STU001"`
	Seq           int64     `json:"seq" db:"seq"`                                     // Position in the per-application chain
	EventType     EventType `json:"eventType" db:"event_type" example:"document.reviewed"`
	Subject       string    `json:"subject,omitempty" db:"subject"`                   // Document type, form type, or empty
	Actor         string    `json:"actor" db:"actor" example:"registrar@school.edu"`  // Identity supplied by the calling layer
	Detail        string    `json:"detail,omitempty" db:"detail"`                     // Hash, status value, or rejection reason
	Digest        string    `json:"digest" db:"digest"`                               // Content-addressed chain digest
	PrevDigest    string    `json:"prevDigest" db:"prev_digest"`
	OccurredAt    time.Time `json:"occurredAt" db:"occurred_at"`
}
