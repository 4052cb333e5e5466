package models

import "time"

// Document defines a submitted artifact based on the 'documents' table.
// The composite key is (application_id, document_type): an application
// holds at most one document record per type. Only the content hash
// crosses this boundary; the file bytes live with the upload service.
type Document struct {
	ApplicationID   string         `json:"applicationId" db:"application_id" example:"STU001"`
	DocumentType    string         `json:"documentType" db:"document_type" example:"SSCE"`
	DocumentHash    string         `json:"documentHash" db:"document_hash" example:"0xabc"`
	Status          DocumentStatus `json:"status" db:"status" example:"pending"`
	ReviewedBy      *string        `json:"reviewedBy,omitempty" db:"reviewed_by"`           // Unset while pending
	RejectionReason *string        `json:"rejectionReason,omitempty" db:"rejection_reason"` // Present only when rejected
	SubmittedAt     time.Time      `json:"submittedAt" db:"submitted_at"`
	ReviewedAt      *time.Time     `json:"reviewedAt,omitempty" db:"reviewed_at"`
}
