package dto

import (
	"time"

	"github.com/ayodele/clearflow/internal/app/models"
)

// SubmitDocumentRequest records a document hash for an application
type SubmitDocumentRequest struct {
	DocumentType string `json:"documentType" binding:"required" example:"SSCE"`
	DocumentHash string `json:"documentHash" binding:"required" example:"0xabc"`
}

// ReviewDocumentRequest carries a reviewer's verdict
type ReviewDocumentRequest struct {
	Decision string `json:"decision" binding:"required" example:"rejected" enums:"approved,rejected"`
	Reason   string `json:"reason,omitempty" example:"blurry scan"`
}

// DocumentResponse is the read projection of a document record
type DocumentResponse struct {
	ApplicationID   string     `json:"applicationId" example:"STU001"`
	DocumentType    string     `json:"documentType" example:"SSCE"`
	DocumentHash    string     `json:"documentHash" example:"0xabc"`
	Status          string     `json:"status" example:"pending"`
	ReviewedBy      *string    `json:"reviewedBy,omitempty"`
	RejectionReason *string    `json:"rejectionReason,omitempty"`
	SubmittedAt     time.Time  `json:"submittedAt"`
	ReviewedAt      *time.Time `json:"reviewedAt,omitempty"`
}

// SubmissionEligibilityResponse answers the submission gate predicate
type SubmissionEligibilityResponse struct {
	ApplicationID  string `json:"applicationId" example:"STU001"`
	DocumentType   string `json:"documentType" example:"SSCE"`
	CanSubmit      bool   `json:"canSubmit" example:"true"`
	WithinDeadline bool   `json:"withinDeadline" example:"true"`
}

// FromDocument converts a model to its response projection
func FromDocument(doc *models.Document) *DocumentResponse {
	if doc == nil {
		return nil
	}
	return &DocumentResponse{
		ApplicationID:   doc.ApplicationID,
		DocumentType:    doc.DocumentType,
		DocumentHash:    doc.DocumentHash,
		Status:          string(doc.Status),
		ReviewedBy:      doc.ReviewedBy,
		RejectionReason: doc.RejectionReason,
		SubmittedAt:     doc.SubmittedAt,
		ReviewedAt:      doc.ReviewedAt,
	}
}
