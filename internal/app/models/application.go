package models

import "time"

// Application defines the enrollment application model based on the
// 'applications' table. The external ID is assigned at registration and
// never changes; the record itself is never deleted (audit requirement).
type Application struct {
	ID         string            `json:"id" db:"application_id" example:"STU001"`   // Stable external application ID
	DataHash   string            `json:"dataHash" db:"data_hash" example:"0x4f2a"`  // Content hash of the registration data
	Verified   bool              `json:"verified" db:"verified" example:"false"`    // One-way false->true, set by a reviewer
	VerifiedBy *string           `json:"verifiedBy,omitempty" db:"verified_by"`     // Reviewer who verified the registration data
	Status     ApplicationStatus `json:"status" db:"status" example:"submitted"`    // Overall review status
	DeadlineAt *time.Time        `json:"deadlineAt,omitempty" db:"deadline_at"`     // Submission cutoff; nil means no deadline
	CreatedAt  time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time         `json:"updatedAt" db:"updated_at"`
}
