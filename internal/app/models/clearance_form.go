package models

import "time"

// ClearanceForm defines a multi-stage form instance based on the
// 'clearance_forms' table, keyed by (application_id, form_type).
// Approval order is fixed: Deputy Registrar first, School Officer second.
type ClearanceForm struct {
	ApplicationID    string     `json:"applicationId" db:"application_id" example:"STU001"`
	FormType         FormType   `json:"formType" db:"form_type" example:"newClearance"`
	State            FormState  `json:"state" db:"state" example:"pending_first_approval"`
	SubmittedAt      *time.Time `json:"submittedAt,omitempty" db:"submitted_at"`
	FirstApprovedBy  *string    `json:"firstApprovedBy,omitempty" db:"first_approved_by"`   // Deputy Registrar identity
	FirstApprovedAt  *time.Time `json:"firstApprovedAt,omitempty" db:"first_approved_at"`
	SecondApprovedBy *string    `json:"secondApprovedBy,omitempty" db:"second_approved_by"` // School Officer identity
	SecondApprovedAt *time.Time `json:"secondApprovedAt,omitempty" db:"second_approved_at"`
	CreatedAt        time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time  `json:"updatedAt" db:"updated_at"`
}

// DeputyRegistrarApproved reports the first-stage flag derived from state
func (f *ClearanceForm) DeputyRegistrarApproved() bool {
	return f.State == FormPendingSecondApproval || f.State == FormApproved
}

// SchoolOfficerApproved reports the second-stage flag derived from state
func (f *ClearanceForm) SchoolOfficerApproved() bool {
	return f.State == FormApproved
}

// Approved reports whether both stages have signed off
func (f *ClearanceForm) Approved() bool {
	return f.State == FormApproved
}
