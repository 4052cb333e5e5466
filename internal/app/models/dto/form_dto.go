package dto

import (
	"time"

	"github.com/ayodele/clearflow/internal/app/models"
)

// FormResponse is the read projection of a clearance form instance
type FormResponse struct {
	ApplicationID           string     `json:"applicationId" example:"STU001"`
	FormType                string     `json:"formType" example:"newClearance"`
	State                   string     `json:"state" example:"pending_second_approval"`
	DeputyRegistrarApproved bool       `json:"deputyRegistrarApproved" example:"true"`
	SchoolOfficerApproved   bool       `json:"schoolOfficerApproved" example:"false"`
	Approved                bool       `json:"approved" example:"false"`
	SubmittedAt             *time.Time `json:"submittedAt,omitempty"`
	FirstApprovedBy         *string    `json:"firstApprovedBy,omitempty"`
	FirstApprovedAt         *time.Time `json:"firstApprovedAt,omitempty"`
	SecondApprovedBy        *string    `json:"secondApprovedBy,omitempty"`
	SecondApprovedAt        *time.Time `json:"secondApprovedAt,omitempty"`
}

// UnlockedFormsResponse lists the forms a student may currently access
type UnlockedFormsResponse struct {
	ApplicationID string            `json:"applicationId" example:"STU001"`
	Forms         []models.FormType `json:"forms"`
}

// FromForm converts a model to its response projection
func FromForm(form *models.ClearanceForm) *FormResponse {
	if form == nil {
		return nil
	}
	return &FormResponse{
		ApplicationID:           form.ApplicationID,
		FormType:                string(form.FormType),
		State:                   string(form.State),
		DeputyRegistrarApproved: form.DeputyRegistrarApproved(),
		SchoolOfficerApproved:   form.SchoolOfficerApproved(),
		Approved:                form.Approved(),
		SubmittedAt:             form.SubmittedAt,
		FirstApprovedBy:         form.FirstApprovedBy,
		FirstApprovedAt:         form.FirstApprovedAt,
		SecondApprovedBy:        form.SecondApprovedBy,
		SecondApprovedAt:        form.SecondApprovedAt,
	}
}
