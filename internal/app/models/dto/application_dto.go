package dto

import (
	"time"

	"github.com/ayodele/clearflow/internal/app/models"
)

// RegisterApplicationRequest opens a new enrollment application
type RegisterApplicationRequest struct {
	ApplicationID string `json:"applicationId" binding:"required" example:"STU001"`
	DataHash      string `json:"dataHash" binding:"required" example:"0x4f2a"`
}

// UpdateApplicationStatusRequest moves the overall application status
type UpdateApplicationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=submitted in-review approved rejected" example:"in-review"`
}

// SetDeadlineRequest sets the submission cutoff for an application
type SetDeadlineRequest struct {
	Deadline time.Time `json:"deadline" binding:"required" example:"2025-09-30T23:59:59Z"`
}

// ApplicationResponse is the read projection of an application
type ApplicationResponse struct {
	ID            string            `json:"id" example:"STU001"`
	DataHash      string            `json:"dataHash" example:"0x4f2a"`
	Verified      bool              `json:"verified" example:"false"`
	VerifiedBy    *string           `json:"verifiedBy,omitempty"`
	Status        string            `json:"status" example:"submitted"`
	DeadlineAt    *time.Time        `json:"deadlineAt,omitempty"`
	UnlockedForms []models.FormType `json:"unlockedForms"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// FromApplication converts a model to its response projection
func FromApplication(app *models.Application, unlocked []models.FormType) *ApplicationResponse {
	if app == nil {
		return nil
	}
	return &ApplicationResponse{
		ID:            app.ID,
		DataHash:      app.DataHash,
		Verified:      app.Verified,
		VerifiedBy:    app.VerifiedBy,
		Status:        string(app.Status),
		DeadlineAt:    app.DeadlineAt,
		UnlockedForms: unlocked,
		CreatedAt:     app.CreatedAt,
		UpdatedAt:     app.UpdatedAt,
	}
}
