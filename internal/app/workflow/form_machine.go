// Package workflow holds the pure clearance rules: the multi-stage form
// state machine, the deadline policy and the unlock gate. Nothing here
// touches storage or HTTP; services feed it stored state and a clock.
package workflow

import (
	"time"

	"github.com/ayodele/clearflow/internal/app/models"
	"github.com/ayodele/clearflow/internal/pkg/apperrors"
)

// Submit moves a form from not-submitted into the first approval stage.
// Any other starting state is an invalid transition.
func Submit(form *models.ClearanceForm, now time.Time) error {
	if form.State != models.FormNotSubmitted {
		return apperrors.ErrInvalidTransition
	}
	form.State = models.FormPendingFirstApproval
	form.SubmittedAt = &now
	return nil
}

// ApproveFirstStage records the Deputy Registrar's sign-off. Legal only
// while the form awaits first approval; this is what keeps the School
// Officer from approving before the Deputy Registrar.
func ApproveFirstStage(form *models.ClearanceForm, approverID string, now time.Time) error {
	if form.State != models.FormPendingFirstApproval {
		return apperrors.ErrInvalidTransition
	}
	form.State = models.FormPendingSecondApproval
	form.FirstApprovedBy = &approverID
	form.FirstApprovedAt = &now
	return nil
}

// ApproveSecondStage records the School Officer's sign-off and completes
// the form. Legal only while the form awaits second approval.
func ApproveSecondStage(form *models.ClearanceForm, approverID string, now time.Time) error {
	if form.State != models.FormPendingSecondApproval {
		return apperrors.ErrInvalidTransition
	}
	form.State = models.FormApproved
	form.SecondApprovedBy = &approverID
	form.SecondApprovedAt = &now
	return nil
}

// IsApproved is a pure projection of the form state
func IsApproved(form *models.ClearanceForm) bool {
	return form != nil && form.State == models.FormApproved
}
