package workflow

import (
	"time"

	"github.com/ayodele/clearflow/internal/app/models"
)

// UnlockedForms returns the forms the student may currently access.
// The New Clearance Form is always reachable; every dependent form
// unlocks only once that form's state machine reports approved.
func UnlockedForms(newClearance *models.ClearanceForm) []models.FormType {
	if !IsApproved(newClearance) {
		return []models.FormType{models.FormNewClearance}
	}

	unlocked := make([]models.FormType, len(models.KnownFormTypes))
	copy(unlocked, models.KnownFormTypes)
	return unlocked
}

// FormUnlocked reports whether a single form type is currently accessible
func FormUnlocked(formType models.FormType, newClearance *models.ClearanceForm) bool {
	if formType == models.FormNewClearance {
		return true
	}
	return IsApproved(newClearance)
}

// CanSubmitDocument is the submission predicate: inside the deadline
// window, and either no document of that type exists yet or the prior
// one was rejected. A closed gate is a business answer, not an error.
func CanSubmitDocument(deadline *time.Time, now time.Time, existing *models.Document) bool {
	if !WithinDeadline(deadline, now) {
		return false
	}
	if existing == nil {
		return true
	}
	return existing.Status == models.DocumentRejected
}
