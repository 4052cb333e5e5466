package workflow

import (
	"time"

	"github.com/ayodele/clearflow/internal/pkg/apperrors"
)

// ValidateDeadline checks a new submission cutoff before it is stored.
// Instants before now are refused; overwriting an earlier deadline is
// allowed, so an administrator can extend or shorten the window.
func ValidateDeadline(deadline, now time.Time) error {
	if deadline.Before(now) {
		return apperrors.ErrDeadlineInPast
	}
	return nil
}

// WithinDeadline reports whether a submission at now is still accepted.
// A nil deadline means no cutoff was ever set. The boundary is
// inclusive: a submission at exactly the deadline instant passes.
func WithinDeadline(deadline *time.Time, now time.Time) bool {
	if deadline == nil {
		return true
	}
	return !now.After(*deadline)
}
