package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ayodele/clearflow/internal/app/models"
	"github.com/ayodele/clearflow/internal/app/workflow"
	"github.com/ayodele/clearflow/internal/pkg/apperrors"
)

// ApplicationStore is the persistence surface the application service
// needs. The pgx-backed ApplicationRepository satisfies it; tests plug
// in an in-memory stand-in.
type ApplicationStore interface {
	Create(ctx context.Context, app *models.Application, ev *models.ReviewEvent) error
	GetByID(ctx context.Context, id string) (*models.Application, error)
	Verify(ctx context.Context, id, reviewer string, ev *models.ReviewEvent) error
	UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus, ev *models.ReviewEvent) error
	SetDeadline(ctx context.Context, id string, deadline time.Time, ev *models.ReviewEvent) error
}

// EventStore reads the append-only audit trail
type EventStore interface {
	ListByApplication(ctx context.Context, applicationID string) ([]models.ReviewEvent, error)
}

// ApplicationService defines the interface for enrollment application operations
type ApplicationService interface {
	RegisterApplication(ctx context.Context, id, dataHash, actor string) (*models.Application, error)
	GetApplication(ctx context.Context, id string) (*models.Application, error)
	VerifyApplication(ctx context.Context, id, reviewer string) error
	UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus, actor string) error
	SetDeadline(ctx context.Context, id string, deadline time.Time, actor string) error
	ListEvents(ctx context.Context, id string) ([]models.ReviewEvent, error)
}

// applicationServiceImpl implements the ApplicationService interface
type applicationServiceImpl struct {
	applications ApplicationStore
	events       EventStore
	now          func() time.Time
}

// NewApplicationService creates a new application service instance
func NewApplicationService(applications ApplicationStore, events EventStore) ApplicationService {
	return &applicationServiceImpl{
		applications: applications,
		events:       events,
		now:          time.Now,
	}
}

// RegisterApplication opens a new application under a caller-chosen
// external ID. Registration is first-write-wins: a second registration
// under the same ID fails and leaves the original untouched.
func (s *applicationServiceImpl) RegisterApplication(ctx context.Context, id, dataHash, actor string) (*models.Application, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "application ID cannot be empty")
	}
	if strings.TrimSpace(dataHash) == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "data hash cannot be empty")
	}

	app := &models.Application{
		ID:       id,
		DataHash: dataHash,
		Verified: false,
		Status:   models.ApplicationSubmitted,
	}

	ev := newEvent(id, models.EventApplicationRegistered, "", actor, dataHash, s.now())
	if err := s.applications.Create(ctx, app, ev); err != nil {
		return nil, err
	}
	return app, nil
}

// GetApplication retrieves an application by its external ID
func (s *applicationServiceImpl) GetApplication(ctx context.Context, id string) (*models.Application, error) {
	return s.applications.GetByID(ctx, id)
}

// VerifyApplication marks the registration data as checked by a reviewer
func (s *applicationServiceImpl) VerifyApplication(ctx context.Context, id, reviewer string) error {
	ev := newEvent(id, models.EventApplicationVerified, "", reviewer, "", s.now())
	return s.applications.Verify(ctx, id, reviewer, ev)
}

// UpdateStatus moves the overall application status. The status set is
// closed; anything outside it is refused before touching storage.
func (s *applicationServiceImpl) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus, actor string) error {
	if !models.ValidApplicationStatus(status) {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidApplicationStatus, status)
	}

	ev := newEvent(id, models.EventApplicationStatusSet, "", actor, string(status), s.now())
	return s.applications.UpdateStatus(ctx, id, status, ev)
}

// SetDeadline stores the submission cutoff. Instants already in the past
// are refused; moving an existing deadline in either direction is legal.
func (s *applicationServiceImpl) SetDeadline(ctx context.Context, id string, deadline time.Time, actor string) error {
	if err := workflow.ValidateDeadline(deadline, s.now()); err != nil {
		return err
	}

	ev := newEvent(id, models.EventDeadlineSet, "", actor, deadline.UTC().Format(time.RFC3339), s.now())
	return s.applications.SetDeadline(ctx, id, deadline, ev)
}

// ListEvents returns the full audit chain of one application in order
func (s *applicationServiceImpl) ListEvents(ctx context.Context, id string) ([]models.ReviewEvent, error) {
	if _, err := s.applications.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.events.ListByApplication(ctx, id)
}
