package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ayodele/clearflow/internal/app/models"
	"github.com/ayodele/clearflow/internal/app/workflow"
	"github.com/ayodele/clearflow/internal/pkg/apperrors"
)

// FormStore is the persistence surface the form service needs. Form rows
// are created lazily: Get returns ErrFormNotFound for a form that was
// never submitted, and state advances are conditional on the expected
// current state.
type FormStore interface {
	Get(ctx context.Context, applicationID string, formType models.FormType) (*models.ClearanceForm, error)
	Create(ctx context.Context, form *models.ClearanceForm, ev *models.ReviewEvent) error
	ApproveFirstStage(ctx context.Context, applicationID string, formType models.FormType, approver string, ev *models.ReviewEvent) (*models.ClearanceForm, error)
	ApproveSecondStage(ctx context.Context, applicationID string, formType models.FormType, approver string, ev *models.ReviewEvent) (*models.ClearanceForm, error)
	ListByApplication(ctx context.Context, applicationID string) ([]models.ClearanceForm, error)
}

// FormService defines the interface for clearance form operations
type FormService interface {
	SubmitForm(ctx context.Context, applicationID string, formType models.FormType, actor string) (*models.ClearanceForm, error)
	ApproveFirstStage(ctx context.Context, applicationID string, formType models.FormType, approver string) (*models.ClearanceForm, error)
	ApproveSecondStage(ctx context.Context, applicationID string, formType models.FormType, approver string) (*models.ClearanceForm, error)
	GetForm(ctx context.Context, applicationID string, formType models.FormType) (*models.ClearanceForm, error)
	ListForms(ctx context.Context, applicationID string) ([]models.ClearanceForm, error)
	UnlockedForms(ctx context.Context, applicationID string) ([]models.FormType, error)
}

// formServiceImpl implements the FormService interface
type formServiceImpl struct {
	applications ApplicationStore
	forms        FormStore
	now          func() time.Time
}

// NewFormService creates a new form service instance
func NewFormService(applications ApplicationStore, forms FormStore) FormService {
	return &formServiceImpl{
		applications: applications,
		forms:        forms,
		now:          time.Now,
	}
}

// newClearanceForm returns the gate form, or nil if it was never
// submitted. Only genuine storage failures propagate.
func (s *formServiceImpl) newClearanceForm(ctx context.Context, applicationID string) (*models.ClearanceForm, error) {
	gate, err := s.forms.Get(ctx, applicationID, models.FormNewClearance)
	if err != nil {
		if errors.Is(err, apperrors.ErrFormNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return gate, nil
}

// SubmitForm moves a form from not-submitted into the first approval
// stage. Dependent forms stay locked until the New Clearance Form is
// fully approved; submitting an already submitted form is an invalid
// transition, which the store also enforces on its unique key.
func (s *formServiceImpl) SubmitForm(ctx context.Context, applicationID string, formType models.FormType, actor string) (*models.ClearanceForm, error) {
	if !models.ValidFormType(formType) {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownFormType, formType)
	}

	if _, err := s.applications.GetByID(ctx, applicationID); err != nil {
		return nil, err
	}

	gate, err := s.newClearanceForm(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if !workflow.FormUnlocked(formType, gate) {
		return nil, apperrors.ErrFormLocked
	}

	form := &models.ClearanceForm{
		ApplicationID: applicationID,
		FormType:      formType,
		State:         models.FormNotSubmitted,
	}
	if err := workflow.Submit(form, s.now()); err != nil {
		return nil, err
	}

	ev := newEvent(applicationID, models.EventFormSubmitted, string(formType), actor, string(form.State), s.now())
	if err := s.forms.Create(ctx, form, ev); err != nil {
		return nil, err
	}
	return form, nil
}

// ApproveFirstStage records the Deputy Registrar sign-off on a form
func (s *formServiceImpl) ApproveFirstStage(ctx context.Context, applicationID string, formType models.FormType, approver string) (*models.ClearanceForm, error) {
	if !models.ValidFormType(formType) {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownFormType, formType)
	}

	ev := newEvent(applicationID, models.EventFormFirstApproved, string(formType), approver, string(models.FormPendingSecondApproval), s.now())
	return s.forms.ApproveFirstStage(ctx, applicationID, formType, approver, ev)
}

// ApproveSecondStage records the School Officer sign-off and completes
// the form. The store refuses it unless the first stage already passed,
// so the approval order cannot be inverted or skipped.
func (s *formServiceImpl) ApproveSecondStage(ctx context.Context, applicationID string, formType models.FormType, approver string) (*models.ClearanceForm, error) {
	if !models.ValidFormType(formType) {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownFormType, formType)
	}

	ev := newEvent(applicationID, models.EventFormSecondApproved, string(formType), approver, string(models.FormApproved), s.now())
	return s.forms.ApproveSecondStage(ctx, applicationID, formType, approver, ev)
}

// GetForm retrieves one form. A form that was never submitted is a real
// answer, not an error: it comes back in the not-submitted state.
func (s *formServiceImpl) GetForm(ctx context.Context, applicationID string, formType models.FormType) (*models.ClearanceForm, error) {
	if !models.ValidFormType(formType) {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownFormType, formType)
	}

	if _, err := s.applications.GetByID(ctx, applicationID); err != nil {
		return nil, err
	}

	form, err := s.forms.Get(ctx, applicationID, formType)
	if err != nil {
		if errors.Is(err, apperrors.ErrFormNotFound) {
			return &models.ClearanceForm{
				ApplicationID: applicationID,
				FormType:      formType,
				State:         models.FormNotSubmitted,
			}, nil
		}
		return nil, err
	}
	return form, nil
}

// ListForms returns every managed form of one application in the fixed
// workflow order, synthesizing not-submitted entries for forms without a
// stored row.
func (s *formServiceImpl) ListForms(ctx context.Context, applicationID string) ([]models.ClearanceForm, error) {
	if _, err := s.applications.GetByID(ctx, applicationID); err != nil {
		return nil, err
	}

	stored, err := s.forms.ListByApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	byType := make(map[models.FormType]models.ClearanceForm, len(stored))
	for _, form := range stored {
		byType[form.FormType] = form
	}

	forms := make([]models.ClearanceForm, 0, len(models.KnownFormTypes))
	for _, formType := range models.KnownFormTypes {
		if form, ok := byType[formType]; ok {
			forms = append(forms, form)
			continue
		}
		forms = append(forms, models.ClearanceForm{
			ApplicationID: applicationID,
			FormType:      formType,
			State:         models.FormNotSubmitted,
		})
	}
	return forms, nil
}

// UnlockedForms returns the form types the student may currently access
func (s *formServiceImpl) UnlockedForms(ctx context.Context, applicationID string) ([]models.FormType, error) {
	if _, err := s.applications.GetByID(ctx, applicationID); err != nil {
		return nil, err
	}

	gate, err := s.newClearanceForm(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	return workflow.UnlockedForms(gate), nil
}
