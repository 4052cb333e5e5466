package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ayodele/clearflow/internal/app/models"
	"github.com/ayodele/clearflow/internal/app/workflow"
	"github.com/ayodele/clearflow/internal/pkg/apperrors"
)

// DocumentStore is the persistence surface the document service needs
type DocumentStore interface {
	Get(ctx context.Context, applicationID, documentType string) (*models.Document, error)
	ListByApplication(ctx context.Context, applicationID string) ([]models.Document, error)
	Submit(ctx context.Context, doc *models.Document, ev *models.ReviewEvent) error
	Review(ctx context.Context, applicationID, documentType string, decision models.ReviewDecision, reviewer string, reason *string, ev *models.ReviewEvent) (*models.Document, error)
}

// DocumentService defines the interface for document submission and review
type DocumentService interface {
	SubmitDocument(ctx context.Context, applicationID, documentType, documentHash, actor string) (*models.Document, error)
	GetDocument(ctx context.Context, applicationID, documentType string) (*models.Document, error)
	ListDocuments(ctx context.Context, applicationID string) ([]models.Document, error)
	CanSubmit(ctx context.Context, applicationID, documentType string) (canSubmit, withinDeadline bool, err error)
	ReviewDocument(ctx context.Context, applicationID, documentType string, decision models.ReviewDecision, reviewer, reason string) (*models.Document, error)
}

// documentServiceImpl implements the DocumentService interface
type documentServiceImpl struct {
	applications ApplicationStore
	documents    DocumentStore
	now          func() time.Time
}

// NewDocumentService creates a new document service instance
func NewDocumentService(applications ApplicationStore, documents DocumentStore) DocumentService {
	return &documentServiceImpl{
		applications: applications,
		documents:    documents,
		now:          time.Now,
	}
}

// SubmitDocument stores a document hash for an application. A first
// submission creates a pending record; resubmission is legal only over a
// rejected record. The deadline and resubmission rules are re-checked by
// the store under the application lock, so the outcome holds even when
// two submissions race.
func (s *documentServiceImpl) SubmitDocument(ctx context.Context, applicationID, documentType, documentHash, actor string) (*models.Document, error) {
	if strings.TrimSpace(documentType) == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "document type cannot be empty")
	}
	if strings.TrimSpace(documentHash) == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "document hash cannot be empty")
	}

	doc := &models.Document{
		ApplicationID: applicationID,
		DocumentType:  documentType,
		DocumentHash:  documentHash,
	}

	ev := newEvent(applicationID, models.EventDocumentSubmitted, documentType, actor, documentHash, s.now())
	if err := s.documents.Submit(ctx, doc, ev); err != nil {
		return nil, err
	}
	return doc, nil
}

// GetDocument retrieves one document by its composite key
func (s *documentServiceImpl) GetDocument(ctx context.Context, applicationID, documentType string) (*models.Document, error) {
	if _, err := s.applications.GetByID(ctx, applicationID); err != nil {
		return nil, err
	}
	return s.documents.Get(ctx, applicationID, documentType)
}

// ListDocuments retrieves every document of one application
func (s *documentServiceImpl) ListDocuments(ctx context.Context, applicationID string) ([]models.Document, error) {
	if _, err := s.applications.GetByID(ctx, applicationID); err != nil {
		return nil, err
	}
	return s.documents.ListByApplication(ctx, applicationID)
}

// CanSubmit answers the submission predicate without mutating anything:
// inside the deadline window, and either no document of that type exists
// or the prior one was rejected. A closed window is a business answer,
// not an error.
func (s *documentServiceImpl) CanSubmit(ctx context.Context, applicationID, documentType string) (bool, bool, error) {
	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return false, false, err
	}

	existing, err := s.documents.Get(ctx, applicationID, documentType)
	if err != nil {
		if !errors.Is(err, apperrors.ErrDocumentNotFound) {
			return false, false, err
		}
		existing = nil
	}

	now := s.now()
	canSubmit := workflow.CanSubmitDocument(app.DeadlineAt, now, existing)
	return canSubmit, workflow.WithinDeadline(app.DeadlineAt, now), nil
}

// ReviewDocument records a reviewer's verdict. Rejections must carry a
// reason; approvals must not. The stored record ends with exactly one of
// the two states and, for rejections, the reason the reviewer gave.
func (s *documentServiceImpl) ReviewDocument(ctx context.Context, applicationID, documentType string, decision models.ReviewDecision, reviewer, reason string) (*models.Document, error) {
	var reasonPtr *string
	detail := string(decision)

	switch decision {
	case models.DecisionApproved:
		// Reviewer-supplied reasons are ignored on approval
	case models.DecisionRejected:
		if strings.TrimSpace(reason) == "" {
			return nil, apperrors.ErrRejectionReasonRequired
		}
		reasonPtr = &reason
		detail = fmt.Sprintf("%s: %s", decision, reason)
	default:
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidDecision, decision)
	}

	ev := newEvent(applicationID, models.EventDocumentReviewed, documentType, reviewer, detail, s.now())
	return s.documents.Review(ctx, applicationID, documentType, decision, reviewer, reasonPtr, ev)
}
