package services

import (
	"context"
	"time"

	"github.com/ayodele/clearflow/internal/app/models"
	"github.com/ayodele/clearflow/internal/app/workflow"
	"github.com/ayodele/clearflow/internal/pkg/anchor"
	"github.com/ayodele/clearflow/internal/pkg/apperrors"
)

// fakeStore is an in-memory stand-in for the pgx repositories. It
// reproduces the guard behavior the SQL layer enforces with row locks
// and conditional updates: deadline and resubmission checks on document
// submission, expected-state checks on form advances, and the digest
// chain on the audit trail. The fakeApps, fakeDocs and fakeForms views
// adapt it to the per-service store interfaces.
type fakeStore struct {
	apps   map[string]*models.Application
	docs   map[string]*models.Document
	forms  map[string]*models.ClearanceForm
	events map[string][]models.ReviewEvent
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		apps:   make(map[string]*models.Application),
		docs:   make(map[string]*models.Document),
		forms:  make(map[string]*models.ClearanceForm),
		events: make(map[string][]models.ReviewEvent),
	}
}

func docKey(applicationID, documentType string) string {
	return applicationID + "/" + documentType
}

func formKey(applicationID string, formType models.FormType) string {
	return applicationID + "/" + string(formType)
}

func (f *fakeStore) appendEvent(ev *models.ReviewEvent) {
	chain := f.events[ev.ApplicationID]
	prev := anchor.GenesisDigest
	if len(chain) > 0 {
		prev = chain[len(chain)-1].Digest
	}
	ev.Seq = int64(len(chain)) + 1
	ev.PrevDigest = prev
	ev.Digest = anchor.Digest(prev, anchor.EventPayload{
		ApplicationID: ev.ApplicationID,
		EventType:     string(ev.EventType),
		Subject:       ev.Subject,
		Actor:         ev.Actor,
		Detail:        ev.Detail,
		OccurredAt:    ev.OccurredAt,
	})
	f.events[ev.ApplicationID] = append(chain, *ev)
}

// fakeApps satisfies ApplicationStore and EventStore.
type fakeApps struct{ *fakeStore }

func (f fakeApps) Create(ctx context.Context, app *models.Application, ev *models.ReviewEvent) error {
	if _, exists := f.apps[app.ID]; exists {
		return apperrors.ErrApplicationAlreadyExists
	}
	app.CreatedAt = ev.OccurredAt
	app.UpdatedAt = ev.OccurredAt
	stored := *app
	f.apps[app.ID] = &stored
	f.appendEvent(ev)
	return nil
}

func (f fakeApps) GetByID(ctx context.Context, id string) (*models.Application, error) {
	app, ok := f.apps[id]
	if !ok {
		return nil, apperrors.ErrApplicationNotFound
	}
	copied := *app
	return &copied, nil
}

func (f fakeApps) Verify(ctx context.Context, id, reviewer string, ev *models.ReviewEvent) error {
	app, ok := f.apps[id]
	if !ok {
		return apperrors.ErrApplicationNotFound
	}
	app.Verified = true
	app.VerifiedBy = &reviewer
	app.UpdatedAt = ev.OccurredAt
	f.appendEvent(ev)
	return nil
}

func (f fakeApps) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus, ev *models.ReviewEvent) error {
	app, ok := f.apps[id]
	if !ok {
		return apperrors.ErrApplicationNotFound
	}
	app.Status = status
	app.UpdatedAt = ev.OccurredAt
	f.appendEvent(ev)
	return nil
}

func (f fakeApps) SetDeadline(ctx context.Context, id string, deadline time.Time, ev *models.ReviewEvent) error {
	app, ok := f.apps[id]
	if !ok {
		return apperrors.ErrApplicationNotFound
	}
	app.DeadlineAt = &deadline
	app.UpdatedAt = ev.OccurredAt
	f.appendEvent(ev)
	return nil
}

func (f fakeApps) ListByApplication(ctx context.Context, applicationID string) ([]models.ReviewEvent, error) {
	events := make([]models.ReviewEvent, len(f.events[applicationID]))
	copy(events, f.events[applicationID])
	return events, nil
}

// fakeDocs satisfies DocumentStore.
type fakeDocs struct{ *fakeStore }

func (f fakeDocs) Get(ctx context.Context, applicationID, documentType string) (*models.Document, error) {
	doc, ok := f.docs[docKey(applicationID, documentType)]
	if !ok {
		return nil, apperrors.ErrDocumentNotFound
	}
	copied := *doc
	return &copied, nil
}

func (f fakeDocs) ListByApplication(ctx context.Context, applicationID string) ([]models.Document, error) {
	var docs []models.Document
	for _, doc := range f.docs {
		if doc.ApplicationID == applicationID {
			docs = append(docs, *doc)
		}
	}
	return docs, nil
}

func (f fakeDocs) Submit(ctx context.Context, doc *models.Document, ev *models.ReviewEvent) error {
	app, ok := f.apps[doc.ApplicationID]
	if !ok {
		return apperrors.ErrApplicationNotFound
	}
	if !workflow.WithinDeadline(app.DeadlineAt, ev.OccurredAt) {
		return apperrors.ErrDeadlinePassed
	}

	key := docKey(doc.ApplicationID, doc.DocumentType)
	if existing, exists := f.docs[key]; exists && existing.Status != models.DocumentRejected {
		return apperrors.ErrDocumentNotResubmittable
	}

	doc.Status = models.DocumentPending
	doc.SubmittedAt = ev.OccurredAt
	doc.ReviewedBy = nil
	doc.RejectionReason = nil
	doc.ReviewedAt = nil
	stored := *doc
	f.docs[key] = &stored
	f.appendEvent(ev)
	return nil
}

func (f fakeDocs) Review(ctx context.Context, applicationID, documentType string, decision models.ReviewDecision, reviewer string, reason *string, ev *models.ReviewEvent) (*models.Document, error) {
	if _, ok := f.apps[applicationID]; !ok {
		return nil, apperrors.ErrApplicationNotFound
	}
	doc, ok := f.docs[docKey(applicationID, documentType)]
	if !ok {
		return nil, apperrors.ErrDocumentNotFound
	}

	if decision == models.DecisionApproved {
		doc.Status = models.DocumentApproved
		doc.RejectionReason = nil
	} else {
		doc.Status = models.DocumentRejected
		doc.RejectionReason = reason
	}
	doc.ReviewedBy = &reviewer
	reviewedAt := ev.OccurredAt
	doc.ReviewedAt = &reviewedAt

	f.appendEvent(ev)
	copied := *doc
	return &copied, nil
}

// fakeForms satisfies FormStore.
type fakeForms struct{ *fakeStore }

func (f fakeForms) Get(ctx context.Context, applicationID string, formType models.FormType) (*models.ClearanceForm, error) {
	form, ok := f.forms[formKey(applicationID, formType)]
	if !ok {
		return nil, apperrors.ErrFormNotFound
	}
	copied := *form
	return &copied, nil
}

func (f fakeForms) Create(ctx context.Context, form *models.ClearanceForm, ev *models.ReviewEvent) error {
	if _, ok := f.apps[form.ApplicationID]; !ok {
		return apperrors.ErrApplicationNotFound
	}
	key := formKey(form.ApplicationID, form.FormType)
	if _, exists := f.forms[key]; exists {
		return apperrors.ErrInvalidTransition
	}
	form.CreatedAt = ev.OccurredAt
	form.UpdatedAt = ev.OccurredAt
	stored := *form
	f.forms[key] = &stored
	f.appendEvent(ev)
	return nil
}

func (f fakeForms) ApproveFirstStage(ctx context.Context, applicationID string, formType models.FormType, approver string, ev *models.ReviewEvent) (*models.ClearanceForm, error) {
	if _, ok := f.apps[applicationID]; !ok {
		return nil, apperrors.ErrApplicationNotFound
	}
	form, ok := f.forms[formKey(applicationID, formType)]
	if !ok || form.State != models.FormPendingFirstApproval {
		return nil, apperrors.ErrInvalidTransition
	}
	form.State = models.FormPendingSecondApproval
	form.FirstApprovedBy = &approver
	approvedAt := ev.OccurredAt
	form.FirstApprovedAt = &approvedAt
	form.UpdatedAt = ev.OccurredAt
	f.appendEvent(ev)
	copied := *form
	return &copied, nil
}

func (f fakeForms) ApproveSecondStage(ctx context.Context, applicationID string, formType models.FormType, approver string, ev *models.ReviewEvent) (*models.ClearanceForm, error) {
	if _, ok := f.apps[applicationID]; !ok {
		return nil, apperrors.ErrApplicationNotFound
	}
	form, ok := f.forms[formKey(applicationID, formType)]
	if !ok || form.State != models.FormPendingSecondApproval {
		return nil, apperrors.ErrInvalidTransition
	}
	form.State = models.FormApproved
	form.SecondApprovedBy = &approver
	approvedAt := ev.OccurredAt
	form.SecondApprovedAt = &approvedAt
	form.UpdatedAt = ev.OccurredAt
	f.appendEvent(ev)
	copied := *form
	return &copied, nil
}

func (f fakeForms) ListByApplication(ctx context.Context, applicationID string) ([]models.ClearanceForm, error) {
	var forms []models.ClearanceForm
	for _, form := range f.forms {
		if form.ApplicationID == applicationID {
			forms = append(forms, *form)
		}
	}
	return forms, nil
}
