package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ayodele/clearflow/internal/app/models"
	"github.com/ayodele/clearflow/internal/pkg/apperrors"
)

func newTestDocumentService(store *fakeStore, clock *time.Time) *documentServiceImpl {
	return &documentServiceImpl{
		applications: fakeApps{store},
		documents:    fakeDocs{store},
		now:          func() time.Time { return *clock },
	}
}

func registerTestApplication(t *testing.T, store *fakeStore, clock *time.Time, id string) {
	t.Helper()
	svc := newTestApplicationService(store, clock)
	if _, err := svc.RegisterApplication(context.Background(), id, "0x4f2a", "student@school.edu"); err != nil {
		t.Fatalf("RegisterApplication(%s) error = %v", id, err)
	}
}

// The rejection round trip: a pending document cannot be replaced, a
// rejected one can, and the resubmission wipes the old verdict.
func TestDocumentRejectionRoundTrip(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	store := newFakeStore()
	registerTestApplication(t, store, &clock, "STU001")
	svc := newTestDocumentService(store, &clock)

	doc, err := svc.SubmitDocument(ctx, "STU001", "SSCE", "0xabc", "student@school.edu")
	if err != nil {
		t.Fatalf("SubmitDocument() error = %v", err)
	}
	if doc.Status != models.DocumentPending {
		t.Errorf("submitted document status = %q, want %q", doc.Status, models.DocumentPending)
	}

	ok, withinDeadline, err := svc.CanSubmit(ctx, "STU001", "SSCE")
	if err != nil {
		t.Fatalf("CanSubmit() error = %v", err)
	}
	if ok {
		t.Error("CanSubmit = true with a pending document, want false")
	}
	if !withinDeadline {
		t.Error("withinDeadline = false with no deadline set, want true")
	}

	if _, err := svc.SubmitDocument(ctx, "STU001", "SSCE", "0xbad", "student@school.edu"); !errors.Is(err, apperrors.ErrDocumentNotResubmittable) {
		t.Fatalf("resubmit over pending error = %v, want ErrDocumentNotResubmittable", err)
	}

	clock = clock.Add(time.Hour)
	reviewed, err := svc.ReviewDocument(ctx, "STU001", "SSCE", models.DecisionRejected, "registrar@school.edu", "blurry scan")
	if err != nil {
		t.Fatalf("ReviewDocument(rejected) error = %v", err)
	}
	if reviewed.Status != models.DocumentRejected {
		t.Errorf("reviewed status = %q, want %q", reviewed.Status, models.DocumentRejected)
	}
	if reviewed.RejectionReason == nil || *reviewed.RejectionReason != "blurry scan" {
		t.Errorf("rejection reason = %v, want %q", reviewed.RejectionReason, "blurry scan")
	}

	ok, _, err = svc.CanSubmit(ctx, "STU001", "SSCE")
	if err != nil {
		t.Fatalf("CanSubmit() error = %v", err)
	}
	if !ok {
		t.Error("CanSubmit = false after rejection, want true")
	}

	clock = clock.Add(time.Hour)
	resubmitted, err := svc.SubmitDocument(ctx, "STU001", "SSCE", "0xdef", "student@school.edu")
	if err != nil {
		t.Fatalf("resubmit after rejection error = %v", err)
	}
	if resubmitted.Status != models.DocumentPending {
		t.Errorf("resubmitted status = %q, want %q", resubmitted.Status, models.DocumentPending)
	}
	if resubmitted.DocumentHash != "0xdef" {
		t.Errorf("resubmitted hash = %q, want %q", resubmitted.DocumentHash, "0xdef")
	}
	if resubmitted.RejectionReason != nil {
		t.Errorf("resubmission kept rejection reason %q", *resubmitted.RejectionReason)
	}
	if resubmitted.ReviewedBy != nil || resubmitted.ReviewedAt != nil {
		t.Error("resubmission kept stale reviewer fields")
	}

	clock = clock.Add(time.Hour)
	approved, err := svc.ReviewDocument(ctx, "STU001", "SSCE", models.DecisionApproved, "registrar@school.edu", "")
	if err != nil {
		t.Fatalf("ReviewDocument(approved) error = %v", err)
	}
	if approved.Status != models.DocumentApproved {
		t.Errorf("approved status = %q, want %q", approved.Status, models.DocumentApproved)
	}
	if approved.RejectionReason != nil {
		t.Errorf("approved document kept rejection reason %q", *approved.RejectionReason)
	}
}

func TestReviewDocumentDecisions(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		decision models.ReviewDecision
		reason   string
		wantErr  error
	}{
		{"approve", models.DecisionApproved, "", nil},
		{"approve ignores reason", models.DecisionApproved, "looks fine", nil},
		{"reject with reason", models.DecisionRejected, "blurry scan", nil},
		{"reject without reason", models.DecisionRejected, "", apperrors.ErrRejectionReasonRequired},
		{"reject with blank reason", models.DecisionRejected, "   ", apperrors.ErrRejectionReasonRequired},
		{"unknown decision", models.ReviewDecision("maybe"), "", apperrors.ErrInvalidDecision},
		{"empty decision", models.ReviewDecision(""), "", apperrors.ErrInvalidDecision},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			registerTestApplication(t, store, &clock, "STU001")
			svc := newTestDocumentService(store, &clock)

			if _, err := svc.SubmitDocument(ctx, "STU001", "SSCE", "0xabc", "student@school.edu"); err != nil {
				t.Fatalf("SubmitDocument() error = %v", err)
			}

			doc, err := svc.ReviewDocument(ctx, "STU001", "SSCE", tt.decision, "registrar@school.edu", tt.reason)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ReviewDocument() error = %v, want %v", err, tt.wantErr)
				}
				// A refused review leaves the document pending
				stored, getErr := svc.GetDocument(ctx, "STU001", "SSCE")
				if getErr != nil {
					t.Fatalf("GetDocument() error = %v", getErr)
				}
				if stored.Status != models.DocumentPending {
					t.Errorf("status after refused review = %q, want %q", stored.Status, models.DocumentPending)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReviewDocument() error = %v", err)
			}
			if tt.decision == models.DecisionApproved && doc.RejectionReason != nil {
				t.Errorf("approved document carries reason %q", *doc.RejectionReason)
			}
		})
	}
}

func TestReviewDocumentMissing(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	store := newFakeStore()
	registerTestApplication(t, store, &clock, "STU001")
	svc := newTestDocumentService(store, &clock)

	_, err := svc.ReviewDocument(ctx, "STU001", "SSCE", models.DecisionApproved, "registrar@school.edu", "")
	if !errors.Is(err, apperrors.ErrDocumentNotFound) {
		t.Errorf("review of missing document error = %v, want ErrDocumentNotFound", err)
	}

	_, err = svc.ReviewDocument(ctx, "STU404", "SSCE", models.DecisionApproved, "registrar@school.edu", "")
	if !errors.Is(err, apperrors.ErrApplicationNotFound) {
		t.Errorf("review under unknown application error = %v, want ErrApplicationNotFound", err)
	}
}

// The deadline boundary is inclusive: a submission at the exact cutoff
// instant passes, one nanosecond later is refused.
func TestSubmitDocumentDeadline(t *testing.T) {
	ctx := context.Background()
	deadline := time.Date(2025, 9, 30, 23, 59, 59, 0, time.UTC)
	clock := deadline.Add(-30 * 24 * time.Hour)
	store := newFakeStore()
	registerTestApplication(t, store, &clock, "STU002")

	appSvc := newTestApplicationService(store, &clock)
	if err := appSvc.SetDeadline(ctx, "STU002", deadline, "admin@school.edu"); err != nil {
		t.Fatalf("SetDeadline() error = %v", err)
	}
	svc := newTestDocumentService(store, &clock)

	tests := []struct {
		name    string
		at      time.Time
		canPass bool
	}{
		{"well before deadline", deadline.Add(-time.Hour), true},
		{"one second before", deadline.Add(-time.Second), true},
		{"exactly at deadline", deadline, true},
		{"one nanosecond after", deadline.Add(time.Nanosecond), false},
		{"one second after", deadline.Add(time.Second), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock = tt.at
			docType := "BIRTH_CERT_" + tt.name

			ok, withinDeadline, err := svc.CanSubmit(ctx, "STU002", docType)
			if err != nil {
				t.Fatalf("CanSubmit() error = %v", err)
			}
			if ok != tt.canPass {
				t.Errorf("CanSubmit at %v = %v, want %v", tt.at, ok, tt.canPass)
			}
			if withinDeadline != tt.canPass {
				t.Errorf("withinDeadline at %v = %v, want %v", tt.at, withinDeadline, tt.canPass)
			}

			_, err = svc.SubmitDocument(ctx, "STU002", docType, "0xabc", "student@school.edu")
			if tt.canPass {
				if err != nil {
					t.Fatalf("SubmitDocument at %v error = %v", tt.at, err)
				}
				return
			}
			if !errors.Is(err, apperrors.ErrDeadlinePassed) {
				t.Fatalf("SubmitDocument after deadline error = %v, want ErrDeadlinePassed", err)
			}
			// A refused submission leaves nothing behind
			if _, err := svc.GetDocument(ctx, "STU002", docType); !errors.Is(err, apperrors.ErrDocumentNotFound) {
				t.Errorf("document stored despite refused submission, get error = %v", err)
			}
		})
	}
}

func TestSubmitDocumentValidation(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	store := newFakeStore()
	registerTestApplication(t, store, &clock, "STU001")
	svc := newTestDocumentService(store, &clock)

	_, err := svc.SubmitDocument(ctx, "STU001", "", "0xabc", "student@school.edu")
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("empty document type error = %v, want ErrValidationFailed", err)
	}
	var ce *apperrors.CustomError
	if !errors.As(err, &ce) || ce.Error() != "document type cannot be empty" {
		t.Errorf("empty document type error = %v, want message %q", err, "document type cannot be empty")
	}
	if _, err := svc.SubmitDocument(ctx, "STU001", "SSCE", "", "student@school.edu"); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("empty document hash error = %v, want ErrValidationFailed", err)
	}
	if _, err := svc.SubmitDocument(ctx, "STU404", "SSCE", "0xabc", "student@school.edu"); !errors.Is(err, apperrors.ErrApplicationNotFound) {
		t.Errorf("unknown application error = %v, want ErrApplicationNotFound", err)
	}
}

func TestListDocuments(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	store := newFakeStore()
	registerTestApplication(t, store, &clock, "STU001")
	svc := newTestDocumentService(store, &clock)

	for _, docType := range []string{"SSCE", "BIRTH_CERT"} {
		if _, err := svc.SubmitDocument(ctx, "STU001", docType, "0xabc", "student@school.edu"); err != nil {
			t.Fatalf("SubmitDocument(%s) error = %v", docType, err)
		}
	}

	docs, err := svc.ListDocuments(ctx, "STU001")
	if err != nil {
		t.Fatalf("ListDocuments() error = %v", err)
	}
	if len(docs) != 2 {
		t.Errorf("len(docs) = %d, want 2", len(docs))
	}

	if _, err := svc.ListDocuments(ctx, "STU404"); !errors.Is(err, apperrors.ErrApplicationNotFound) {
		t.Errorf("list of unknown application error = %v, want ErrApplicationNotFound", err)
	}
}
