package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ayodele/clearflow/internal/app/models"
	"github.com/ayodele/clearflow/internal/pkg/anchor"
	"github.com/ayodele/clearflow/internal/pkg/apperrors"
)

func newTestApplicationService(store *fakeStore, clock *time.Time) *applicationServiceImpl {
	return &applicationServiceImpl{
		applications: fakeApps{store},
		events:       fakeApps{store},
		now:          func() time.Time { return *clock },
	}
}

func TestRegisterApplication(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestApplicationService(newFakeStore(), &clock)

	app, err := svc.RegisterApplication(ctx, "STU001", "0x4f2a", "student@school.edu")
	if err != nil {
		t.Fatalf("RegisterApplication() error = %v", err)
	}
	if app.Status != models.ApplicationSubmitted {
		t.Errorf("new application status = %q, want %q", app.Status, models.ApplicationSubmitted)
	}
	if app.Verified {
		t.Error("new application must not be verified")
	}
}

func TestRegisterApplicationDuplicateID(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestApplicationService(newFakeStore(), &clock)

	if _, err := svc.RegisterApplication(ctx, "STU001", "0x4f2a", "student@school.edu"); err != nil {
		t.Fatalf("first registration error = %v", err)
	}

	_, err := svc.RegisterApplication(ctx, "STU001", "0xffff", "intruder@school.edu")
	if !errors.Is(err, apperrors.ErrApplicationAlreadyExists) {
		t.Fatalf("duplicate registration error = %v, want ErrApplicationAlreadyExists", err)
	}

	// First write wins: the original record is untouched
	app, err := svc.GetApplication(ctx, "STU001")
	if err != nil {
		t.Fatalf("GetApplication() error = %v", err)
	}
	if app.DataHash != "0x4f2a" {
		t.Errorf("data hash after duplicate attempt = %q, want %q", app.DataHash, "0x4f2a")
	}
}

func TestRegisterApplicationValidation(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestApplicationService(newFakeStore(), &clock)

	tests := []struct {
		name     string
		id       string
		dataHash string
		message  string
	}{
		{"empty ID", "", "0x4f2a", "application ID cannot be empty"},
		{"blank ID", "   ", "0x4f2a", "application ID cannot be empty"},
		{"empty hash", "STU001", "", "data hash cannot be empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RegisterApplication(ctx, tt.id, tt.dataHash, "student@school.edu")
			if !errors.Is(err, apperrors.ErrValidationFailed) {
				t.Errorf("RegisterApplication(%q, %q) error = %v, want ErrValidationFailed", tt.id, tt.dataHash, err)
			}

			// The caller-facing message rides on the error
			var ce *apperrors.CustomError
			if !errors.As(err, &ce) {
				t.Fatalf("RegisterApplication(%q, %q) error = %T, want *apperrors.CustomError", tt.id, tt.dataHash, err)
			}
			if ce.Error() != tt.message {
				t.Errorf("error message = %q, want %q", ce.Error(), tt.message)
			}
		})
	}
}

func TestVerifyApplication(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestApplicationService(newFakeStore(), &clock)

	if _, err := svc.RegisterApplication(ctx, "STU001", "0x4f2a", "student@school.edu"); err != nil {
		t.Fatalf("RegisterApplication() error = %v", err)
	}

	if err := svc.VerifyApplication(ctx, "STU001", "registrar@school.edu"); err != nil {
		t.Fatalf("VerifyApplication() error = %v", err)
	}

	app, err := svc.GetApplication(ctx, "STU001")
	if err != nil {
		t.Fatalf("GetApplication() error = %v", err)
	}
	if !app.Verified {
		t.Error("application not marked verified")
	}
	if app.VerifiedBy == nil || *app.VerifiedBy != "registrar@school.edu" {
		t.Errorf("verifiedBy = %v, want registrar@school.edu", app.VerifiedBy)
	}

	if err := svc.VerifyApplication(ctx, "STU999", "registrar@school.edu"); !errors.Is(err, apperrors.ErrApplicationNotFound) {
		t.Errorf("verify of unknown application error = %v, want ErrApplicationNotFound", err)
	}
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestApplicationService(newFakeStore(), &clock)

	if _, err := svc.RegisterApplication(ctx, "STU001", "0x4f2a", "student@school.edu"); err != nil {
		t.Fatalf("RegisterApplication() error = %v", err)
	}

	if err := svc.UpdateStatus(ctx, "STU001", models.ApplicationInReview, "registrar@school.edu"); err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	app, _ := svc.GetApplication(ctx, "STU001")
	if app.Status != models.ApplicationInReview {
		t.Errorf("status = %q, want %q", app.Status, models.ApplicationInReview)
	}

	err := svc.UpdateStatus(ctx, "STU001", models.ApplicationStatus("archived"), "registrar@school.edu")
	if !errors.Is(err, apperrors.ErrInvalidApplicationStatus) {
		t.Errorf("unknown status error = %v, want ErrInvalidApplicationStatus", err)
	}
	app, _ = svc.GetApplication(ctx, "STU001")
	if app.Status != models.ApplicationInReview {
		t.Errorf("status after refused update = %q, want %q", app.Status, models.ApplicationInReview)
	}
}

func TestSetDeadline(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestApplicationService(newFakeStore(), &clock)

	if _, err := svc.RegisterApplication(ctx, "STU001", "0x4f2a", "student@school.edu"); err != nil {
		t.Fatalf("RegisterApplication() error = %v", err)
	}

	past := clock.Add(-time.Hour)
	if err := svc.SetDeadline(ctx, "STU001", past, "admin@school.edu"); !errors.Is(err, apperrors.ErrDeadlineInPast) {
		t.Errorf("past deadline error = %v, want ErrDeadlineInPast", err)
	}

	future := clock.Add(30 * 24 * time.Hour)
	if err := svc.SetDeadline(ctx, "STU001", future, "admin@school.edu"); err != nil {
		t.Fatalf("SetDeadline() error = %v", err)
	}
	app, _ := svc.GetApplication(ctx, "STU001")
	if app.DeadlineAt == nil || !app.DeadlineAt.Equal(future) {
		t.Errorf("deadline = %v, want %v", app.DeadlineAt, future)
	}

	// Shortening an existing deadline is legal
	sooner := clock.Add(24 * time.Hour)
	if err := svc.SetDeadline(ctx, "STU001", sooner, "admin@school.edu"); err != nil {
		t.Fatalf("SetDeadline() shorten error = %v", err)
	}
	app, _ = svc.GetApplication(ctx, "STU001")
	if app.DeadlineAt == nil || !app.DeadlineAt.Equal(sooner) {
		t.Errorf("shortened deadline = %v, want %v", app.DeadlineAt, sooner)
	}
}

func TestListEventsChain(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestApplicationService(newFakeStore(), &clock)

	if _, err := svc.ListEvents(ctx, "STU404"); !errors.Is(err, apperrors.ErrApplicationNotFound) {
		t.Fatalf("events of unknown application error = %v, want ErrApplicationNotFound", err)
	}

	if _, err := svc.RegisterApplication(ctx, "STU001", "0x4f2a", "student@school.edu"); err != nil {
		t.Fatalf("RegisterApplication() error = %v", err)
	}
	clock = clock.Add(time.Minute)
	if err := svc.VerifyApplication(ctx, "STU001", "registrar@school.edu"); err != nil {
		t.Fatalf("VerifyApplication() error = %v", err)
	}
	clock = clock.Add(time.Minute)
	if err := svc.UpdateStatus(ctx, "STU001", models.ApplicationInReview, "registrar@school.edu"); err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}

	events, err := svc.ListEvents(ctx, "STU001")
	if err != nil {
		t.Fatalf("ListEvents() error = %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("len(events) = %d, want 3", len(events))
	}

	wantTypes := []models.EventType{
		models.EventApplicationRegistered,
		models.EventApplicationVerified,
		models.EventApplicationStatusSet,
	}
	payloads := make([]anchor.EventPayload, len(events))
	digests := make([]string, len(events))
	for i, ev := range events {
		if ev.Seq != int64(i+1) {
			t.Errorf("events[%d].Seq = %d, want %d", i, ev.Seq, i+1)
		}
		if ev.EventType != wantTypes[i] {
			t.Errorf("events[%d].EventType = %q, want %q", i, ev.EventType, wantTypes[i])
		}
		payloads[i] = anchor.EventPayload{
			ApplicationID: ev.ApplicationID,
			EventType:     string(ev.EventType),
			Subject:       ev.Subject,
			Actor:         ev.Actor,
			Detail:        ev.Detail,
			OccurredAt:    ev.OccurredAt,
		}
		digests[i] = ev.Digest
	}
	if !anchor.Verify(payloads, digests) {
		t.Error("audit chain does not verify")
	}
}
