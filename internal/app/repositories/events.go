package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ayodele/clearflow/internal/app/models"
	"github.com/ayodele/clearflow/internal/pkg/anchor"
)

// lockApplicationRow takes the per-application write lock inside tx and
// returns the current record. Every mutating operation goes through this,
// which serializes writers per application ID (and therefore per
// composite document/form key) while leaving other applications free.
func lockApplicationRow(ctx context.Context, tx pgx.Tx, applicationID string) (*models.Application, error) {
	query := `
		SELECT application_id, data_hash, verified, verified_by, status, deadline_at, created_at, updated_at
		FROM applications
		WHERE application_id = $1
		FOR UPDATE`

	var app models.Application
	err := tx.QueryRow(ctx, query, applicationID).Scan(
		&app.ID, &app.DataHash, &app.Verified, &app.VerifiedBy,
		&app.Status, &app.DeadlineAt, &app.CreatedAt, &app.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to lock application row %s: %w", applicationID, err)
	}
	return &app, nil
}

// appendEvent writes the next audit trail entry for an application inside
// tx. The caller must already hold the application row lock, so reading
// the chain head here is race-free. The digest commits to the previous
// digest and the event payload (see the anchor package).
func appendEvent(ctx context.Context, tx pgx.Tx, ev *models.ReviewEvent) error {
	var lastSeq int64
	lastDigest := anchor.GenesisDigest

	headQuery := `
		SELECT seq, digest
		FROM review_events
		WHERE application_id = $1
		ORDER BY seq DESC
		LIMIT 1`
	err := tx.QueryRow(ctx, headQuery, ev.ApplicationID).Scan(&lastSeq, &lastDigest)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("failed to read audit chain head for %s: %w", ev.ApplicationID, err)
	}

	ev.Seq = lastSeq + 1
	ev.PrevDigest = lastDigest
	ev.Digest = anchor.Digest(lastDigest, anchor.EventPayload{
		ApplicationID: ev.ApplicationID,
		EventType:     string(ev.EventType),
		Subject:       ev.Subject,
		Actor:         ev.Actor,
		Detail:        ev.Detail,
		OccurredAt:    ev.OccurredAt,
	})

	insert := `
		INSERT INTO review_events (application_id, seq, event_type, subject, actor, detail, digest, prev_digest, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err = tx.QueryRow(ctx, insert,
		ev.ApplicationID, ev.Seq, string(ev.EventType), ev.Subject,
		ev.Actor, ev.Detail, ev.Digest, ev.PrevDigest, ev.OccurredAt,
	).Scan(&ev.ID)
	if err != nil {
		return fmt.Errorf("failed to append audit event for %s: %w", ev.ApplicationID, err)
	}
	return nil
}
