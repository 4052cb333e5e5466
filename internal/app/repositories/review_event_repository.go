package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ayodele/clearflow/internal/app/models"
)

// ReviewEventRepository reads the append-only audit trail. Writes go
// through appendEvent inside the owning repository's transaction; there
// is deliberately no update or delete path here.
type ReviewEventRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewReviewEventRepository creates a new ReviewEventRepository
func NewReviewEventRepository(db *pgxpool.Pool) *ReviewEventRepository {
	return &ReviewEventRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// ListByApplication returns the full event chain of one application in
// sequence order.
func (r *ReviewEventRepository) ListByApplication(ctx context.Context, applicationID string) ([]models.ReviewEvent, error) {
	query, args, err := r.sb.Select(
		"id", "application_id", "seq", "event_type", "subject",
		"actor", "detail", "digest", "prev_digest", "occurred_at",
	).
		From("review_events").
		Where(squirrel.Eq{"application_id": applicationID}).
		OrderBy("seq ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list events query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying events of %s: %w", applicationID, err)
	}
	defer rows.Close()

	var events []models.ReviewEvent
	for rows.Next() {
		var ev models.ReviewEvent
		err := rows.Scan(
			&ev.ID, &ev.ApplicationID, &ev.Seq, &ev.EventType, &ev.Subject,
			&ev.Actor, &ev.Detail, &ev.Digest, &ev.PrevDigest, &ev.OccurredAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event rows: %w", err)
	}

	return events, nil
}
