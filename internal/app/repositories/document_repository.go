package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ayodele/clearflow/internal/app/models"
	"github.com/ayodele/clearflow/internal/app/workflow"
	"github.com/ayodele/clearflow/internal/db"
	"github.com/ayodele/clearflow/internal/pkg/apperrors"
	"github.com/ayodele/clearflow/internal/pkg/logger"
)

// DocumentRepository handles document database operations. Documents are
// keyed by (application_id, document_type); every mutation runs under the
// application row lock so concurrent writers on the same key serialize.
type DocumentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewDocumentRepository creates a new DocumentRepository
func NewDocumentRepository(db *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Get retrieves a document by its composite key
func (r *DocumentRepository) Get(ctx context.Context, applicationID, documentType string) (*models.Document, error) {
	query, args, err := r.sb.Select(
		"application_id", "document_type", "document_hash", "status",
		"reviewed_by", "rejection_reason", "submitted_at", "reviewed_at",
	).
		From("documents").
		Where(squirrel.Eq{"application_id": applicationID, "document_type": documentType}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get document query: %w", err)
	}

	var doc models.Document
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&doc.ApplicationID, &doc.DocumentType, &doc.DocumentHash, &doc.Status,
		&doc.ReviewedBy, &doc.RejectionReason, &doc.SubmittedAt, &doc.ReviewedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("error querying document (%s, %s): %w", applicationID, documentType, err)
	}

	return &doc, nil
}

// ListByApplication retrieves every document of one application
func (r *DocumentRepository) ListByApplication(ctx context.Context, applicationID string) ([]models.Document, error) {
	query, args, err := r.sb.Select(
		"application_id", "document_type", "document_hash", "status",
		"reviewed_by", "rejection_reason", "submitted_at", "reviewed_at",
	).
		From("documents").
		Where(squirrel.Eq{"application_id": applicationID}).
		OrderBy("document_type").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list documents query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying documents of %s: %w", applicationID, err)
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		var doc models.Document
		err := rows.Scan(
			&doc.ApplicationID, &doc.DocumentType, &doc.DocumentHash, &doc.Status,
			&doc.ReviewedBy, &doc.RejectionReason, &doc.SubmittedAt, &doc.ReviewedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating document rows: %w", err)
	}

	return docs, nil
}

// Submit stores a document hash for an application. First submission
// inserts a pending record; resubmission is legal only over a rejected
// record and resets it to pending with the rejection reason cleared.
// The deadline gate and the resubmission policy are both re-checked
// under the application lock, so a stale caller cannot slip past them.
func (r *DocumentRepository) Submit(ctx context.Context, doc *models.Document, ev *models.ReviewEvent) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		app, err := lockApplicationRow(ctx, tx, doc.ApplicationID)
		if err != nil {
			return err
		}
		if app == nil {
			return apperrors.ErrApplicationNotFound
		}

		if !workflow.WithinDeadline(app.DeadlineAt, ev.OccurredAt) {
			return apperrors.ErrDeadlinePassed
		}

		var existingStatus models.DocumentStatus
		err = tx.QueryRow(ctx,
			`SELECT status FROM documents WHERE application_id = $1 AND document_type = $2`,
			doc.ApplicationID, doc.DocumentType,
		).Scan(&existingStatus)

		switch {
		case errors.Is(err, pgx.ErrNoRows):
			insert := `
				INSERT INTO documents (application_id, document_type, document_hash, status, submitted_at)
				VALUES ($1, $2, $3, $4, $5)`
			if _, err := tx.Exec(ctx, insert,
				doc.ApplicationID, doc.DocumentType, doc.DocumentHash,
				string(models.DocumentPending), ev.OccurredAt,
			); err != nil {
				return fmt.Errorf("error inserting document (%s, %s): %w", doc.ApplicationID, doc.DocumentType, err)
			}

		case err != nil:
			return fmt.Errorf("error checking existing document (%s, %s): %w", doc.ApplicationID, doc.DocumentType, err)

		case existingStatus == models.DocumentRejected:
			update := `
				UPDATE documents
				SET document_hash = $3, status = $4, reviewed_by = NULL, rejection_reason = NULL,
				    reviewed_at = NULL, submitted_at = $5
				WHERE application_id = $1 AND document_type = $2 AND status = $6`
			tag, err := tx.Exec(ctx, update,
				doc.ApplicationID, doc.DocumentType, doc.DocumentHash,
				string(models.DocumentPending), ev.OccurredAt, string(models.DocumentRejected),
			)
			if err != nil {
				return fmt.Errorf("error resubmitting document (%s, %s): %w", doc.ApplicationID, doc.DocumentType, err)
			}
			if tag.RowsAffected() == 0 {
				return apperrors.ErrDocumentNotResubmittable
			}

		default:
			// Pending or approved records are immutable to submitters
			return apperrors.ErrDocumentNotResubmittable
		}

		doc.Status = models.DocumentPending
		doc.SubmittedAt = ev.OccurredAt
		doc.ReviewedBy = nil
		doc.RejectionReason = nil
		doc.ReviewedAt = nil

		if err := appendEvent(ctx, tx, ev); err != nil {
			return err
		}

		logger.Info().
			Str("applicationID", doc.ApplicationID).
			Str("documentType", doc.DocumentType).
			Msg("Document submitted")
		return nil
	})
}

// Review records a reviewer's verdict on a pending (or re-reviewed)
// document. Approving clears any stale rejection reason; rejecting
// stores the new one. The whole update is all-or-nothing.
func (r *DocumentRepository) Review(ctx context.Context, applicationID, documentType string, decision models.ReviewDecision, reviewer string, reason *string, ev *models.ReviewEvent) (*models.Document, error) {
	var reviewed *models.Document

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		app, err := lockApplicationRow(ctx, tx, applicationID)
		if err != nil {
			return err
		}
		if app == nil {
			return apperrors.ErrApplicationNotFound
		}

		var status models.DocumentStatus
		var rejectionReason *string
		if decision == models.DecisionApproved {
			status = models.DocumentApproved
			rejectionReason = nil
		} else {
			status = models.DocumentRejected
			rejectionReason = reason
		}

		update := `
			UPDATE documents
			SET status = $3, reviewed_by = $4, rejection_reason = $5, reviewed_at = $6
			WHERE application_id = $1 AND document_type = $2
			RETURNING application_id, document_type, document_hash, status,
			          reviewed_by, rejection_reason, submitted_at, reviewed_at`
		var doc models.Document
		err = tx.QueryRow(ctx, update,
			applicationID, documentType, string(status), reviewer, rejectionReason, ev.OccurredAt,
		).Scan(
			&doc.ApplicationID, &doc.DocumentType, &doc.DocumentHash, &doc.Status,
			&doc.ReviewedBy, &doc.RejectionReason, &doc.SubmittedAt, &doc.ReviewedAt,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrDocumentNotFound
			}
			return fmt.Errorf("error reviewing document (%s, %s): %w", applicationID, documentType, err)
		}

		if err := appendEvent(ctx, tx, ev); err != nil {
			return err
		}

		reviewed = &doc
		logger.Info().
			Str("applicationID", applicationID).
			Str("documentType", documentType).
			Str("decision", string(decision)).
			Str("reviewer", reviewer).
			Msg("Document reviewed")
		return nil
	})
	if err != nil {
		return nil, err
	}

	return reviewed, nil
}
