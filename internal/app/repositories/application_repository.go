package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ayodele/clearflow/internal/app/models"
	"github.com/ayodele/clearflow/internal/db"
	"github.com/ayodele/clearflow/internal/pkg/apperrors"
	"github.com/ayodele/clearflow/internal/pkg/dberrors"
	"github.com/ayodele/clearflow/internal/pkg/logger"
)

// ApplicationRepository handles enrollment application database operations
type ApplicationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create registers a new application and appends the registration event
// in one transaction. A duplicate external ID fails without touching the
// existing record.
func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application, ev *models.ReviewEvent) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		insert := `
			INSERT INTO applications (application_id, data_hash, verified, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $5)
			RETURNING created_at, updated_at`
		err := tx.QueryRow(ctx, insert,
			app.ID, app.DataHash, app.Verified, string(app.Status), ev.OccurredAt,
		).Scan(&app.CreatedAt, &app.UpdatedAt)
		if err != nil {
			if dberrors.IsUniqueViolation(err) {
				logger.Warn().Str("applicationID", app.ID).Msg("Attempted to register duplicate application")
				return apperrors.ErrApplicationAlreadyExists
			}
			return fmt.Errorf("error inserting application %s: %w", app.ID, err)
		}

		if err := appendEvent(ctx, tx, ev); err != nil {
			return err
		}

		logger.Info().Str("applicationID", app.ID).Msg("Application registered")
		return nil
	})
}

// GetByID retrieves an application by its external ID
func (r *ApplicationRepository) GetByID(ctx context.Context, id string) (*models.Application, error) {
	query, args, err := r.sb.Select(
		"application_id", "data_hash", "verified", "verified_by",
		"status", "deadline_at", "created_at", "updated_at",
	).
		From("applications").
		Where(squirrel.Eq{"application_id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get application query: %w", err)
	}

	var app models.Application
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&app.ID, &app.DataHash, &app.Verified, &app.VerifiedBy,
		&app.Status, &app.DeadlineAt, &app.CreatedAt, &app.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("error querying application %s: %w", id, err)
	}

	return &app, nil
}

// Verify marks the registration data as verified. The flag is one-way:
// verifying an already verified application is a no-op update that still
// records the reviewer in the audit trail.
func (r *ApplicationRepository) Verify(ctx context.Context, id, reviewer string, ev *models.ReviewEvent) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		app, err := lockApplicationRow(ctx, tx, id)
		if err != nil {
			return err
		}
		if app == nil {
			return apperrors.ErrApplicationNotFound
		}

		update := `
			UPDATE applications
			SET verified = TRUE, verified_by = $2, updated_at = $3
			WHERE application_id = $1`
		if _, err := tx.Exec(ctx, update, id, reviewer, ev.OccurredAt); err != nil {
			return fmt.Errorf("error verifying application %s: %w", id, err)
		}

		if err := appendEvent(ctx, tx, ev); err != nil {
			return err
		}

		logger.Info().Str("applicationID", id).Str("reviewer", reviewer).Msg("Application verified")
		return nil
	})
}

// UpdateStatus moves the overall application status
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus, ev *models.ReviewEvent) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		app, err := lockApplicationRow(ctx, tx, id)
		if err != nil {
			return err
		}
		if app == nil {
			return apperrors.ErrApplicationNotFound
		}

		update := `
			UPDATE applications
			SET status = $2, updated_at = $3
			WHERE application_id = $1`
		if _, err := tx.Exec(ctx, update, id, string(status), ev.OccurredAt); err != nil {
			return fmt.Errorf("error updating status of application %s: %w", id, err)
		}

		if err := appendEvent(ctx, tx, ev); err != nil {
			return err
		}

		logger.Info().Str("applicationID", id).Str("status", string(status)).Msg("Application status updated")
		return nil
	})
}

// SetDeadline stores the submission cutoff, overwriting any prior value
func (r *ApplicationRepository) SetDeadline(ctx context.Context, id string, deadline time.Time, ev *models.ReviewEvent) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		app, err := lockApplicationRow(ctx, tx, id)
		if err != nil {
			return err
		}
		if app == nil {
			return apperrors.ErrApplicationNotFound
		}

		update := `
			UPDATE applications
			SET deadline_at = $2, updated_at = $3
			WHERE application_id = $1`
		if _, err := tx.Exec(ctx, update, id, deadline, ev.OccurredAt); err != nil {
			return fmt.Errorf("error setting deadline of application %s: %w", id, err)
		}

		if err := appendEvent(ctx, tx, ev); err != nil {
			return err
		}

		logger.Info().Str("applicationID", id).Time("deadline", deadline).Msg("Application deadline set")
		return nil
	})
}
