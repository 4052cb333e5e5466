package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ayodele/clearflow/internal/app/models"
	"github.com/ayodele/clearflow/internal/db"
	"github.com/ayodele/clearflow/internal/pkg/apperrors"
	"github.com/ayodele/clearflow/internal/pkg/dberrors"
	"github.com/ayodele/clearflow/internal/pkg/logger"
)

// FormRepository handles clearance form database operations. Rows are
// created lazily on first submission; a missing row means the form is
// still in the not-submitted state. State transitions are conditional
// updates guarded by the expected current state, so an illegal
// transition can never be committed even under concurrent reviewers.
type FormRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewFormRepository creates a new FormRepository
func NewFormRepository(db *pgxpool.Pool) *FormRepository {
	return &FormRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const formColumns = `application_id, form_type, state, submitted_at,
	first_approved_by, first_approved_at, second_approved_by, second_approved_at,
	created_at, updated_at`

func scanForm(row pgx.Row) (*models.ClearanceForm, error) {
	var form models.ClearanceForm
	err := row.Scan(
		&form.ApplicationID, &form.FormType, &form.State, &form.SubmittedAt,
		&form.FirstApprovedBy, &form.FirstApprovedAt, &form.SecondApprovedBy, &form.SecondApprovedAt,
		&form.CreatedAt, &form.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &form, nil
}

// Get retrieves a form instance by its composite key
func (r *FormRepository) Get(ctx context.Context, applicationID string, formType models.FormType) (*models.ClearanceForm, error) {
	query := fmt.Sprintf(`SELECT %s FROM clearance_forms WHERE application_id = $1 AND form_type = $2`, formColumns)

	form, err := scanForm(r.db.QueryRow(ctx, query, applicationID, string(formType)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFormNotFound
		}
		return nil, fmt.Errorf("error querying form (%s, %s): %w", applicationID, formType, err)
	}

	return form, nil
}

// Create inserts a freshly submitted form instance. A duplicate key
// means the form was already submitted, which is an illegal transition.
func (r *FormRepository) Create(ctx context.Context, form *models.ClearanceForm, ev *models.ReviewEvent) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		app, err := lockApplicationRow(ctx, tx, form.ApplicationID)
		if err != nil {
			return err
		}
		if app == nil {
			return apperrors.ErrApplicationNotFound
		}

		insert := `
			INSERT INTO clearance_forms (application_id, form_type, state, submitted_at, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $5)
			RETURNING created_at, updated_at`
		err = tx.QueryRow(ctx, insert,
			form.ApplicationID, string(form.FormType), string(form.State),
			form.SubmittedAt, ev.OccurredAt,
		).Scan(&form.CreatedAt, &form.UpdatedAt)
		if err != nil {
			if dberrors.IsUniqueViolation(err) {
				return apperrors.ErrInvalidTransition
			}
			return fmt.Errorf("error inserting form (%s, %s): %w", form.ApplicationID, form.FormType, err)
		}

		if err := appendEvent(ctx, tx, ev); err != nil {
			return err
		}

		logger.Info().
			Str("applicationID", form.ApplicationID).
			Str("formType", string(form.FormType)).
			Msg("Clearance form submitted")
		return nil
	})
}

// advanceState commits a transition guarded by the expected current
// state; zero rows affected means the form was not in that state.
func (r *FormRepository) advanceState(ctx context.Context, applicationID string, formType models.FormType, from, to models.FormState, setClause string, approver string, ev *models.ReviewEvent) (*models.ClearanceForm, error) {
	var advanced *models.ClearanceForm

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		app, err := lockApplicationRow(ctx, tx, applicationID)
		if err != nil {
			return err
		}
		if app == nil {
			return apperrors.ErrApplicationNotFound
		}

		update := fmt.Sprintf(`
			UPDATE clearance_forms
			SET state = $3, %s, updated_at = $6
			WHERE application_id = $1 AND form_type = $2 AND state = $4
			RETURNING %s`, setClause, formColumns)

		form, err := scanForm(tx.QueryRow(ctx, update,
			applicationID, string(formType), string(to), string(from), approver, ev.OccurredAt,
		))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				// Distinguish a missing form from a wrong-state form only
				// in logs; both are the same illegal transition to callers.
				return apperrors.ErrInvalidTransition
			}
			return fmt.Errorf("error advancing form (%s, %s) to %s: %w", applicationID, formType, to, err)
		}

		if err := appendEvent(ctx, tx, ev); err != nil {
			return err
		}

		advanced = form
		logger.Info().
			Str("applicationID", applicationID).
			Str("formType", string(formType)).
			Str("state", string(to)).
			Str("approver", approver).
			Msg("Clearance form advanced")
		return nil
	})
	if err != nil {
		return nil, err
	}

	return advanced, nil
}

// ApproveFirstStage records the Deputy Registrar sign-off
func (r *FormRepository) ApproveFirstStage(ctx context.Context, applicationID string, formType models.FormType, approver string, ev *models.ReviewEvent) (*models.ClearanceForm, error) {
	return r.advanceState(ctx, applicationID, formType,
		models.FormPendingFirstApproval, models.FormPendingSecondApproval,
		"first_approved_by = $5, first_approved_at = $6", approver, ev)
}

// ApproveSecondStage records the School Officer sign-off
func (r *FormRepository) ApproveSecondStage(ctx context.Context, applicationID string, formType models.FormType, approver string, ev *models.ReviewEvent) (*models.ClearanceForm, error) {
	return r.advanceState(ctx, applicationID, formType,
		models.FormPendingSecondApproval, models.FormApproved,
		"second_approved_by = $5, second_approved_at = $6", approver, ev)
}

// ListByApplication retrieves every submitted form of one application
func (r *FormRepository) ListByApplication(ctx context.Context, applicationID string) ([]models.ClearanceForm, error) {
	query, args, err := r.sb.Select(
		"application_id", "form_type", "state", "submitted_at",
		"first_approved_by", "first_approved_at", "second_approved_by", "second_approved_at",
		"created_at", "updated_at",
	).
		From("clearance_forms").
		Where(squirrel.Eq{"application_id": applicationID}).
		OrderBy("form_type").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list forms query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying forms of %s: %w", applicationID, err)
	}
	defer rows.Close()

	var forms []models.ClearanceForm
	for rows.Next() {
		form, err := scanForm(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan form row: %w", err)
		}
		forms = append(forms, *form)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating form rows: %w", err)
	}

	return forms, nil
}
