package seed

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/ayodele/clearflow/internal/app/models"
	appRepos "github.com/ayodele/clearflow/internal/app/repositories"
	"github.com/ayodele/clearflow/internal/pkg/apperrors"
	"github.com/ayodele/clearflow/internal/pkg/auth"
)

type defaultAccount struct {
	email     string
	password  string
	firstName string
	lastName  string
	roleType  appModels.RoleType
}

// CreateDefaultData creates the default review accounts if they don't exist.
// Errors are collected instead of aborting so a partial seed never blocks startup.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	accounts := []defaultAccount{
		{
			email:     "admin@clearflow.app",
			password:  "Admin123!",
			firstName: "System",
			lastName:  "Administrator",
			roleType:  appModels.RoleAdmin,
		},
		{
			email:     "registrar@clearflow.app",
			password:  "Registrar123!",
			firstName: "Records",
			lastName:  "Office",
			roleType:  appModels.RoleStaff,
		},
	}

	lgr.Info().Msg("Checking/Creating default review accounts...")
	var finalErr error

	for _, account := range accounts {
		hashedPassword, err := auth.HashPassword(account.password)
		if err != nil {
			lgr.Error().Err(err).Str("email", account.email).Msg("Error hashing default account password")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		user := &appModels.User{
			Email:     account.email,
			Password:  hashedPassword,
			FirstName: account.firstName,
			LastName:  account.lastName,
			RoleType:  account.roleType,
			IsActive:  true,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		id, err := userRepo.Create(ctx, user)
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			lgr.Info().Str("email", account.email).Msg("Default account already exists, skipping")
			continue
		}
		if err != nil {
			lgr.Error().Err(err).Str("email", account.email).Msg("Error creating default account")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		lgr.Info().Int64("userID", id).Str("email", account.email).Str("role", string(account.roleType)).Msg("Default account created")
	}

	lgr.Info().Msg("Default account check/creation finished.")
	return finalErr
}
