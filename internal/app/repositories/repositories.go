package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository        *UserRepository
	TokenRepository       *TokenRepository
	ApplicationRepository *ApplicationRepository
	DocumentRepository    *DocumentRepository
	FormRepository        *FormRepository
	ReviewEventRepository *ReviewEventRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:        NewUserRepository(db),
		TokenRepository:       NewTokenRepository(db),
		ApplicationRepository: NewApplicationRepository(db),
		DocumentRepository:    NewDocumentRepository(db),
		FormRepository:        NewFormRepository(db),
		ReviewEventRepository: NewReviewEventRepository(db),
	}
}
