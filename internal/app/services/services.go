// Package services holds the business layer between HTTP controllers and
// storage. Services validate input, consult the workflow rules and build
// the audit events that repositories persist atomically with each change.
package services

import (
	"time"

	"github.com/ayodele/clearflow/internal/app/models"
	"github.com/ayodele/clearflow/internal/app/repositories"
	"github.com/ayodele/clearflow/internal/pkg/auth"
)

// Services holds all the service instances
type Services struct {
	AuthService        AuthService
	ApplicationService ApplicationService
	DocumentService    DocumentService
	FormService        FormService
}

// NewServices wires every service to the shared repositories
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService) *Services {
	return &Services{
		AuthService:        NewAuthService(repos.UserRepository, repos.TokenRepository, jwtService),
		ApplicationService: NewApplicationService(repos.ApplicationRepository, repos.ReviewEventRepository),
		DocumentService:    NewDocumentService(repos.ApplicationRepository, repos.DocumentRepository),
		FormService:        NewFormService(repos.ApplicationRepository, repos.FormRepository),
	}
}

// newEvent builds an audit trail entry; seq and digests are filled in by
// the repository under the application lock.
func newEvent(applicationID string, eventType models.EventType, subject, actor, detail string, at time.Time) *models.ReviewEvent {
	return &models.ReviewEvent{
		ApplicationID: applicationID,
		EventType:     eventType,
		Subject:       subject,
		Actor:         actor,
		Detail:        detail,
		OccurredAt:    at,
	}
}
