package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ayodele/clearflow/internal/app/models/dto"
	"github.com/ayodele/clearflow/internal/pkg/apperrors"
	"github.com/ayodele/clearflow/internal/pkg/logger"
)

// HandleAPIError maps service and repository errors onto HTTP responses.
// Controllers funnel every error through here so the wire mapping lives
// in one place.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	// Not found
	case errors.Is(err, apperrors.ErrApplicationNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Application not found")
	case errors.Is(err, apperrors.ErrDocumentNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Document not found")
	case errors.Is(err, apperrors.ErrFormNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Clearance form not found")
	case errors.Is(err, apperrors.ErrUserNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "User not found")

	// Conflicts with current state
	case errors.Is(err, apperrors.ErrApplicationAlreadyExists):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Application already registered")
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already exists")
	case errors.Is(err, apperrors.ErrDocumentNotResubmittable):
		respondError(c, http.StatusConflict, dto.ErrorCodeNotResubmittable, "Document already submitted and not rejected")
	case errors.Is(err, apperrors.ErrInvalidTransition):
		respondError(c, http.StatusConflict, dto.ErrorCodeInvalidTransition, "Invalid form state transition")
	case errors.Is(err, apperrors.ErrFormLocked):
		respondError(c, http.StatusConflict, dto.ErrorCodeFormLocked, "Form is locked until the New Clearance Form is approved")
	case errors.Is(err, apperrors.ErrDeadlinePassed):
		respondError(c, http.StatusConflict, dto.ErrorCodeDeadlinePassed, "Submission deadline has passed")

	// Bad input
	case errors.Is(err, apperrors.ErrInvalidDecision):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeInvalidDecision, "Review decision must be approved or rejected")
	case errors.Is(err, apperrors.ErrRejectionReasonRequired):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Rejection requires a reason")
	case errors.Is(err, apperrors.ErrDeadlineInPast):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeDeadlineInPast, "Deadline must not be in the past")
	case errors.Is(err, apperrors.ErrInvalidApplicationStatus):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Unknown application status")
	case errors.Is(err, apperrors.ErrUnknownFormType):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Unknown form type")
	case errors.Is(err, apperrors.ErrValidationFailed):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, err.Error())

	// Authentication and authorization
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, apperrors.ErrTokenExpired):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrAccountDisabled):
		respondError(c, http.StatusForbidden, dto.ErrorCodeForbidden, "Account is disabled")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respondError(c, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied")

	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled API error")
		respondError(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

func respondError(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}
