package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ayodele/clearflow/internal/app/models"
	"github.com/ayodele/clearflow/internal/app/models/dto"
	"github.com/ayodele/clearflow/internal/app/services"
	"github.com/ayodele/clearflow/internal/middleware"
)

// ApplicationController handles enrollment application operations
type ApplicationController struct {
	applicationService services.ApplicationService
	formService        services.FormService
}

// NewApplicationController creates a new ApplicationController
func NewApplicationController(applicationService services.ApplicationService, formService services.FormService) *ApplicationController {
	return &ApplicationController{
		applicationService: applicationService,
		formService:        formService,
	}
}

// Register opens a new enrollment application
// @Summary Register an application
// @Description Registers a new application under a caller-chosen external ID; a duplicate ID is refused
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RegisterApplicationRequest true "Application information"
// @Success 201 {object} dto.APIResponse{data=dto.ApplicationResponse} "Application registered"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 409 {object} dto.ErrorResponse "Application already registered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /applications [post]
func (c *ApplicationController) Register(ctx *gin.Context) {
	var req dto.RegisterApplicationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid application data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	app, err := c.applicationService.RegisterApplication(ctx, req.ApplicationID, req.DataHash, actorEmail(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	unlocked := []models.FormType{models.FormNewClearance}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.FromApplication(app, unlocked), "Application registered"))
}

// Get retrieves one application
// @Summary Get application details
// @Description Retrieves an application with its currently unlocked forms
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Success 200 {object} dto.APIResponse{data=dto.ApplicationResponse} "Application retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /applications/{id} [get]
func (c *ApplicationController) Get(ctx *gin.Context) {
	id := ctx.Param("id")

	app, err := c.applicationService.GetApplication(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	unlocked, err := c.formService.UnlockedForms(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromApplication(app, unlocked), ""))
}

// Verify marks the registration data as checked
// @Summary Verify an application
// @Description Marks the registration data of an application as verified by the calling reviewer
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Success 200 {object} dto.APIResponse "Application verified"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /applications/{id}/verify [post]
func (c *ApplicationController) Verify(ctx *gin.Context) {
	id := ctx.Param("id")

	if err := c.applicationService.VerifyApplication(ctx, id, actorEmail(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Application verified"))
}

// UpdateStatus moves the overall application status
// @Summary Update application status
// @Description Sets the overall review status of an application
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Param request body dto.UpdateApplicationStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse "Status updated"
// @Failure 400 {object} dto.ErrorResponse "Unknown status value"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /applications/{id}/status [put]
func (c *ApplicationController) UpdateStatus(ctx *gin.Context) {
	id := ctx.Param("id")

	var req dto.UpdateApplicationStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid status data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.applicationService.UpdateStatus(ctx, id, models.ApplicationStatus(req.Status), actorEmail(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Status updated"))
}

// SetDeadline stores the submission cutoff
// @Summary Set the submission deadline
// @Description Sets or moves the document submission cutoff of an application; past instants are refused
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Param request body dto.SetDeadlineRequest true "Deadline"
// @Success 200 {object} dto.APIResponse "Deadline set"
// @Failure 400 {object} dto.ErrorResponse "Deadline in the past"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /applications/{id}/deadline [put]
func (c *ApplicationController) SetDeadline(ctx *gin.Context) {
	id := ctx.Param("id")

	var req dto.SetDeadlineRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid deadline data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.applicationService.SetDeadline(ctx, id, req.Deadline, actorEmail(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Deadline set"))
}

// ListEvents returns the audit trail of an application
// @Summary List audit events
// @Description Returns the append-only audit trail of an application in sequence order
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Success 200 {object} dto.APIResponse{data=dto.EventListResponse} "Events retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /applications/{id}/events [get]
func (c *ApplicationController) ListEvents(ctx *gin.Context) {
	id := ctx.Param("id")

	events, err := c.applicationService.ListEvents(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromEvents(id, events), ""))
}
