package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ayodele/clearflow/internal/app/models"
	"github.com/ayodele/clearflow/internal/app/models/dto"
	"github.com/ayodele/clearflow/internal/app/services"
	"github.com/ayodele/clearflow/internal/middleware"
)

// FormController handles clearance form operations
type FormController struct {
	formService services.FormService
}

// NewFormController creates a new FormController
func NewFormController(formService services.FormService) *FormController {
	return &FormController{
		formService: formService,
	}
}

// Submit moves a form into the approval pipeline
// @Summary Submit a clearance form
// @Description Submits a form for approval; dependent forms are locked until the New Clearance Form is fully approved
// @Tags forms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Param type path string true "Form type" Enums(newClearance,medical,accommodation,courseRegistration,library)
// @Success 201 {object} dto.APIResponse{data=dto.FormResponse} "Form submitted"
// @Failure 400 {object} dto.ErrorResponse "Unknown form type"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 409 {object} dto.ErrorResponse "Form locked or already submitted"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /applications/{id}/forms/{type}/submit [post]
func (c *FormController) Submit(ctx *gin.Context) {
	id := ctx.Param("id")
	formType := models.FormType(ctx.Param("type"))

	form, err := c.formService.SubmitForm(ctx, id, formType, actorEmail(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.FromForm(form), "Form submitted"))
}

// ApproveFirst records the Deputy Registrar sign-off
// @Summary Approve a form (first stage)
// @Description Records the Deputy Registrar approval; legal only while the form awaits first approval
// @Tags forms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Param type path string true "Form type"
// @Success 200 {object} dto.APIResponse{data=dto.FormResponse} "First stage approved"
// @Failure 400 {object} dto.ErrorResponse "Unknown form type"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 409 {object} dto.ErrorResponse "Invalid form state transition"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /applications/{id}/forms/{type}/approve-first [post]
func (c *FormController) ApproveFirst(ctx *gin.Context) {
	id := ctx.Param("id")
	formType := models.FormType(ctx.Param("type"))

	form, err := c.formService.ApproveFirstStage(ctx, id, formType, actorEmail(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromForm(form), "First stage approved"))
}

// ApproveSecond records the School Officer sign-off
// @Summary Approve a form (second stage)
// @Description Records the School Officer approval and completes the form; refused unless the first stage already passed
// @Tags forms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Param type path string true "Form type"
// @Success 200 {object} dto.APIResponse{data=dto.FormResponse} "Form approved"
// @Failure 400 {object} dto.ErrorResponse "Unknown form type"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 409 {object} dto.ErrorResponse "Invalid form state transition"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /applications/{id}/forms/{type}/approve-second [post]
func (c *FormController) ApproveSecond(ctx *gin.Context) {
	id := ctx.Param("id")
	formType := models.FormType(ctx.Param("type"))

	form, err := c.formService.ApproveSecondStage(ctx, id, formType, actorEmail(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromForm(form), "Form approved"))
}

// Get retrieves one form
// @Summary Get form details
// @Description Retrieves a form; one that was never submitted comes back in the not-submitted state
// @Tags forms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Param type path string true "Form type"
// @Success 200 {object} dto.APIResponse{data=dto.FormResponse} "Form retrieved"
// @Failure 400 {object} dto.ErrorResponse "Unknown form type"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /applications/{id}/forms/{type} [get]
func (c *FormController) Get(ctx *gin.Context) {
	id := ctx.Param("id")
	formType := models.FormType(ctx.Param("type"))

	form, err := c.formService.GetForm(ctx, id, formType)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromForm(form), ""))
}

// List returns every managed form of an application
// @Summary List clearance forms
// @Description Retrieves all managed forms of an application in workflow order, including never-submitted ones
// @Tags forms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.FormResponse} "Forms retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /applications/{id}/forms [get]
func (c *FormController) List(ctx *gin.Context) {
	id := ctx.Param("id")

	forms, err := c.formService.ListForms(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]*dto.FormResponse, 0, len(forms))
	for i := range forms {
		responses = append(responses, dto.FromForm(&forms[i]))
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(responses, ""))
}

// Unlocked lists the forms the student may currently access
// @Summary List unlocked forms
// @Description Returns the form types currently accessible; only the New Clearance Form until it is fully approved
// @Tags forms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Success 200 {object} dto.APIResponse{data=dto.UnlockedFormsResponse} "Unlocked forms computed"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /applications/{id}/unlocked-forms [get]
func (c *FormController) Unlocked(ctx *gin.Context) {
	id := ctx.Param("id")

	unlocked, err := c.formService.UnlockedForms(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.UnlockedFormsResponse{
		ApplicationID: id,
		Forms:         unlocked,
	}, ""))
}
