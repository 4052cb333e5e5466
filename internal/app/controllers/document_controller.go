package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ayodele/clearflow/internal/app/models"
	"github.com/ayodele/clearflow/internal/app/models/dto"
	"github.com/ayodele/clearflow/internal/app/services"
	"github.com/ayodele/clearflow/internal/middleware"
)

// DocumentController handles document submission and review
type DocumentController struct {
	documentService services.DocumentService
}

// NewDocumentController creates a new DocumentController
func NewDocumentController(documentService services.DocumentService) *DocumentController {
	return &DocumentController{
		documentService: documentService,
	}
}

// Submit records a document hash for an application
// @Summary Submit a document
// @Description Stores a document hash; resubmission is accepted only over a rejected document and only inside the deadline window
// @Tags documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Param request body dto.SubmitDocumentRequest true "Document information"
// @Success 201 {object} dto.APIResponse{data=dto.DocumentResponse} "Document submitted"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 409 {object} dto.ErrorResponse "Document not resubmittable or deadline passed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /applications/{id}/documents [post]
func (c *DocumentController) Submit(ctx *gin.Context) {
	id := ctx.Param("id")

	var req dto.SubmitDocumentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid document data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	doc, err := c.documentService.SubmitDocument(ctx, id, req.DocumentType, req.DocumentHash, actorEmail(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.FromDocument(doc), "Document submitted"))
}

// List returns every document of an application
// @Summary List documents
// @Description Retrieves all documents submitted under an application
// @Tags documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.DocumentResponse} "Documents retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /applications/{id}/documents [get]
func (c *DocumentController) List(ctx *gin.Context) {
	id := ctx.Param("id")

	docs, err := c.documentService.ListDocuments(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]*dto.DocumentResponse, 0, len(docs))
	for i := range docs {
		responses = append(responses, dto.FromDocument(&docs[i]))
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(responses, ""))
}

// Get retrieves one document
// @Summary Get document details
// @Description Retrieves a single document by application ID and document type
// @Tags documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Param type path string true "Document type"
// @Success 200 {object} dto.APIResponse{data=dto.DocumentResponse} "Document retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Application or document not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /applications/{id}/documents/{type} [get]
func (c *DocumentController) Get(ctx *gin.Context) {
	id := ctx.Param("id")
	docType := ctx.Param("type")

	doc, err := c.documentService.GetDocument(ctx, id, docType)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromDocument(doc), ""))
}

// Eligibility answers whether a document may be submitted right now
// @Summary Check submission eligibility
// @Description Reports whether a document of this type can currently be submitted and whether the deadline window is open
// @Tags documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Param type path string true "Document type"
// @Success 200 {object} dto.APIResponse{data=dto.SubmissionEligibilityResponse} "Eligibility computed"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /applications/{id}/documents/{type}/eligibility [get]
func (c *DocumentController) Eligibility(ctx *gin.Context) {
	id := ctx.Param("id")
	docType := ctx.Param("type")

	canSubmit, withinDeadline, err := c.documentService.CanSubmit(ctx, id, docType)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SubmissionEligibilityResponse{
		ApplicationID:  id,
		DocumentType:   docType,
		CanSubmit:      canSubmit,
		WithinDeadline: withinDeadline,
	}, ""))
}

// Review records a reviewer's verdict on a document
// @Summary Review a document
// @Description Approves or rejects a submitted document; a rejection must carry a reason
// @Tags documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Param type path string true "Document type"
// @Param request body dto.ReviewDocumentRequest true "Verdict"
// @Success 200 {object} dto.APIResponse{data=dto.DocumentResponse} "Document reviewed"
// @Failure 400 {object} dto.ErrorResponse "Invalid decision or missing reason"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Application or document not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /applications/{id}/documents/{type}/review [post]
func (c *DocumentController) Review(ctx *gin.Context) {
	id := ctx.Param("id")
	docType := ctx.Param("type")

	var req dto.ReviewDocumentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid review data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	doc, err := c.documentService.ReviewDocument(ctx, id, docType, models.ReviewDecision(req.Decision), actorEmail(ctx), req.Reason)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromDocument(doc), "Document reviewed"))
}
