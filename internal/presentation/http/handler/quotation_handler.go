package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/autoquote-api/internal/application/service"
	"github.com/sangkips/autoquote-api/internal/domain/enum"
	"github.com/sangkips/autoquote-api/internal/presentation/http/dto/request"
	"github.com/sangkips/autoquote-api/internal/presentation/http/dto/response"
	"github.com/sangkips/autoquote-api/pkg/apperror"
)

// QuotationHandler handles quotation-related HTTP requests
type QuotationHandler struct {
	quotationService *service.QuotationService
	documentService  *service.DocumentService
}

// NewQuotationHandler creates a new quotation handler
func NewQuotationHandler(quotationService *service.QuotationService, documentService *service.DocumentService) *QuotationHandler {
	return &QuotationHandler{
		quotationService: quotationService,
		documentService:  documentService,
	}
}

func quotationInput(req *request.QuotationRequest) (*service.QuotationInput, error) {
	issueDate, err := req.ParseIssueDate()
	if err != nil {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "issue_date", Message: "must be a date such as 2024-01-31"},
		})
	}
	return &service.QuotationInput{
		DocumentType:           enum.DocumentType(req.DocumentType),
		CompanyID:              req.CompanyID,
		CustomerID:             req.CustomerID,
		VehicleID:              req.VehicleID,
		SalesRepID:             req.SalesRepID,
		CustomizationProfileID: req.CustomizationProfileID,
		CustomerName:           req.CustomerName,
		IssueDate:              issueDate,
		ValidityDays:           req.ValidityDays,
		BasePrice:              req.BasePrice,
		Quantity:               req.Quantity,
		VATRate:                req.VATRate,
		PlatePrice:             req.PlatePrice,
		PriceIncludesTax:       req.PriceIncludesTax,
		Notes:                  req.Notes,
	}, nil
}

// List handles listing quotations
// @Summary List Quotations
// @Description Get quotations with pagination and filtering. Sales users see their own.
// @Tags quotations
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Matches reference, customer or vehicle"
// @Param status query string false "draft, sent, accepted, rejected, expired or canceled"
// @Param document_type query string false "quotation or invoice"
// @Param from query string false "Issued on or after YYYY-MM-DD"
// @Param to query string false "Issued on or before YYYY-MM-DD"
// @Param sort query string false "issue_date, reference, total_amount, customer_name or created_at"
// @Param order query string false "asc or desc"
// @Success 200 {object} response.APIResponse
// @Router /quotations [get]
func (h *QuotationHandler) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	filter, err := quotationFilter(c, service.QuotationSortColumns)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.quotationService.ListQuotations(c.Request.Context(), &service.ListQuotationsInput{
		UserID:  userID,
		IsAdmin: IsAdmin(c),
		Filter:  filter,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Quotations retrieved successfully", result)
}

// Get handles getting a quotation
// @Summary Get Quotation
// @Tags quotations
// @Security BearerAuth
// @Produce json
// @Param id path string true "Quotation ID"
// @Success 200 {object} response.APIResponse
// @Router /quotations/{id} [get]
func (h *QuotationHandler) Get(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	quotation, err := h.quotationService.GetQuotation(c.Request.Context(), userID, id, IsAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quotation retrieved successfully", quotation)
}

// Create handles creating a quotation
// @Summary Create Quotation
// @Description Prices and stores a quotation. The reference is assigned by the server.
// @Tags quotations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.QuotationRequest true "Quotation data"
// @Success 201 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /quotations [post]
func (h *QuotationHandler) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req request.QuotationRequest
	if !bindJSON(c, &req) {
		return
	}
	input, err := quotationInput(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	quotation, err := h.quotationService.CreateQuotation(c.Request.Context(), userID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Quotation created successfully", quotation)
}

// Update handles updating a quotation
func (h *QuotationHandler) Update(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req request.QuotationRequest
	if !bindJSON(c, &req) {
		return
	}
	input, err := quotationInput(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	quotation, err := h.quotationService.UpdateQuotation(c.Request.Context(), userID, id, IsAdmin(c), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quotation updated successfully", quotation)
}

// Delete handles deleting a quotation
func (h *QuotationHandler) Delete(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.quotationService.DeleteQuotation(c.Request.Context(), userID, id, IsAdmin(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quotation deleted successfully", nil)
}

// UpdateStatus handles moving a quotation to a new status
func (h *QuotationHandler) UpdateStatus(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req request.UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	status, err := enum.ParseQuotationStatus(req.Status)
	if err != nil {
		response.ValidationError(c, []apperror.FieldError{
			{Field: "status", Message: "must be one of: draft, sent, accepted, rejected, expired, canceled"},
		})
		return
	}

	quotation, err := h.quotationService.UpdateQuotationStatus(c.Request.Context(), userID, id, status, IsAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quotation status updated successfully", quotation)
}

// PDF renders the quotation as an A4 PDF
// @Summary Download Quotation PDF
// @Tags quotations
// @Security BearerAuth
// @Produce application/pdf
// @Param id path string true "Quotation ID"
// @Param inline query bool false "Display in the browser instead of downloading"
// @Success 200 {file} binary
// @Router /quotations/{id}/pdf [get]
func (h *QuotationHandler) PDF(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	doc, err := h.documentService.RenderQuotation(c.Request.Context(), userID, id, IsAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.PDF(c, doc.Filename, doc.Content, c.Query("inline") == "true")
}

// Email renders the quotation and mails it to the customer
func (h *QuotationHandler) Email(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req request.EmailQuotationRequest
	if !bindJSON(c, &req) {
		return
	}

	quotation, err := h.documentService.EmailQuotation(c.Request.Context(), &service.EmailQuotationInput{
		UserID:  userID,
		ID:      id,
		IsAdmin: IsAdmin(c),
		To:      req.To,
		Subject: req.Subject,
		Note:    req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quotation emailed successfully", quotation)
}

// Register renders the quotations matching the list filters as one PDF
func (h *QuotationHandler) Register(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	filter, err := quotationFilter(c, service.QuotationSortColumns)
	if err != nil {
		response.Error(c, err)
		return
	}

	doc, err := h.documentService.RenderRegister(c.Request.Context(), userID, IsAdmin(c), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.PDF(c, doc.Filename, doc.Content, false)
}
