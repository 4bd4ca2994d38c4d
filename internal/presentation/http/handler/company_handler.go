package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/autoquote-api/internal/application/service"
	"github.com/sangkips/autoquote-api/internal/presentation/http/dto/request"
	"github.com/sangkips/autoquote-api/internal/presentation/http/dto/response"
)

// CompanyHandler handles the issuing companies printed on documents
type CompanyHandler struct {
	companyService *service.CompanyService
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(companyService *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

func companyInput(req *request.CompanyRequest) *service.CompanyInput {
	return &service.CompanyInput{
		Name:           req.Name,
		NameEnglish:    req.NameEnglish,
		CRNumber:       req.CRNumber,
		VATNumber:      req.VATNumber,
		Phone:          req.Phone,
		Email:          req.Email,
		Address:        req.Address,
		Logo:           req.Logo,
		Stamp:          req.Stamp,
		PrimaryColor:   req.PrimaryColor,
		SecondaryColor: req.SecondaryColor,
		Settings:       req.Settings,
		IsActive:       req.IsActive,
	}
}

// List handles listing companies
func (h *CompanyHandler) List(c *gin.Context) {
	result, err := h.companyService.ListCompanies(c.Request.Context(), listFilter(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Companies retrieved successfully", result)
}

// Create handles creating a company
func (h *CompanyHandler) Create(c *gin.Context) {
	var req request.CompanyRequest
	if !bindJSON(c, &req) {
		return
	}

	company, err := h.companyService.CreateCompany(c.Request.Context(), companyInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Company created successfully", company)
}

// Get handles getting a company
func (h *CompanyHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	company, err := h.companyService.GetCompany(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Company retrieved successfully", company)
}

// Update handles updating a company
func (h *CompanyHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req request.CompanyRequest
	if !bindJSON(c, &req) {
		return
	}

	company, err := h.companyService.UpdateCompany(c.Request.Context(), id, companyInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Company updated successfully", company)
}

// Delete handles deleting a company
func (h *CompanyHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.companyService.DeleteCompany(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Company deleted successfully", nil)
}
