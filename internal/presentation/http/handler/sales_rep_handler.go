package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/autoquote-api/internal/application/service"
	"github.com/sangkips/autoquote-api/internal/presentation/http/dto/request"
	"github.com/sangkips/autoquote-api/internal/presentation/http/dto/response"
)

// SalesRepHandler handles sales representatives
type SalesRepHandler struct {
	salesRepService *service.SalesRepService
}

// NewSalesRepHandler creates a new sales representative handler
func NewSalesRepHandler(salesRepService *service.SalesRepService) *SalesRepHandler {
	return &SalesRepHandler{salesRepService: salesRepService}
}

func salesRepInput(req *request.SalesRepRequest) *service.SalesRepInput {
	return &service.SalesRepInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		IsActive: req.IsActive,
	}
}

func (h *SalesRepHandler) List(c *gin.Context) {
	result, err := h.salesRepService.ListSalesReps(c.Request.Context(), listFilter(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Sales representatives retrieved successfully", result)
}

func (h *SalesRepHandler) Create(c *gin.Context) {
	var req request.SalesRepRequest
	if !bindJSON(c, &req) {
		return
	}

	rep, err := h.salesRepService.CreateSalesRep(c.Request.Context(), salesRepInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Sales representative created successfully", rep)
}

func (h *SalesRepHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	rep, err := h.salesRepService.GetSalesRep(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sales representative retrieved successfully", rep)
}

func (h *SalesRepHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req request.SalesRepRequest
	if !bindJSON(c, &req) {
		return
	}

	rep, err := h.salesRepService.UpdateSalesRep(c.Request.Context(), id, salesRepInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sales representative updated successfully", rep)
}

func (h *SalesRepHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.salesRepService.DeleteSalesRep(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sales representative deleted successfully", nil)
}
