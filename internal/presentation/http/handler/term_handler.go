package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/autoquote-api/internal/application/service"
	"github.com/sangkips/autoquote-api/internal/presentation/http/dto/request"
	"github.com/sangkips/autoquote-api/internal/presentation/http/dto/response"
)

// TermHandler handles the terms and conditions printed on documents
type TermHandler struct {
	termService *service.TermService
}

// NewTermHandler creates a new terms handler
func NewTermHandler(termService *service.TermService) *TermHandler {
	return &TermHandler{termService: termService}
}

// List returns the terms in display order. ?active=true hides inactive ones.
func (h *TermHandler) List(c *gin.Context) {
	terms, err := h.termService.ListTerms(c.Request.Context(), c.Query("active") == "true")
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Terms retrieved successfully", terms)
}

func (h *TermHandler) Create(c *gin.Context) {
	var req request.TermRequest
	if !bindJSON(c, &req) {
		return
	}

	term, err := h.termService.CreateTerm(c.Request.Context(), &service.TermInput{
		Text:         req.Text,
		DisplayOrder: req.DisplayOrder,
		IsActive:     req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Term created successfully", term)
}

func (h *TermHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	term, err := h.termService.GetTerm(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Term retrieved successfully", term)
}

func (h *TermHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req request.TermRequest
	if !bindJSON(c, &req) {
		return
	}

	term, err := h.termService.UpdateTerm(c.Request.Context(), id, &service.TermInput{
		Text:         req.Text,
		DisplayOrder: req.DisplayOrder,
		IsActive:     req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Term updated successfully", term)
}

func (h *TermHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.termService.DeleteTerm(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Term deleted successfully", nil)
}
