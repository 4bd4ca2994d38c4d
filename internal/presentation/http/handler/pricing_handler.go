package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/autoquote-api/internal/application/service"
	"github.com/sangkips/autoquote-api/internal/presentation/http/dto/request"
	"github.com/sangkips/autoquote-api/internal/presentation/http/dto/response"
)

// PricingHandler exposes the price calculator
type PricingHandler struct {
	pricingService *service.PricingService
}

// NewPricingHandler creates a new pricing handler
func NewPricingHandler(pricingService *service.PricingService) *PricingHandler {
	return &PricingHandler{pricingService: pricingService}
}

// Preview computes a price breakdown and the total in Arabic words without
// storing anything
// @Summary Pricing Preview
// @Tags pricing
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.PricingPreviewRequest true "Pricing input"
// @Success 200 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /pricing/preview [post]
func (h *PricingHandler) Preview(c *gin.Context) {
	var req request.PricingPreviewRequest
	if !bindJSON(c, &req) {
		return
	}

	preview, err := h.pricingService.Preview(&service.PreviewInput{
		BasePrice:        req.BasePrice,
		Quantity:         req.Quantity,
		VATRate:          req.VATRate,
		PlatePrice:       req.PlatePrice,
		PriceIncludesTax: req.PriceIncludesTax,
		Currency:         req.Currency,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Pricing computed successfully", preview)
}
