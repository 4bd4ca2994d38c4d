package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/autoquote-api/internal/application/service"
	"github.com/sangkips/autoquote-api/internal/presentation/http/dto/request"
	"github.com/sangkips/autoquote-api/internal/presentation/http/dto/response"
)

// VehicleHandler handles the vehicle catalogue
type VehicleHandler struct {
	vehicleService *service.VehicleService
}

// NewVehicleHandler creates a new vehicle handler
func NewVehicleHandler(vehicleService *service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService}
}

func vehicleInput(req *request.VehicleRequest) *service.VehicleInput {
	return &service.VehicleInput{
		Make:           req.Make,
		Model:          req.Model,
		Year:           req.Year,
		VIN:            req.VIN,
		ExteriorColor:  req.ExteriorColor,
		InteriorColor:  req.InteriorColor,
		Specifications: req.Specifications,
		BasePrice:      req.BasePrice,
		IsActive:       req.IsActive,
	}
}

// List handles listing vehicles
// @Summary List Vehicles
// @Tags vehicles
// @Security BearerAuth
// @Produce json
// @Param search query string false "Matches make, model or VIN"
// @Param active query bool false "Only active vehicles"
// @Success 200 {object} response.APIResponse
// @Router /vehicles [get]
func (h *VehicleHandler) List(c *gin.Context) {
	result, err := h.vehicleService.ListVehicles(c.Request.Context(), listFilter(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Vehicles retrieved successfully", result)
}

// Create handles creating a vehicle
func (h *VehicleHandler) Create(c *gin.Context) {
	var req request.VehicleRequest
	if !bindJSON(c, &req) {
		return
	}

	vehicle, err := h.vehicleService.CreateVehicle(c.Request.Context(), vehicleInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Vehicle created successfully", vehicle)
}

// Get handles getting a vehicle
func (h *VehicleHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	vehicle, err := h.vehicleService.GetVehicle(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Vehicle retrieved successfully", vehicle)
}

// Update handles updating a vehicle
func (h *VehicleHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req request.VehicleRequest
	if !bindJSON(c, &req) {
		return
	}

	vehicle, err := h.vehicleService.UpdateVehicle(c.Request.Context(), id, vehicleInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Vehicle updated successfully", vehicle)
}

// Delete handles deleting a vehicle
func (h *VehicleHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.vehicleService.DeleteVehicle(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Vehicle deleted successfully", nil)
}
