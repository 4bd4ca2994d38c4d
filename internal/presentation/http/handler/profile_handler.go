package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/autoquote-api/internal/application/service"
	"github.com/sangkips/autoquote-api/internal/presentation/http/dto/request"
	"github.com/sangkips/autoquote-api/internal/presentation/http/dto/response"
)

// ProfileHandler handles document customization profiles
type ProfileHandler struct {
	customizationService *service.CustomizationService
}

// NewProfileHandler creates a new customization profile handler
func NewProfileHandler(customizationService *service.CustomizationService) *ProfileHandler {
	return &ProfileHandler{customizationService: customizationService}
}

func (h *ProfileHandler) List(c *gin.Context) {
	profiles, err := h.customizationService.ListProfiles(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Profiles retrieved successfully", profiles)
}

func (h *ProfileHandler) Create(c *gin.Context) {
	var req request.ProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.customizationService.CreateProfile(c.Request.Context(), &service.ProfileInput{
		Name:      req.Name,
		IsDefault: req.IsDefault,
		Profile:   req.Profile,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Profile created successfully", profile)
}

func (h *ProfileHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	profile, err := h.customizationService.GetProfile(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Profile retrieved successfully", profile)
}

// Update replaces every parameter of a profile
func (h *ProfileHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req request.ProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.customizationService.UpdateProfile(c.Request.Context(), id, &service.ProfileInput{
		Name:      req.Name,
		IsDefault: req.IsDefault,
		Profile:   req.Profile,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Profile updated successfully", profile)
}

func (h *ProfileHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.customizationService.DeleteProfile(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Profile deleted successfully", nil)
}

// SetDefault makes the profile the default for documents without one
func (h *ProfileHandler) SetDefault(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	profile, err := h.customizationService.SetDefault(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Default profile updated successfully", profile)
}

// Resolved returns the parameters a render would use, with unset values
// filled in. ?profile_id picks a profile, otherwise the default is used.
func (h *ProfileHandler) Resolved(c *gin.Context) {
	var id *uuid.UUID
	if v := c.Query("profile_id"); v != "" {
		parsed, err := uuid.Parse(v)
		if err != nil {
			response.BadRequest(c, "Invalid profile_id")
			return
		}
		id = &parsed
	}

	response.OK(c, "Resolved profile retrieved successfully", h.customizationService.Resolve(c.Request.Context(), id))
}
