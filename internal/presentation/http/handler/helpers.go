package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/autoquote-api/internal/domain/enum"
	"github.com/sangkips/autoquote-api/internal/domain/repository"
	"github.com/sangkips/autoquote-api/internal/presentation/http/dto/request"
	"github.com/sangkips/autoquote-api/internal/presentation/http/dto/response"
	"github.com/sangkips/autoquote-api/pkg/apperror"
	"github.com/sangkips/autoquote-api/pkg/pagination"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUserRole extracts the user role from the Gin context
func GetUserRole(c *gin.Context) enum.UserRole {
	role, _ := c.Get("user_role")
	r, _ := role.(enum.UserRole)
	return r
}

// IsAdmin checks if the user has the admin role
func IsAdmin(c *gin.Context) bool {
	return GetUserRole(c) == enum.UserRoleAdmin
}

// requireUser writes a 401 and returns false when no user is authenticated
func requireUser(c *gin.Context) (uuid.UUID, bool) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return uuid.Nil, false
	}
	return *userID, true
}

// pathID parses the :id parameter, writing a 400 when it is malformed
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid ID")
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON binds the body into req, writing the field errors on failure
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Error(c, apperror.FromValidation(err))
		return false
	}
	return true
}

func paginationParams(c *gin.Context) *pagination.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	params := &pagination.PaginationParams{Page: page, PerPage: perPage}
	params.Validate()
	return params
}

func listFilter(c *gin.Context) *repository.ListFilter {
	return &repository.ListFilter{
		Pagination: paginationParams(c),
		Search:     strings.TrimSpace(c.Query("search")),
		ActiveOnly: c.Query("active") == "true",
	}
}

// quotationFilter reads the quotation list filters from the query string.
// Unknown sort columns fall back to newest first.
func quotationFilter(c *gin.Context, sortColumns []string) (repository.QuotationFilterParams, error) {
	filter := repository.QuotationFilterParams{
		Pagination: paginationParams(c),
		Search:     strings.TrimSpace(c.Query("search")),
		Sort: pagination.NewSort(c.Query("sort"), c.Query("order"), sortColumns,
			pagination.Sort{Column: "created_at"}),
	}

	if s := c.Query("status"); s != "" {
		status, err := enum.ParseQuotationStatus(s)
		if err != nil {
			return filter, apperror.NewBadRequestError("Unknown quotation status")
		}
		filter.Status = &status
	}
	if t := c.Query("document_type"); t != "" {
		docType := enum.DocumentType(t)
		if !docType.IsValid() {
			return filter, apperror.NewBadRequestError("Unknown document type")
		}
		filter.DocumentType = &docType
	}

	ids := map[string]**uuid.UUID{
		"company_id":  &filter.CompanyID,
		"customer_id": &filter.CustomerID,
		"vehicle_id":  &filter.VehicleID,
	}
	for key, dst := range ids {
		v := c.Query(key)
		if v == "" {
			continue
		}
		id, err := uuid.Parse(v)
		if err != nil {
			return filter, apperror.NewBadRequestError("Invalid " + key)
		}
		*dst = &id
	}

	dates := map[string]**time.Time{"from": &filter.From, "to": &filter.To}
	for key, dst := range dates {
		v := c.Query(key)
		if v == "" {
			continue
		}
		t, err := time.Parse(request.DateLayout, v)
		if err != nil {
			return filter, apperror.NewBadRequestError("Invalid " + key + " date, expected YYYY-MM-DD")
		}
		*dst = &t
	}
	return filter, nil
}
