package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/varejolabs/catalog_api/internal/service"
	"github.com/varejolabs/catalog_api/internal/utils"
)

// DepartmentHandler handles department lookup HTTP endpoints.
type DepartmentHandler struct {
	departments *service.DepartmentService
}

// NewDepartmentHandler constructs a DepartmentHandler.
func NewDepartmentHandler(departments *service.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{departments: departments}
}

// ListDepartments handles GET /api/departments
func (h *DepartmentHandler) ListDepartments(c *gin.Context) {
	departments, err := h.departments.List(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list departments")
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve departments")
		return
	}

	utils.Success(c, 200, "Departments retrieved", departments)
}

// GetDepartment handles GET /api/departments/:code
func (h *DepartmentHandler) GetDepartment(c *gin.Context) {
	code := strings.TrimSpace(c.Param("code"))
	if code == "" {
		utils.Error(c, 400, "INVALID_CODE", "Department code must not be empty")
		return
	}

	department, err := h.departments.GetByCode(c.Request.Context(), code)
	if err != nil {
		log.Error().Err(err).Str("code", code).Msg("failed to get department")
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve department")
		return
	}
	if department == nil {
		utils.Error(c, 404, "DEPARTMENT_NOT_FOUND", "Department not found")
		return
	}

	utils.Success(c, 200, "Department retrieved", department)
}
