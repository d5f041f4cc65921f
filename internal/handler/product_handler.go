package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/varejolabs/catalog_api/internal/service"
	"github.com/varejolabs/catalog_api/internal/utils"
)

// ProductHandler handles product CRUD HTTP endpoints.
type ProductHandler struct {
	products    *service.ProductService
	departments *service.DepartmentService
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(products *service.ProductService, departments *service.DepartmentService) *ProductHandler {
	return &ProductHandler{products: products, departments: departments}
}

// ListProducts handles GET /api/products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.products.List(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list products")
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve products")
		return
	}

	utils.Success(c, 200, "Products retrieved", products)
}

// GetProduct handles GET /api/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	product, err := h.products.Get(c.Request.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("id", id.String()).Msg("failed to get product")
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve product")
		return
	}
	if product == nil {
		utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
		return
	}

	utils.Success(c, 200, "Product retrieved", product)
}

// CreateProduct handles POST /api/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req service.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if !h.checkInput(c, &req) {
		return
	}

	product, err := h.products.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, utils.ErrDuplicateCode) {
			utils.Error(c, 409, "DUPLICATE_CODE", "A product with this code already exists")
			return
		}
		log.Error().Err(err).Str("code", req.Code).Msg("failed to create product")
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to create product")
		return
	}

	utils.Success(c, 201, "Product created successfully", product)
}

// UpdateProduct handles PUT /api/products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	var req service.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if !h.checkInput(c, &req) {
		return
	}

	product, err := h.products.Update(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, utils.ErrDuplicateCode) {
			utils.Error(c, 409, "DUPLICATE_CODE", "Another product already holds this code")
			return
		}
		log.Error().Err(err).Str("id", id.String()).Msg("failed to update product")
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update product")
		return
	}
	if product == nil {
		utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
		return
	}

	utils.Success(c, 200, "Product updated successfully", product)
}

// DeleteProduct handles DELETE /api/products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	deleted, err := h.products.Delete(c.Request.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("id", id.String()).Msg("failed to delete product")
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to delete product")
		return
	}
	if !deleted {
		utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
		return
	}

	c.Status(http.StatusNoContent)
}

// checkInput applies the business-shape checks the binding tags cannot
// express: a strictly positive price and an existing department.
func (h *ProductHandler) checkInput(c *gin.Context, req *service.ProductInput) bool {
	if !req.Price.IsPositive() {
		utils.Error(c, 400, "INVALID_PRICE", "Price must be greater than zero")
		return false
	}

	exists, err := h.departments.Exists(c.Request.Context(), req.DepartmentCode)
	if err != nil {
		log.Error().Err(err).Str("department_code", req.DepartmentCode).Msg("department lookup failed")
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to validate department")
		return false
	}
	if !exists {
		utils.Error(c, 400, "DEPARTMENT_NOT_FOUND", "Department not found")
		return false
	}
	return true
}

// parseProductID extracts and validates the :id path parameter. It
// writes a 400 response and returns false on an empty or malformed id.
func parseProductID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil || id == uuid.Nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid product ID")
		return uuid.Nil, false
	}
	return id, true
}
