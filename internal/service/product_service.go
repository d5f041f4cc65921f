package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/varejolabs/catalog_api/internal/models"
	"github.com/varejolabs/catalog_api/internal/utils"
)

// ProductStore abstracts product persistence so the service can be
// exercised against an in-memory fake in tests.
type ProductStore interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Insert(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, p *models.Product) (int64, error)
	SoftDelete(ctx context.Context, id uuid.UUID) (int64, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	CodeExists(ctx context.Context, code string, excludeID *uuid.UUID) (bool, error)
}

// ProductInput carries the client-supplied fields for create and
// update operations. Shape validation happens at the binding layer;
// the positive-price rule is checked in the handler because the
// validator cannot compare decimal values.
type ProductInput struct {
	Code           string          `json:"code" binding:"required,max=50"`
	Description    string          `json:"description" binding:"required,max=500"`
	DepartmentCode string          `json:"department_code" binding:"required,max=10"`
	Price          decimal.Decimal `json:"price"`
	Active         *bool           `json:"active"`
}

// ProductService enforces the catalog business rules: code uniqueness
// among live rows, soft-delete semantics, and timestamp stamping.
type ProductService struct {
	products ProductStore
}

// NewProductService constructs a ProductService.
func NewProductService(products ProductStore) *ProductService {
	return &ProductService{products: products}
}

// List returns all non-deleted products, newest first.
func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	return s.products.GetAll(ctx)
}

// Get returns the product with the given id, or nil when the id is
// unknown or the row is soft-deleted.
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.products.GetByID(ctx, id)
}

// Create inserts a new product. It fails with utils.ErrDuplicateCode
// when a live product already holds the code. The pre-check gives the
// caller a clean conflict message; the partial unique index in the
// store backs it up against concurrent creates.
func (s *ProductService) Create(ctx context.Context, input *ProductInput) (*models.Product, error) {
	taken, err := s.products.CodeExists(ctx, input.Code, nil)
	if err != nil {
		return nil, err
	}
	if taken {
		log.Warn().Str("code", input.Code).Msg("product code already in use")
		return nil, utils.ErrDuplicateCode
	}

	now := time.Now().UTC()
	p := &models.Product{
		ID:             uuid.New(),
		Code:           input.Code,
		Description:    input.Description,
		DepartmentCode: input.DepartmentCode,
		Price:          input.Price,
		Active:         activeOrDefault(input.Active, true),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.products.Insert(ctx, p); err != nil {
		return nil, err
	}

	log.Info().Str("id", p.ID.String()).Str("code", p.Code).Msg("product created")
	return p, nil
}

// Update overwrites the mutable fields of an existing product and
// returns the persisted row. It returns nil when no live product with
// the id exists, and utils.ErrDuplicateCode when another live product
// holds the requested code. A concurrent soft delete between the
// existence check and the write shows up as zero rows affected and is
// reported as absent, not as an error.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, input *ProductInput) (*models.Product, error) {
	found, err := s.products.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		log.Warn().Str("id", id.String()).Msg("update target not found")
		return nil, nil
	}

	taken, err := s.products.CodeExists(ctx, input.Code, &id)
	if err != nil {
		return nil, err
	}
	if taken {
		log.Warn().Str("code", input.Code).Msg("product code held by another product")
		return nil, utils.ErrDuplicateCode
	}

	p := &models.Product{
		ID:             id,
		Code:           input.Code,
		Description:    input.Description,
		DepartmentCode: input.DepartmentCode,
		Price:          input.Price,
		Active:         activeOrDefault(input.Active, false),
		UpdatedAt:      time.Now().UTC(),
	}

	affected, err := s.products.Update(ctx, p)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		log.Warn().Str("id", id.String()).Msg("no rows affected by product update")
		return nil, nil
	}

	// Re-fetch so the caller sees exactly what is persisted, including
	// anything a concurrent writer changed last.
	return s.products.GetByID(ctx, id)
}

// Delete marks a product as deleted and reports whether a live row was
// actually affected. The row stays in the table; every service read
// path ignores it from now on.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	affected, err := s.products.SoftDelete(ctx, id)
	if err != nil {
		return false, err
	}
	if affected == 0 {
		log.Warn().Str("id", id.String()).Msg("delete target not found")
		return false, nil
	}
	log.Info().Str("id", id.String()).Msg("product deleted (logical)")
	return true, nil
}

// Exists reports whether a non-deleted product with the id exists.
func (s *ProductService) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.products.Exists(ctx, id)
}

// CodeExists reports whether a non-deleted product holds the code,
// optionally ignoring one row by id.
func (s *ProductService) CodeExists(ctx context.Context, code string, excludeID *uuid.UUID) (bool, error) {
	return s.products.CodeExists(ctx, code, excludeID)
}

func activeOrDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
