package service

import (
	"context"

	"github.com/varejolabs/catalog_api/internal/models"
)

// DepartmentStore abstracts department persistence.
type DepartmentStore interface {
	GetAll(ctx context.Context) ([]models.Department, error)
	GetByCode(ctx context.Context, code string) (*models.Department, error)
	Exists(ctx context.Context, code string) (bool, error)
}

// DepartmentService provides read-only department lookups. Departments
// are seeded at initialization and never mutated, so this is a plain
// fail-fast read path: store errors propagate unchanged.
type DepartmentService struct {
	departments DepartmentStore
}

// NewDepartmentService constructs a DepartmentService.
func NewDepartmentService(departments DepartmentStore) *DepartmentService {
	return &DepartmentService{departments: departments}
}

// List returns all departments ordered by code ascending.
func (s *DepartmentService) List(ctx context.Context) ([]models.Department, error) {
	return s.departments.GetAll(ctx)
}

// GetByCode returns the department with the given code, or nil when no
// row matches. An empty code is simply not found; rejecting it with a
// client error is the API layer's job.
func (s *DepartmentService) GetByCode(ctx context.Context, code string) (*models.Department, error) {
	return s.departments.GetByCode(ctx, code)
}

// Exists reports whether a department with the given code exists. Used
// as the referential gate before product creates and updates.
func (s *DepartmentService) Exists(ctx context.Context, code string) (bool, error) {
	return s.departments.Exists(ctx, code)
}
