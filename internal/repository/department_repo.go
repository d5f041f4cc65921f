package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/varejolabs/catalog_api/internal/models"
)

// DepartmentRepository handles read-only data access for departments.
type DepartmentRepository struct {
	db *sqlx.DB
}

// NewDepartmentRepository creates a new DepartmentRepository.
func NewDepartmentRepository(db *sqlx.DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

// GetAll returns all departments ordered by code ascending.
func (r *DepartmentRepository) GetAll(ctx context.Context) ([]models.Department, error) {
	const q = `SELECT code, description FROM departments ORDER BY code`

	departments := []models.Department{}
	if err := r.db.SelectContext(ctx, &departments, q); err != nil {
		return nil, err
	}
	return departments, nil
}

// GetByCode returns the department with the given code, or nil when
// no row matches.
func (r *DepartmentRepository) GetByCode(ctx context.Context, code string) (*models.Department, error) {
	const q = `SELECT code, description FROM departments WHERE code = $1`

	var d models.Department
	if err := r.db.GetContext(ctx, &d, q, code); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

// Exists reports whether a department with the given code exists.
func (r *DepartmentRepository) Exists(ctx context.Context, code string) (bool, error) {
	const q = `SELECT COUNT(1) FROM departments WHERE code = $1`

	var count int
	if err := r.db.GetContext(ctx, &count, q, code); err != nil {
		return false, err
	}
	return count > 0, nil
}
