package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/varejolabs/catalog_api/internal/models"
	"github.com/varejolabs/catalog_api/internal/utils"
)

// pgUniqueViolation is the PostgreSQL error code raised when the
// partial unique index on non-deleted product codes rejects a write.
const pgUniqueViolation = "23505"

// ProductRepository handles data access for products.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// GetAll returns all non-deleted products, newest first.
func (r *ProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	const q = `
        SELECT id, code, description, department_code, price, active, created_at, updated_at, is_deleted
        FROM products
        WHERE is_deleted = false
        ORDER BY created_at DESC`

	products := []models.Product{}
	if err := r.db.SelectContext(ctx, &products, q); err != nil {
		return nil, err
	}
	return products, nil
}

// GetByID returns a single non-deleted product by id, or nil when no
// live row matches.
func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	const q = `
        SELECT id, code, description, department_code, price, active, created_at, updated_at, is_deleted
        FROM products
        WHERE id = $1 AND is_deleted = false`

	var p models.Product
	if err := r.db.GetContext(ctx, &p, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// Insert persists a fully populated product row. A rejection by the
// unique index on live codes is reported as utils.ErrDuplicateCode so
// the store remains the authoritative uniqueness guard.
func (r *ProductRepository) Insert(ctx context.Context, p *models.Product) error {
	const q = `
        INSERT INTO products (id, code, description, department_code, price, active, created_at, updated_at, is_deleted)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, false)`

	_, err := r.db.ExecContext(ctx, q,
		p.ID,
		p.Code,
		p.Description,
		p.DepartmentCode,
		p.Price,
		p.Active,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return mapUniqueViolation(err)
}

// Update overwrites the mutable fields of a non-deleted product and
// returns the number of rows affected. Zero means the row vanished
// (unknown id or soft-deleted in the meantime).
func (r *ProductRepository) Update(ctx context.Context, p *models.Product) (int64, error) {
	const q = `
        UPDATE products
        SET code = $2,
            description = $3,
            department_code = $4,
            price = $5,
            active = $6,
            updated_at = $7
        WHERE id = $1 AND is_deleted = false`

	res, err := r.db.ExecContext(ctx, q,
		p.ID,
		p.Code,
		p.Description,
		p.DepartmentCode,
		p.Price,
		p.Active,
		p.UpdatedAt,
	)
	if err != nil {
		return 0, mapUniqueViolation(err)
	}
	return res.RowsAffected()
}

// SoftDelete flags a non-deleted product as deleted and refreshes its
// updated_at. Returns the number of rows affected; zero when the row
// was already deleted or never existed.
func (r *ProductRepository) SoftDelete(ctx context.Context, id uuid.UUID) (int64, error) {
	const q = `
        UPDATE products
        SET is_deleted = true, updated_at = NOW()
        WHERE id = $1 AND is_deleted = false`

	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Exists reports whether a non-deleted product with the given id exists.
func (r *ProductRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	const q = `SELECT COUNT(1) FROM products WHERE id = $1 AND is_deleted = false`

	var count int
	if err := r.db.GetContext(ctx, &count, q, id); err != nil {
		return false, err
	}
	return count > 0, nil
}

// CodeExists reports whether a non-deleted product holds the given
// code. When excludeID is non-nil that row is ignored, so update-path
// checks do not trip over the product being updated.
func (r *ProductRepository) CodeExists(ctx context.Context, code string, excludeID *uuid.UUID) (bool, error) {
	var count int
	if excludeID != nil {
		const q = `SELECT COUNT(1) FROM products WHERE code = $1 AND id != $2 AND is_deleted = false`
		if err := r.db.GetContext(ctx, &count, q, code, *excludeID); err != nil {
			return false, err
		}
		return count > 0, nil
	}

	const q = `SELECT COUNT(1) FROM products WHERE code = $1 AND is_deleted = false`
	if err := r.db.GetContext(ctx, &count, q, code); err != nil {
		return false, err
	}
	return count > 0, nil
}

// mapUniqueViolation converts a PostgreSQL unique-constraint error
// into the sentinel the service layer expects.
func mapUniqueViolation(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
		return utils.ErrDuplicateCode
	}
	return err
}
