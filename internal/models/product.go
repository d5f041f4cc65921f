package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a catalog product row.
// Fields are tagged for both DB scanning and JSON serialization.
// Soft-deleted rows stay in the table but are invisible to every
// service read path.
type Product struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	Code           string          `db:"code" json:"code"`
	Description    string          `db:"description" json:"description"`
	DepartmentCode string          `db:"department_code" json:"department_code"`
	Price          decimal.Decimal `db:"price" json:"price"`
	Active         bool            `db:"active" json:"active"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`
	IsDeleted      bool            `db:"is_deleted" json:"-"`
}
