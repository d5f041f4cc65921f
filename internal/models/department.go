package models

// Department is a read-only lookup row seeded at initialization.
type Department struct {
	Code        string `db:"code" json:"code"`
	Description string `db:"description" json:"description"`
}
