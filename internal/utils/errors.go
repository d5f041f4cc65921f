package utils

import "errors"

// Common application errors used across services.
var (
	ErrDuplicateCode      = errors.New("DUPLICATE_CODE")
	ErrProductNotFound    = errors.New("PRODUCT_NOT_FOUND")
	ErrDepartmentNotFound = errors.New("DEPARTMENT_NOT_FOUND")
)
