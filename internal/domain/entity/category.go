package entity

import "time"

// Category representa una categoría de productos.
type Category struct {
	ID          string
	CompanyID   string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
