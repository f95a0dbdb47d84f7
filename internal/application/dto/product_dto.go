package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest datos para crear un producto. Quantity es el stock inicial;
// los cambios posteriores se hacen vía recepción de stock o ventas.
type CreateProductRequest struct {
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	CategoryID    string          `json:"category_id"`
	Price         decimal.Decimal `json:"price"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	Quantity      int             `json:"quantity"`
	MinStockLevel int             `json:"min_stock_level"`
	BatchNumber   string          `json:"batch_number"`
	ExpiryDate    *time.Time      `json:"expiry_date"`
	Manufacturer  string          `json:"manufacturer"`
}

// UpdateProductRequest campos opcionales para actualización parcial.
// Quantity y CostPrice no se actualizan por aquí (solo vía recepciones/ventas).
type UpdateProductRequest struct {
	Name          *string          `json:"name"`
	CategoryID    *string          `json:"category_id"`
	Price         *decimal.Decimal `json:"price"`
	MinStockLevel *int             `json:"min_stock_level"`
	BatchNumber   *string          `json:"batch_number"`
	ExpiryDate    *time.Time       `json:"expiry_date"`
	Manufacturer  *string          `json:"manufacturer"`
}

// ProductResponse representación de salida de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	CompanyID     string          `json:"company_id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	CategoryID    string          `json:"category_id"`
	CategoryName  string          `json:"category_name"`
	Price         decimal.Decimal `json:"price"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	Quantity      int             `json:"quantity"`
	MinStockLevel int             `json:"min_stock_level"`
	BatchNumber   string          `json:"batch_number,omitempty"`
	ExpiryDate    *time.Time      `json:"expiry_date,omitempty"`
	Manufacturer  string          `json:"manufacturer,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
