package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto de la farmacia (tienda única, stock en la propia fila).
// Quantity y CostPrice solo cambian vía recepción de stock, ventas y reembolsos;
// CostPrice es promedio ponderado recalculado en cada recepción.
type Product struct {
	ID            string
	CompanyID     string
	SKU           string // código de barras o código interno, único por empresa
	Name          string
	CategoryID    string
	CategoryName  string // denormalizado para listados y exportaciones
	Price         decimal.Decimal // precio de venta
	CostPrice     decimal.Decimal // costo promedio ponderado
	Quantity      int
	MinStockLevel int
	BatchNumber   string
	ExpiryDate    *time.Time // nil si no aplica
	Manufacturer  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsOutOfStock indica si el producto no tiene existencias.
func (p *Product) IsOutOfStock() bool { return p.Quantity == 0 }

// IsLowStock indica si el producto está en o por debajo de su mínimo (sin estar agotado).
func (p *Product) IsLowStock() bool {
	return p.Quantity > 0 && p.Quantity <= p.MinStockLevel
}
