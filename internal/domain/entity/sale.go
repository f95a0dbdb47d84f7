package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta.
const (
	SaleStatusCompleted = "completed"
	SaleStatusRefunded  = "refunded"
)

// Métodos de pago aceptados en caja.
const (
	PaymentCash     = "cash"
	PaymentCard     = "card"
	PaymentTransfer = "transfer"
)

// Sale representa una venta de mostrador. TotalAmount = Σ subtotales − Discount,
// calculado en el servidor; el descuento de stock ocurre en la misma transacción.
type Sale struct {
	ID            string
	CompanyID     string
	CustomerID    string // vacío en venta de mostrador sin cliente
	PaymentMethod string
	Discount      decimal.Decimal
	TotalAmount   decimal.Decimal
	Status        string
	CreatedBy     string
	CreatedAt     time.Time
}

// SaleItem línea de venta.
type SaleItem struct {
	ID          string
	SaleID      string
	ProductID   string
	ProductName string // denormalizado para recibos e historial
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}
