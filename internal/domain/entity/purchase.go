package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una recepción de stock.
const (
	PurchaseStatusReceived = "received"
)

// Origen de la recepción.
const (
	PurchaseSourceManual = "manual"
	PurchaseSourceCSV    = "csv"
)

// Purchase representa una recepción de mercadería (receive stock).
// El incremento de Quantity y el recálculo de CostPrice de cada producto
// ocurren en la misma transacción que crea este registro.
type Purchase struct {
	ID           string
	CompanyID    string
	SupplierName string
	Source       string // manual, csv
	Notes        string
	Status       string
	CreatedBy    string
	CreatedAt    time.Time
}

// PurchaseItem línea de recepción.
type PurchaseItem struct {
	ID               string
	PurchaseID       string
	ProductID        string
	ProductName      string
	QuantityReceived int
	UnitCost         decimal.Decimal
	BatchNumber      string
	ExpiryDate       *time.Time
}
