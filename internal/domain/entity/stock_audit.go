package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una auditoría de stock.
const (
	AuditStatusDraft     = "draft"
	AuditStatusCompleted = "completed"
)

// StockAudit snapshot de un conteo físico. Completar la auditoría NO aplica la
// varianza sobre Product.Quantity; solo la recepción de stock modifica existencias.
type StockAudit struct {
	ID              string
	CompanyID       string
	Status          string // draft, completed
	Notes           string
	TotalVariance   int
	EstimatedImpact decimal.Decimal // |TotalVariance| × valor unitario estimado
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	CompletedAt     *time.Time
}

// StockAuditItem conteo por producto dentro de la auditoría.
type StockAuditItem struct {
	ID             string
	AuditID        string
	ProductID      string
	ProductName    string
	CategoryName   string
	SystemQuantity int
	PhysicalCount  *int // nil mientras no se haya contado
	Variance       int  // PhysicalCount − SystemQuantity (0 si pendiente)
	Status         string
}
