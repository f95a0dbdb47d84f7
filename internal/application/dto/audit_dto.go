package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditCountEntry conteo físico ingresado para un producto.
type AuditCountEntry struct {
	ProductID     string `json:"product_id"`
	PhysicalCount int    `json:"physical_count"`
}

// SaveAuditRequest conteos a aplicar sobre un borrador (o al completar).
type SaveAuditRequest struct {
	Notes  string            `json:"notes"`
	Counts []AuditCountEntry `json:"counts"`
}

// StockAuditItemResponse ítem auditado de salida.
type StockAuditItemResponse struct {
	ProductID      string `json:"product_id"`
	ProductName    string `json:"product_name"`
	CategoryName   string `json:"category_name,omitempty"`
	SystemQuantity int    `json:"system_quantity"`
	PhysicalCount  *int   `json:"physical_count,omitempty"`
	Variance       int    `json:"variance"`
	Status         string `json:"status"` // pending, matched, variance, critical
}

// StockAuditResponse representación de salida de una auditoría.
type StockAuditResponse struct {
	ID              string                   `json:"id"`
	CompanyID       string                   `json:"company_id"`
	Status          string                   `json:"status"`
	Notes           string                   `json:"notes,omitempty"`
	CountedItems    int                      `json:"counted_items"`
	TotalVariance   int                      `json:"total_variance"`
	EstimatedImpact decimal.Decimal          `json:"estimated_impact"`
	CreatedBy       string                   `json:"created_by"`
	CreatedAt       time.Time                `json:"created_at"`
	CompletedAt     *time.Time               `json:"completed_at,omitempty"`
	Items           []StockAuditItemResponse `json:"items,omitempty"`
}

// StockAuditListResponse listado paginado de auditorías (sin ítems).
type StockAuditListResponse struct {
	Items []StockAuditResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
