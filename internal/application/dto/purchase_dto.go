package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiveStockItemRequest línea de recepción de mercadería.
type ReceiveStockItemRequest struct {
	ProductID        string          `json:"product_id"`
	QuantityReceived int             `json:"quantity_received"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	BatchNumber      string          `json:"batch_number"`
	ExpiryDate       *time.Time      `json:"expiry_date"`
}

// ReceiveStockRequest datos para registrar una recepción de stock.
type ReceiveStockRequest struct {
	SupplierName string                    `json:"supplier_name"`
	Notes        string                    `json:"notes"`
	Items        []ReceiveStockItemRequest `json:"items"`
}

// PurchaseItemResponse línea de recepción de salida.
type PurchaseItemResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	ProductName      string          `json:"product_name"`
	QuantityReceived int             `json:"quantity_received"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	BatchNumber      string          `json:"batch_number,omitempty"`
	ExpiryDate       *time.Time      `json:"expiry_date,omitempty"`
}

// PurchaseResponse representación de salida de una recepción.
type PurchaseResponse struct {
	ID           string                 `json:"id"`
	CompanyID    string                 `json:"company_id"`
	SupplierName string                 `json:"supplier_name,omitempty"`
	Source       string                 `json:"source"`
	Notes        string                 `json:"notes,omitempty"`
	Status       string                 `json:"status"`
	CreatedBy    string                 `json:"created_by"`
	CreatedAt    time.Time              `json:"created_at"`
	Items        []PurchaseItemResponse `json:"items"`
}

// PurchaseListResponse listado paginado de recepciones.
type PurchaseListResponse struct {
	Items []PurchaseResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// Clasificación de filas del import CSV.
const (
	CSVRowNew      = "new"      // producto creado y stock recibido
	CSVRowExisting = "existing" // producto existente (match por nombre), solo stock recibido
	CSVRowSkipped  = "skipped"  // fila excluida (sin Product_Name o datos inválidos)
)

// CSVImportRowResult resultado por fila del import.
type CSVImportRowResult struct {
	Line           int    `json:"line"` // número de línea en el archivo (1 = primera fila de datos)
	ProductName    string `json:"product_name"`
	Classification string `json:"classification"` // new, existing, skipped
	Error          string `json:"error,omitempty"`
}

// CSVImportResult resumen del import de recepción por CSV.
type CSVImportResult struct {
	PurchaseID string               `json:"purchase_id,omitempty"`
	Created    int                  `json:"created"`  // productos nuevos
	Received   int                  `json:"received"` // filas con stock recibido
	Skipped    int                  `json:"skipped"`
	Rows       []CSVImportRowResult `json:"rows"`
}
