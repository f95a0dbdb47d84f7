package dto

import "github.com/shopspring/decimal"

// ReorderSuggestionDTO sugerencia de reposición para un producto bajo mínimo.
type ReorderSuggestionDTO struct {
	ProductID         string          `json:"product_id"`
	SKU               string          `json:"sku"`
	ProductName       string          `json:"product_name"`
	CurrentStock      int             `json:"current_stock"`
	MinStockLevel     int             `json:"min_stock_level"`
	SuggestedOrderQty int             `json:"suggested_order_qty"`
	EstimatedCost     decimal.Decimal `json:"estimated_cost"`
	Priority          int             `json:"priority"` // 1 = más urgente
}
