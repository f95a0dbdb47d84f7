package entity

import (
	"encoding/json"
	"time"
)

// Tipos de notificación.
const (
	NotifLowStock        = "LOW_STOCK"
	NotifOutOfStock      = "OUT_OF_STOCK"
	NotifExpired         = "EXPIRED"
	NotifExpiringSoon    = "EXPIRING_SOON"
	NotifReorderNeeded   = "REORDER_NEEDED"
	NotifSaleCompleted   = "SALE_COMPLETED"
	NotifHighValueSale   = "HIGH_VALUE_SALE"
	NotifNewCustomer     = "NEW_CUSTOMER"
	NotifRefundProcessed = "REFUND_PROCESSED"
	NotifSystemEvent     = "SYSTEM_EVENT"
)

// Prioridades.
const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
	PriorityUrgent = "URGENT"
)

// Categorías para agrupar en el panel.
const (
	NotifCategoryInventory = "inventory"
	NotifCategorySales     = "sales"
	NotifCategoryCustomers = "customers"
	NotifCategorySystem    = "system"
)

// Notification alerta persistida generada por el motor de notificaciones.
// Data es un payload libre por tipo (ej: {"quantity":5,"minStock":10}).
type Notification struct {
	ID        string
	CompanyID string
	Type      string
	Title     string
	Message   string
	Priority  string
	Category  string
	Data      json.RawMessage
	IsRead    bool
	CreatedAt time.Time
}
