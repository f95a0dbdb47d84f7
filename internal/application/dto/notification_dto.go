package dto

import (
	"encoding/json"
	"time"
)

// NotificationResponse representación de salida de una notificación.
type NotificationResponse struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Title     string          `json:"title"`
	Message   string          `json:"message"`
	Priority  string          `json:"priority"`
	Category  string          `json:"category"`
	Data      json.RawMessage `json:"data,omitempty"`
	IsRead    bool            `json:"is_read"`
	CreatedAt time.Time       `json:"created_at"`
}

// NotificationListResponse listado paginado de notificaciones.
type NotificationListResponse struct {
	Items  []NotificationResponse `json:"items"`
	Unread int                    `json:"unread"`
	Page   PageResponse           `json:"page"`
}

// CheckSummaryResponse resultado agregado de RunComprehensiveCheck.
type CheckSummaryResponse struct {
	Created int `json:"created"` // notificaciones creadas
	Failed  int `json:"failed"`  // sub-chequeos que fallaron
}
