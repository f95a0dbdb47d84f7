package entity

import (
	"encoding/json"
	"time"
)

// Setting par clave/valor JSON de configuración por empresa.
// Se fusiona sobre los defaults en código al leer.
type Setting struct {
	CompanyID string
	Key       string
	Value     json.RawMessage
	UpdatedAt time.Time
}
