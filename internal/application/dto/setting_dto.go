package dto

import "encoding/json"

// SettingsResponse mapa clave → valor JSON, ya fusionado con los defaults.
type SettingsResponse struct {
	Settings map[string]json.RawMessage `json:"settings"`
}

// UpdateSettingsRequest claves a sobreescribir.
type UpdateSettingsRequest struct {
	Settings map[string]json.RawMessage `json:"settings"`
}
