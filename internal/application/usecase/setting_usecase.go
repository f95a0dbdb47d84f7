package usecase

import (
	"encoding/json"
	"time"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

// defaultSettings valores por defecto en código. Al leer se fusionan con lo
// persistido: lo guardado pisa el default, clave por clave.
var defaultSettings = map[string]json.RawMessage{
	"store_name":          json.RawMessage(`"Farmacia"`),
	"currency":            json.RawMessage(`"COP"`),
	"low_stock_threshold": json.RawMessage(`10`),
	"receipt_footer":      json.RawMessage(`"Gracias por su compra"`),
	"expiry_warning_days": json.RawMessage(`30`),
	"notifications_on":    json.RawMessage(`true`),
}

// SettingUseCase lectura y escritura de la configuración por empresa.
type SettingUseCase struct {
	repo repository.SettingRepository
}

// NewSettingUseCase construye el caso de uso.
func NewSettingUseCase(repo repository.SettingRepository) *SettingUseCase {
	return &SettingUseCase{repo: repo}
}

// Get retorna los settings de la empresa fusionados sobre los defaults.
func (uc *SettingUseCase) Get(companyID string) (*dto.SettingsResponse, error) {
	stored, err := uc.repo.GetAllByCompany(companyID)
	if err != nil {
		return nil, err
	}
	merged := make(map[string]json.RawMessage, len(defaultSettings)+len(stored))
	for k, v := range defaultSettings {
		merged[k] = v
	}
	for _, s := range stored {
		merged[s.Key] = s.Value
	}
	return &dto.SettingsResponse{Settings: merged}, nil
}

// Update sobreescribe las claves indicadas y retorna el resultado fusionado.
func (uc *SettingUseCase) Update(companyID string, in dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	if len(in.Settings) == 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	for key, value := range in.Settings {
		if key == "" || !json.Valid(value) {
			return nil, domain.ErrInvalidInput
		}
		if err := uc.repo.Upsert(&entity.Setting{
			CompanyID: companyID,
			Key:       key,
			Value:     value,
			UpdatedAt: now,
		}); err != nil {
			return nil, err
		}
	}
	return uc.Get(companyID)
}
