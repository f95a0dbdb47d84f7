package repository

import "github.com/jhoicas/Farmacia-api/internal/domain/entity"

// SettingRepository define el puerto de persistencia para Settings por empresa.
type SettingRepository interface {
	GetAllByCompany(companyID string) ([]*entity.Setting, error)
	Upsert(setting *entity.Setting) error
}
