package repository

import "github.com/jhoicas/Farmacia-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	GetByCompanyAndName(companyID, name string) (*entity.Category, error) // match case-insensitive
	ListByCompany(companyID string) ([]*entity.Category, error)
	Update(category *entity.Category) error
	Delete(id string) error
}
