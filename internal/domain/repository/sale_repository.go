package repository

import "github.com/jhoicas/Farmacia-api/internal/domain/entity"

// SaleRepository define el puerto de persistencia para Sale y sus líneas.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	GetByID(id string) (*entity.Sale, error)
	GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Sale, error)
	UpdateStatus(id, status string) error
}
