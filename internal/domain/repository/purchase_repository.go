package repository

import "github.com/jhoicas/Farmacia-api/internal/domain/entity"

// PurchaseRepository define el puerto de persistencia para recepciones de stock.
type PurchaseRepository interface {
	Create(purchase *entity.Purchase) error
	CreateItem(item *entity.PurchaseItem) error
	GetByID(id string) (*entity.Purchase, error)
	GetItemsByPurchaseID(purchaseID string) ([]*entity.PurchaseItem, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Purchase, error)
}
