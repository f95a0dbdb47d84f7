package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetForUpdate solo tiene sentido dentro de una transacción (SELECT ... FOR UPDATE).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error)
	GetByCompanyAndName(companyID, name string) (*entity.Product, error) // match case-insensitive
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateQuantity(productID string, quantity int) error
	UpdateCost(productID string, cost decimal.Decimal) error
	UpdateBatchInfo(productID, batchNumber string, expiryDate *time.Time) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error)
	ListAllByCompany(companyID string) ([]*entity.Product, error)
	ListExpiring(companyID string, from, until time.Time) ([]*entity.Product, error)
	ListExpired(companyID string, asOf time.Time) ([]*entity.Product, error)
	ListBelowMinStock(companyID string) ([]*entity.Product, error)
	CountByCategory(categoryID string) (int, error)
	Delete(id string) error
}
