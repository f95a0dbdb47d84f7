package repository

import "github.com/jhoicas/Farmacia-api/internal/domain/entity"

// StockAuditRepository define el puerto de persistencia para auditorías de stock.
// ReplaceItems reemplaza el snapshot completo de ítems (borrador re-guardado).
type StockAuditRepository interface {
	Create(audit *entity.StockAudit) error
	Update(audit *entity.StockAudit) error
	ReplaceItems(auditID string, items []*entity.StockAuditItem) error
	GetByID(id string) (*entity.StockAudit, error)
	GetItemsByAuditID(auditID string) ([]*entity.StockAuditItem, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.StockAudit, error)
}
