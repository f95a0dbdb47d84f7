package sales

import (
	"context"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que incluye los repos
// de productos y ventas. Si fn retorna error se hace rollback.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// Notifier publica eventos de venta hacia el motor de notificaciones.
// Se invoca después del commit; los errores se registran pero no revierten la venta.
type Notifier interface {
	NotifySaleCompleted(companyID string, sale *entity.Sale, items []*entity.SaleItem) error
	NotifyRefundProcessed(companyID string, sale *entity.Sale) error
}

// ReceiptPDFGenerator genera el recibo de venta en PDF.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(
		ctx context.Context,
		sale *entity.Sale,
		items []*entity.SaleItem,
		company *entity.Company,
		customer *entity.Customer, // nil para venta de mostrador
	) ([]byte, error)
}
