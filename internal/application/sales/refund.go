package sales

import (
	"context"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

// RefundSale revierte una venta completada: devuelve las unidades al stock
// y marca la venta como refunded. Una venta ya reembolsada no puede
// reembolsarse de nuevo.
func (uc *SaleUseCase) RefundSale(ctx context.Context, companyID, saleID string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if sale.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if sale.Status == entity.SaleStatusRefunded {
		return nil, domain.ErrSaleRefunded
	}

	items, err := uc.saleRepo.GetItemsBySaleID(saleID)
	if err != nil {
		return nil, err
	}

	err = uc.txRunner.RunSale(ctx, func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		for _, it := range items {
			product, err := productRepo.GetForUpdate(it.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				// Producto eliminado después de la venta: no hay a dónde devolver stock
				continue
			}
			if err := productRepo.UpdateQuantity(product.ID, product.Quantity+it.Quantity); err != nil {
				return err
			}
		}
		return saleRepo.UpdateStatus(saleID, entity.SaleStatusRefunded)
	})
	if err != nil {
		return nil, err
	}
	sale.Status = entity.SaleStatusRefunded

	if err := uc.notifier.NotifyRefundProcessed(companyID, sale); err != nil {
		uc.log.Warn().Err(err).Str("sale_id", sale.ID).Msg("no se pudo notificar el reembolso")
	}

	resp := toSaleResponse(sale, items)
	return &resp, nil
}
