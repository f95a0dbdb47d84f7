package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Farmacia-api/internal/domain/inventory"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
	"github.com/jhoicas/Farmacia-api/pkg/logger"
)

// ReceiveStockUseCase registra recepciones de mercadería: suma existencias,
// recalcula el costo promedio ponderado y actualiza lote/vencimiento.
type ReceiveStockUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	purchaseRepo repository.PurchaseRepository
	categoryRepo repository.CategoryRepository
	log          *logger.Logger
}

// NewReceiveStockUseCase construye el caso de uso.
func NewReceiveStockUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	purchaseRepo repository.PurchaseRepository,
	categoryRepo repository.CategoryRepository,
	log *logger.Logger,
) *ReceiveStockUseCase {
	return &ReceiveStockUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		purchaseRepo: purchaseRepo,
		categoryRepo: categoryRepo,
		log:          log,
	}
}

// ReceiveStock aplica una recepción manual. Todas las líneas se aplican en una
// sola transacción; un error en cualquier línea revierte la recepción completa.
func (uc *ReceiveStockUseCase) ReceiveStock(ctx context.Context, companyID, userID string, in dto.ReceiveStockRequest) (*dto.PurchaseResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for i := range in.Items {
		item := &in.Items[i]
		if item.ProductID == "" || item.QuantityReceived <= 0 || item.UnitCost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		if product.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}
	}

	purchase := &entity.Purchase{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		SupplierName: in.SupplierName,
		Source:       entity.PurchaseSourceManual,
		Notes:        in.Notes,
		Status:       entity.PurchaseStatusReceived,
		CreatedBy:    userID,
		CreatedAt:    time.Now(),
	}
	var purchaseItems []*entity.PurchaseItem

	err := uc.txRunner.RunReceive(ctx, func(
		productRepo repository.ProductRepository,
		purchaseRepo repository.PurchaseRepository,
	) error {
		if err := purchaseRepo.Create(purchase); err != nil {
			return err
		}
		for _, item := range in.Items {
			name, err := applyReceiptLine(productRepo, item.ProductID, item.QuantityReceived,
				item.UnitCost, item.BatchNumber, item.ExpiryDate)
			if err != nil {
				return err
			}
			pi := &entity.PurchaseItem{
				ID:               uuid.New().String(),
				PurchaseID:       purchase.ID,
				ProductID:        item.ProductID,
				ProductName:      name,
				QuantityReceived: item.QuantityReceived,
				UnitCost:         item.UnitCost,
				BatchNumber:      item.BatchNumber,
				ExpiryDate:       item.ExpiryDate,
			}
			if err := purchaseRepo.CreateItem(pi); err != nil {
				return err
			}
			purchaseItems = append(purchaseItems, pi)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("purchase_id", purchase.ID).Int("lineas", len(purchaseItems)).
		Msg("recepción de stock registrada")

	resp := toPurchaseResponse(purchase, purchaseItems)
	return &resp, nil
}

// applyReceiptLine bloquea el producto, suma existencias y recalcula el costo
// promedio ponderado. Retorna el nombre del producto para denormalizar la línea.
func applyReceiptLine(
	productRepo repository.ProductRepository,
	productID string,
	quantityReceived int,
	unitCost decimal.Decimal,
	batchNumber string,
	expiryDate *time.Time,
) (string, error) {
	product, err := productRepo.GetForUpdate(productID)
	if err != nil {
		return "", err
	}
	if product == nil {
		return "", domain.ErrNotFound
	}

	newCost := domaininv.CostCalculator(
		decimal.NewFromInt(int64(product.Quantity)),
		product.CostPrice,
		decimal.NewFromInt(int64(quantityReceived)),
		unitCost,
	)
	if err := productRepo.UpdateCost(product.ID, newCost); err != nil {
		return "", err
	}
	if err := productRepo.UpdateQuantity(product.ID, product.Quantity+quantityReceived); err != nil {
		return "", err
	}
	if batchNumber != "" || expiryDate != nil {
		batch := batchNumber
		if batch == "" {
			batch = product.BatchNumber
		}
		exp := expiryDate
		if exp == nil {
			exp = product.ExpiryDate
		}
		if err := productRepo.UpdateBatchInfo(product.ID, batch, exp); err != nil {
			return "", err
		}
	}
	return product.Name, nil
}

// GetPurchase retorna una recepción con sus líneas.
func (uc *ReceiveStockUseCase) GetPurchase(_ context.Context, companyID, purchaseID string) (*dto.PurchaseResponse, error) {
	purchase, err := uc.purchaseRepo.GetByID(purchaseID)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, domain.ErrNotFound
	}
	if purchase.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	items, err := uc.purchaseRepo.GetItemsByPurchaseID(purchaseID)
	if err != nil {
		return nil, err
	}
	resp := toPurchaseResponse(purchase, items)
	return &resp, nil
}

// ListPurchases lista las recepciones de la empresa paginadas (sin líneas).
func (uc *ReceiveStockUseCase) ListPurchases(_ context.Context, companyID string, page dto.PageRequest) (*dto.PurchaseListResponse, error) {
	page.DefaultPage()
	purchases, err := uc.purchaseRepo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := dto.PurchaseListResponse{
		Items: make([]dto.PurchaseResponse, 0, len(purchases)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, p := range purchases {
		out.Items = append(out.Items, toPurchaseResponse(p, nil))
	}
	return &out, nil
}

func toPurchaseResponse(purchase *entity.Purchase, items []*entity.PurchaseItem) dto.PurchaseResponse {
	resp := dto.PurchaseResponse{
		ID:           purchase.ID,
		CompanyID:    purchase.CompanyID,
		SupplierName: purchase.SupplierName,
		Source:       purchase.Source,
		Notes:        purchase.Notes,
		Status:       purchase.Status,
		CreatedBy:    purchase.CreatedBy,
		CreatedAt:    purchase.CreatedAt,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.PurchaseItemResponse{
			ID:               it.ID,
			ProductID:        it.ProductID,
			ProductName:      it.ProductName,
			QuantityReceived: it.QuantityReceived,
			UnitCost:         it.UnitCost,
			BatchNumber:      it.BatchNumber,
			ExpiryDate:       it.ExpiryDate,
		})
	}
	return resp
}
