package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
	"github.com/jhoicas/Farmacia-api/pkg/logger"
)

// SaleUseCase registra ventas y descuenta el stock en una sola transacción.
type SaleUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
	notifier     Notifier
	log          *logger.Logger
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	notifier Notifier,
	log *logger.Logger,
) *SaleUseCase {
	return &SaleUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		notifier:     notifier,
		log:          log,
	}
}

// CreateSale registra la venta y descuenta existencias por cada línea.
// Si algún producto no tiene stock suficiente, toda la venta se revierte.
func (uc *SaleUseCase) CreateSale(ctx context.Context, companyID, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	switch in.PaymentMethod {
	case entity.PaymentCash, entity.PaymentCard, entity.PaymentTransfer:
	default:
		return nil, domain.ErrInvalidInput
	}
	if in.Discount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	// Cliente opcional (venta de mostrador sin cliente)
	if in.CustomerID != "" {
		customer, err := uc.customerRepo.GetByID(in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, domain.ErrNotFound
		}
		if customer.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}
	}

	// Validar productos y precios fuera de la tx (solo lectura)
	for i := range in.Items {
		item := &in.Items[i]
		if item.ProductID == "" || item.Quantity <= 0 {
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
		if item.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		if item.UnitPrice.IsZero() {
			in.Items[i].UnitPrice = product.Price
		}
	}

	now := time.Now()
	saleID := uuid.New().String()
	var sale *entity.Sale
	var saleItems []*entity.SaleItem

	err := uc.txRunner.RunSale(ctx, func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		var total decimal.Decimal
		saleItems = saleItems[:0]

		for _, item := range in.Items {
			// Bloquear la fila del producto para descontar sin carreras
			product, err := productRepo.GetForUpdate(item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			if product.Quantity < item.Quantity {
				return domain.ErrInsufficientStock
			}
			if err := productRepo.UpdateQuantity(product.ID, product.Quantity-item.Quantity); err != nil {
				return err
			}

			subtotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
			total = total.Add(subtotal)
			saleItems = append(saleItems, &entity.SaleItem{
				ID:          uuid.New().String(),
				SaleID:      saleID,
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
				Subtotal:    subtotal,
			})
		}

		total = total.Sub(in.Discount)
		if total.IsNegative() {
			return domain.ErrInvalidInput
		}

		sale = &entity.Sale{
			ID:            saleID,
			CompanyID:     companyID,
			CustomerID:    in.CustomerID,
			PaymentMethod: in.PaymentMethod,
			Discount:      in.Discount,
			TotalAmount:   total,
			Status:        entity.SaleStatusCompleted,
			CreatedBy:     userID,
			CreatedAt:     now,
		}
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for _, it := range saleItems {
			if err := saleRepo.CreateItem(it); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Notificar después del commit; un fallo aquí no revierte la venta
	if err := uc.notifier.NotifySaleCompleted(companyID, sale, saleItems); err != nil {
		uc.log.Warn().Err(err).Str("sale_id", sale.ID).Msg("no se pudo notificar la venta")
	}

	resp := toSaleResponse(sale, saleItems)
	return &resp, nil
}

// GetSale retorna una venta con sus líneas.
func (uc *SaleUseCase) GetSale(_ context.Context, companyID, saleID string) (*dto.SaleResponse, error) {
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
	items, err := uc.saleRepo.GetItemsBySaleID(saleID)
	if err != nil {
		return nil, err
	}
	resp := toSaleResponse(sale, items)
	return &resp, nil
}

// ListSales lista las ventas de la empresa paginadas (sin líneas).
func (uc *SaleUseCase) ListSales(_ context.Context, companyID string, page dto.PageRequest) (*dto.SaleListResponse, error) {
	page.DefaultPage()
	sales, err := uc.saleRepo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := dto.SaleListResponse{
		Items: make([]dto.SaleResponse, 0, len(sales)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, s := range sales {
		out.Items = append(out.Items, toSaleResponse(s, nil))
	}
	return &out, nil
}

func toSaleResponse(sale *entity.Sale, items []*entity.SaleItem) dto.SaleResponse {
	resp := dto.SaleResponse{
		ID:            sale.ID,
		CompanyID:     sale.CompanyID,
		CustomerID:    sale.CustomerID,
		PaymentMethod: sale.PaymentMethod,
		Discount:      sale.Discount,
		TotalAmount:   sale.TotalAmount,
		Status:        sale.Status,
		CreatedBy:     sale.CreatedBy,
		CreatedAt:     sale.CreatedAt,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
		})
	}
	return resp
}
