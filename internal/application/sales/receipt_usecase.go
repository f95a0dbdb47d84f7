package sales

import (
	"context"
	"fmt"

	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

// ReceiptUseCase genera el recibo de venta en PDF.
type ReceiptUseCase struct {
	saleRepo     repository.SaleRepository
	companyRepo  repository.CompanyRepository
	customerRepo repository.CustomerRepository
	generator    ReceiptPDFGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(
	saleRepo repository.SaleRepository,
	companyRepo repository.CompanyRepository,
	customerRepo repository.CustomerRepository,
	generator ReceiptPDFGenerator,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		saleRepo:     saleRepo,
		companyRepo:  companyRepo,
		customerRepo: customerRepo,
		generator:    generator,
	}
}

// DownloadReceiptPDF recupera la venta con sus líneas y genera el recibo.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrNotFound        si la venta no existe.
//   - domain.ErrForbidden       si la venta no pertenece a la empresa del token.
func (uc *ReceiptUseCase) DownloadReceiptPDF(
	ctx context.Context,
	companyID, saleID string,
) (pdfBytes []byte, filename string, err error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: obtener venta: %w", err)
	}
	if sale == nil {
		return nil, "", domain.ErrNotFound
	}
	if sale.CompanyID != companyID {
		return nil, "", domain.ErrForbidden
	}

	items, err := uc.saleRepo.GetItemsBySaleID(saleID)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: obtener líneas: %w", err)
	}

	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: obtener empresa: %w", err)
	}
	if company == nil {
		return nil, "", domain.ErrNotFound
	}

	// Cliente opcional: la venta de mostrador no tiene cliente asociado
	var customer *entity.Customer
	if sale.CustomerID != "" {
		customer, err = uc.customerRepo.GetByID(sale.CustomerID)
		if err != nil {
			return nil, "", fmt.Errorf("recibo: obtener cliente: %w", err)
		}
	}

	pdfBytes, err = uc.generator.GenerateReceiptPDF(ctx, sale, items, company, customer)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("recibo_%s.pdf", sale.ID[:8])
	return pdfBytes, filename, nil
}
