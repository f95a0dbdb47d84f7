package inventory

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

// Columnas requeridas del CSV de recepción, en cualquier orden.
var csvImportColumns = []string{
	"Product_Name", "Category", "Volume", "Retail_Price", "Cost_Price",
	"Quantity_Received", "Batch_Number", "Expiry_Date", "Manufacturer", "Notes",
}

// Valores por defecto para productos creados desde el CSV.
const (
	defaultMinStock    = 10
	defaultCategory    = "General"
	csvExpiryLayout    = "2006-01-02"
	csvExpiryLayoutAlt = "02/01/2006"
)

type csvRow struct {
	line         int
	name         string
	category     string
	retailPrice  decimal.Decimal
	costPrice    decimal.Decimal
	quantity     int
	batchNumber  string
	expiryDate   *time.Time
	manufacturer string
	notes        string
	existing     *entity.Product // nil si el producto no existe aún
}

// ImportCSV procesa un archivo de recepción de stock. Las filas sin
// Product_Name o con cantidades inválidas se excluyen; los nombres que
// coinciden con productos existentes (sin distinguir mayúsculas) reciben
// stock sin crear duplicados; el resto crea el producto y luego recibe.
// Todas las filas válidas se aplican en una sola transacción.
func (uc *ReceiveStockUseCase) ImportCSV(ctx context.Context, companyID, userID string, r io.Reader) (*dto.CSVImportResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: no se pudo leer la cabecera del CSV", domain.ErrInvalidInput)
	}
	colIdx := make(map[string]int, len(header))
	for i, h := range header {
		colIdx[strings.TrimSpace(h)] = i
	}
	for _, required := range csvImportColumns {
		if _, ok := colIdx[required]; !ok {
			return nil, fmt.Errorf("%w: falta la columna %q en el CSV", domain.ErrInvalidInput, required)
		}
	}

	result := &dto.CSVImportResult{}
	var rows []*csvRow

	cell := func(rec []string, col string) string {
		i := colIdx[col]
		if i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	for line := 1; ; line++ {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Skipped++
			result.Rows = append(result.Rows, dto.CSVImportRowResult{
				Line: line, Classification: dto.CSVRowSkipped,
				Error: "fila malformada: " + err.Error(),
			})
			continue
		}

		name := cell(rec, "Product_Name")
		if name == "" {
			result.Skipped++
			result.Rows = append(result.Rows, dto.CSVImportRowResult{
				Line: line, Classification: dto.CSVRowSkipped,
				Error: "Product_Name vacío",
			})
			continue
		}

		row, rowErr := uc.parseRow(companyID, line, name, rec, cell)
		if rowErr != "" {
			result.Skipped++
			result.Rows = append(result.Rows, dto.CSVImportRowResult{
				Line: line, ProductName: name,
				Classification: dto.CSVRowSkipped, Error: rowErr,
			})
			continue
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return result, nil
	}

	purchase := &entity.Purchase{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Source:    entity.PurchaseSourceCSV,
		Status:    entity.PurchaseStatusReceived,
		CreatedBy: userID,
		CreatedAt: time.Now(),
	}

	err = uc.txRunner.RunReceive(ctx, func(
		productRepo repository.ProductRepository,
		purchaseRepo repository.PurchaseRepository,
	) error {
		if err := purchaseRepo.Create(purchase); err != nil {
			return err
		}
		for _, row := range rows {
			productID := ""
			if row.existing != nil {
				productID = row.existing.ID
			} else {
				category, err := uc.findOrCreateCategory(companyID, row.category)
				if err != nil {
					return err
				}
				now := time.Now()
				product := &entity.Product{
					ID:            uuid.New().String(),
					CompanyID:     companyID,
					SKU:           strings.ToUpper(uuid.New().String()[:8]),
					Name:          row.name,
					CategoryID:    category.ID,
					CategoryName:  category.Name,
					Price:         row.retailPrice,
					CostPrice:     row.costPrice,
					Quantity:      0,
					MinStockLevel: defaultMinStock,
					BatchNumber:   row.batchNumber,
					ExpiryDate:    row.expiryDate,
					Manufacturer:  row.manufacturer,
					CreatedAt:     now,
					UpdatedAt:     now,
				}
				if err := productRepo.Create(product); err != nil {
					return err
				}
				productID = product.ID
			}

			if _, err := applyReceiptLine(productRepo, productID, row.quantity,
				row.costPrice, row.batchNumber, row.expiryDate); err != nil {
				return err
			}
			if err := purchaseRepo.CreateItem(&entity.PurchaseItem{
				ID:               uuid.New().String(),
				PurchaseID:       purchase.ID,
				ProductID:        productID,
				ProductName:      row.name,
				QuantityReceived: row.quantity,
				UnitCost:         row.costPrice,
				BatchNumber:      row.batchNumber,
				ExpiryDate:       row.expiryDate,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.PurchaseID = purchase.ID
	for _, row := range rows {
		classification := dto.CSVRowNew
		if row.existing != nil {
			classification = dto.CSVRowExisting
		} else {
			result.Created++
		}
		result.Received++
		result.Rows = append(result.Rows, dto.CSVImportRowResult{
			Line: row.line, ProductName: row.name, Classification: classification,
		})
	}

	uc.log.Info().Str("purchase_id", purchase.ID).
		Int("creados", result.Created).Int("recibidos", result.Received).Int("excluidos", result.Skipped).
		Msg("import CSV de recepción procesado")
	return result, nil
}

// parseRow valida y convierte una fila. Retorna mensaje de error si la fila
// debe excluirse.
func (uc *ReceiveStockUseCase) parseRow(
	companyID string, line int, name string,
	rec []string, cell func([]string, string) string,
) (*csvRow, string) {
	qty, err := strconv.Atoi(cell(rec, "Quantity_Received"))
	if err != nil || qty <= 0 {
		return nil, "Quantity_Received inválido"
	}

	retail, err := parseDecimalCell(cell(rec, "Retail_Price"))
	if err != nil {
		return nil, "Retail_Price inválido"
	}
	cost, err := parseDecimalCell(cell(rec, "Cost_Price"))
	if err != nil {
		return nil, "Cost_Price inválido"
	}
	if retail.IsNegative() || cost.IsNegative() {
		return nil, "precios negativos"
	}

	var expiry *time.Time
	if raw := cell(rec, "Expiry_Date"); raw != "" {
		t, err := time.Parse(csvExpiryLayout, raw)
		if err != nil {
			t, err = time.Parse(csvExpiryLayoutAlt, raw)
		}
		if err != nil {
			return nil, "Expiry_Date inválida"
		}
		expiry = &t
	}

	existing, err := uc.productRepo.GetByCompanyAndName(companyID, name)
	if err != nil {
		return nil, "consulta de producto fallida: " + err.Error()
	}

	return &csvRow{
		line:         line,
		name:         name,
		category:     cell(rec, "Category"),
		retailPrice:  retail,
		costPrice:    cost,
		quantity:     qty,
		batchNumber:  cell(rec, "Batch_Number"),
		expiryDate:   expiry,
		manufacturer: cell(rec, "Manufacturer"),
		notes:        cell(rec, "Notes"),
		existing:     existing,
	}, ""
}

func parseDecimalCell(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

// findOrCreateCategory resuelve la categoría por nombre, creándola si no existe.
func (uc *ReceiveStockUseCase) findOrCreateCategory(companyID, name string) (*entity.Category, error) {
	if name == "" {
		name = defaultCategory
	}
	category, err := uc.categoryRepo.GetByCompanyAndName(companyID, name)
	if err != nil {
		return nil, err
	}
	if category != nil {
		return category, nil
	}
	now := time.Now()
	category = &entity.Category{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.categoryRepo.Create(category); err != nil {
		// Otra petición pudo crearla en paralelo
		if err == domain.ErrDuplicate {
			return uc.categoryRepo.GetByCompanyAndName(companyID, name)
		}
		return nil, err
	}
	return category, nil
}
