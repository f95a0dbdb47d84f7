package audit

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/jhoicas/Farmacia-api/internal/domain"
)

// Cabecera del CSV de exportación de auditoría.
var csvExportHeader = []string{
	"Product_Name", "Category", "System_Quantity", "Physical_Count", "Variance", "Status",
}

// ExportCSV genera el CSV de una auditoría: una fila por producto con el
// conteo, la varianza calculada y el estado.
func (uc *StockAuditUseCase) ExportCSV(_ context.Context, companyID, auditID string) (data []byte, filename string, err error) {
	audit, err := uc.auditRepo.GetByID(auditID)
	if err != nil {
		return nil, "", err
	}
	if audit == nil {
		return nil, "", domain.ErrNotFound
	}
	if audit.CompanyID != companyID {
		return nil, "", domain.ErrForbidden
	}
	items, err := uc.auditRepo.GetItemsByAuditID(auditID)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvExportHeader); err != nil {
		return nil, "", fmt.Errorf("exportar auditoría: %w", err)
	}
	for _, it := range items {
		physical := ""
		if it.PhysicalCount != nil {
			physical = strconv.Itoa(*it.PhysicalCount)
		}
		record := []string{
			it.ProductName,
			it.CategoryName,
			strconv.Itoa(it.SystemQuantity),
			physical,
			strconv.Itoa(it.Variance),
			it.Status,
		}
		if err := w.Write(record); err != nil {
			return nil, "", fmt.Errorf("exportar auditoría: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", fmt.Errorf("exportar auditoría: %w", err)
	}

	filename = fmt.Sprintf("auditoria_%s_%s.csv", audit.ID[:8], audit.CreatedAt.Format("20060102"))
	return buf.Bytes(), filename, nil
}
