package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

var _ repository.StockAuditRepository = (*StockAuditRepo)(nil)

// StockAuditRepo implementación de StockAuditRepository (usable con pool o tx).
type StockAuditRepo struct {
	q Querier
}

// NewStockAuditRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockAuditRepository(q Querier) *StockAuditRepo {
	return &StockAuditRepo{q: q}
}

// Create persiste una nueva auditoría.
func (r *StockAuditRepo) Create(audit *entity.StockAudit) error {
	query := `
		INSERT INTO stock_audits (id, company_id, status, notes, total_variance, estimated_impact, created_by, created_at, updated_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		audit.ID, audit.CompanyID, audit.Status, audit.Notes, audit.TotalVariance,
		audit.EstimatedImpact, audit.CreatedBy, audit.CreatedAt, audit.UpdatedAt, audit.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock audit: %w", err)
	}
	return nil
}

// Update actualiza la cabecera de la auditoría.
func (r *StockAuditRepo) Update(audit *entity.StockAudit) error {
	query := `
		UPDATE stock_audits
		SET status = $2, notes = $3, total_variance = $4, estimated_impact = $5, updated_at = $6, completed_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		audit.ID, audit.Status, audit.Notes, audit.TotalVariance,
		audit.EstimatedImpact, audit.UpdatedAt, audit.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("update stock audit: %w", err)
	}
	return nil
}

// ReplaceItems reemplaza el snapshot completo de ítems de la auditoría.
func (r *StockAuditRepo) ReplaceItems(auditID string, items []*entity.StockAuditItem) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM stock_audit_items WHERE audit_id = $1`, auditID); err != nil {
		return fmt.Errorf("clear stock audit items: %w", err)
	}
	query := `
		INSERT INTO stock_audit_items (id, audit_id, product_id, product_name, category_name, system_quantity, physical_count, variance, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for _, it := range items {
		_, err := r.q.Exec(ctx, query,
			it.ID, it.AuditID, it.ProductID, it.ProductName, it.CategoryName,
			it.SystemQuantity, it.PhysicalCount, it.Variance, it.Status,
		)
		if err != nil {
			return fmt.Errorf("insert stock audit item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una auditoría por ID.
func (r *StockAuditRepo) GetByID(id string) (*entity.StockAudit, error) {
	query := `
		SELECT id, company_id, status, notes, total_variance, estimated_impact, created_by, created_at, updated_at, completed_at
		FROM stock_audits WHERE id = $1`
	var a entity.StockAudit
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.CompanyID, &a.Status, &a.Notes, &a.TotalVariance,
		&a.EstimatedImpact, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt, &a.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock audit: %w", err)
	}
	return &a, nil
}

// GetItemsByAuditID obtiene los ítems de la auditoría.
func (r *StockAuditRepo) GetItemsByAuditID(auditID string) ([]*entity.StockAuditItem, error) {
	query := `
		SELECT id, audit_id, product_id, product_name, category_name, system_quantity, physical_count, variance, status
		FROM stock_audit_items WHERE audit_id = $1 ORDER BY product_name ASC`
	rows, err := r.q.Query(context.Background(), query, auditID)
	if err != nil {
		return nil, fmt.Errorf("list stock audit items: %w", err)
	}
	defer rows.Close()
	var items []*entity.StockAuditItem
	for rows.Next() {
		var it entity.StockAuditItem
		if err := rows.Scan(&it.ID, &it.AuditID, &it.ProductID, &it.ProductName, &it.CategoryName,
			&it.SystemQuantity, &it.PhysicalCount, &it.Variance, &it.Status); err != nil {
			return nil, fmt.Errorf("scan stock audit item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// ListByCompany lista auditorías por empresa, más recientes primero.
func (r *StockAuditRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.StockAudit, error) {
	query := `
		SELECT id, company_id, status, notes, total_variance, estimated_impact, created_by, created_at, updated_at, completed_at
		FROM stock_audits WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock audits: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockAudit
	for rows.Next() {
		var a entity.StockAudit
		if err := rows.Scan(&a.ID, &a.CompanyID, &a.Status, &a.Notes, &a.TotalVariance,
			&a.EstimatedImpact, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt, &a.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan stock audit: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
