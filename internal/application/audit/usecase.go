package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	domainaudit "github.com/jhoicas/Farmacia-api/internal/domain/audit"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
	"github.com/jhoicas/Farmacia-api/pkg/config"
	"github.com/jhoicas/Farmacia-api/pkg/logger"
)

// StockAuditUseCase gestiona conteos físicos de inventario. Completar una
// auditoría registra la varianza pero NO modifica existencias: solo la
// recepción de stock y las ventas mueven Product.Quantity.
type StockAuditUseCase struct {
	txRunner    TxRunner
	auditRepo   repository.StockAuditRepository
	productRepo repository.ProductRepository
	cfg         config.AuditConfig
	log         *logger.Logger
}

// NewStockAuditUseCase construye el caso de uso.
func NewStockAuditUseCase(
	txRunner TxRunner,
	auditRepo repository.StockAuditRepository,
	productRepo repository.ProductRepository,
	cfg config.AuditConfig,
	log *logger.Logger,
) *StockAuditUseCase {
	return &StockAuditUseCase{
		txRunner:    txRunner,
		auditRepo:   auditRepo,
		productRepo: productRepo,
		cfg:         cfg,
		log:         log,
	}
}

func (uc *StockAuditUseCase) unitValue() decimal.Decimal {
	return decimal.NewFromInt(int64(uc.cfg.UnitValue))
}

// StartAudit crea un borrador con el snapshot de todos los productos de la
// empresa, todos en estado pending.
func (uc *StockAuditUseCase) StartAudit(ctx context.Context, companyID, userID string) (*dto.StockAuditResponse, error) {
	products, err := uc.productRepo.ListAllByCompany(companyID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	audit := &entity.StockAudit{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Status:    entity.AuditStatusDraft,
		CreatedBy: userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	items := make([]*entity.StockAuditItem, 0, len(products))
	for _, p := range products {
		items = append(items, &entity.StockAuditItem{
			ID:             uuid.New().String(),
			AuditID:        audit.ID,
			ProductID:      p.ID,
			ProductName:    p.Name,
			CategoryName:   p.CategoryName,
			SystemQuantity: p.Quantity,
			Status:         domainaudit.StatusPending,
		})
	}

	err = uc.txRunner.RunAudit(ctx, func(auditRepo repository.StockAuditRepository) error {
		if err := auditRepo.Create(audit); err != nil {
			return err
		}
		return auditRepo.ReplaceItems(audit.ID, items)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("audit_id", audit.ID).Int("productos", len(items)).Msg("auditoría iniciada")
	resp := toAuditResponse(audit, items)
	return &resp, nil
}

// SaveDraft aplica los conteos ingresados sobre un borrador y reclasifica cada
// ítem. Los conteos son acumulativos: un ítem sin entrada nueva conserva el
// conteo anterior.
func (uc *StockAuditUseCase) SaveDraft(ctx context.Context, companyID, auditID string, in dto.SaveAuditRequest) (*dto.StockAuditResponse, error) {
	audit, items, err := uc.loadDraft(companyID, auditID)
	if err != nil {
		return nil, err
	}

	uc.applyCounts(audit, items, in)

	err = uc.txRunner.RunAudit(ctx, func(auditRepo repository.StockAuditRepository) error {
		if err := auditRepo.Update(audit); err != nil {
			return err
		}
		return auditRepo.ReplaceItems(audit.ID, items)
	})
	if err != nil {
		return nil, err
	}
	resp := toAuditResponse(audit, items)
	return &resp, nil
}

// Complete aplica los conteos finales y cierra la auditoría. Requiere un
// mínimo de ítems contados; si no se alcanza, no se persiste nada y el
// borrador queda como estaba.
func (uc *StockAuditUseCase) Complete(ctx context.Context, companyID, auditID string, in dto.SaveAuditRequest) (*dto.StockAuditResponse, error) {
	audit, items, err := uc.loadDraft(companyID, auditID)
	if err != nil {
		return nil, err
	}

	uc.applyCounts(audit, items, in)

	counted := 0
	for _, it := range items {
		if it.PhysicalCount != nil {
			counted++
		}
	}
	if counted < uc.cfg.MinItems {
		return nil, domain.ErrAuditTooSmall
	}

	now := time.Now()
	audit.Status = entity.AuditStatusCompleted
	audit.UpdatedAt = now
	audit.CompletedAt = &now

	err = uc.txRunner.RunAudit(ctx, func(auditRepo repository.StockAuditRepository) error {
		if err := auditRepo.Update(audit); err != nil {
			return err
		}
		return auditRepo.ReplaceItems(audit.ID, items)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("audit_id", audit.ID).Int("contados", counted).
		Int("varianza_total", audit.TotalVariance).Msg("auditoría completada")
	resp := toAuditResponse(audit, items)
	return &resp, nil
}

// GetAudit retorna una auditoría con sus ítems.
func (uc *StockAuditUseCase) GetAudit(_ context.Context, companyID, auditID string) (*dto.StockAuditResponse, error) {
	audit, err := uc.auditRepo.GetByID(auditID)
	if err != nil {
		return nil, err
	}
	if audit == nil {
		return nil, domain.ErrNotFound
	}
	if audit.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	items, err := uc.auditRepo.GetItemsByAuditID(auditID)
	if err != nil {
		return nil, err
	}
	resp := toAuditResponse(audit, items)
	return &resp, nil
}

// ListAudits lista las auditorías de la empresa paginadas (sin ítems).
func (uc *StockAuditUseCase) ListAudits(_ context.Context, companyID string, page dto.PageRequest) (*dto.StockAuditListResponse, error) {
	page.DefaultPage()
	audits, err := uc.auditRepo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := dto.StockAuditListResponse{
		Items: make([]dto.StockAuditResponse, 0, len(audits)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, a := range audits {
		out.Items = append(out.Items, toAuditResponse(a, nil))
	}
	return &out, nil
}

// loadDraft carga un borrador de la empresa con sus ítems, validando dueño y estado.
func (uc *StockAuditUseCase) loadDraft(companyID, auditID string) (*entity.StockAudit, []*entity.StockAuditItem, error) {
	audit, err := uc.auditRepo.GetByID(auditID)
	if err != nil {
		return nil, nil, err
	}
	if audit == nil {
		return nil, nil, domain.ErrNotFound
	}
	if audit.CompanyID != companyID {
		return nil, nil, domain.ErrForbidden
	}
	if audit.Status == entity.AuditStatusCompleted {
		return nil, nil, domain.ErrAuditCompleted
	}
	items, err := uc.auditRepo.GetItemsByAuditID(auditID)
	if err != nil {
		return nil, nil, err
	}
	return audit, items, nil
}

// applyCounts vuelca los conteos de la petición sobre los ítems, reclasifica
// cada uno y recalcula los totales de la cabecera.
func (uc *StockAuditUseCase) applyCounts(audit *entity.StockAudit, items []*entity.StockAuditItem, in dto.SaveAuditRequest) {
	byProduct := make(map[string]*entity.StockAuditItem, len(items))
	for _, it := range items {
		byProduct[it.ProductID] = it
	}
	for _, entry := range in.Counts {
		it, ok := byProduct[entry.ProductID]
		if !ok {
			continue // producto fuera del snapshot
		}
		count := entry.PhysicalCount
		it.PhysicalCount = &count
	}

	total := 0
	for _, it := range items {
		it.Variance, it.Status = domainaudit.Classify(it.PhysicalCount, it.SystemQuantity, uc.cfg.CriticalVariance)
		total += it.Variance
	}

	if in.Notes != "" {
		audit.Notes = in.Notes
	}
	audit.TotalVariance = total
	audit.EstimatedImpact = domainaudit.EstimatedImpact(total, uc.unitValue())
	audit.UpdatedAt = time.Now()
}

func toAuditResponse(audit *entity.StockAudit, items []*entity.StockAuditItem) dto.StockAuditResponse {
	resp := dto.StockAuditResponse{
		ID:              audit.ID,
		CompanyID:       audit.CompanyID,
		Status:          audit.Status,
		Notes:           audit.Notes,
		TotalVariance:   audit.TotalVariance,
		EstimatedImpact: audit.EstimatedImpact,
		CreatedBy:       audit.CreatedBy,
		CreatedAt:       audit.CreatedAt,
		CompletedAt:     audit.CompletedAt,
	}
	for _, it := range items {
		if it.PhysicalCount != nil {
			resp.CountedItems++
		}
		resp.Items = append(resp.Items, dto.StockAuditItemResponse{
			ProductID:      it.ProductID,
			ProductName:    it.ProductName,
			CategoryName:   it.CategoryName,
			SystemQuantity: it.SystemQuantity,
			PhysicalCount:  it.PhysicalCount,
			Variance:       it.Variance,
			Status:         it.Status,
		})
	}
	return resp
}
