package audit_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appaudit "github.com/jhoicas/Farmacia-api/internal/application/audit"
	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	domainaudit "github.com/jhoicas/Farmacia-api/internal/domain/audit"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
	"github.com/jhoicas/Farmacia-api/pkg/config"
	"github.com/jhoicas/Farmacia-api/pkg/logger"
)

const (
	testCompanyID = "00000000-0000-0000-0000-0000000000aa"
	otherCompany  = "00000000-0000-0000-0000-0000000000bb"
	testUserID    = "00000000-0000-0000-0000-0000000000cc"
)

// ──────────────────────────────────────────────────────────────────────────────
// fakeAuditStore — repo en memoria que copia en lectura y escritura, igual que
// una base de datos real: mutar lo leído no afecta lo guardado.
// ──────────────────────────────────────────────────────────────────────────────

type fakeAuditStore struct {
	audits map[string]entity.StockAudit
	items  map[string][]entity.StockAuditItem
}

func newFakeAuditStore() *fakeAuditStore {
	return &fakeAuditStore{
		audits: make(map[string]entity.StockAudit),
		items:  make(map[string][]entity.StockAuditItem),
	}
}

func (s *fakeAuditStore) Create(a *entity.StockAudit) error {
	s.audits[a.ID] = *a
	return nil
}

func (s *fakeAuditStore) Update(a *entity.StockAudit) error {
	s.audits[a.ID] = *a
	return nil
}

func (s *fakeAuditStore) ReplaceItems(auditID string, items []*entity.StockAuditItem) error {
	copied := make([]entity.StockAuditItem, 0, len(items))
	for _, it := range items {
		item := *it
		if it.PhysicalCount != nil {
			count := *it.PhysicalCount
			item.PhysicalCount = &count
		}
		copied = append(copied, item)
	}
	s.items[auditID] = copied
	return nil
}

func (s *fakeAuditStore) GetByID(id string) (*entity.StockAudit, error) {
	a, ok := s.audits[id]
	if !ok {
		return nil, nil
	}
	out := a
	return &out, nil
}

func (s *fakeAuditStore) GetItemsByAuditID(auditID string) ([]*entity.StockAuditItem, error) {
	out := make([]*entity.StockAuditItem, 0, len(s.items[auditID]))
	for _, it := range s.items[auditID] {
		item := it
		if it.PhysicalCount != nil {
			count := *it.PhysicalCount
			item.PhysicalCount = &count
		}
		out = append(out, &item)
	}
	return out, nil
}

func (s *fakeAuditStore) ListByCompany(companyID string, limit, offset int) ([]*entity.StockAudit, error) {
	var out []*entity.StockAudit
	for id := range s.audits {
		a := s.audits[id]
		if a.CompanyID == companyID {
			out = append(out, &a)
		}
	}
	return out, nil
}

// RunAudit satisface appaudit.TxRunner aplicando fn directo sobre el store.
func (s *fakeAuditStore) RunAudit(_ context.Context, fn func(repository.StockAuditRepository) error) error {
	return fn(s)
}

// fakeProductSnapshot solo sirve el snapshot inicial.
type fakeProductSnapshot struct {
	products []*entity.Product
}

func (r *fakeProductSnapshot) ListAllByCompany(string) ([]*entity.Product, error) {
	return r.products, nil
}

func (r *fakeProductSnapshot) Create(*entity.Product) error            { return nil }
func (r *fakeProductSnapshot) GetByID(string) (*entity.Product, error) { return nil, nil }
func (r *fakeProductSnapshot) GetByCompanyAndSKU(string, string) (*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductSnapshot) GetByCompanyAndName(string, string) (*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductSnapshot) GetForUpdate(string) (*entity.Product, error)     { return nil, nil }
func (r *fakeProductSnapshot) Update(*entity.Product) error                     { return nil }
func (r *fakeProductSnapshot) UpdateQuantity(string, int) error                 { return nil }
func (r *fakeProductSnapshot) UpdateCost(string, decimal.Decimal) error         { return nil }
func (r *fakeProductSnapshot) UpdateBatchInfo(string, string, *time.Time) error { return nil }
func (r *fakeProductSnapshot) ListByCompany(string, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductSnapshot) ListExpiring(string, time.Time, time.Time) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductSnapshot) ListExpired(string, time.Time) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductSnapshot) ListBelowMinStock(string) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductSnapshot) CountByCategory(string) (int, error) { return 0, nil }
func (r *fakeProductSnapshot) Delete(string) error                 { return nil }

// ──────────────────────────────────────────────────────────────────────────────
// Setup
// ──────────────────────────────────────────────────────────────────────────────

func testAuditConfig() config.AuditConfig {
	return config.AuditConfig{
		MinItems:         5,
		CriticalVariance: 10,
		UnitValue:        5000,
	}
}

func snapshotProducts(n int) []*entity.Product {
	products := make([]*entity.Product, 0, n)
	names := []string{"Panadol 500mg", "Ibuprofeno", "Amoxicilina", "Vitamina C", "Jarabe", "Insulina", "Aspirina"}
	for i := 0; i < n; i++ {
		products = append(products, &entity.Product{
			ID:        "prod-" + string(rune('a'+i)),
			CompanyID: testCompanyID,
			Name:      names[i%len(names)],
			Quantity:  50,
		})
	}
	return products
}

func newTestUseCase(n int) (*appaudit.StockAuditUseCase, *fakeAuditStore) {
	store := newFakeAuditStore()
	products := &fakeProductSnapshot{products: snapshotProducts(n)}
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	uc := appaudit.NewStockAuditUseCase(store, store, products, testAuditConfig(), log)
	return uc, store
}

func countsFor(resp *dto.StockAuditResponse, n, physical int) dto.SaveAuditRequest {
	var in dto.SaveAuditRequest
	for i, it := range resp.Items {
		if i >= n {
			break
		}
		in.Counts = append(in.Counts, dto.AuditCountEntry{
			ProductID:     it.ProductID,
			PhysicalCount: physical,
		})
	}
	return in
}

// ──────────────────────────────────────────────────────────────────────────────
// StartAudit
// ──────────────────────────────────────────────────────────────────────────────

func TestStartAudit_SnapshotCompletoEnPending(t *testing.T) {
	uc, _ := newTestUseCase(6)

	resp, err := uc.StartAudit(context.Background(), testCompanyID, testUserID)

	require.NoError(t, err)
	assert.Equal(t, entity.AuditStatusDraft, resp.Status)
	require.Len(t, resp.Items, 6, "el borrador debe incluir todos los productos")
	for _, it := range resp.Items {
		assert.Equal(t, domainaudit.StatusPending, it.Status)
		assert.Equal(t, 50, it.SystemQuantity, "el snapshot congela la cantidad del sistema")
		assert.Nil(t, it.PhysicalCount)
	}
	assert.Zero(t, resp.CountedItems)
}

// ──────────────────────────────────────────────────────────────────────────────
// SaveDraft
// ──────────────────────────────────────────────────────────────────────────────

func TestSaveDraft_ReclasificaYAcumula(t *testing.T) {
	uc, _ := newTestUseCase(6)
	started, err := uc.StartAudit(context.Background(), testCompanyID, testUserID)
	require.NoError(t, err)

	// Primera pasada: dos productos contados con faltante de 3.
	resp, err := uc.SaveDraft(context.Background(), testCompanyID, started.ID, countsFor(started, 2, 47))
	require.NoError(t, err)
	assert.Equal(t, 2, resp.CountedItems)
	assert.Equal(t, -6, resp.TotalVariance)

	// Segunda pasada: un tercer producto contado; los dos anteriores conservan su conteo.
	in := dto.SaveAuditRequest{Counts: []dto.AuditCountEntry{
		{ProductID: started.Items[2].ProductID, PhysicalCount: 50},
	}}
	resp, err = uc.SaveDraft(context.Background(), testCompanyID, started.ID, in)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.CountedItems, "los conteos son acumulativos entre guardados")
	assert.Equal(t, -6, resp.TotalVariance)
}

func TestSaveDraft_ClasificaCriticoPorValorAbsoluto(t *testing.T) {
	uc, _ := newTestUseCase(6)
	started, err := uc.StartAudit(context.Background(), testCompanyID, testUserID)
	require.NoError(t, err)

	in := dto.SaveAuditRequest{Counts: []dto.AuditCountEntry{
		{ProductID: started.Items[0].ProductID, PhysicalCount: 35}, // -15: critical
		{ProductID: started.Items[1].ProductID, PhysicalCount: 50}, // matched
		{ProductID: started.Items[2].ProductID, PhysicalCount: 48}, // -2: variance
	}}
	resp, err := uc.SaveDraft(context.Background(), testCompanyID, started.ID, in)
	require.NoError(t, err)

	assert.Equal(t, domainaudit.StatusCritical, resp.Items[0].Status)
	assert.Equal(t, domainaudit.StatusMatched, resp.Items[1].Status)
	assert.Equal(t, domainaudit.StatusVariance, resp.Items[2].Status)
	assert.Equal(t, domainaudit.StatusPending, resp.Items[3].Status)
}

func TestSaveDraft_IgnoraProductosFueraDelSnapshot(t *testing.T) {
	uc, _ := newTestUseCase(6)
	started, err := uc.StartAudit(context.Background(), testCompanyID, testUserID)
	require.NoError(t, err)

	in := dto.SaveAuditRequest{Counts: []dto.AuditCountEntry{
		{ProductID: "prod-inexistente", PhysicalCount: 99},
	}}
	resp, err := uc.SaveDraft(context.Background(), testCompanyID, started.ID, in)

	require.NoError(t, err)
	assert.Zero(t, resp.CountedItems,
		"un producto fuera del snapshot no debe agregarse a la auditoría")
}

func TestSaveDraft_OtraEmpresaEsForbidden(t *testing.T) {
	uc, _ := newTestUseCase(6)
	started, err := uc.StartAudit(context.Background(), testCompanyID, testUserID)
	require.NoError(t, err)

	_, err = uc.SaveDraft(context.Background(), otherCompany, started.ID, dto.SaveAuditRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Complete
// ──────────────────────────────────────────────────────────────────────────────

func TestComplete_ConMinimoDeContados(t *testing.T) {
	uc, _ := newTestUseCase(6)
	started, err := uc.StartAudit(context.Background(), testCompanyID, testUserID)
	require.NoError(t, err)

	resp, err := uc.Complete(context.Background(), testCompanyID, started.ID, countsFor(started, 5, 48))

	require.NoError(t, err)
	assert.Equal(t, entity.AuditStatusCompleted, resp.Status)
	require.NotNil(t, resp.CompletedAt)
	assert.Equal(t, -10, resp.TotalVariance, "cinco productos con faltante de 2")
	assert.True(t, resp.EstimatedImpact.Equal(decimal.NewFromInt(50000)),
		"|varianza| 10 × valor unitario 5000, fue %s", resp.EstimatedImpact)
}

func TestComplete_MenosDelMinimoNoPersisteNada(t *testing.T) {
	uc, store := newTestUseCase(6)
	started, err := uc.StartAudit(context.Background(), testCompanyID, testUserID)
	require.NoError(t, err)

	_, err = uc.Complete(context.Background(), testCompanyID, started.ID, countsFor(started, 4, 48))
	assert.ErrorIs(t, err, domain.ErrAuditTooSmall)

	// El borrador queda intacto: sigue draft y sin conteos guardados.
	saved, err := store.GetByID(started.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AuditStatusDraft, saved.Status,
		"un completar rechazado no debe cerrar el borrador")
	assert.Zero(t, saved.TotalVariance)

	items, err := store.GetItemsByAuditID(started.ID)
	require.NoError(t, err)
	for _, it := range items {
		assert.Nil(t, it.PhysicalCount, "los conteos del intento rechazado no deben guardarse")
	}
}

func TestComplete_SumaConteosPreviosDelBorrador(t *testing.T) {
	uc, _ := newTestUseCase(6)
	started, err := uc.StartAudit(context.Background(), testCompanyID, testUserID)
	require.NoError(t, err)

	// Tres contados en el borrador, dos más al completar: 5 en total.
	_, err = uc.SaveDraft(context.Background(), testCompanyID, started.ID, countsFor(started, 3, 50))
	require.NoError(t, err)

	in := dto.SaveAuditRequest{Counts: []dto.AuditCountEntry{
		{ProductID: started.Items[3].ProductID, PhysicalCount: 50},
		{ProductID: started.Items[4].ProductID, PhysicalCount: 50},
	}}
	resp, err := uc.Complete(context.Background(), testCompanyID, started.ID, in)

	require.NoError(t, err)
	assert.Equal(t, 5, resp.CountedItems,
		"los conteos del borrador cuentan para el mínimo al completar")
}

func TestComplete_AuditoriaCompletadaNoSeReabre(t *testing.T) {
	uc, _ := newTestUseCase(6)
	started, err := uc.StartAudit(context.Background(), testCompanyID, testUserID)
	require.NoError(t, err)

	_, err = uc.Complete(context.Background(), testCompanyID, started.ID, countsFor(started, 5, 50))
	require.NoError(t, err)

	_, err = uc.SaveDraft(context.Background(), testCompanyID, started.ID, countsFor(started, 1, 10))
	assert.ErrorIs(t, err, domain.ErrAuditCompleted)

	_, err = uc.Complete(context.Background(), testCompanyID, started.ID, countsFor(started, 5, 10))
	assert.ErrorIs(t, err, domain.ErrAuditCompleted)
}

func TestGetAudit_Inexistente(t *testing.T) {
	uc, _ := newTestUseCase(0)
	_, err := uc.GetAudit(context.Background(), testCompanyID, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
