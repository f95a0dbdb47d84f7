package notification_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacia-api/internal/application/notification"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/pkg/config"
	"github.com/jhoicas/Farmacia-api/pkg/logger"
)

const testCompanyID = "00000000-0000-0000-0000-0000000000aa"

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeNotifRepo struct {
	created []*entity.Notification
}

func (r *fakeNotifRepo) Create(n *entity.Notification) error {
	r.created = append(r.created, n)
	return nil
}

func (r *fakeNotifRepo) ListByCompany(string, bool, int, int) ([]*entity.Notification, error) {
	return r.created, nil
}
func (r *fakeNotifRepo) CountUnread(string) (int, error) { return len(r.created), nil }
func (r *fakeNotifRepo) MarkRead(string) error           { return nil }
func (r *fakeNotifRepo) MarkAllRead(string) error        { return nil }

func (r *fakeNotifRepo) ofType(notifType string) []*entity.Notification {
	var out []*entity.Notification
	for _, n := range r.created {
		if n.Type == notifType {
			out = append(out, n)
		}
	}
	return out
}

// fakeProductRepo sirve un inventario fijo; los métodos de escritura no se usan
// desde el motor.
type fakeProductRepo struct {
	products []*entity.Product
	expiring []*entity.Product
	expired  []*entity.Product

	belowMinErr error
}

func (r *fakeProductRepo) ListAllByCompany(string) ([]*entity.Product, error) {
	return r.products, nil
}

func (r *fakeProductRepo) ListExpiring(string, time.Time, time.Time) ([]*entity.Product, error) {
	return r.expiring, nil
}

func (r *fakeProductRepo) ListExpired(string, time.Time) ([]*entity.Product, error) {
	return r.expired, nil
}

func (r *fakeProductRepo) ListBelowMinStock(string) ([]*entity.Product, error) {
	if r.belowMinErr != nil {
		return nil, r.belowMinErr
	}
	var out []*entity.Product
	for _, p := range r.products {
		if p.Quantity <= p.MinStockLevel {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Create(*entity.Product) error                     { return nil }
func (r *fakeProductRepo) GetByID(string) (*entity.Product, error)          { return nil, nil }
func (r *fakeProductRepo) GetByCompanyAndSKU(string, string) (*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) GetByCompanyAndName(string, string) (*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) GetForUpdate(string) (*entity.Product, error)        { return nil, nil }
func (r *fakeProductRepo) Update(*entity.Product) error                        { return nil }
func (r *fakeProductRepo) UpdateQuantity(string, int) error                    { return nil }
func (r *fakeProductRepo) UpdateCost(string, decimal.Decimal) error            { return nil }
func (r *fakeProductRepo) UpdateBatchInfo(string, string, *time.Time) error    { return nil }
func (r *fakeProductRepo) ListByCompany(string, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) CountByCategory(string) (int, error) { return 0, nil }
func (r *fakeProductRepo) Delete(string) error                 { return nil }

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "development", Level: "error"})
}

func testNotifConfig() config.NotifConfig {
	return config.NotifConfig{
		DedupMinutes:       60,
		HighValueThreshold: 10000,
		ExpiryWindowDays:   30,
		ExpiryUrgentDays:   7,
	}
}

func newTestEngine(products *fakeProductRepo) (*notification.Engine, *fakeNotifRepo) {
	notifRepo := &fakeNotifRepo{}
	engine := notification.NewEngine(notifRepo, products, testNotifConfig(), testLogger())
	return engine, notifRepo
}

func product(id, name string, quantity, minStock int) *entity.Product {
	return &entity.Product{
		ID:            id,
		CompanyID:     testCompanyID,
		Name:          name,
		Quantity:      quantity,
		MinStockLevel: minStock,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// CheckLowStock
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckLowStock_ClasificaAgotadoYBajo(t *testing.T) {
	repo := &fakeProductRepo{products: []*entity.Product{
		product("prod-1", "Panadol 500mg", 5, 10),  // bajo
		product("prod-2", "Ibuprofeno", 0, 10),     // agotado
		product("prod-3", "Vitamina C", 100, 10),   // sano
	}}
	engine, notifRepo := newTestEngine(repo)

	result := engine.CheckLowStock(testCompanyID)

	require.NoError(t, result.Err)
	assert.Equal(t, 2, result.Created, "solo el bajo y el agotado generan alertas")

	low := notifRepo.ofType(entity.NotifLowStock)
	require.Len(t, low, 1)
	assert.Equal(t, entity.PriorityHigh, low[0].Priority)
	assert.Contains(t, low[0].Message, "Panadol 500mg")

	out := notifRepo.ofType(entity.NotifOutOfStock)
	require.Len(t, out, 1)
	assert.Equal(t, entity.PriorityUrgent, out[0].Priority,
		"un producto agotado es urgente")
}

func TestCheckLowStock_AgotadoNuncaGeneraLowStock(t *testing.T) {
	repo := &fakeProductRepo{products: []*entity.Product{
		product("prod-1", "Ibuprofeno", 0, 10),
	}}
	engine, notifRepo := newTestEngine(repo)

	result := engine.CheckLowStock(testCompanyID)

	require.NoError(t, result.Err)
	assert.Empty(t, notifRepo.ofType(entity.NotifLowStock),
		"cantidad cero es OUT_OF_STOCK, no LOW_STOCK")
	assert.Len(t, notifRepo.ofType(entity.NotifOutOfStock), 1)
}

func TestCheckLowStock_DataIncluyeCantidadYMinimo(t *testing.T) {
	repo := &fakeProductRepo{products: []*entity.Product{
		product("prod-1", "Panadol 500mg", 5, 10),
	}}
	engine, notifRepo := newTestEngine(repo)

	result := engine.CheckLowStock(testCompanyID)
	require.NoError(t, result.Err)

	low := notifRepo.ofType(entity.NotifLowStock)
	require.Len(t, low, 1)

	var data map[string]int
	require.NoError(t, json.Unmarshal(low[0].Data, &data))
	assert.Equal(t, 5, data["quantity"])
	assert.Equal(t, 10, data["minStock"])
}

func TestCheckLowStock_EnElMinimoExactoEsBajo(t *testing.T) {
	repo := &fakeProductRepo{products: []*entity.Product{
		product("prod-1", "Panadol 500mg", 10, 10),
	}}
	engine, notifRepo := newTestEngine(repo)

	result := engine.CheckLowStock(testCompanyID)

	require.NoError(t, result.Err)
	assert.Len(t, notifRepo.ofType(entity.NotifLowStock), 1,
		"cantidad igual al mínimo ya es stock bajo")
}

func TestCheckLowStock_SegundaCorridaNoDuplica(t *testing.T) {
	repo := &fakeProductRepo{products: []*entity.Product{
		product("prod-1", "Panadol 500mg", 5, 10),
		product("prod-2", "Ibuprofeno", 0, 10),
	}}
	engine, notifRepo := newTestEngine(repo)

	first := engine.CheckLowStock(testCompanyID)
	second := engine.CheckLowStock(testCompanyID)

	require.NoError(t, first.Err)
	require.NoError(t, second.Err)
	assert.Equal(t, 2, first.Created)
	assert.Equal(t, 0, second.Created,
		"dentro de la ventana de supresión no se vuelven a emitir las mismas alertas")
	assert.Len(t, notifRepo.created, 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// CheckExpiry
// ──────────────────────────────────────────────────────────────────────────────

func expiringProduct(id, name string, daysFromNow int) *entity.Product {
	p := product(id, name, 20, 5)
	exp := time.Now().AddDate(0, 0, daysFromNow)
	p.ExpiryDate = &exp
	return p
}

func TestCheckExpiry_VencidoEsUrgente(t *testing.T) {
	repo := &fakeProductRepo{expired: []*entity.Product{
		expiringProduct("prod-1", "Amoxicilina", -3),
	}}
	engine, notifRepo := newTestEngine(repo)

	result := engine.CheckExpiry(testCompanyID)

	require.NoError(t, result.Err)
	got := notifRepo.ofType(entity.NotifExpired)
	require.Len(t, got, 1)
	assert.Equal(t, entity.PriorityUrgent, got[0].Priority)
}

func TestCheckExpiry_PorVencerEscalaPorDiasRestantes(t *testing.T) {
	repo := &fakeProductRepo{expiring: []*entity.Product{
		expiringProduct("prod-1", "Insulina", 5),   // dentro del umbral urgente
		expiringProduct("prod-2", "Jarabe", 20),    // lejos todavía
	}}
	engine, notifRepo := newTestEngine(repo)

	result := engine.CheckExpiry(testCompanyID)

	require.NoError(t, result.Err)
	got := notifRepo.ofType(entity.NotifExpiringSoon)
	require.Len(t, got, 2)

	byPriority := map[string]int{}
	for _, n := range got {
		byPriority[n.Priority]++
	}
	assert.Equal(t, 1, byPriority[entity.PriorityHigh],
		"vencer en pocos días escala la prioridad")
	assert.Equal(t, 1, byPriority[entity.PriorityMedium])
}

// ──────────────────────────────────────────────────────────────────────────────
// CheckReorder
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckReorder_EmiteUnaAlertaAgregada(t *testing.T) {
	repo := &fakeProductRepo{products: []*entity.Product{
		product("prod-1", "Panadol 500mg", 2, 10),
		product("prod-2", "Ibuprofeno", 0, 10),
		product("prod-3", "Vitamina C", 100, 10),
	}}
	engine, notifRepo := newTestEngine(repo)

	result := engine.CheckReorder(testCompanyID)

	require.NoError(t, result.Err)
	assert.Equal(t, 1, result.Created,
		"la reposición es una sola alerta agregada, no una por producto")

	got := notifRepo.ofType(entity.NotifReorderNeeded)
	require.Len(t, got, 1)

	var data map[string]int
	require.NoError(t, json.Unmarshal(got[0].Data, &data))
	assert.Equal(t, 2, data["count"])
}

func TestCheckReorder_SinProductosBajosNoEmite(t *testing.T) {
	repo := &fakeProductRepo{products: []*entity.Product{
		product("prod-1", "Vitamina C", 100, 10),
	}}
	engine, notifRepo := newTestEngine(repo)

	result := engine.CheckReorder(testCompanyID)

	require.NoError(t, result.Err)
	assert.Zero(t, result.Created)
	assert.Empty(t, notifRepo.created)
}

// ──────────────────────────────────────────────────────────────────────────────
// Eventos de venta y cliente
// ──────────────────────────────────────────────────────────────────────────────

func testSale(total int64) *entity.Sale {
	return &entity.Sale{
		ID:          "11111111-2222-3333-4444-555555555555",
		CompanyID:   testCompanyID,
		TotalAmount: decimal.NewFromInt(total),
		Status:      entity.SaleStatusCompleted,
	}
}

func TestNotifySaleCompleted_VentaNormalEmiteUna(t *testing.T) {
	engine, notifRepo := newTestEngine(&fakeProductRepo{})

	err := engine.NotifySaleCompleted(testCompanyID, testSale(4500), []*entity.SaleItem{
		{ProductID: "prod-1", Quantity: 3},
	})

	require.NoError(t, err)
	assert.Len(t, notifRepo.ofType(entity.NotifSaleCompleted), 1)
	assert.Empty(t, notifRepo.ofType(entity.NotifHighValueSale),
		"una venta bajo el umbral no es de alto valor")
}

func TestNotifySaleCompleted_AltoValorEmiteDos(t *testing.T) {
	engine, notifRepo := newTestEngine(&fakeProductRepo{})

	err := engine.NotifySaleCompleted(testCompanyID, testSale(15000), []*entity.SaleItem{
		{ProductID: "prod-1", Quantity: 1},
	})

	require.NoError(t, err)
	assert.Len(t, notifRepo.ofType(entity.NotifSaleCompleted), 1)

	high := notifRepo.ofType(entity.NotifHighValueSale)
	require.Len(t, high, 1)
	assert.Equal(t, entity.PriorityHigh, high[0].Priority)
}

func TestNotifySaleCompleted_ExactamenteEnElUmbralNoEsAltoValor(t *testing.T) {
	engine, notifRepo := newTestEngine(&fakeProductRepo{})

	err := engine.NotifySaleCompleted(testCompanyID, testSale(10000), nil)

	require.NoError(t, err)
	assert.Empty(t, notifRepo.ofType(entity.NotifHighValueSale),
		"el umbral es estrictamente mayor")
}

func TestNotifyNewCustomer_Emite(t *testing.T) {
	engine, notifRepo := newTestEngine(&fakeProductRepo{})

	err := engine.NotifyNewCustomer(testCompanyID, &entity.Customer{
		ID:   "cust-1",
		Name: "María Pérez",
	})

	require.NoError(t, err)
	got := notifRepo.ofType(entity.NotifNewCustomer)
	require.Len(t, got, 1)
	assert.Contains(t, got[0].Message, "María Pérez")
}

// ──────────────────────────────────────────────────────────────────────────────
// RunComprehensiveCheck
// ──────────────────────────────────────────────────────────────────────────────

func TestRunComprehensiveCheck_AgregaCreadasYFallidas(t *testing.T) {
	repo := &fakeProductRepo{
		products: []*entity.Product{
			product("prod-1", "Panadol 500mg", 5, 10),
		},
		belowMinErr: errors.New("conexión perdida"),
	}
	engine, _ := newTestEngine(repo)

	created, failed := engine.RunComprehensiveCheck(context.Background(), testCompanyID)

	assert.Equal(t, 1, created, "el chequeo de stock bajo sí corrió")
	assert.Equal(t, 1, failed, "el chequeo de reposición reporta su fallo sin tumbar al resto")
}

func TestRunComprehensiveCheck_TodoSanoSinFallos(t *testing.T) {
	repo := &fakeProductRepo{products: []*entity.Product{
		product("prod-1", "Vitamina C", 100, 10),
	}}
	engine, _ := newTestEngine(repo)

	created, failed := engine.RunComprehensiveCheck(context.Background(), testCompanyID)

	assert.Zero(t, created)
	assert.Zero(t, failed)
}
