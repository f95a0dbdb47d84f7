package inventory_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/application/inventory"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
	"github.com/jhoicas/Farmacia-api/pkg/logger"
)

const (
	testCompanyID = "00000000-0000-0000-0000-0000000000aa"
	testUserID    = "00000000-0000-0000-0000-0000000000cc"
)

// ──────────────────────────────────────────────────────────────────────────────
// fakeInventoryStore — productos, recepciones y categorías en memoria.
// Satisface los tres repos y el TxRunner del caso de uso.
// ──────────────────────────────────────────────────────────────────────────────

type fakeInventoryStore struct {
	products   []*entity.Product
	categories []*entity.Category
	purchases  []*entity.Purchase
	items      []*entity.PurchaseItem
}

// ── ProductRepository ─────────────────────────────────────────────────────────

func (s *fakeInventoryStore) Create(p *entity.Product) error {
	s.products = append(s.products, p)
	return nil
}

func (s *fakeInventoryStore) GetByID(id string) (*entity.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (s *fakeInventoryStore) GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error) {
	return nil, nil
}

func (s *fakeInventoryStore) GetByCompanyAndName(companyID, name string) (*entity.Product, error) {
	for _, p := range s.products {
		if p.CompanyID == companyID && strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return nil, nil
}

func (s *fakeInventoryStore) GetForUpdate(id string) (*entity.Product, error) {
	return s.GetByID(id)
}

func (s *fakeInventoryStore) Update(*entity.Product) error { return nil }

func (s *fakeInventoryStore) UpdateQuantity(productID string, quantity int) error {
	p, _ := s.GetByID(productID)
	if p != nil {
		p.Quantity = quantity
	}
	return nil
}

func (s *fakeInventoryStore) UpdateCost(productID string, cost decimal.Decimal) error {
	p, _ := s.GetByID(productID)
	if p != nil {
		p.CostPrice = cost
	}
	return nil
}

func (s *fakeInventoryStore) UpdateBatchInfo(productID, batch string, expiry *time.Time) error {
	p, _ := s.GetByID(productID)
	if p != nil {
		p.BatchNumber = batch
		p.ExpiryDate = expiry
	}
	return nil
}

func (s *fakeInventoryStore) ListByCompany(string, int, int) ([]*entity.Product, error) {
	return s.products, nil
}
func (s *fakeInventoryStore) ListAllByCompany(string) ([]*entity.Product, error) {
	return s.products, nil
}
func (s *fakeInventoryStore) ListExpiring(string, time.Time, time.Time) ([]*entity.Product, error) {
	return nil, nil
}
func (s *fakeInventoryStore) ListExpired(string, time.Time) ([]*entity.Product, error) {
	return nil, nil
}
func (s *fakeInventoryStore) ListBelowMinStock(string) ([]*entity.Product, error) { return nil, nil }
func (s *fakeInventoryStore) CountByCategory(string) (int, error)                 { return 0, nil }
func (s *fakeInventoryStore) Delete(string) error                                 { return nil }

// ── PurchaseRepository ────────────────────────────────────────────────────────

func (s *fakeInventoryStore) CreatePurchase(p *entity.Purchase) error {
	s.purchases = append(s.purchases, p)
	return nil
}

func (s *fakeInventoryStore) CreateItem(it *entity.PurchaseItem) error {
	s.items = append(s.items, it)
	return nil
}

func (s *fakeInventoryStore) GetPurchaseByID(id string) (*entity.Purchase, error) {
	for _, p := range s.purchases {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (s *fakeInventoryStore) GetItemsByPurchaseID(purchaseID string) ([]*entity.PurchaseItem, error) {
	var out []*entity.PurchaseItem
	for _, it := range s.items {
		if it.PurchaseID == purchaseID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (s *fakeInventoryStore) ListPurchasesByCompany(string, int, int) ([]*entity.Purchase, error) {
	return s.purchases, nil
}

// purchaseRepoView adapta el store al puerto PurchaseRepository (los nombres de
// método chocan con los de productos).
type purchaseRepoView struct{ store *fakeInventoryStore }

func (v purchaseRepoView) Create(p *entity.Purchase) error         { return v.store.CreatePurchase(p) }
func (v purchaseRepoView) CreateItem(it *entity.PurchaseItem) error { return v.store.CreateItem(it) }
func (v purchaseRepoView) GetByID(id string) (*entity.Purchase, error) {
	return v.store.GetPurchaseByID(id)
}
func (v purchaseRepoView) GetItemsByPurchaseID(id string) ([]*entity.PurchaseItem, error) {
	return v.store.GetItemsByPurchaseID(id)
}
func (v purchaseRepoView) ListByCompany(companyID string, limit, offset int) ([]*entity.Purchase, error) {
	return v.store.ListPurchasesByCompany(companyID, limit, offset)
}

// ── CategoryRepository ────────────────────────────────────────────────────────

type categoryRepoView struct{ store *fakeInventoryStore }

func (v categoryRepoView) Create(c *entity.Category) error {
	v.store.categories = append(v.store.categories, c)
	return nil
}

func (v categoryRepoView) GetByID(string) (*entity.Category, error) { return nil, nil }

func (v categoryRepoView) GetByCompanyAndName(companyID, name string) (*entity.Category, error) {
	for _, c := range v.store.categories {
		if c.CompanyID == companyID && strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return nil, nil
}

func (v categoryRepoView) ListByCompany(string) ([]*entity.Category, error) { return nil, nil }
func (v categoryRepoView) Update(*entity.Category) error                    { return nil }
func (v categoryRepoView) Delete(string) error                              { return nil }

// ── TxRunner ──────────────────────────────────────────────────────────────────

func (s *fakeInventoryStore) RunReceive(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	purchaseRepo repository.PurchaseRepository,
) error) error {
	return fn(s, purchaseRepoView{store: s})
}

// ──────────────────────────────────────────────────────────────────────────────
// Setup
// ──────────────────────────────────────────────────────────────────────────────

func newTestUseCase(store *fakeInventoryStore) *inventory.ReceiveStockUseCase {
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	return inventory.NewReceiveStockUseCase(store, store, purchaseRepoView{store: store}, categoryRepoView{store: store}, log)
}

const csvHeader = "Product_Name,Category,Volume,Retail_Price,Cost_Price,Quantity_Received,Batch_Number,Expiry_Date,Manufacturer,Notes\n"

func importCSV(t *testing.T, store *fakeInventoryStore, body string) *dto.CSVImportResult {
	t.Helper()
	uc := newTestUseCase(store)
	result, err := uc.ImportCSV(context.Background(), testCompanyID, testUserID, strings.NewReader(csvHeader+body))
	require.NoError(t, err)
	return result
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestImportCSV_CreaProductoNuevoYRecibeStock(t *testing.T) {
	store := &fakeInventoryStore{}

	result := importCSV(t, store,
		"Panadol 500mg,Analgésicos,500mg,4500,2800,100,LOT-001,2026-12-31,GSK,primera compra\n")

	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Received)
	assert.Zero(t, result.Skipped)

	require.Len(t, store.products, 1)
	p := store.products[0]
	assert.Equal(t, "Panadol 500mg", p.Name)
	assert.Equal(t, 100, p.Quantity, "el stock recibido debe aplicarse al producto nuevo")
	assert.True(t, p.CostPrice.Equal(decimal.NewFromInt(2800)))
	assert.Equal(t, "LOT-001", p.BatchNumber)
	assert.Equal(t, 10, p.MinStockLevel, "los productos del CSV nacen con el mínimo por defecto")
	assert.NotEmpty(t, p.SKU, "el producto creado recibe un SKU generado")

	require.Len(t, store.categories, 1)
	assert.Equal(t, "Analgésicos", store.categories[0].Name)

	require.Len(t, store.purchases, 1)
	assert.Equal(t, entity.PurchaseSourceCSV, store.purchases[0].Source)
	require.Len(t, store.items, 1)
}

func TestImportCSV_NombreExistenteRecibeSinDuplicar(t *testing.T) {
	store := &fakeInventoryStore{products: []*entity.Product{{
		ID:        "prod-1",
		CompanyID: testCompanyID,
		Name:      "Panadol 500mg",
		Quantity:  40,
		CostPrice: decimal.NewFromInt(2000),
	}}}

	// El match de nombre no distingue mayúsculas.
	result := importCSV(t, store,
		"PANADOL 500MG,Analgésicos,500mg,4500,2600,60,LOT-002,,GSK,\n")

	assert.Zero(t, result.Created, "un nombre existente no debe crear producto")
	assert.Equal(t, 1, result.Received)
	require.Len(t, store.products, 1, "no debe haber duplicados")

	p := store.products[0]
	assert.Equal(t, 100, p.Quantity, "40 existentes + 60 recibidas")
	// (40×2000 + 60×2600) / 100 = 2360: costo promedio ponderado
	assert.True(t, p.CostPrice.Equal(decimal.NewFromInt(2360)),
		"el costo debe recalcularse como promedio ponderado, fue %s", p.CostPrice)

	require.Len(t, result.Rows, 1)
	assert.Equal(t, dto.CSVRowExisting, result.Rows[0].Classification)
}

func TestImportCSV_FilaSinNombreSeExcluye(t *testing.T) {
	store := &fakeInventoryStore{}

	result := importCSV(t, store,
		",Analgésicos,500mg,4500,2800,100,LOT-001,,GSK,\n"+
			"Ibuprofeno,Analgésicos,400mg,3000,1900,50,LOT-002,,Bayer,\n")

	assert.Equal(t, 1, result.Skipped, "la fila sin Product_Name se excluye")
	assert.Equal(t, 1, result.Received, "las demás filas sí se procesan")
	require.Len(t, store.products, 1)
	assert.Equal(t, "Ibuprofeno", store.products[0].Name)
}

func TestImportCSV_CantidadInvalidaSeExcluye(t *testing.T) {
	store := &fakeInventoryStore{}

	result := importCSV(t, store,
		"Panadol 500mg,Analgésicos,500mg,4500,2800,abc,LOT-001,,GSK,\n"+
			"Ibuprofeno,Analgésicos,400mg,3000,1900,0,LOT-002,,Bayer,\n"+
			"Jarabe,Antigripales,120ml,8000,5000,-5,LOT-003,,MK,\n")

	assert.Equal(t, 3, result.Skipped, "cantidad no numérica, cero o negativa se excluye")
	assert.Zero(t, result.Received)
	assert.Empty(t, store.purchases, "sin filas válidas no se crea la recepción")
}

func TestImportCSV_ComasDentroDeComillasFuncionan(t *testing.T) {
	store := &fakeInventoryStore{}

	result := importCSV(t, store,
		`"Suero Oral, sabor fresa",Hidratación,500ml,6000,3500,30,LOT-010,2026-06-30,Pedialyte,"frágil, refrigerar"`+"\n")

	require.Equal(t, 1, result.Received, "campos entrecomillados con comas deben parsearse como una sola celda")
	require.Len(t, store.products, 1)
	assert.Equal(t, "Suero Oral, sabor fresa", store.products[0].Name)
}

func TestImportCSV_FechaEnAmbosFormatos(t *testing.T) {
	store := &fakeInventoryStore{}

	result := importCSV(t, store,
		"Panadol 500mg,Analgésicos,500mg,4500,2800,10,L1,2026-12-31,GSK,\n"+
			"Ibuprofeno,Analgésicos,400mg,3000,1900,10,L2,31/12/2026,Bayer,\n"+
			"Jarabe,Antigripales,120ml,8000,5000,10,L3,31-12-2026,MK,\n")

	assert.Equal(t, 2, result.Received, "ISO y dd/mm/yyyy se aceptan")
	assert.Equal(t, 1, result.Skipped, "otros formatos de fecha se excluyen")

	for _, p := range store.products {
		require.NotNil(t, p.ExpiryDate)
		assert.Equal(t, 2026, p.ExpiryDate.Year())
	}
}

func TestImportCSV_CategoriaVaciaUsaGeneral(t *testing.T) {
	store := &fakeInventoryStore{}

	importCSV(t, store,
		"Panadol 500mg,,500mg,4500,2800,10,L1,,GSK,\n")

	require.Len(t, store.categories, 1)
	assert.Equal(t, "General", store.categories[0].Name)
}

func TestImportCSV_CategoriaSeReutilizaEntreFilas(t *testing.T) {
	store := &fakeInventoryStore{}

	importCSV(t, store,
		"Panadol 500mg,Analgésicos,500mg,4500,2800,10,L1,,GSK,\n"+
			"Ibuprofeno,analgésicos,400mg,3000,1900,10,L2,,Bayer,\n")

	assert.Len(t, store.categories, 1,
		"la categoría se resuelve sin distinguir mayúsculas y no se duplica")
}

func TestImportCSV_CabeceraIncompletaEsError(t *testing.T) {
	store := &fakeInventoryStore{}
	uc := newTestUseCase(store)

	_, err := uc.ImportCSV(context.Background(), testCompanyID, testUserID,
		strings.NewReader("Product_Name,Category\nPanadol,Analgésicos\n"))

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestImportCSV_ArchivoSoloCabecera(t *testing.T) {
	store := &fakeInventoryStore{}

	result := importCSV(t, store, "")

	assert.Zero(t, result.Received)
	assert.Empty(t, result.PurchaseID, "sin filas válidas no hay recepción que reportar")
}
