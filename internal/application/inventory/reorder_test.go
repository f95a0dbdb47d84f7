package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/pkg/logger"

	"github.com/jhoicas/Farmacia-api/internal/application/inventory"
)

// reorderStore sirve los productos bajo mínimo directo desde su lista.
type reorderStore struct {
	fakeInventoryStore
	belowMin []*entity.Product
}

func (s *reorderStore) ListBelowMinStock(string) ([]*entity.Product, error) {
	return s.belowMin, nil
}

func newReorderUseCase(store *reorderStore) *inventory.ReceiveStockUseCase {
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	return inventory.NewReceiveStockUseCase(store, store,
		purchaseRepoView{store: &store.fakeInventoryStore},
		categoryRepoView{store: &store.fakeInventoryStore}, log)
}

func lowProduct(id, name string, quantity, minStock int, cost int64) *entity.Product {
	return &entity.Product{
		ID:            id,
		CompanyID:     testCompanyID,
		Name:          name,
		Quantity:      quantity,
		MinStockLevel: minStock,
		CostPrice:     decimal.NewFromInt(cost),
	}
}

func TestReorderSuggestions_CantidadYCosto(t *testing.T) {
	store := &reorderStore{belowMin: []*entity.Product{
		lowProduct("prod-1", "Panadol 500mg", 4, 10, 2800),
	}}
	uc := newReorderUseCase(store)

	got, err := uc.ReorderSuggestions(context.Background(), testCompanyID)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 16, got[0].SuggestedOrderQty, "reponer hasta el doble del mínimo: 20 − 4")
	assert.True(t, got[0].EstimatedCost.Equal(decimal.NewFromInt(44800)),
		"16 unidades × costo 2800, fue %s", got[0].EstimatedCost)
}

func TestReorderSuggestions_OrdenPorPrioridad(t *testing.T) {
	store := &reorderStore{belowMin: []*entity.Product{
		lowProduct("prod-apenas", "Apenas bajo", 9, 10, 1000),   // prioridad 3
		lowProduct("prod-agotado", "Agotado", 0, 10, 1000),      // prioridad 1
		lowProduct("prod-mitad", "Bajo la mitad", 4, 10, 1000),  // prioridad 2
	}}
	uc := newReorderUseCase(store)

	got, err := uc.ReorderSuggestions(context.Background(), testCompanyID)

	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "prod-agotado", got[0].ProductID, "lo agotado va primero")
	assert.Equal(t, 1, got[0].Priority)
	assert.Equal(t, "prod-mitad", got[1].ProductID)
	assert.Equal(t, 2, got[1].Priority)
	assert.Equal(t, "prod-apenas", got[2].ProductID)
	assert.Equal(t, 3, got[2].Priority)
}

func TestReorderSuggestions_MitadExactaEsPrioridadDos(t *testing.T) {
	store := &reorderStore{belowMin: []*entity.Product{
		lowProduct("prod-1", "Justo la mitad", 5, 10, 1000),
	}}
	uc := newReorderUseCase(store)

	got, err := uc.ReorderSuggestions(context.Background(), testCompanyID)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Priority, "la mitad exacta del mínimo ya es prioridad 2")
}

func TestReorderSuggestions_SinProductosBajos(t *testing.T) {
	uc := newReorderUseCase(&reorderStore{})

	got, err := uc.ReorderSuggestions(context.Background(), testCompanyID)

	require.NoError(t, err)
	assert.Empty(t, got)
}
