package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Farmacia-api/internal/domain/inventory"
)

func TestCostCalculator_PromedioPonderado(t *testing.T) {
	// 100 unidades a 2000 + 50 unidades a 2600 → (200000 + 130000) / 150 = 2200
	got := inventory.CostCalculator(
		decimal.NewFromInt(100), decimal.NewFromInt(2000),
		decimal.NewFromInt(50), decimal.NewFromInt(2600),
	)

	assert.True(t, got.Equal(decimal.NewFromInt(2200)),
		"el costo promedio ponderado debe ser 2200, fue %s", got)
}

func TestCostCalculator_SinStockPrevioTomaCostoDeEntrada(t *testing.T) {
	got := inventory.CostCalculator(
		decimal.Zero, decimal.Zero,
		decimal.NewFromInt(30), decimal.NewFromInt(1500),
	)

	assert.True(t, got.Equal(decimal.NewFromInt(1500)),
		"con stock cero el nuevo costo es el costo de la entrada")
}

func TestCostCalculator_EntradaCeroConservaCosto(t *testing.T) {
	got := inventory.CostCalculator(
		decimal.NewFromInt(80), decimal.NewFromInt(900),
		decimal.Zero, decimal.Zero,
	)

	assert.True(t, got.Equal(decimal.NewFromInt(900)),
		"una entrada de cero unidades no debe mover el costo")
}

func TestCostCalculator_TotalCeroRetornaCero(t *testing.T) {
	got := inventory.CostCalculator(decimal.Zero, decimal.NewFromInt(500), decimal.Zero, decimal.Zero)
	assert.True(t, got.IsZero(), "sin unidades en juego el costo es cero, no una división por cero")
}

func TestCostCalculator_ConservaDecimales(t *testing.T) {
	// 10 a 1000 + 10 a 1001 → 1000.5
	got := inventory.CostCalculator(
		decimal.NewFromInt(10), decimal.NewFromInt(1000),
		decimal.NewFromInt(10), decimal.NewFromInt(1001),
	)

	assert.True(t, got.Equal(decimal.NewFromFloat(1000.5)),
		"el promedio debe conservar la fracción, fue %s", got)
}
