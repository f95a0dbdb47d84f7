package audit_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Farmacia-api/internal/domain/audit"
)

func intPtr(n int) *int { return &n }

// ──────────────────────────────────────────────────────────────────────────────
// Classify — estados según conteo físico vs cantidad en sistema
// ──────────────────────────────────────────────────────────────────────────────

func TestClassify_SinConteoEsPending(t *testing.T) {
	variance, status := audit.Classify(nil, 50, 10)

	assert.Equal(t, 0, variance, "sin conteo la varianza debe ser cero")
	assert.Equal(t, audit.StatusPending, status)
}

func TestClassify_ConteoIgualEsMatched(t *testing.T) {
	variance, status := audit.Classify(intPtr(50), 50, 10)

	assert.Equal(t, 0, variance)
	assert.Equal(t, audit.StatusMatched, status)
}

func TestClassify_DiferenciaMenorAlUmbralEsVariance(t *testing.T) {
	variance, status := audit.Classify(intPtr(47), 50, 10)

	assert.Equal(t, -3, variance, "la varianza es conteo físico menos sistema")
	assert.Equal(t, audit.StatusVariance, status)
}

func TestClassify_FaltanteGrandeEsCritical(t *testing.T) {
	variance, status := audit.Classify(intPtr(35), 50, 10)

	assert.Equal(t, -15, variance)
	assert.Equal(t, audit.StatusCritical, status,
		"|varianza| >= umbral debe clasificar como critical")
}

func TestClassify_SobranteGrandeTambienEsCritical(t *testing.T) {
	variance, status := audit.Classify(intPtr(62), 50, 10)

	assert.Equal(t, 12, variance)
	assert.Equal(t, audit.StatusCritical, status,
		"el umbral crítico aplica al valor absoluto, sobrantes incluidos")
}

func TestClassify_ExactamenteEnElUmbralEsCritical(t *testing.T) {
	_, status := audit.Classify(intPtr(40), 50, 10)

	assert.Equal(t, audit.StatusCritical, status,
		"|varianza| == umbral ya cuenta como critical")
}

func TestClassify_ConteoCeroEsValido(t *testing.T) {
	// Contar cero unidades es distinto a no contar: el ítem deja de ser pending.
	variance, status := audit.Classify(intPtr(0), 3, 10)

	assert.Equal(t, -3, variance)
	assert.Equal(t, audit.StatusVariance, status)
}

// ──────────────────────────────────────────────────────────────────────────────
// EstimatedImpact
// ──────────────────────────────────────────────────────────────────────────────

func TestEstimatedImpact_UsaValorAbsoluto(t *testing.T) {
	unitValue := decimal.NewFromInt(5000)

	faltante := audit.EstimatedImpact(-7, unitValue)
	sobrante := audit.EstimatedImpact(7, unitValue)

	assert.True(t, faltante.Equal(decimal.NewFromInt(35000)),
		"impacto de -7 unidades a 5000 debe ser 35000, fue %s", faltante)
	assert.True(t, faltante.Equal(sobrante),
		"faltantes y sobrantes del mismo tamaño tienen el mismo impacto")
}

func TestEstimatedImpact_VarianzaCeroEsCero(t *testing.T) {
	impact := audit.EstimatedImpact(0, decimal.NewFromInt(5000))
	assert.True(t, impact.IsZero())
}
