package audit

import "github.com/shopspring/decimal"

// Estados de un ítem auditado.
const (
	StatusPending  = "pending"  // sin conteo físico ingresado
	StatusMatched  = "matched"  // varianza == 0
	StatusCritical = "critical" // |varianza| >= umbral crítico
	StatusVariance = "variance" // cualquier otra diferencia
)

// Variance calcula la varianza de un ítem: conteo físico − cantidad en sistema.
func Variance(physicalCount, systemQuantity int) int {
	return physicalCount - systemQuantity
}

// Classify determina el estado de un ítem auditado.
// physicalCount nil significa que aún no se ingresó conteo (pending).
func Classify(physicalCount *int, systemQuantity, criticalThreshold int) (variance int, status string) {
	if physicalCount == nil {
		return 0, StatusPending
	}
	variance = Variance(*physicalCount, systemQuantity)
	switch {
	case variance == 0:
		return variance, StatusMatched
	case abs(variance) >= criticalThreshold:
		return variance, StatusCritical
	default:
		return variance, StatusVariance
	}
}

// EstimatedImpact estima el impacto monetario de la varianza total con un valor
// unitario fijo. Es una heurística de referencia, no una valoración real.
func EstimatedImpact(totalVariance int, unitValue decimal.Decimal) decimal.Decimal {
	v := totalVariance
	if v < 0 {
		v = -v
	}
	return decimal.NewFromInt(int64(v)).Mul(unitValue)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
