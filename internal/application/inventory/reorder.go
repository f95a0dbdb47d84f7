package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
)

// ReorderSuggestions calcula sugerencias de reposición para los productos en o
// por debajo del stock mínimo. Cantidad sugerida: reponer hasta el doble del
// mínimo. Prioridad: 1 = agotado, 2 = por debajo de la mitad del mínimo,
// 3 = el resto. Se retorna ordenado por prioridad y luego por stock actual.
func (uc *ReceiveStockUseCase) ReorderSuggestions(_ context.Context, companyID string) ([]dto.ReorderSuggestionDTO, error) {
	products, err := uc.productRepo.ListBelowMinStock(companyID)
	if err != nil {
		return nil, err
	}

	suggestions := make([]dto.ReorderSuggestionDTO, 0, len(products))
	for _, p := range products {
		suggested := 2*p.MinStockLevel - p.Quantity
		if suggested <= 0 {
			continue
		}
		priority := 3
		switch {
		case p.Quantity == 0:
			priority = 1
		case p.Quantity*2 <= p.MinStockLevel:
			priority = 2
		}
		suggestions = append(suggestions, dto.ReorderSuggestionDTO{
			ProductID:         p.ID,
			SKU:               p.SKU,
			ProductName:       p.Name,
			CurrentStock:      p.Quantity,
			MinStockLevel:     p.MinStockLevel,
			SuggestedOrderQty: suggested,
			EstimatedCost:     p.CostPrice.Mul(decimal.NewFromInt(int64(suggested))),
			Priority:          priority,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Priority != suggestions[j].Priority {
			return suggestions[i].Priority < suggestions[j].Priority
		}
		return suggestions[i].CurrentStock < suggestions[j].CurrentStock
	})
	return suggestions, nil
}
