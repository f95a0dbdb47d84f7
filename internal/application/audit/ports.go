package audit

import (
	"context"

	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción sobre el repo de
// auditorías. Si fn retorna error se hace rollback.
type TxRunner interface {
	RunAudit(ctx context.Context, fn func(
		auditRepo repository.StockAuditRepository,
	) error) error
}
