package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrCategoryInUse      = errors.New("la categoría tiene productos asociados")
	ErrAuditTooSmall      = errors.New("la auditoría requiere más productos contados")
	ErrAuditCompleted     = errors.New("la auditoría ya fue completada")
	ErrSaleRefunded       = errors.New("la venta ya fue reembolsada")
)
