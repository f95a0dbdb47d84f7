package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/application/notification"
	"github.com/jhoicas/Farmacia-api/internal/application/usecase"
)

// NotificationHandler panel de notificaciones y chequeo manual (protegido).
type NotificationHandler struct {
	uc     *usecase.NotificationUseCase
	engine *notification.Engine
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(uc *usecase.NotificationUseCase, engine *notification.Engine) *NotificationHandler {
	return &NotificationHandler{uc: uc, engine: engine}
}

// List godoc
// @Summary      Listar notificaciones
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Param        unread  query  bool  false  "Solo no leídas"
// @Param        limit   query  int   false  "Límite"   default(20)
// @Param        offset  query  int   false  "Offset"   default(0)
// @Success      200     {object}  dto.NotificationListResponse
// @Router       /api/notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	onlyUnread := c.QueryBool("unread", false)
	out, err := h.uc.List(GetCompanyID(c), onlyUnread, pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Unread godoc
// @Summary      Contador de no leídas
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]int
// @Router       /api/notifications/unread [get]
func (h *NotificationHandler) Unread(c *fiber.Ctx) error {
	count, err := h.uc.CountUnread(GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"unread": count})
}

// MarkRead godoc
// @Summary      Marcar notificación como leída
// @Tags         notifications
// @Security     Bearer
// @Param        id  path  string  true  "ID de la notificación"
// @Success      204
// @Router       /api/notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.MarkRead(id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MarkAllRead godoc
// @Summary      Marcar todas como leídas
// @Tags         notifications
// @Security     Bearer
// @Success      204
// @Router       /api/notifications/read-all [post]
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	if err := h.uc.MarkAllRead(GetCompanyID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RunCheck godoc
// @Summary      Correr chequeo integral
// @Description  Ejecuta stock bajo, vencimientos y reposición en paralelo y retorna el agregado.
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CheckSummaryResponse
// @Router       /api/notifications/run-check [post]
func (h *NotificationHandler) RunCheck(c *fiber.Ctx) error {
	created, failed := h.engine.RunComprehensiveCheck(c.Context(), GetCompanyID(c))
	return c.JSON(dto.CheckSummaryResponse{Created: created, Failed: failed})
}
