package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Farmacia-api/internal/application/audit"
	"github.com/jhoicas/Farmacia-api/internal/application/dto"
)

// AuditHandler maneja auditorías de stock (protegido).
type AuditHandler struct {
	uc *audit.StockAuditUseCase
}

// NewAuditHandler construye el handler.
func NewAuditHandler(uc *audit.StockAuditUseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// Start godoc
// @Summary      Iniciar auditoría
// @Description  Crea un borrador con el snapshot de todos los productos en estado pending.
// @Tags         audits
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  dto.StockAuditResponse
// @Router       /api/audits [post]
func (h *AuditHandler) Start(c *fiber.Ctx) error {
	out, err := h.uc.StartAudit(c.Context(), GetCompanyID(c), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// SaveDraft godoc
// @Summary      Guardar conteos en borrador
// @Tags         audits
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la auditoría"
// @Param        body  body  dto.SaveAuditRequest  true  "Conteos físicos"
// @Success      200   {object}  dto.StockAuditResponse
// @Failure      409   {object}  dto.ErrorResponse  "auditoría ya completada"
// @Router       /api/audits/{id} [put]
func (h *AuditHandler) SaveDraft(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.SaveAuditRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.SaveDraft(c.Context(), GetCompanyID(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Complete godoc
// @Summary      Completar auditoría
// @Description  Requiere un mínimo de ítems contados; no modifica existencias de productos.
// @Tags         audits
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la auditoría"
// @Param        body  body  dto.SaveAuditRequest  true  "Conteos finales"
// @Success      200   {object}  dto.StockAuditResponse
// @Failure      422   {object}  dto.ErrorResponse  "menos ítems contados que el mínimo"
// @Router       /api/audits/{id}/complete [post]
func (h *AuditHandler) Complete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.SaveAuditRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Complete(c.Context(), GetCompanyID(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener auditoría por ID
// @Tags         audits
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la auditoría"
// @Success      200  {object}  dto.StockAuditResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/audits/{id} [get]
func (h *AuditHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetAudit(c.Context(), GetCompanyID(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar auditorías
// @Tags         audits
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.StockAuditListResponse
// @Router       /api/audits [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListAudits(c.Context(), GetCompanyID(c), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ExportCSV godoc
// @Summary      Exportar auditoría a CSV
// @Tags         audits
// @Security     Bearer
// @Produce      text/csv
// @Param        id  path  string  true  "ID de la auditoría"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/audits/{id}/export [get]
func (h *AuditHandler) ExportCSV(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	data, filename, err := h.uc.ExportCSV(c.Context(), GetCompanyID(c), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
