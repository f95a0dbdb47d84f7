package http

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/application/inventory"
)

// PurchaseHandler maneja recepciones de stock, import CSV y sugerencias de
// reposición (protegido).
type PurchaseHandler struct {
	uc *inventory.ReceiveStockUseCase
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *inventory.ReceiveStockUseCase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc}
}

// Receive godoc
// @Summary      Registrar recepción de stock
// @Description  Suma existencias y recalcula el costo promedio ponderado en una sola transacción.
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiveStockRequest  true  "Líneas de recepción"
// @Success      201   {object}  dto.PurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *PurchaseHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceiveStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "la recepción requiere al menos una línea"})
	}
	out, err := h.uc.ReceiveStock(c.Context(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ImportCSV godoc
// @Summary      Importar recepción desde CSV
// @Description  Archivo multipart "file" con cabecera Product_Name,Category,Volume,Retail_Price,Cost_Price,Quantity_Received,Batch_Number,Expiry_Date,Manufacturer,Notes.
// @Tags         purchases
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Archivo CSV"
// @Success      200   {object}  dto.CSVImportResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/purchases/import [post]
func (h *PurchaseHandler) ImportCSV(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "archivo CSV requerido en el campo file"})
	}
	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo abrir el archivo"})
	}
	defer f.Close()

	out, err := h.uc.ImportCSV(c.Context(), GetCompanyID(c), GetUserID(c), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ImportCSVRaw acepta el CSV directo en el cuerpo (text/csv), para clientes
// que no envían multipart.
func (h *PurchaseHandler) ImportCSVRaw(c *fiber.Ctx) error {
	body := c.Body()
	if len(body) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "cuerpo CSV vacío"})
	}
	out, err := h.uc.ImportCSV(c.Context(), GetCompanyID(c), GetUserID(c), bytes.NewReader(body))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener recepción por ID
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la recepción"
// @Success      200  {object}  dto.PurchaseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [get]
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetPurchase(c.Context(), GetCompanyID(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar recepciones
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.PurchaseListResponse
// @Router       /api/purchases [get]
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListPurchases(c.Context(), GetCompanyID(c), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ReorderSuggestions godoc
// @Summary      Sugerencias de reposición
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ReorderSuggestionDTO
// @Router       /api/purchases/reorder-suggestions [get]
func (h *PurchaseHandler) ReorderSuggestions(c *fiber.Ctx) error {
	out, err := h.uc.ReorderSuggestions(c.Context(), GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
