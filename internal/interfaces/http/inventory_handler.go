package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-stock/internal/application/dto"
	"github.com/jhoicas/inventario-stock/internal/application/inventory"
	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/pkg/logger"
)

// InventoryHandler maneja las peticiones HTTP de movimientos de stock.
type InventoryHandler struct {
	uc  *inventory.RecordMovementUseCase
	log *logger.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.RecordMovementUseCase, log *logger.Logger) *InventoryHandler {
	return &InventoryHandler{uc: uc, log: log}
}

// RecordMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  Inserta una entrada en el libro de movimientos y actualiza el stock del producto en una sola transacción.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del producto"
// @Param        body  body  dto.RecordMovementRequest true  "movement_type (IN/OUT), quantity > 0, notes opcional"
// @Success      200   {object}  dto.ProductDataResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/stock [post]
func (h *InventoryHandler) RecordMovement(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("MISSING_ID", "id es requerido"))
	}
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("INVALID_BODY", "cuerpo inválido"))
	}
	out, err := h.uc.RecordMovement(c.Context(), inventory.MovementInput{
		ProductID: id,
		Type:      in.MovementType,
		Quantity:  in.Quantity,
		Notes:     in.Notes,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("VALIDATION", "campos requeridos: movement_type (IN/OUT), quantity > 0"))
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.NewError("NOT_FOUND", "producto no encontrado"))
		}
		if errors.Is(err, domain.ErrInsufficientStock) {
			return c.Status(fiber.StatusConflict).JSON(dto.NewError("INSUFFICIENT_STOCK", "stock insuficiente"))
		}
		// Falla de infraestructura: detalle al log, mensaje genérico al caller.
		h.log.Error().Err(err).Str("product_id", id).Msg("registrar movimiento")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.NewError("INTERNAL", "error del servidor"))
	}
	return c.JSON(dto.ProductDataResponse{
		Success: true,
		Message: "stock actualizado",
		Data:    *out,
	})
}

// ListMovements godoc
// @Summary      Historial de movimientos de un producto
// @Tags         inventory
// @Produce      json
// @Param        id      path   string  true   "ID del producto"
// @Param        limit   query  int     false  "Límite"  default(50)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.MovementListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("MISSING_ID", "id es requerido"))
	}
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}
	out, err := h.uc.ListMovements(id, limit, offset)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.NewError("NOT_FOUND", "producto no encontrado"))
		}
		h.log.Error().Err(err).Str("product_id", id).Msg("listar movimientos")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.NewError("INTERNAL", "error del servidor"))
	}
	return c.JSON(out)
}
