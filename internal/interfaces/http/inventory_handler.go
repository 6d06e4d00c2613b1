package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/railparts-api/internal/application/dto"
	"github.com/tu-usuario/railparts-api/internal/application/inventory"
)

// InventoryHandler maneja las peticiones HTTP de movimientos de stock (protegido).
type InventoryHandler struct {
	apply     *inventory.ApplyMovementUseCase
	reverse   *inventory.ReverseMovementUseCase
	reconcile *inventory.ReconcileUseCase
	list      *inventory.ListMovementsUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	apply *inventory.ApplyMovementUseCase,
	reverse *inventory.ReverseMovementUseCase,
	reconcile *inventory.ReconcileUseCase,
	list *inventory.ListMovementsUseCase,
) *InventoryHandler {
	return &InventoryHandler{apply: apply, reverse: reverse, reconcile: reconcile, list: list}
}

// ApplyMovement godoc
// @Summary      Aplicar movimiento de stock
// @Description  Registra un movimiento IN/OUT/ADJUSTMENT/DISPOSAL con clave de
//               idempotencia; un reintento con la misma clave devuelve el
//               movimiento original sin aplicarlo dos veces.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ApplyMovementRequest  true  "idempotency_key, item_id, type, quantity"
// @Success      201   {object}  dto.ApplyMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) ApplyMovement(c *fiber.Ctx) error {
	var in dto.ApplyMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return errorJSON(c, err)
	}
	resp, err := h.apply.Apply(c.Context(), inventory.MovementInput{
		IdempotencyKey: in.IdempotencyKey,
		ItemID:         in.ItemID,
		Type:           in.Type,
		Quantity:       in.Quantity,
		UnitPrice:      in.UnitPrice,
		Actor:          GetUserID(c),
		Reason:         in.Reason,
	})
	if err != nil {
		return errorJSON(c, err)
	}
	status := fiber.StatusCreated
	if resp.Duplicate {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(resp)
}

// ListMovements godoc
// @Summary      Listar movimientos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        item_id  query  string  false  "filtrar por artículo"
// @Param        from     query  string  false  "fecha inicial (RFC3339)"
// @Param        to       query  string  false  "fecha final exclusiva (RFC3339)"
// @Param        limit    query  int     false  "tamaño de página"
// @Param        offset   query  int     false  "desplazamiento"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	from, err := parseTimeQuery(c, "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "from inválido (RFC3339)"})
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "to inválido (RFC3339)"})
	}
	resp, err := h.list.List(c.Context(), c.Query("item_id"), from, to, page)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// ReverseMovement godoc
// @Summary      Revertir un movimiento (solo admin)
// @Description  Elimina la fila del historial y deshace su efecto exacto sobre
//               los contadores. Movimientos anteriores al último cierre no son
//               reversibles.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.ApplyMovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{id} [delete]
func (h *InventoryHandler) ReverseMovement(c *fiber.Ctx) error {
	resp, err := h.reverse.Reverse(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// RecheckItem godoc
// @Summary      Verificar consistencia de un artículo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del artículo"
// @Success      200  {object}  dto.RecheckResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/recheck [post]
func (h *InventoryHandler) RecheckItem(c *fiber.Ctx) error {
	resp, err := h.reconcile.RecheckItem(c.Context(), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// RebuildItem godoc
// @Summary      Reconstruir contadores desde el historial
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del artículo"
// @Success      200  {object}  dto.RecheckResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/rebuild [post]
func (h *InventoryHandler) RebuildItem(c *fiber.Ctx) error {
	resp, err := h.reconcile.RebuildFromHistory(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// parseTimeQuery lee un parámetro de query RFC3339 opcional.
func parseTimeQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
