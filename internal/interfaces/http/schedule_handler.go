package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/railparts-api/internal/application/dto"
	"github.com/tu-usuario/railparts-api/internal/application/usecase"
)

// ScheduleHandler maneja las peticiones HTTP de la agenda (protegido).
type ScheduleHandler struct {
	uc *usecase.ScheduleUseCase
}

// NewScheduleHandler construye el handler.
func NewScheduleHandler(uc *usecase.ScheduleUseCase) *ScheduleHandler {
	return &ScheduleHandler{uc: uc}
}

// Create godoc
// @Summary      Crear evento de agenda
// @Tags         schedules
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateScheduleRequest  true  "title, starts_at, ends_at, shared"
// @Success      201   {object}  dto.ScheduleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/schedules [post]
func (h *ScheduleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateScheduleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return errorJSON(c, err)
	}
	resp, err := h.uc.Create(GetActor(c), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Update godoc
// @Summary      Actualizar evento (dueño o supervisor/admin)
// @Tags         schedules
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del evento"
// @Param        body  body  dto.UpdateScheduleRequest  true  "campos a modificar"
// @Success      200   {object}  dto.ScheduleResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/schedules/{id} [put]
func (h *ScheduleHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateScheduleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return errorJSON(c, err)
	}
	resp, err := h.uc.Update(GetActor(c), c.Params("id"), in)
	if err != nil {
		return errorJSON(c, err)
	}
	if resp == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "evento no encontrado"})
	}
	return c.JSON(resp)
}

// Delete godoc
// @Summary      Eliminar evento (dueño o supervisor/admin)
// @Tags         schedules
// @Security     Bearer
// @Param        id  path  string  true  "ID del evento"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/schedules/{id} [delete]
func (h *ScheduleHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetActor(c), c.Params("id")); err != nil {
		return errorJSON(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListVisible godoc
// @Summary      Listar eventos visibles en una ventana
// @Description  Devuelve los eventos propios más los compartidos que intersecan
//               la ventana [from, to).
// @Tags         schedules
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  true  "inicio de ventana (RFC3339)"
// @Param        to    query  string  true  "fin de ventana (RFC3339)"
// @Success      200  {array}  dto.ScheduleResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/schedules [get]
func (h *ScheduleHandler) ListVisible(c *fiber.Ctx) error {
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "from requerido (RFC3339)"})
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "to requerido (RFC3339)"})
	}
	events, err := h.uc.ListVisible(GetActor(c), from, to)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{"events": events})
}
