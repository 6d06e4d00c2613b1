package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/railparts-api/internal/application/dto"
	"github.com/tu-usuario/railparts-api/internal/application/usecase"
)

// TripHandler maneja las peticiones HTTP de comisiones de servicio (protegido).
type TripHandler struct {
	uc *usecase.TripUseCase
}

// NewTripHandler construye el handler.
func NewTripHandler(uc *usecase.TripUseCase) *TripHandler {
	return &TripHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar comisión de servicio (nace en borrador)
// @Tags         trips
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTripRequest  true  "destination, purpose, start_date, end_date"
// @Success      201   {object}  dto.TripResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/trips [post]
func (h *TripHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTripRequest
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
// @Summary      Actualizar comisión (dueño edita/envía, supervisor aprueba)
// @Tags         trips
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la comisión"
// @Param        body  body  dto.UpdateTripRequest  true  "campos a modificar"
// @Success      200   {object}  dto.TripResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/trips/{id} [put]
func (h *TripHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTripRequest
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
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "comisión no encontrada"})
	}
	return c.JSON(resp)
}

// GetByID godoc
// @Summary      Obtener comisión de servicio
// @Tags         trips
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la comisión"
// @Success      200  {object}  dto.TripResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/trips/{id} [get]
func (h *TripHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	if resp == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "comisión no encontrada"})
	}
	return c.JSON(resp)
}

// List godoc
// @Summary      Listar comisiones de servicio
// @Tags         trips
// @Security     Bearer
// @Produce      json
// @Param        user_id  query  string  false  "filtrar por usuario"
// @Param        status   query  string  false  "draft, submitted o approved"
// @Success      200  {array}  dto.TripResponse
// @Router       /api/trips [get]
func (h *TripHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	trips, err := h.uc.List(c.Query("user_id"), c.Query("status"), page)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{"trips": trips})
}
