package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/railparts-api/internal/application/dto"
	"github.com/tu-usuario/railparts-api/internal/application/usecase"
)

// DiaryHandler maneja las peticiones HTTP de diarios de trabajo (protegido).
type DiaryHandler struct {
	uc *usecase.DiaryUseCase
}

// NewDiaryHandler construye el handler.
func NewDiaryHandler(uc *usecase.DiaryUseCase) *DiaryHandler {
	return &DiaryHandler{uc: uc}
}

// Create godoc
// @Summary      Crear entrada de diario
// @Tags         diaries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDiaryRequest  true  "date, title, content"
// @Success      201   {object}  dto.DiaryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/diaries [post]
func (h *DiaryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDiaryRequest
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
// @Summary      Actualizar entrada de diario (autor o supervisor/admin)
// @Tags         diaries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la entrada"
// @Param        body  body  dto.UpdateDiaryRequest  true  "campos a modificar"
// @Success      200   {object}  dto.DiaryResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/diaries/{id} [put]
func (h *DiaryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateDiaryRequest
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
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "entrada no encontrada"})
	}
	return c.JSON(resp)
}

// Delete godoc
// @Summary      Eliminar entrada de diario (autor o supervisor/admin)
// @Tags         diaries
// @Security     Bearer
// @Param        id  path  string  true  "ID de la entrada"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/diaries/{id} [delete]
func (h *DiaryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetActor(c), c.Params("id")); err != nil {
		return errorJSON(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID godoc
// @Summary      Obtener entrada de diario
// @Tags         diaries
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la entrada"
// @Success      200  {object}  dto.DiaryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/diaries/{id} [get]
func (h *DiaryHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	if resp == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "entrada no encontrada"})
	}
	return c.JSON(resp)
}

// List godoc
// @Summary      Listar entradas de diario
// @Tags         diaries
// @Security     Bearer
// @Produce      json
// @Param        author_id  query  string  false  "filtrar por autor"
// @Param        from       query  string  false  "fecha inicial (RFC3339)"
// @Param        to         query  string  false  "fecha final exclusiva (RFC3339)"
// @Success      200  {array}  dto.DiaryResponse
// @Router       /api/diaries [get]
func (h *DiaryHandler) List(c *fiber.Ctx) error {
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
	diaries, err := h.uc.List(c.Query("author_id"), from, to, page)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{"diaries": diaries})
}
