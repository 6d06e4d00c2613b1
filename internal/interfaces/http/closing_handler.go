package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	appclosing "github.com/tu-usuario/railparts-api/internal/application/closing"
	"github.com/tu-usuario/railparts-api/internal/application/dto"
)

// ClosingHandler maneja las peticiones HTTP del cierre de inventario (protegido).
type ClosingHandler struct {
	uc     *appclosing.UseCase
	report *appclosing.ReportUseCase
}

// NewClosingHandler construye el handler.
func NewClosingHandler(uc *appclosing.UseCase, report *appclosing.ReportUseCase) *ClosingHandler {
	return &ClosingHandler{uc: uc, report: report}
}

// Preview godoc
// @Summary      Previsualizar cierre
// @Description  Calcula lo que quedaría congelado por artículo sin persistir nada.
// @Tags         closings
// @Security     Bearer
// @Produce      json
// @Param        date  query  string  true  "fecha de cierre (YYYY-MM-DD)"
// @Success      200  {object}  dto.ClosingPreviewResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/closings/preview [get]
func (h *ClosingHandler) Preview(c *fiber.Ctx) error {
	date, err := parseClosingDate(c.Query("date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "date inválida (YYYY-MM-DD)"})
	}
	resp, err := h.uc.Preview(c.Context(), date)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// Commit godoc
// @Summary      Ejecutar cierre
// @Description  Congela un snapshot por artículo y reinicia los contadores, en
//               una transacción todo-o-nada. Una fecha ya cerrada retorna 409.
// @Tags         closings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CommitClosingRequest  true  "closing_date"
// @Success      201   {object}  dto.CommitClosingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/closings [post]
func (h *ClosingHandler) Commit(c *fiber.Ctx) error {
	var in dto.CommitClosingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return errorJSON(c, err)
	}
	date, err := parseClosingDate(in.ClosingDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "closing_date inválida (YYYY-MM-DD)"})
	}
	resp, err := h.uc.Commit(c.Context(), date, GetUserID(c))
	if err != nil {
		// En FAILED la respuesta lleva el detalle del lote junto al error.
		if resp != nil {
			return c.Status(statusForError(err)).JSON(resp)
		}
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListDates godoc
// @Summary      Listar fechas de cierre
// @Tags         closings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string][]string
// @Router       /api/closings [get]
func (h *ClosingHandler) ListDates(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	dates, err := h.uc.ListDates(c.Context(), page)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{"dates": dates})
}

// ListByDate godoc
// @Summary      Snapshots de una fecha de cierre
// @Tags         closings
// @Security     Bearer
// @Produce      json
// @Param        date  path  string  true  "fecha de cierre (YYYY-MM-DD)"
// @Success      200  {object}  dto.ClosingListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/closings/{date} [get]
func (h *ClosingHandler) ListByDate(c *fiber.Ctx) error {
	date, err := parseClosingDate(c.Params("date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "fecha inválida (YYYY-MM-DD)"})
	}
	resp, err := h.uc.ListByDate(c.Context(), date)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// DownloadPDF godoc
// @Summary      Reporte PDF de un cierre
// @Tags         closings
// @Security     Bearer
// @Produce      application/pdf
// @Param        date  path  string  true  "fecha de cierre (YYYY-MM-DD)"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/closings/{date}/report.pdf [get]
func (h *ClosingHandler) DownloadPDF(c *fiber.Ctx) error {
	date, err := parseClosingDate(c.Params("date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "fecha inválida (YYYY-MM-DD)"})
	}
	pdfBytes, filename, err := h.report.DownloadPDF(c.Context(), date)
	if err != nil {
		return errorJSON(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// DownloadExcel godoc
// @Summary      Planilla xlsx de un cierre
// @Tags         closings
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        date  path  string  true  "fecha de cierre (YYYY-MM-DD)"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/closings/{date}/report.xlsx [get]
func (h *ClosingHandler) DownloadExcel(c *fiber.Ctx) error {
	date, err := parseClosingDate(c.Params("date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "fecha inválida (YYYY-MM-DD)"})
	}
	xlsxBytes, filename, err := h.report.DownloadExcel(c.Context(), date)
	if err != nil {
		return errorJSON(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(xlsxBytes)
}

func parseClosingDate(raw string) (time.Time, error) {
	return time.Parse(appclosing.DateLayout, raw)
}
