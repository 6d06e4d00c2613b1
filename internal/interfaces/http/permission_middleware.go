package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/railparts-api/internal/application/dto"
	domauth "github.com/tu-usuario/railparts-api/internal/domain/auth"
	"github.com/tu-usuario/railparts-api/internal/domain"
)

// RequirePermission devuelve un middleware Fiber que verifica si el rol del
// token puede ejecutar la acción. Debe usarse DESPUÉS de AuthMiddleware.
//
// La verificación de dueño (un técnico solo edita sus propios diarios, viajes
// y eventos) no puede resolverse aquí porque exige cargar el recurso; esa
// parte la hace el caso de uso con auth.Can y el OwnerID real.
func RequirePermission(action string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := GetActor(c)
		if actor.UserID == "" || actor.Role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "token sin usuario o rol",
			})
		}
		// El chequeo con OwnerID = actor cubre también los permisos "sobre lo
		// propio"; el caso de uso repite el chequeo con el dueño real.
		if !domauth.Can(actor, action, actor.UserID) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "el rol '" + actor.Role + "' no puede ejecutar esta acción",
			})
		}
		return c.Next()
	}
}

// errorJSON mapea los errores de dominio a códigos HTTP. Los handlers delegan
// aquí todo lo que no manejan explícitamente.
func errorJSON(c *fiber.Ctx, err error) error {
	status := statusForError(err)
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidQuantity):
		return c.Status(status).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(status).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(status).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(status).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(status).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(status).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(status).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	default:
		return c.Status(status).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// statusForError devuelve solo el código HTTP de un error de dominio, para
// respuestas que llevan su propio cuerpo (p.ej. el resultado FAILED del cierre).
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidQuantity):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrInsufficientStock), errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
