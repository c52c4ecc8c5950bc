package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/domain"
)

// respondError mapea errores de dominio al envelope JSON. Los errores no
// clasificados responden 500 con mensaje genérico: el detalle solo va al log
// del handler, nunca al cliente.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidRole):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("VALIDATION", "datos inválidos"))
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrEmployeeNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail("NOT_FOUND", "recurso no encontrado"))
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("UNAUTHORIZED", "credencial inválida"))
	case errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrNoScope):
		return c.Status(fiber.StatusForbidden).JSON(dto.Fail("FORBIDDEN", "acceso denegado"))
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.Fail("EMAIL_EXISTS", "el email ya está registrado"))
	case errors.Is(err, domain.ErrCodeAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.Fail("CODE_EXISTS", "el código de empleado ya existe"))
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.Fail("DUPLICATE", "recurso duplicado"))
	case errors.Is(err, domain.ErrShiftAlreadyOpen):
		return c.Status(fiber.StatusConflict).JSON(dto.Fail("SHIFT_OPEN", "ya existe un turno abierto"))
	case errors.Is(err, domain.ErrNoOpenShift):
		return c.Status(fiber.StatusConflict).JSON(dto.Fail("NO_OPEN_SHIFT", "no hay turno abierto"))
	case errors.Is(err, domain.ErrBreakAlreadyOpen):
		return c.Status(fiber.StatusConflict).JSON(dto.Fail("BREAK_OPEN", "ya existe una pausa abierta"))
	case errors.Is(err, domain.ErrNoOpenBreak):
		return c.Status(fiber.StatusConflict).JSON(dto.Fail("NO_OPEN_BREAK", "no hay pausa abierta"))
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.Fail("CONFLICT", "conflicto con el estado actual"))
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("INTERNAL", "error interno"))
	}
}

// notFound respuesta 404 estándar (recurso inexistente o fuera de scope:
// indistinguibles a propósito).
func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.Fail("NOT_FOUND", "recurso no encontrado"))
}

// badBody respuesta 400 para body no parseable.
func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("INVALID_BODY", "cuerpo inválido"))
}
