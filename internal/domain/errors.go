package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrEmployeeNotFound   = errors.New("empleado no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrCodeAlreadyExists  = errors.New("el código de empleado ya existe")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidRole        = errors.New("rol desconocido")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrNoScope            = errors.New("el usuario no tiene tenant asignado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrShiftAlreadyOpen   = errors.New("ya existe un turno abierto")
	ErrNoOpenShift        = errors.New("no hay turno abierto")
	ErrBreakAlreadyOpen   = errors.New("ya existe una pausa abierta")
	ErrNoOpenBreak        = errors.New("no hay pausa abierta")
)
