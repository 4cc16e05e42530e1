package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrDuplicate        = errors.New("recurso duplicado")
	ErrInvalidReference = errors.New("cliente o producto inválido")
	ErrNumberExhausted  = errors.New("no se pudo generar un número de documento libre")
	ErrConflict         = errors.New("conflicto con el estado actual")
)
