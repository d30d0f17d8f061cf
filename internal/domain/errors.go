package domain

import "errors"

// Errores de dominio (sin dependencias externas). La capa HTTP los mapea a
// códigos de estado; el núcleo nunca reintenta.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrInvalidOperation   = errors.New("operación no permitida en el estado actual")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
)
