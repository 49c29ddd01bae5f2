package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrInvalidPrice      = errors.New("precio de venta no configurado")
	ErrCustomerBlocked   = errors.New("cliente de crédito bloqueado")
	ErrAlreadyProcessed  = errors.New("traspaso ya procesado")
)
