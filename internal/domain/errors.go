package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")

	// ErrAlreadyProcessed indica que el documento ya pasó por la transición
	// solicitada (aprobar un traslado completado, aplicar un ajuste aplicado).
	// Es informativo, no un fallo: el handler responde 200 con mensaje.
	ErrAlreadyProcessed = errors.New("el documento ya fue procesado")

	// ErrEditNotPending indica que se intentó modificar las líneas de un
	// documento que ya no está en estado pendiente.
	ErrEditNotPending = errors.New("solo documentos pendientes pueden editarse")
)
