// Package ledger contiene la lógica pura del ledger de inventario: la función
// de transición de estados y la verificación de suficiencia. No toca
// persistencia; los casos de uso en internal/application/inventory la ejecutan
// dentro de transacciones.
package ledger

// Effect es el efecto que una transición de estado produce sobre el ledger.
type Effect int

const (
	// EffectNone: el estado no cambió (o la transición no mueve stock).
	EffectNone Effect = iota
	// EffectForward: transición pendiente → procesado; aplicar el movimiento.
	EffectForward
	// EffectReverse: transición procesado → pendiente; deshacer el movimiento.
	EffectReverse
)

// Estados genéricos de documento. Coinciden con los valores persistidos de
// Transfer, Invoice y Adjustment (pendiente=0, procesado=1).
const (
	StatusPending   = 0
	StatusProcessed = 1
)

// Transition decide el efecto de pasar de oldStatus a newStatus. Es la única
// fuente de verdad para "qué cambió": los handlers nunca comparan estados por
// su cuenta, de modo que aprobar/revertir se dispara exactamente una vez.
func Transition(oldStatus, newStatus int) Effect {
	switch {
	case oldStatus == newStatus:
		return EffectNone
	case oldStatus == StatusPending && newStatus == StatusProcessed:
		return EffectForward
	case oldStatus == StatusProcessed && newStatus == StatusPending:
		return EffectReverse
	default:
		return EffectNone
	}
}
