package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain"
)

// Requirement es una demanda de salida: cantidad solicitada de un artículo.
type Requirement struct {
	ItemID   string
	ItemCode string // para el mensaje de error; puede ir vacío
	Amount   decimal.Decimal
}

// Shortfall describe un faltante: se pidió más de lo disponible.
type Shortfall struct {
	ItemID    string
	ItemCode  string
	Requested decimal.Decimal
	Available decimal.Decimal
}

// InsufficientStockError agrupa todos los faltantes de una operación, no solo
// el primero, para que el usuario los corrija de una vez.
type InsufficientStockError struct {
	WarehouseID string
	Shortfalls  []Shortfall
}

// Error formatea los faltantes en un mensaje multilínea legible.
func (e *InsufficientStockError) Error() string {
	var b strings.Builder
	b.WriteString("stock insuficiente en la bodega:")
	for _, s := range e.Shortfalls {
		name := s.ItemCode
		if name == "" {
			name = s.ItemID
		}
		fmt.Fprintf(&b, "\n  artículo %s: solicitado %s, disponible %s",
			name, s.Requested.String(), s.Available.String())
	}
	return b.String()
}

// Is permite errors.Is(err, domain.ErrInsufficientStock).
func (e *InsufficientStockError) Is(target error) bool {
	return target == domain.ErrInsufficientStock
}

// CheckSufficiency compara cada demanda contra la cantidad disponible
// (available: cantidad por ItemID; artículo ausente cuenta como 0) y devuelve
// la lista completa de faltantes. Lista vacía = suficiente.
func CheckSufficiency(requirements []Requirement, available map[string]decimal.Decimal) []Shortfall {
	var shortfalls []Shortfall
	for _, req := range requirements {
		have := available[req.ItemID] // cero si no existe la fila
		if have.LessThan(req.Amount) {
			shortfalls = append(shortfalls, Shortfall{
				ItemID:    req.ItemID,
				ItemCode:  req.ItemCode,
				Requested: req.Amount,
				Available: have,
			})
		}
	}
	return shortfalls
}
