package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un ajuste de inventario.
const (
	AdjustmentStatusPending = 0
	AdjustmentStatusApplied = 1 // terminal: no existe transición inversa
)

// Tipo informativo del ajuste. El efecto real lo decide el signo de cada
// línea, no este campo.
const (
	AdjustmentTypePositive = "positive"
	AdjustmentTypeNegative = "negative"
)

// Adjustment representa una corrección manual de stock sobre una bodega.
type Adjustment struct {
	ID          string
	Code        string
	Description string
	WarehouseID string
	Type        string
	Status      int
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Lines []AdjustmentLine
}

// AdjustmentLine lleva una cantidad con signo: positiva suma stock,
// negativa lo resta. Cero es inválido.
type AdjustmentLine struct {
	ID           string
	AdjustmentID string
	ItemID       string
	Amount       decimal.Decimal
}

// IsApplied indica si el ajuste ya afectó el inventario.
func (a *Adjustment) IsApplied() bool {
	return a.Status == AdjustmentStatusApplied
}
