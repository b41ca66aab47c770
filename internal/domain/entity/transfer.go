package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un traslado entre bodegas.
const (
	TransferStatusPending   = 0
	TransferStatusCompleted = 1
)

// Transfer representa la intención de mover N líneas desde exactamente una
// bodega origen hacia exactamente una bodega destino. Pending → Completed
// dispara el movimiento de stock; Completed → Pending lo revierte. Puede
// re-completarse después de una reversión: no hay estado terminal.
type Transfer struct {
	ID                     string
	Code                   string
	Description            string
	SourceWarehouseID      string
	DestinationWarehouseID string
	Status                 int
	CreatedAt              time.Time
	UpdatedAt              time.Time

	Lines []TransferLine
}

// TransferLine es una línea del traslado: cantidad positiva de un artículo.
type TransferLine struct {
	ID         string
	TransferID string
	ItemID     string
	Amount     decimal.Decimal // siempre > 0
}

// IsPending indica si las líneas todavía son editables.
func (t *Transfer) IsPending() bool {
	return t.Status == TransferStatusPending
}
