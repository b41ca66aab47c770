package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Origen de un movimiento de stock (qué documento lo produjo).
const (
	MovementKindEntry      = "ENTRY"      // recepción de mercancía
	MovementKindInvoice    = "INVOICE"    // pago / des-pago de factura
	MovementKindAdjustment = "ADJUSTMENT" // ajuste manual
	MovementKindTransfer   = "TRANSFER"   // traslado entre bodegas
)

// StockMovement es el registro de auditoría (kardex) de cada mutación del
// ledger. Se escribe en la misma transacción que la mutación de StockLevel.
type StockMovement struct {
	ID            string
	TransactionID string // agrupa las líneas de una misma operación
	WarehouseID   string
	ItemID        string
	Kind          string
	Quantity      decimal.Decimal // positivo entrada, negativo salida
	Reference     string          // ID del documento origen (entrada, factura, ajuste, traslado)
	Date          time.Time
	CreatedAt     time.Time
}
