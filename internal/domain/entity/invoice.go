package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura.
const (
	InvoiceStatusPending = 0 // creada, sin afectar inventario
	InvoiceStatusPaid    = 1 // pagada: el stock de cada línea fue descontado
)

// Invoice representa una venta contra una sola bodega.
// Pending ⇄ Paid es libremente reversible; no existe estado "anulada".
type Invoice struct {
	ID          string
	Code        string
	WarehouseID string
	Customer    string
	Rate        decimal.Decimal // factor de conversión de moneda
	Status      int
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Lines []InvoiceLine
}

// InvoiceLine es una línea de venta de la factura.
type InvoiceLine struct {
	ID        string
	InvoiceID string
	ItemID    string
	Amount    decimal.Decimal
	UnitPrice decimal.Decimal
}

// Total devuelve el total de la factura (Σ cantidad × precio). Derivado,
// nunca se persiste.
func (i *Invoice) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range i.Lines {
		total = total.Add(line.Amount.Mul(line.UnitPrice))
	}
	return total
}

// IsPaid indica si la factura ya descontó inventario.
func (i *Invoice) IsPaid() bool {
	return i.Status == InvoiceStatusPaid
}
