package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Entradas (recepción de mercancía) ────────────────────────────────────────

// EntryLineRequest línea de una entrada: cantidad positiva hacia una bodega.
type EntryLineRequest struct {
	ItemID      string          `json:"item_id"`
	WarehouseID string          `json:"warehouse_id"`
	Amount      decimal.Decimal `json:"amount"`
}

// CreateEntryRequest body para POST /api/entries.
type CreateEntryRequest struct {
	Description string             `json:"description,omitempty"`
	Lines       []EntryLineRequest `json:"lines"`
}

// UpdateEntryRequest body para PUT /api/entries/:id. Las líneas se
// reemplazan en bloque; las cantidades recibidas previamente se revierten.
type UpdateEntryRequest struct {
	Description *string            `json:"description,omitempty"`
	Lines       []EntryLineRequest `json:"lines,omitempty"`
}

// ── Facturas ─────────────────────────────────────────────────────────────────

// InvoiceLineRequest línea de venta de una factura.
type InvoiceLineRequest struct {
	ItemID    string          `json:"item_id"`
	Amount    decimal.Decimal `json:"amount"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateInvoiceRequest body para POST /api/invoices. Siempre nace pendiente.
type CreateInvoiceRequest struct {
	WarehouseID string               `json:"warehouse_id"`
	Customer    string               `json:"customer,omitempty"`
	Rate        decimal.Decimal      `json:"rate,omitempty"`
	Lines       []InvoiceLineRequest `json:"lines"`
}

// UpdateInvoiceRequest body para PUT /api/invoices/:id.
type UpdateInvoiceRequest struct {
	Customer *string              `json:"customer,omitempty"`
	Rate     *decimal.Decimal     `json:"rate,omitempty"`
	Lines    []InvoiceLineRequest `json:"lines,omitempty"`
}

// SetInvoiceStatusRequest body para PUT /api/invoices/:id/status.
type SetInvoiceStatusRequest struct {
	Status int `json:"status"` // 0 = pendiente, 1 = pagada
}

// ── Ajustes ──────────────────────────────────────────────────────────────────

// AdjustmentLineRequest línea de ajuste: cantidad con signo, distinta de 0.
type AdjustmentLineRequest struct {
	ItemID string          `json:"item_id"`
	Amount decimal.Decimal `json:"amount"`
}

// CreateAdjustmentRequest body para POST /api/adjustments.
type CreateAdjustmentRequest struct {
	Description string                  `json:"description,omitempty"`
	WarehouseID string                  `json:"warehouse_id"`
	Type        string                  `json:"type"` // positive | negative (informativo)
	Lines       []AdjustmentLineRequest `json:"lines"`
}

// ── Traslados ────────────────────────────────────────────────────────────────

// TransferLineRequest línea de traslado: cantidad positiva de un artículo.
type TransferLineRequest struct {
	ItemID string          `json:"item_id"`
	Amount decimal.Decimal `json:"amount"`
}

// CreateTransferRequest body para POST /api/transfers. Status es opcional:
// 1 crea el traslado ya completado (mueve stock en la misma transacción).
type CreateTransferRequest struct {
	Description            string                `json:"description,omitempty"`
	SourceWarehouseID      string                `json:"source_warehouse_id"`
	DestinationWarehouseID string                `json:"destination_warehouse_id"`
	Status                 *int                  `json:"status,omitempty"`
	Lines                  []TransferLineRequest `json:"lines"`
}

// UpdateTransferRequest body para PUT /api/transfers/:id. Cambiar Status
// dispara aprobar (0→1) o revertir (1→0) exactamente una vez.
type UpdateTransferRequest struct {
	Description *string               `json:"description,omitempty"`
	Status      *int                  `json:"status,omitempty"`
	Lines       []TransferLineRequest `json:"lines,omitempty"`
}

// ── Consultas de stock ───────────────────────────────────────────────────────

// StockLevelResponse nivel de stock de un par (bodega, artículo).
type StockLevelResponse struct {
	WarehouseID string          `json:"warehouse_id"`
	ItemID      string          `json:"item_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// StockMovementResponse fila del kardex.
type StockMovementResponse struct {
	ID            string          `json:"id"`
	TransactionID string          `json:"transaction_id"`
	WarehouseID   string          `json:"warehouse_id"`
	ItemID        string          `json:"item_id"`
	Kind          string          `json:"kind"`
	Quantity      decimal.Decimal `json:"quantity"`
	Reference     string          `json:"reference"`
	Date          time.Time       `json:"date"`
}
