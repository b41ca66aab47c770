package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ItemResponse representación pública de un artículo.
type ItemResponse struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// FromItem convierte la entidad a su representación pública.
func FromItem(i *entity.Item) ItemResponse {
	return ItemResponse{
		ID: i.ID, Code: i.Code, Name: i.Name, Description: i.Description,
		Price: i.Price, Cost: i.Cost, CreatedAt: i.CreatedAt, UpdatedAt: i.UpdatedAt,
	}
}

// FromItems convierte la lista.
func FromItems(items []*entity.Item) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for _, i := range items {
		out = append(out, FromItem(i))
	}
	return out
}

// WarehouseResponse representación pública de una bodega.
type WarehouseResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromWarehouse convierte la entidad a su representación pública.
func FromWarehouse(w *entity.Warehouse) WarehouseResponse {
	return WarehouseResponse{
		ID: w.ID, Code: w.Code, Name: w.Name, Address: w.Address,
		CreatedAt: w.CreatedAt, UpdatedAt: w.UpdatedAt,
	}
}

// FromWarehouses convierte la lista.
func FromWarehouses(ws []*entity.Warehouse) []WarehouseResponse {
	out := make([]WarehouseResponse, 0, len(ws))
	for _, w := range ws {
		out = append(out, FromWarehouse(w))
	}
	return out
}

// EntryLineResponse línea de una entrada.
type EntryLineResponse struct {
	ID          string          `json:"id"`
	ItemID      string          `json:"item_id"`
	WarehouseID string          `json:"warehouse_id"`
	Amount      decimal.Decimal `json:"amount"`
}

// EntryResponse representación pública de una entrada de mercancía.
type EntryResponse struct {
	ID          string              `json:"id"`
	Code        string              `json:"code"`
	Description string              `json:"description,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	Lines       []EntryLineResponse `json:"lines,omitempty"`
}

// FromEntry convierte la entidad con sus líneas.
func FromEntry(e *entity.Entry) EntryResponse {
	out := EntryResponse{
		ID: e.ID, Code: e.Code, Description: e.Description,
		CreatedAt: e.CreatedAt, UpdatedAt: e.UpdatedAt,
	}
	for _, l := range e.Lines {
		out.Lines = append(out.Lines, EntryLineResponse{
			ID: l.ID, ItemID: l.ItemID, WarehouseID: l.WarehouseID, Amount: l.Amount,
		})
	}
	return out
}

// FromEntries convierte la lista (sin líneas).
func FromEntries(es []*entity.Entry) []EntryResponse {
	out := make([]EntryResponse, 0, len(es))
	for _, e := range es {
		out = append(out, FromEntry(e))
	}
	return out
}

// InvoiceLineResponse línea de venta de una factura.
type InvoiceLineResponse struct {
	ID        string          `json:"id"`
	ItemID    string          `json:"item_id"`
	Amount    decimal.Decimal `json:"amount"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// InvoiceResponse representación pública de una factura. Total es derivado
// de las líneas, nunca persistido.
type InvoiceResponse struct {
	ID          string                `json:"id"`
	Code        string                `json:"code"`
	WarehouseID string                `json:"warehouse_id"`
	Customer    string                `json:"customer,omitempty"`
	Rate        decimal.Decimal       `json:"rate"`
	Status      int                   `json:"status"`
	Total       decimal.Decimal       `json:"total"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
	Lines       []InvoiceLineResponse `json:"lines,omitempty"`
}

// FromInvoice convierte la entidad con sus líneas y total derivado.
func FromInvoice(inv *entity.Invoice) InvoiceResponse {
	out := InvoiceResponse{
		ID: inv.ID, Code: inv.Code, WarehouseID: inv.WarehouseID,
		Customer: inv.Customer, Rate: inv.Rate, Status: inv.Status,
		Total: inv.Total(), CreatedAt: inv.CreatedAt, UpdatedAt: inv.UpdatedAt,
	}
	for _, l := range inv.Lines {
		out.Lines = append(out.Lines, InvoiceLineResponse{
			ID: l.ID, ItemID: l.ItemID, Amount: l.Amount, UnitPrice: l.UnitPrice,
		})
	}
	return out
}

// FromInvoices convierte la lista (sin líneas, total en cero).
func FromInvoices(invs []*entity.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, 0, len(invs))
	for _, inv := range invs {
		out = append(out, FromInvoice(inv))
	}
	return out
}

// AdjustmentLineResponse línea de ajuste con su cantidad firmada.
type AdjustmentLineResponse struct {
	ID     string          `json:"id"`
	ItemID string          `json:"item_id"`
	Amount decimal.Decimal `json:"amount"`
}

// AdjustmentResponse representación pública de un ajuste.
type AdjustmentResponse struct {
	ID          string                   `json:"id"`
	Code        string                   `json:"code"`
	Description string                   `json:"description,omitempty"`
	WarehouseID string                   `json:"warehouse_id"`
	Type        string                   `json:"type"`
	Status      int                      `json:"status"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
	Lines       []AdjustmentLineResponse `json:"lines,omitempty"`
}

// FromAdjustment convierte la entidad con sus líneas.
func FromAdjustment(a *entity.Adjustment) AdjustmentResponse {
	out := AdjustmentResponse{
		ID: a.ID, Code: a.Code, Description: a.Description,
		WarehouseID: a.WarehouseID, Type: a.Type, Status: a.Status,
		CreatedAt: a.CreatedAt, UpdatedAt: a.UpdatedAt,
	}
	for _, l := range a.Lines {
		out.Lines = append(out.Lines, AdjustmentLineResponse{ID: l.ID, ItemID: l.ItemID, Amount: l.Amount})
	}
	return out
}

// FromAdjustments convierte la lista (sin líneas).
func FromAdjustments(as []*entity.Adjustment) []AdjustmentResponse {
	out := make([]AdjustmentResponse, 0, len(as))
	for _, a := range as {
		out = append(out, FromAdjustment(a))
	}
	return out
}

// TransferLineResponse línea de traslado.
type TransferLineResponse struct {
	ID     string          `json:"id"`
	ItemID string          `json:"item_id"`
	Amount decimal.Decimal `json:"amount"`
}

// TransferResponse representación pública de un traslado.
type TransferResponse struct {
	ID                     string                 `json:"id"`
	Code                   string                 `json:"code"`
	Description            string                 `json:"description,omitempty"`
	SourceWarehouseID      string                 `json:"source_warehouse_id"`
	DestinationWarehouseID string                 `json:"destination_warehouse_id"`
	Status                 int                    `json:"status"`
	CreatedAt              time.Time              `json:"created_at"`
	UpdatedAt              time.Time              `json:"updated_at"`
	Lines                  []TransferLineResponse `json:"lines,omitempty"`
}

// FromTransfer convierte la entidad con sus líneas.
func FromTransfer(t *entity.Transfer) TransferResponse {
	out := TransferResponse{
		ID: t.ID, Code: t.Code, Description: t.Description,
		SourceWarehouseID: t.SourceWarehouseID, DestinationWarehouseID: t.DestinationWarehouseID,
		Status: t.Status, CreatedAt: t.CreatedAt, UpdatedAt: t.UpdatedAt,
	}
	for _, l := range t.Lines {
		out.Lines = append(out.Lines, TransferLineResponse{ID: l.ID, ItemID: l.ItemID, Amount: l.Amount})
	}
	return out
}

// FromTransfers convierte la lista (sin líneas).
func FromTransfers(ts []*entity.Transfer) []TransferResponse {
	out := make([]TransferResponse, 0, len(ts))
	for _, t := range ts {
		out = append(out, FromTransfer(t))
	}
	return out
}

// FromStockLevel convierte el nivel de stock.
func FromStockLevel(s *entity.StockLevel) StockLevelResponse {
	return StockLevelResponse{
		WarehouseID: s.WarehouseID, ItemID: s.ItemID,
		Quantity: s.Quantity, UpdatedAt: s.UpdatedAt,
	}
}

// FromStockLevels convierte la lista.
func FromStockLevels(ss []*entity.StockLevel) []StockLevelResponse {
	out := make([]StockLevelResponse, 0, len(ss))
	for _, s := range ss {
		out = append(out, FromStockLevel(s))
	}
	return out
}

// FromStockMovement convierte la fila del kardex.
func FromStockMovement(m *entity.StockMovement) StockMovementResponse {
	return StockMovementResponse{
		ID: m.ID, TransactionID: m.TransactionID, WarehouseID: m.WarehouseID,
		ItemID: m.ItemID, Kind: m.Kind, Quantity: m.Quantity,
		Reference: m.Reference, Date: m.Date,
	}
}

// FromStockMovements convierte la lista.
func FromStockMovements(ms []*entity.StockMovement) []StockMovementResponse {
	out := make([]StockMovementResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromStockMovement(m))
	}
	return out
}
