package inventory_test

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria para testear los casos de uso sin PostgreSQL.
// El TxRunner falso imita la semántica transaccional con snapshot + restore:
// si fn devuelve error, el store vuelve al estado previo.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	items       map[string]*entity.Item
	warehouses  map[string]*entity.Warehouse
	stock       map[string]*entity.StockLevel // clave warehouseID+"|"+itemID
	movements   []*entity.StockMovement
	entries     map[string]*entity.Entry
	invoices    map[string]*entity.Invoice
	adjustments map[string]*entity.Adjustment
	transfers   map[string]*entity.Transfer
}

func newMemStore() *memStore {
	return &memStore{
		items:       map[string]*entity.Item{},
		warehouses:  map[string]*entity.Warehouse{},
		stock:       map[string]*entity.StockLevel{},
		entries:     map[string]*entity.Entry{},
		invoices:    map[string]*entity.Invoice{},
		adjustments: map[string]*entity.Adjustment{},
		transfers:   map[string]*entity.Transfer{},
	}
}

func stockKey(warehouseID, itemID string) string { return warehouseID + "|" + itemID }

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for k, v := range s.items {
		cp := *v
		c.items[k] = &cp
	}
	for k, v := range s.warehouses {
		cp := *v
		c.warehouses[k] = &cp
	}
	for k, v := range s.stock {
		cp := *v
		c.stock[k] = &cp
	}
	c.movements = append(c.movements, s.movements...)
	for k, v := range s.entries {
		cp := *v
		cp.Lines = append([]entity.EntryLine(nil), v.Lines...)
		c.entries[k] = &cp
	}
	for k, v := range s.invoices {
		cp := *v
		cp.Lines = append([]entity.InvoiceLine(nil), v.Lines...)
		c.invoices[k] = &cp
	}
	for k, v := range s.adjustments {
		cp := *v
		cp.Lines = append([]entity.AdjustmentLine(nil), v.Lines...)
		c.adjustments[k] = &cp
	}
	for k, v := range s.transfers {
		cp := *v
		cp.Lines = append([]entity.TransferLine(nil), v.Lines...)
		c.transfers[k] = &cp
	}
	return c
}

// ── Stock ────────────────────────────────────────────────────────────────────

type memStockRepo struct{ s *memStore }

func (r *memStockRepo) Get(warehouseID, itemID string) (*entity.StockLevel, error) {
	if level, ok := r.s.stock[stockKey(warehouseID, itemID)]; ok {
		cp := *level
		return &cp, nil
	}
	return &entity.StockLevel{WarehouseID: warehouseID, ItemID: itemID, Quantity: decimal.Zero}, nil
}

func (r *memStockRepo) GetForUpdate(warehouseID, itemID string) (*entity.StockLevel, error) {
	return r.Get(warehouseID, itemID)
}

func (r *memStockRepo) Upsert(level *entity.StockLevel) error {
	cp := *level
	r.s.stock[stockKey(level.WarehouseID, level.ItemID)] = &cp
	return nil
}

func (r *memStockRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.StockLevel, error) {
	var out []*entity.StockLevel
	for _, level := range r.s.stock {
		if level.WarehouseID == warehouseID {
			cp := *level
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out, nil
}

func (r *memStockRepo) ListByItem(itemID string) ([]*entity.StockLevel, error) {
	var out []*entity.StockLevel
	for _, level := range r.s.stock {
		if level.ItemID == itemID {
			cp := *level
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WarehouseID < out[j].WarehouseID })
	return out, nil
}

type memMovementRepo struct{ s *memStore }

func (r *memMovementRepo) Create(m *entity.StockMovement) error {
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *memMovementRepo) ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.WarehouseID == warehouseID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMovementRepo) ListByItem(itemID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.ItemID == itemID {
			out = append(out, m)
		}
	}
	return out, nil
}

// ── Catálogo ─────────────────────────────────────────────────────────────────

type memItemRepo struct{ s *memStore }

func (r *memItemRepo) Create(item *entity.Item) error {
	r.s.items[item.ID] = item
	return nil
}

func (r *memItemRepo) GetByID(id string) (*entity.Item, error) {
	if item, ok := r.s.items[id]; ok {
		return item, nil
	}
	return nil, domain.ErrNotFound
}

func (r *memItemRepo) GetByCode(code string) (*entity.Item, error) {
	for _, item := range r.s.items {
		if item.Code == code {
			return item, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memItemRepo) Update(item *entity.Item) error {
	if _, ok := r.s.items[item.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.items[item.ID] = item
	return nil
}

func (r *memItemRepo) List(limit, offset int) ([]*entity.Item, error) {
	var out []*entity.Item
	for _, item := range r.s.items {
		out = append(out, item)
	}
	return out, nil
}

type memWarehouseRepo struct{ s *memStore }

func (r *memWarehouseRepo) Create(w *entity.Warehouse) error {
	r.s.warehouses[w.ID] = w
	return nil
}

func (r *memWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	if w, ok := r.s.warehouses[id]; ok {
		return w, nil
	}
	return nil, domain.ErrNotFound
}

func (r *memWarehouseRepo) Update(w *entity.Warehouse) error {
	if _, ok := r.s.warehouses[w.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.warehouses[w.ID] = w
	return nil
}

func (r *memWarehouseRepo) List(limit, offset int) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range r.s.warehouses {
		out = append(out, w)
	}
	return out, nil
}

// ── Documentos ───────────────────────────────────────────────────────────────

type memEntryRepo struct{ s *memStore }

func (r *memEntryRepo) Create(e *entity.Entry) error {
	cp := *e
	cp.Lines = append([]entity.EntryLine(nil), e.Lines...)
	r.s.entries[e.ID] = &cp
	return nil
}

func (r *memEntryRepo) GetByID(id string) (*entity.Entry, error) {
	if e, ok := r.s.entries[id]; ok {
		cp := *e
		cp.Lines = append([]entity.EntryLine(nil), e.Lines...)
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (r *memEntryRepo) UpdateHeader(e *entity.Entry) error {
	existing, ok := r.s.entries[e.ID]
	if !ok {
		return domain.ErrNotFound
	}
	existing.Description = e.Description
	existing.UpdatedAt = e.UpdatedAt
	return nil
}

func (r *memEntryRepo) ReplaceLines(entryID string, lines []entity.EntryLine) error {
	existing, ok := r.s.entries[entryID]
	if !ok {
		return domain.ErrNotFound
	}
	existing.Lines = append([]entity.EntryLine(nil), lines...)
	return nil
}

func (r *memEntryRepo) List(limit, offset int) ([]*entity.Entry, error) {
	var out []*entity.Entry
	for _, e := range r.s.entries {
		out = append(out, e)
	}
	return out, nil
}

type memInvoiceRepo struct{ s *memStore }

func (r *memInvoiceRepo) Create(inv *entity.Invoice) error {
	cp := *inv
	cp.Lines = append([]entity.InvoiceLine(nil), inv.Lines...)
	r.s.invoices[inv.ID] = &cp
	return nil
}

func (r *memInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	if inv, ok := r.s.invoices[id]; ok {
		cp := *inv
		cp.Lines = append([]entity.InvoiceLine(nil), inv.Lines...)
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (r *memInvoiceRepo) UpdateHeader(inv *entity.Invoice) error {
	existing, ok := r.s.invoices[inv.ID]
	if !ok {
		return domain.ErrNotFound
	}
	existing.Customer = inv.Customer
	existing.Rate = inv.Rate
	existing.UpdatedAt = inv.UpdatedAt
	return nil
}

func (r *memInvoiceRepo) ReplaceLines(invoiceID string, lines []entity.InvoiceLine) error {
	existing, ok := r.s.invoices[invoiceID]
	if !ok {
		return domain.ErrNotFound
	}
	existing.Lines = append([]entity.InvoiceLine(nil), lines...)
	return nil
}

func (r *memInvoiceRepo) UpdateStatusIf(id string, oldStatus, newStatus int) (bool, error) {
	existing, ok := r.s.invoices[id]
	if !ok || existing.Status != oldStatus {
		return false, nil
	}
	existing.Status = newStatus
	return true, nil
}

func (r *memInvoiceRepo) List(limit, offset int) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.s.invoices {
		out = append(out, inv)
	}
	return out, nil
}

type memAdjustmentRepo struct{ s *memStore }

func (r *memAdjustmentRepo) Create(a *entity.Adjustment) error {
	cp := *a
	cp.Lines = append([]entity.AdjustmentLine(nil), a.Lines...)
	r.s.adjustments[a.ID] = &cp
	return nil
}

func (r *memAdjustmentRepo) GetByID(id string) (*entity.Adjustment, error) {
	if a, ok := r.s.adjustments[id]; ok {
		cp := *a
		cp.Lines = append([]entity.AdjustmentLine(nil), a.Lines...)
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (r *memAdjustmentRepo) UpdateHeader(a *entity.Adjustment) error {
	existing, ok := r.s.adjustments[a.ID]
	if !ok {
		return domain.ErrNotFound
	}
	existing.Description = a.Description
	existing.Type = a.Type
	existing.UpdatedAt = a.UpdatedAt
	return nil
}

func (r *memAdjustmentRepo) ReplaceLines(adjustmentID string, lines []entity.AdjustmentLine) error {
	existing, ok := r.s.adjustments[adjustmentID]
	if !ok {
		return domain.ErrNotFound
	}
	existing.Lines = append([]entity.AdjustmentLine(nil), lines...)
	return nil
}

func (r *memAdjustmentRepo) UpdateStatusIf(id string, oldStatus, newStatus int) (bool, error) {
	existing, ok := r.s.adjustments[id]
	if !ok || existing.Status != oldStatus {
		return false, nil
	}
	existing.Status = newStatus
	return true, nil
}

func (r *memAdjustmentRepo) List(limit, offset int) ([]*entity.Adjustment, error) {
	var out []*entity.Adjustment
	for _, a := range r.s.adjustments {
		out = append(out, a)
	}
	return out, nil
}

type memTransferRepo struct{ s *memStore }

func (r *memTransferRepo) Create(t *entity.Transfer) error {
	cp := *t
	cp.Lines = append([]entity.TransferLine(nil), t.Lines...)
	r.s.transfers[t.ID] = &cp
	return nil
}

func (r *memTransferRepo) GetByID(id string) (*entity.Transfer, error) {
	if t, ok := r.s.transfers[id]; ok {
		cp := *t
		cp.Lines = append([]entity.TransferLine(nil), t.Lines...)
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (r *memTransferRepo) UpdateHeader(t *entity.Transfer) error {
	existing, ok := r.s.transfers[t.ID]
	if !ok {
		return domain.ErrNotFound
	}
	existing.Description = t.Description
	existing.UpdatedAt = t.UpdatedAt
	return nil
}

func (r *memTransferRepo) ReplaceLines(transferID string, lines []entity.TransferLine) error {
	existing, ok := r.s.transfers[transferID]
	if !ok {
		return domain.ErrNotFound
	}
	existing.Lines = append([]entity.TransferLine(nil), lines...)
	return nil
}

func (r *memTransferRepo) UpdateStatusIf(id string, oldStatus, newStatus int) (bool, error) {
	existing, ok := r.s.transfers[id]
	if !ok || existing.Status != oldStatus {
		return false, nil
	}
	existing.Status = newStatus
	return true, nil
}

func (r *memTransferRepo) List(limit, offset int) ([]*entity.Transfer, error) {
	var out []*entity.Transfer
	for _, t := range r.s.transfers {
		out = append(out, t)
	}
	return out, nil
}

// ── TxRunner ─────────────────────────────────────────────────────────────────

type memTxRunner struct{ s *memStore }

func reposFor(s *memStore) inventory.TxRepos {
	return inventory.TxRepos{
		Stock:       &memStockRepo{s},
		Movements:   &memMovementRepo{s},
		Items:       &memItemRepo{s},
		Entries:     &memEntryRepo{s},
		Invoices:    &memInvoiceRepo{s},
		Adjustments: &memAdjustmentRepo{s},
		Transfers:   &memTransferRepo{s},
	}
}

// Run imita la transacción: si fn falla, el store vuelve al snapshot previo.
func (r *memTxRunner) Run(ctx context.Context, fn func(tx inventory.TxRepos) error) error {
	snap := r.s.clone()
	if err := fn(reposFor(r.s)); err != nil {
		*r.s = *snap
		return err
	}
	return nil
}

// ── Fixture ──────────────────────────────────────────────────────────────────

type fixture struct {
	store      *memStore
	txRunner   *memTxRunner
	stock      *memStockRepo
	movements  *memMovementRepo
	items      *memItemRepo
	warehouses *memWarehouseRepo
}

func newFixture() *fixture {
	s := newMemStore()
	return &fixture{
		store:      s,
		txRunner:   &memTxRunner{s},
		stock:      &memStockRepo{s},
		movements:  &memMovementRepo{s},
		items:      &memItemRepo{s},
		warehouses: &memWarehouseRepo{s},
	}
}

func (f *fixture) seedItem(id, code string) {
	f.store.items[id] = &entity.Item{ID: id, Code: code, Name: code, Price: decimal.NewFromInt(100)}
}

func (f *fixture) seedWarehouse(id, code string) {
	f.store.warehouses[id] = &entity.Warehouse{ID: id, Code: code, Name: code}
}

func (f *fixture) setStock(warehouseID, itemID string, qty int64) {
	f.store.stock[stockKey(warehouseID, itemID)] = &entity.StockLevel{
		WarehouseID: warehouseID,
		ItemID:      itemID,
		Quantity:    decimal.NewFromInt(qty),
		UpdatedAt:   time.Now(),
	}
}

func (f *fixture) stockQty(warehouseID, itemID string) decimal.Decimal {
	if level, ok := f.store.stock[stockKey(warehouseID, itemID)]; ok {
		return level.Quantity
	}
	return decimal.Zero
}
