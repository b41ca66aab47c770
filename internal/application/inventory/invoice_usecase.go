package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/ledger"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// InvoiceUseCase orquesta facturas y su máquina de pago. Pagar descuenta el
// stock de cada línea en la bodega de la factura SIN verificar suficiencia
// (la factura representa una venta ya comprometida: debe poder pagarse
// aunque el conteo físico vaya atrasado); des-pagar restaura las mismas
// cantidades. El cambio de estado y el movimiento de stock van en la misma
// transacción.
type InvoiceUseCase struct {
	txRunner      TxRunner
	invoiceRepo   repository.InvoiceRepository
	itemRepo      repository.ItemRepository
	warehouseRepo repository.WarehouseRepository
	log           *logger.Logger
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	txRunner TxRunner,
	invoiceRepo repository.InvoiceRepository,
	itemRepo repository.ItemRepository,
	warehouseRepo repository.WarehouseRepository,
	log *logger.Logger,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner:      txRunner,
		invoiceRepo:   invoiceRepo,
		itemRepo:      itemRepo,
		warehouseRepo: warehouseRepo,
		log:           log,
	}
}

// Create crea una factura pendiente (sin afectar inventario).
func (uc *InvoiceUseCase) Create(ctx context.Context, in dto.CreateInvoiceRequest) (*entity.Invoice, error) {
	if in.WarehouseID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.warehouseRepo.GetByID(in.WarehouseID); err != nil {
		return nil, err
	}
	lines, err := uc.buildLines(in.Lines)
	if err != nil {
		return nil, err
	}
	rate := in.Rate
	if rate.IsZero() {
		rate = decimal.NewFromInt(1)
	}

	now := time.Now()
	invoice := &entity.Invoice{
		ID:          uuid.New().String(),
		Code:        newDocumentCode("FAC"),
		WarehouseID: in.WarehouseID,
		Customer:    in.Customer,
		Rate:        rate,
		Status:      entity.InvoiceStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for i := range lines {
		lines[i].InvoiceID = invoice.ID
	}
	invoice.Lines = lines

	err = uc.txRunner.Run(ctx, func(tx TxRepos) error {
		return tx.Invoices.Create(invoice)
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

// SetStatus aplica la transición de estado solicitada: 0→1 paga, 1→0
// des-paga, mismo estado no hace nada.
func (uc *InvoiceUseCase) SetStatus(ctx context.Context, id string, newStatus int) error {
	if newStatus != entity.InvoiceStatusPending && newStatus != entity.InvoiceStatusPaid {
		return domain.ErrInvalidInput
	}
	invoice, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return err
	}
	switch ledger.Transition(invoice.Status, newStatus) {
	case ledger.EffectForward:
		return uc.MarkPaid(ctx, id)
	case ledger.EffectReverse:
		return uc.MarkPending(ctx, id)
	}
	return nil
}

// MarkPaid ejecuta pendiente → pagada: descuenta cada línea con negativo
// permitido. Si el stock previo era insuficiente se registra una advertencia
// (no un error) y la operación continúa con el resultado negativo.
func (uc *InvoiceUseCase) MarkPaid(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(tx TxRepos) error {
		ok, err := tx.Invoices.UpdateStatusIf(id, entity.InvoiceStatusPending, entity.InvoiceStatusPaid)
		if err != nil {
			return err
		}
		if !ok {
			if _, err := tx.Invoices.GetByID(id); err != nil {
				return err
			}
			return domain.ErrAlreadyProcessed
		}
		invoice, err := tx.Invoices.GetByID(id)
		if err != nil {
			return err
		}

		now := time.Now()
		mov := Movement{
			TransactionID: uuid.New().String(),
			Kind:          entity.MovementKindInvoice,
			Reference:     invoice.ID,
			Date:          now,
		}
		for _, line := range invoice.Lines {
			level, err := Decrease(tx.Stock, tx.Movements, invoice.WarehouseID, line.ItemID, line.Amount, true, mov)
			if err != nil {
				return err
			}
			if level.Quantity.IsNegative() {
				uc.log.Warn().
					Str("invoice_id", invoice.ID).
					Str("item_id", line.ItemID).
					Str("warehouse_id", invoice.WarehouseID).
					Str("quantity", level.Quantity.String()).
					Msg("pago de factura dejó stock negativo")
			}
		}
		return nil
	})
}

// MarkPending ejecuta pagada → pendiente: restaura cada línea, simétrico
// exacto de MarkPaid.
func (uc *InvoiceUseCase) MarkPending(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(tx TxRepos) error {
		ok, err := tx.Invoices.UpdateStatusIf(id, entity.InvoiceStatusPaid, entity.InvoiceStatusPending)
		if err != nil {
			return err
		}
		if !ok {
			if _, err := tx.Invoices.GetByID(id); err != nil {
				return err
			}
			return domain.ErrAlreadyProcessed
		}
		invoice, err := tx.Invoices.GetByID(id)
		if err != nil {
			return err
		}

		mov := Movement{
			TransactionID: uuid.New().String(),
			Kind:          entity.MovementKindInvoice,
			Reference:     invoice.ID,
			Date:          time.Now(),
		}
		for _, line := range invoice.Lines {
			if _, err := Increase(tx.Stock, tx.Movements, invoice.WarehouseID, line.ItemID, line.Amount, mov); err != nil {
				return err
			}
		}
		return nil
	})
}

// Update edita encabezado y líneas; las líneas solo mientras esté pendiente.
func (uc *InvoiceUseCase) Update(ctx context.Context, id string, in dto.UpdateInvoiceRequest) (*entity.Invoice, error) {
	existing, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if in.Lines != nil && existing.IsPaid() {
		return nil, domain.ErrEditNotPending
	}

	var lines []entity.InvoiceLine
	if in.Lines != nil {
		if len(in.Lines) == 0 {
			return nil, domain.ErrInvalidInput
		}
		lines, err = uc.buildLines(in.Lines)
		if err != nil {
			return nil, err
		}
		for i := range lines {
			lines[i].InvoiceID = id
		}
	}

	now := time.Now()
	err = uc.txRunner.Run(ctx, func(tx TxRepos) error {
		if in.Customer != nil {
			existing.Customer = *in.Customer
		}
		if in.Rate != nil {
			existing.Rate = *in.Rate
		}
		existing.UpdatedAt = now
		if err := tx.Invoices.UpdateHeader(existing); err != nil {
			return err
		}
		if lines != nil {
			if err := tx.Invoices.ReplaceLines(id, lines); err != nil {
				return err
			}
			existing.Lines = lines
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return existing, nil
}

// GetByID devuelve la factura con sus líneas.
func (uc *InvoiceUseCase) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	return uc.invoiceRepo.GetByID(id)
}

// List devuelve facturas paginadas (sin líneas).
func (uc *InvoiceUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Invoice, error) {
	return uc.invoiceRepo.List(limit, offset)
}

func (uc *InvoiceUseCase) buildLines(in []dto.InvoiceLineRequest) ([]entity.InvoiceLine, error) {
	lines := make([]entity.InvoiceLine, 0, len(in))
	for _, l := range in {
		if l.ItemID == "" || !l.Amount.GreaterThan(decimal.Zero) || l.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		item, err := uc.itemRepo.GetByID(l.ItemID)
		if err != nil {
			return nil, err
		}
		price := l.UnitPrice
		if price.IsZero() {
			price = item.Price
		}
		lines = append(lines, entity.InvoiceLine{
			ID:        uuid.New().String(),
			ItemID:    l.ItemID,
			Amount:    l.Amount,
			UnitPrice: price,
		})
	}
	return lines, nil
}
