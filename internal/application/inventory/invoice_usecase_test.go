package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

func newInvoiceUC(f *fixture) *inventory.InvoiceUseCase {
	return inventory.NewInvoiceUseCase(f.txRunner, &memInvoiceRepo{f.store}, f.items, f.warehouses, logger.Nop())
}

func seedInvoiceFixture() *fixture {
	f := newFixture()
	f.seedWarehouse(whOrigen, "BOD-PRINCIPAL")
	f.seedItem(itemA, "WIDGET")
	return f
}

func invoiceLines(amount int64) []dto.InvoiceLineRequest {
	return []dto.InvoiceLineRequest{{
		ItemID:    itemA,
		Amount:    decimal.NewFromInt(amount),
		UnitPrice: decimal.NewFromInt(50),
	}}
}

// Crear una factura nunca toca inventario; siempre nace pendiente.
func TestInvoice_CrearNoTocaStock(t *testing.T) {
	f := seedInvoiceFixture()
	f.setStock(whOrigen, itemA, 10)
	uc := newInvoiceUC(f)

	invoice, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		WarehouseID: whOrigen,
		Customer:    "ACME",
		Lines:       invoiceLines(4),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPending, invoice.Status)
	assert.Equal(t, "1", invoice.Rate.String()) // tasa por defecto
	assert.Equal(t, "10", f.stockQty(whOrigen, itemA).String())
}

// Pagar descuenta y des-pagar restaura: ida y vuelta deja el stock intacto.
func TestInvoice_PagarYDespagarEsIdentidad(t *testing.T) {
	f := seedInvoiceFixture()
	f.setStock(whOrigen, itemA, 10)
	uc := newInvoiceUC(f)

	invoice, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		WarehouseID: whOrigen,
		Lines:       invoiceLines(4),
	})
	require.NoError(t, err)

	require.NoError(t, uc.SetStatus(context.Background(), invoice.ID, entity.InvoiceStatusPaid))
	assert.Equal(t, "6", f.stockQty(whOrigen, itemA).String())

	require.NoError(t, uc.SetStatus(context.Background(), invoice.ID, entity.InvoiceStatusPending))
	assert.Equal(t, "10", f.stockQty(whOrigen, itemA).String())

	current, err := uc.GetByID(context.Background(), invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPending, current.Status)
}

// Pagar con stock insuficiente NO falla: la venta ya está comprometida y el
// nivel queda negativo.
func TestInvoice_PagarPuedeDejarStockNegativo(t *testing.T) {
	f := seedInvoiceFixture()
	f.setStock(whOrigen, itemA, 2)
	uc := newInvoiceUC(f)

	invoice, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		WarehouseID: whOrigen,
		Lines:       invoiceLines(5),
	})
	require.NoError(t, err)

	require.NoError(t, uc.MarkPaid(context.Background(), invoice.ID))
	assert.Equal(t, "-3", f.stockQty(whOrigen, itemA).String())

	// Des-pagar restaura exactamente lo descontado.
	require.NoError(t, uc.MarkPending(context.Background(), invoice.ID))
	assert.Equal(t, "2", f.stockQty(whOrigen, itemA).String())
}

// Pagar dos veces no descuenta dos veces.
func TestInvoice_DoblePagoNoDuplica(t *testing.T) {
	f := seedInvoiceFixture()
	f.setStock(whOrigen, itemA, 10)
	uc := newInvoiceUC(f)

	invoice, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		WarehouseID: whOrigen,
		Lines:       invoiceLines(4),
	})
	require.NoError(t, err)

	require.NoError(t, uc.MarkPaid(context.Background(), invoice.ID))
	err = uc.MarkPaid(context.Background(), invoice.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)
	assert.Equal(t, "6", f.stockQty(whOrigen, itemA).String())
}

// SetStatus al mismo estado es un no-op silencioso.
func TestInvoice_SetStatusMismoEstadoNoHaceNada(t *testing.T) {
	f := seedInvoiceFixture()
	f.setStock(whOrigen, itemA, 10)
	uc := newInvoiceUC(f)

	invoice, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		WarehouseID: whOrigen,
		Lines:       invoiceLines(4),
	})
	require.NoError(t, err)

	require.NoError(t, uc.SetStatus(context.Background(), invoice.ID, entity.InvoiceStatusPending))
	assert.Equal(t, "10", f.stockQty(whOrigen, itemA).String())
}

// El total se deriva de las líneas (Σ cantidad × precio), nunca se persiste.
func TestInvoice_TotalDerivado(t *testing.T) {
	f := seedInvoiceFixture()
	uc := newInvoiceUC(f)

	invoice, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		WarehouseID: whOrigen,
		Lines: []dto.InvoiceLineRequest{
			{ItemID: itemA, Amount: decimal.NewFromInt(3), UnitPrice: decimal.NewFromInt(50)},
			{ItemID: itemA, Amount: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(25)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "200", invoice.Total().String())
}

// Precio unitario cero toma el precio del catálogo.
func TestInvoice_PrecioCeroUsaElDelCatalogo(t *testing.T) {
	f := seedInvoiceFixture()
	uc := newInvoiceUC(f)

	invoice, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		WarehouseID: whOrigen,
		Lines:       []dto.InvoiceLineRequest{{ItemID: itemA, Amount: decimal.NewFromInt(2)}},
	})
	require.NoError(t, err)
	require.Len(t, invoice.Lines, 1)
	assert.Equal(t, "100", invoice.Lines[0].UnitPrice.String()) // precio del item sembrado
}

// Las líneas de una factura pagada no se editan.
func TestInvoice_EditarLineasPagadaFalla(t *testing.T) {
	f := seedInvoiceFixture()
	f.setStock(whOrigen, itemA, 10)
	uc := newInvoiceUC(f)

	invoice, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		WarehouseID: whOrigen,
		Lines:       invoiceLines(4),
	})
	require.NoError(t, err)
	require.NoError(t, uc.MarkPaid(context.Background(), invoice.ID))

	_, err = uc.Update(context.Background(), invoice.ID, dto.UpdateInvoiceRequest{
		Lines: invoiceLines(2),
	})
	assert.ErrorIs(t, err, domain.ErrEditNotPending)

	// El encabezado sí sigue siendo editable.
	customer := "ACME2"
	updated, err := uc.Update(context.Background(), invoice.ID, dto.UpdateInvoiceRequest{Customer: &customer})
	require.NoError(t, err)
	assert.Equal(t, "ACME2", updated.Customer)
}
