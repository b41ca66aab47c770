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
)

func newEntryUC(f *fixture) *inventory.EntryUseCase {
	return inventory.NewEntryUseCase(f.txRunner, &memEntryRepo{f.store}, f.items, f.warehouses)
}

func seedEntryFixture() *fixture {
	f := newFixture()
	f.seedWarehouse(whOrigen, "BOD-PRINCIPAL")
	f.seedWarehouse(whDestino, "BOD-SUCURSAL")
	f.seedItem(itemA, "WIDGET")
	return f
}

// Crear suma el stock de cada línea en su bodega inmediatamente: la entrada
// no tiene máquina de estados.
func TestEntry_CrearSumaStock(t *testing.T) {
	f := seedEntryFixture()
	uc := newEntryUC(f)

	entry, err := uc.Create(context.Background(), dto.CreateEntryRequest{
		Description: "recepción inicial",
		Lines: []dto.EntryLineRequest{
			{ItemID: itemA, WarehouseID: whOrigen, Amount: decimal.NewFromInt(10)},
			{ItemID: itemA, WarehouseID: whDestino, Amount: decimal.NewFromInt(3)},
		},
	})
	require.NoError(t, err)
	require.Len(t, entry.Lines, 2)
	assert.Equal(t, "10", f.stockQty(whOrigen, itemA).String())
	assert.Equal(t, "3", f.stockQty(whDestino, itemA).String())
}

// Editar reemplaza las líneas en bloque: lo recibido antes se revierte y las
// líneas nuevas se aplican; la mercancía no se recibe dos veces.
func TestEntry_EditarRevierteYReaplica(t *testing.T) {
	f := seedEntryFixture()
	uc := newEntryUC(f)

	entry, err := uc.Create(context.Background(), dto.CreateEntryRequest{
		Lines: []dto.EntryLineRequest{
			{ItemID: itemA, WarehouseID: whOrigen, Amount: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)

	updated, err := uc.Update(context.Background(), entry.ID, dto.UpdateEntryRequest{
		Lines: []dto.EntryLineRequest{
			{ItemID: itemA, WarehouseID: whOrigen, Amount: decimal.NewFromInt(4)},
		},
	})
	require.NoError(t, err)
	require.Len(t, updated.Lines, 1)
	assert.Equal(t, "4", updated.Lines[0].Amount.String())
	// 0 + 10 - 10 + 4 = 4, no 14.
	assert.Equal(t, "4", f.stockQty(whOrigen, itemA).String())
}

// Editar puede mover la recepción a otra bodega: la original vuelve a su
// nivel previo.
func TestEntry_EditarCambiaDeBodega(t *testing.T) {
	f := seedEntryFixture()
	uc := newEntryUC(f)

	entry, err := uc.Create(context.Background(), dto.CreateEntryRequest{
		Lines: []dto.EntryLineRequest{
			{ItemID: itemA, WarehouseID: whOrigen, Amount: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)

	_, err = uc.Update(context.Background(), entry.ID, dto.UpdateEntryRequest{
		Lines: []dto.EntryLineRequest{
			{ItemID: itemA, WarehouseID: whDestino, Amount: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "0", f.stockQty(whOrigen, itemA).String())
	assert.Equal(t, "10", f.stockQty(whDestino, itemA).String())
}

// Editar solo la descripción no toca el stock.
func TestEntry_EditarSoloDescripcion(t *testing.T) {
	f := seedEntryFixture()
	uc := newEntryUC(f)

	entry, err := uc.Create(context.Background(), dto.CreateEntryRequest{
		Lines: []dto.EntryLineRequest{
			{ItemID: itemA, WarehouseID: whOrigen, Amount: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)

	desc := "corregida"
	updated, err := uc.Update(context.Background(), entry.ID, dto.UpdateEntryRequest{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "corregida", updated.Description)
	assert.Equal(t, "10", f.stockQty(whOrigen, itemA).String())
}

// Cantidades no positivas y referencias inexistentes son inválidas.
func TestEntry_ValidacionDeLineas(t *testing.T) {
	f := seedEntryFixture()
	uc := newEntryUC(f)

	_, err := uc.Create(context.Background(), dto.CreateEntryRequest{
		Lines: []dto.EntryLineRequest{
			{ItemID: itemA, WarehouseID: whOrigen, Amount: decimal.NewFromInt(-1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(context.Background(), dto.CreateEntryRequest{
		Lines: []dto.EntryLineRequest{
			{ItemID: "no-existe", WarehouseID: whOrigen, Amount: decimal.NewFromInt(1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Create(context.Background(), dto.CreateEntryRequest{Lines: nil})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
