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
)

func newAdjustmentUC(f *fixture) *inventory.AdjustmentUseCase {
	return inventory.NewAdjustmentUseCase(f.txRunner, &memAdjustmentRepo{f.store}, f.items, f.warehouses)
}

func seedAdjustmentFixture() *fixture {
	f := newFixture()
	f.seedWarehouse(whOrigen, "BOD-PRINCIPAL")
	f.seedItem(itemA, "WIDGET")
	f.seedItem(itemB, "GADGET")
	return f
}

// Aplicar suma las líneas positivas y resta las negativas, con negativo
// permitido.
func TestAdjustment_AplicarLineasFirmadas(t *testing.T) {
	f := seedAdjustmentFixture()
	f.setStock(whOrigen, itemA, 10)
	f.setStock(whOrigen, itemB, 1)
	uc := newAdjustmentUC(f)

	adjustment, err := uc.Create(context.Background(), dto.CreateAdjustmentRequest{
		WarehouseID: whOrigen,
		Type:        entity.AdjustmentTypeNegative,
		Lines: []dto.AdjustmentLineRequest{
			{ItemID: itemA, Amount: decimal.NewFromInt(5)},
			{ItemID: itemB, Amount: decimal.NewFromInt(-3)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.AdjustmentStatusPending, adjustment.Status)
	// Crear no toca el stock.
	assert.Equal(t, "10", f.stockQty(whOrigen, itemA).String())

	require.NoError(t, uc.Apply(context.Background(), adjustment.ID))
	assert.Equal(t, "15", f.stockQty(whOrigen, itemA).String())
	// La línea negativa puede dejar el nivel bajo cero.
	assert.Equal(t, "-2", f.stockQty(whOrigen, itemB).String())
}

// Aplicar dos veces: el segundo intento es no-op informativo.
func TestAdjustment_DobleAplicacionNoDuplica(t *testing.T) {
	f := seedAdjustmentFixture()
	f.setStock(whOrigen, itemA, 10)
	uc := newAdjustmentUC(f)

	adjustment, err := uc.Create(context.Background(), dto.CreateAdjustmentRequest{
		WarehouseID: whOrigen,
		Type:        entity.AdjustmentTypePositive,
		Lines:       []dto.AdjustmentLineRequest{{ItemID: itemA, Amount: decimal.NewFromInt(5)}},
	})
	require.NoError(t, err)

	require.NoError(t, uc.Apply(context.Background(), adjustment.ID))
	err = uc.Apply(context.Background(), adjustment.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)
	assert.Equal(t, "15", f.stockQty(whOrigen, itemA).String())

	current, err := uc.GetByID(context.Background(), adjustment.ID)
	require.NoError(t, err)
	assert.True(t, current.IsApplied())
}

// La validación previa acumula TODOS los problemas antes de tocar el ledger.
func TestAdjustment_ValidaTodasLasLineasAntesDeAplicar(t *testing.T) {
	f := seedAdjustmentFixture()
	f.setStock(whOrigen, itemA, 10)
	uc := newAdjustmentUC(f)

	adjustment, err := uc.Create(context.Background(), dto.CreateAdjustmentRequest{
		WarehouseID: whOrigen,
		Type:        entity.AdjustmentTypePositive,
		Lines:       []dto.AdjustmentLineRequest{{ItemID: itemA, Amount: decimal.NewFromInt(5)}},
	})
	require.NoError(t, err)

	// El artículo desaparece del catálogo antes de aplicar.
	delete(f.store.items, itemA)

	err = uc.Apply(context.Background(), adjustment.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), itemA)

	// Nada se movió y el ajuste sigue pendiente.
	assert.Equal(t, "10", f.stockQty(whOrigen, itemA).String())
	current, getErr := uc.GetByID(context.Background(), adjustment.ID)
	require.NoError(t, getErr)
	assert.Equal(t, entity.AdjustmentStatusPending, current.Status)
}

// Cantidad cero es inválida al crear.
func TestAdjustment_LineaCeroInvalida(t *testing.T) {
	f := seedAdjustmentFixture()
	uc := newAdjustmentUC(f)

	_, err := uc.Create(context.Background(), dto.CreateAdjustmentRequest{
		WarehouseID: whOrigen,
		Type:        entity.AdjustmentTypePositive,
		Lines:       []dto.AdjustmentLineRequest{{ItemID: itemA, Amount: decimal.Zero}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// El tipo debe ser positive o negative.
func TestAdjustment_TipoInvalido(t *testing.T) {
	f := seedAdjustmentFixture()
	uc := newAdjustmentUC(f)

	_, err := uc.Create(context.Background(), dto.CreateAdjustmentRequest{
		WarehouseID: whOrigen,
		Type:        "mixto",
		Lines:       []dto.AdjustmentLineRequest{{ItemID: itemA, Amount: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
