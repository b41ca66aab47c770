package ledger_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/ledger"
)

func qty(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

// La verificación devuelve TODOS los faltantes, no solo el primero.
func TestCheckSufficiency_AcumulaTodosLosFaltantes(t *testing.T) {
	reqs := []ledger.Requirement{
		{ItemID: "a", ItemCode: "WIDGET", Amount: qty(5)},
		{ItemID: "b", ItemCode: "GADGET", Amount: qty(3)},
		{ItemID: "c", ItemCode: "GIZMO", Amount: qty(2)},
	}
	available := map[string]decimal.Decimal{
		"a": qty(10), // suficiente
		"b": qty(1),  // faltan 2
		// "c" sin fila: cuenta como 0
	}

	shortfalls := ledger.CheckSufficiency(reqs, available)
	require.Len(t, shortfalls, 2)
	assert.Equal(t, "b", shortfalls[0].ItemID)
	assert.Equal(t, "1", shortfalls[0].Available.String())
	assert.Equal(t, "c", shortfalls[1].ItemID)
	assert.Equal(t, "0", shortfalls[1].Available.String())
}

// Disponible exactamente igual a lo pedido es suficiente.
func TestCheckSufficiency_IgualExactoAlcanza(t *testing.T) {
	reqs := []ledger.Requirement{{ItemID: "a", Amount: qty(5)}}
	available := map[string]decimal.Decimal{"a": qty(5)}
	assert.Empty(t, ledger.CheckSufficiency(reqs, available))
}

// El error agrupado es compatible con errors.Is y lista cada faltante con
// solicitado y disponible.
func TestInsufficientStockError(t *testing.T) {
	err := &ledger.InsufficientStockError{
		WarehouseID: "wh-1",
		Shortfalls: []ledger.Shortfall{
			{ItemID: "a", ItemCode: "WIDGET", Requested: qty(5), Available: qty(1)},
			{ItemID: "b", Requested: qty(3), Available: qty(0)},
		},
	}

	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	msg := err.Error()
	assert.Contains(t, msg, "WIDGET")
	assert.Contains(t, msg, "solicitado 5, disponible 1")
	// Sin código de artículo se usa el ID.
	assert.Contains(t, msg, "artículo b")
}
