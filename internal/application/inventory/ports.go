package inventory

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// TxRepos agrupa los repositorios atados a una misma transacción de BD.
// Items va incluido porque los movimientos necesitan leer códigos de artículo
// dentro de la transacción (mensajes de faltante).
type TxRepos struct {
	Stock       repository.StockLevelRepository
	Movements   repository.StockMovementRepository
	Items       repository.ItemRepository
	Entries     repository.EntryRepository
	Invoices    repository.InvoiceRepository
	Adjustments repository.AdjustmentRepository
	Transfers   repository.TransferRepository
}

// TxRunner ejecuta fn dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Cualquier error de fn aborta la transacción completa:
// nunca se persiste un movimiento parcial.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx TxRepos) error) error
}
