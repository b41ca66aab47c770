package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// TransferRepository define el puerto de persistencia para Transfer.
type TransferRepository interface {
	Create(transfer *entity.Transfer) error
	GetByID(id string) (*entity.Transfer, error)
	UpdateHeader(transfer *entity.Transfer) error
	ReplaceLines(transferID string, lines []entity.TransferLine) error
	// UpdateStatusIf es el compare-and-swap de estado; ver InvoiceRepository.
	UpdateStatusIf(id string, oldStatus, newStatus int) (bool, error)
	List(limit, offset int) ([]*entity.Transfer, error)
}
