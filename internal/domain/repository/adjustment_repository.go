package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// AdjustmentRepository define el puerto de persistencia para Adjustment.
type AdjustmentRepository interface {
	Create(adjustment *entity.Adjustment) error
	GetByID(id string) (*entity.Adjustment, error)
	UpdateHeader(adjustment *entity.Adjustment) error
	ReplaceLines(adjustmentID string, lines []entity.AdjustmentLine) error
	// UpdateStatusIf es el compare-and-swap de estado; ver InvoiceRepository.
	UpdateStatusIf(id string, oldStatus, newStatus int) (bool, error)
	List(limit, offset int) ([]*entity.Adjustment, error)
}
