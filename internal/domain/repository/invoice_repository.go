package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// InvoiceRepository define el puerto de persistencia para Invoice y líneas.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	GetByID(id string) (*entity.Invoice, error)
	UpdateHeader(invoice *entity.Invoice) error
	ReplaceLines(invoiceID string, lines []entity.InvoiceLine) error
	// UpdateStatusIf cambia el estado solo si el actual coincide con
	// oldStatus (UPDATE ... WHERE status = old). Devuelve false si ninguna
	// fila cambió: otra petición ganó la carrera o el estado ya era el nuevo.
	UpdateStatusIf(id string, oldStatus, newStatus int) (bool, error)
	List(limit, offset int) ([]*entity.Invoice, error)
}
