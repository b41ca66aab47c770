package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador.
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste encabezado y líneas. El total nunca se persiste, se
// deriva de las líneas al leer.
func (r *InvoiceRepo) Create(inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (id, code, warehouse_id, customer, rate, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.Code, inv.WarehouseID, nullIfEmpty(inv.Customer),
		inv.Rate, inv.Status, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return r.insertLines(inv.ID, inv.Lines)
}

// GetByID obtiene la factura con sus líneas.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `
		SELECT id, code, warehouse_id, COALESCE(customer, ''), rate, status, created_at, updated_at
		FROM invoices WHERE id = $1`
	var inv entity.Invoice
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&inv.ID, &inv.Code, &inv.WarehouseID, &inv.Customer,
		&inv.Rate, &inv.Status, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}

	lines, err := r.getLines(id)
	if err != nil {
		return nil, err
	}
	inv.Lines = lines
	return &inv, nil
}

// UpdateHeader actualiza cliente, tasa y updated_at. El estado se cambia
// solo vía UpdateStatusIf.
func (r *InvoiceRepo) UpdateHeader(inv *entity.Invoice) error {
	query := `
		UPDATE invoices SET customer = $2, rate = $3, updated_at = $4 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, inv.ID, nullIfEmpty(inv.Customer), inv.Rate, inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReplaceLines reemplaza la colección completa (delete + recreate).
func (r *InvoiceRepo) ReplaceLines(invoiceID string, lines []entity.InvoiceLine) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM invoice_lines WHERE invoice_id = $1`, invoiceID); err != nil {
		return fmt.Errorf("delete invoice lines: %w", err)
	}
	return r.insertLines(invoiceID, lines)
}

// UpdateStatusIf cambia el estado solo si el actual coincide (CAS).
func (r *InvoiceRepo) UpdateStatusIf(id string, oldStatus, newStatus int) (bool, error) {
	query := `
		UPDATE invoices SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2`
	tag, err := r.q.Exec(context.Background(), query, id, oldStatus, newStatus)
	if err != nil {
		return false, fmt.Errorf("update invoice status: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// List lista facturas paginadas, más reciente primero, sin líneas.
func (r *InvoiceRepo) List(limit, offset int) ([]*entity.Invoice, error) {
	query := `
		SELECT id, code, warehouse_id, COALESCE(customer, ''), rate, status, created_at, updated_at
		FROM invoices ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(&inv.ID, &inv.Code, &inv.WarehouseID, &inv.Customer, &inv.Rate, &inv.Status, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		invoices = append(invoices, &inv)
	}
	return invoices, rows.Err()
}

func (r *InvoiceRepo) insertLines(invoiceID string, lines []entity.InvoiceLine) error {
	query := `
		INSERT INTO invoice_lines (id, invoice_id, item_id, amount, unit_price)
		VALUES ($1, $2, $3, $4, $5)`
	for _, line := range lines {
		if _, err := r.q.Exec(context.Background(), query, line.ID, invoiceID, line.ItemID, line.Amount, line.UnitPrice); err != nil {
			return fmt.Errorf("insert invoice line: %w", err)
		}
	}
	return nil
}

func (r *InvoiceRepo) getLines(invoiceID string) ([]entity.InvoiceLine, error) {
	query := `
		SELECT id, invoice_id, item_id, amount, unit_price
		FROM invoice_lines WHERE invoice_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("get invoice lines: %w", err)
	}
	defer rows.Close()

	var lines []entity.InvoiceLine
	for rows.Next() {
		var l entity.InvoiceLine
		if err := rows.Scan(&l.ID, &l.InvoiceID, &l.ItemID, &l.Amount, &l.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan invoice line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
