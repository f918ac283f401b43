package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/tallyhq/crm/internal/crm/domain"
)

type invoicesRepo struct {
	db dbtx
}

const invoiceColumns = `i.id, i.client_id, i.number, i.issue_date, i.due_date,
	i.status, i.total, i.created_at, i.updated_at`

func scanInvoice(scan func(dest ...any) error) (domain.Invoice, error) {
	var (
		inv domain.Invoice
		due sql.NullTime
	)
	err := scan(&inv.ID, &inv.ClientID, &inv.Number, &inv.IssueDate, &due,
		&inv.Status, &inv.Total, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return domain.Invoice{}, err
	}
	inv.DueDate = mapNullTimePtr(due)
	return inv, nil
}

func (r *invoicesRepo) CreateInvoice(ctx context.Context, inv domain.Invoice) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO invoices (id, client_id, number, issue_date, due_date, status, total, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.ClientID, inv.Number, inv.IssueDate, mapOptionalTime(inv.DueDate),
		inv.Status, inv.Total, now, now,
	)
	return mapConstraint(err)
}

func (r *invoicesRepo) GetInvoice(ctx context.Context, id, ownerID string) (domain.Invoice, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+invoiceColumns+`
		FROM invoices i
		JOIN clients c ON c.id = i.client_id
		WHERE i.id = ? AND c.owner_id = ?`,
		id, ownerID,
	)
	inv, err := scanInvoice(row.Scan)
	if err != nil {
		return domain.Invoice{}, mapNotFound(err)
	}
	return inv, nil
}

func (r *invoicesRepo) ListInvoices(ctx context.Context, ownerID string) ([]domain.Invoice, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+invoiceColumns+`
		FROM invoices i
		JOIN clients c ON c.id = i.client_id
		WHERE c.owner_id = ?
		ORDER BY i.created_at DESC, i.id DESC`,
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invoices := make([]domain.Invoice, 0)
	for rows.Next() {
		inv, err := scanInvoice(rows.Scan)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

func (r *invoicesRepo) UpdateInvoice(ctx context.Context, inv domain.Invoice, ownerID string) error {
	return requireRow(r.db.ExecContext(ctx, `
		UPDATE invoices
		SET client_id = ?, number = ?, due_date = ?, status = ?, total = ?, updated_at = ?
		WHERE id = ? AND client_id IN (SELECT id FROM clients WHERE owner_id = ?)`,
		inv.ClientID, inv.Number, mapOptionalTime(inv.DueDate), inv.Status, inv.Total, time.Now().UTC(),
		inv.ID, ownerID,
	))
}

func (r *invoicesRepo) DeleteInvoice(ctx context.Context, id, ownerID string) error {
	return requireRow(r.db.ExecContext(ctx, `
		DELETE FROM invoices
		WHERE id = ? AND client_id IN (SELECT id FROM clients WHERE owner_id = ?)`,
		id, ownerID,
	))
}
