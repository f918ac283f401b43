package sqlite

import (
	"context"
	"time"

	"github.com/tallyhq/crm/internal/crm/domain"
)

type clientsRepo struct {
	db dbtx
}

const clientColumns = `id, owner_id, name, email, phone, company, created_at, updated_at`

func (r *clientsRepo) CreateClient(ctx context.Context, c domain.Client) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO clients (id, owner_id, name, email, phone, company, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.OwnerID, c.Name, c.Email, c.Phone, c.Company, now, now,
	)
	return mapConstraint(err)
}

func (r *clientsRepo) GetClient(ctx context.Context, id, ownerID string) (domain.Client, error) {
	var c domain.Client
	err := r.db.QueryRowContext(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE id = ? AND owner_id = ?`,
		id, ownerID,
	).Scan(&c.ID, &c.OwnerID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return domain.Client{}, mapNotFound(err)
	}
	return c, nil
}

func (r *clientsRepo) ListClients(ctx context.Context, ownerID string) ([]domain.Client, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE owner_id = ? ORDER BY created_at DESC, id DESC`,
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := make([]domain.Client, 0)
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (r *clientsRepo) UpdateClient(ctx context.Context, c domain.Client) error {
	return requireRow(r.db.ExecContext(ctx, `
		UPDATE clients
		SET name = ?, email = ?, phone = ?, company = ?, updated_at = ?
		WHERE id = ? AND owner_id = ?`,
		c.Name, c.Email, c.Phone, c.Company, time.Now().UTC(),
		c.ID, c.OwnerID,
	))
}

func (r *clientsRepo) DeleteClient(ctx context.Context, id, ownerID string) error {
	return requireRow(r.db.ExecContext(ctx,
		`DELETE FROM clients WHERE id = ? AND owner_id = ?`, id, ownerID))
}
