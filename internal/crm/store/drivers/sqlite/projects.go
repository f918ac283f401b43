package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/tallyhq/crm/internal/crm/domain"
)

type projectsRepo struct {
	db dbtx
}

// Projects have no owner column of their own. Every read and mutation joins
// through clients so the owner predicate travels with the query.
const projectColumns = `p.id, p.client_id, p.title, p.status, p.start_date, p.due_date,
	p.payment_currency, p.payment_status, p.payment_amount, p.created_at, p.updated_at`

func scanProject(scan func(dest ...any) error) (domain.Project, error) {
	var (
		p   domain.Project
		due sql.NullTime
	)
	err := scan(&p.ID, &p.ClientID, &p.Title, &p.Status, &p.StartDate, &due,
		&p.PaymentCurrency, &p.PaymentStatus, &p.PaymentAmount, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.Project{}, err
	}
	p.DueDate = mapNullTimePtr(due)
	return p, nil
}

func (r *projectsRepo) CreateProject(ctx context.Context, p domain.Project) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO projects (id, client_id, title, status, start_date, due_date,
			payment_currency, payment_status, payment_amount, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.ClientID, p.Title, p.Status, p.StartDate, mapOptionalTime(p.DueDate),
		p.PaymentCurrency, p.PaymentStatus, p.PaymentAmount, now, now,
	)
	return mapConstraint(err)
}

func (r *projectsRepo) GetProject(ctx context.Context, id, ownerID string) (domain.Project, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+projectColumns+`
		FROM projects p
		JOIN clients c ON c.id = p.client_id
		WHERE p.id = ? AND c.owner_id = ?`,
		id, ownerID,
	)
	p, err := scanProject(row.Scan)
	if err != nil {
		return domain.Project{}, mapNotFound(err)
	}
	return p, nil
}

func (r *projectsRepo) ListProjects(ctx context.Context, ownerID, clientID string) ([]domain.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects p
		JOIN clients c ON c.id = p.client_id
		WHERE c.owner_id = ?`
	args := []any{ownerID}

	// A clientID outside the owner's tenant fails the join and yields an
	// empty list rather than an error.
	if clientID != "" {
		query += ` AND p.client_id = ?`
		args = append(args, clientID)
	}
	query += ` ORDER BY p.created_at DESC, p.id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := make([]domain.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows.Scan)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *projectsRepo) UpdateProject(ctx context.Context, p domain.Project, ownerID string) error {
	return requireRow(r.db.ExecContext(ctx, `
		UPDATE projects
		SET client_id = ?, title = ?, status = ?, due_date = ?,
			payment_currency = ?, payment_status = ?, payment_amount = ?, updated_at = ?
		WHERE id = ? AND client_id IN (SELECT id FROM clients WHERE owner_id = ?)`,
		p.ClientID, p.Title, p.Status, mapOptionalTime(p.DueDate),
		p.PaymentCurrency, p.PaymentStatus, p.PaymentAmount, time.Now().UTC(),
		p.ID, ownerID,
	))
}

func (r *projectsRepo) DeleteProject(ctx context.Context, id, ownerID string) error {
	return requireRow(r.db.ExecContext(ctx, `
		DELETE FROM projects
		WHERE id = ? AND client_id IN (SELECT id FROM clients WHERE owner_id = ?)`,
		id, ownerID,
	))
}
