package repository

import (
	"github.com/clasnet-dev/field-service/backend/internal/domain"
)

func (r *Repository) GetAllClients(search string) ([]*domain.Client, error) {
	query := `
		SELECT id, name, contact_person, phone, email, address, created_at, version
		FROM clients
		WHERE name ILIKE $1 OR contact_person ILIKE $1
		ORDER BY name
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, likePattern(search))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := make([]*domain.Client, 0)
	for rows.Next() {
		c := &domain.Client{}
		dst := []any{&c.ID, &c.Name, &c.ContactPerson, &c.Phone, &c.Email, &c.Address, &c.CreatedAt, &c.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return clients, nil
}

func (r *Repository) GetClientByID(id int64) (*domain.Client, error) {
	query := `
		SELECT name, contact_person, phone, email, address, created_at, version
		FROM clients
		WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	c := &domain.Client{ID: id}
	dst := []any{&c.Name, &c.ContactPerson, &c.Phone, &c.Email, &c.Address, &c.CreatedAt, &c.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return c, nil
}

func (r *Repository) CreateClient(c *domain.Client) error {
	query := `
		INSERT INTO clients (name, contact_person, phone, email, address)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{c.Name, c.ContactPerson, c.Phone, c.Email, c.Address}
	return r.dbpool.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.CreatedAt, &c.Version)
}

func (r *Repository) UpdateClient(c *domain.Client) error {
	query := `
		UPDATE clients
		SET
			name = $1,
			contact_person = $2,
			phone = $3,
			email = $4,
			address = $5,
			version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING created_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{c.Name, c.ContactPerson, c.Phone, c.Email, c.Address, c.ID, c.Version}
	return r.dbpool.QueryRowContext(ctx, query, args...).Scan(&c.CreatedAt, &c.Version)
}

func (r *Repository) DeleteClient(id int64) error {
	query := `DELETE FROM clients WHERE id = $1`

	ctx, cancel := r.queryContext()
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	return err
}
