package repository

import (
	"github.com/clasnet-dev/field-service/backend/internal/domain"
)

func (r *Repository) GetAllTechnicians(search string, typ domain.TechnicianType) ([]*domain.Technician, error) {
	query := `
		SELECT id, name, phone, address, type, expertise, created_at, version
		FROM technicians
		WHERE (name ILIKE $1 OR expertise ILIKE $1)
		  AND ($2 = '' OR type = $2)
		ORDER BY name, id
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, likePattern(search), string(typ))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	technicians := make([]*domain.Technician, 0)
	for rows.Next() {
		t := &domain.Technician{}
		dst := []any{&t.ID, &t.Name, &t.Phone, &t.Address, &t.Type, &t.Expertise, &t.CreatedAt, &t.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		technicians = append(technicians, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return technicians, nil
}

func (r *Repository) GetTechnicianByID(id int64) (*domain.Technician, error) {
	query := `
		SELECT name, phone, address, type, expertise, created_at, version
		FROM technicians
		WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	t := &domain.Technician{ID: id}
	dst := []any{&t.Name, &t.Phone, &t.Address, &t.Type, &t.Expertise, &t.CreatedAt, &t.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return t, nil
}

func (r *Repository) CreateTechnician(t *domain.Technician) error {
	query := `
		INSERT INTO technicians (name, phone, address, type, expertise)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{t.Name, t.Phone, t.Address, t.Type, t.Expertise}
	return r.dbpool.QueryRowContext(ctx, query, args...).Scan(&t.ID, &t.CreatedAt, &t.Version)
}

// UpdateTechnician returns sql.ErrNoRows when the row was changed since it
// was read.
func (r *Repository) UpdateTechnician(t *domain.Technician) error {
	query := `
		UPDATE technicians
		SET
			name = $1,
			phone = $2,
			address = $3,
			type = $4,
			expertise = $5,
			version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING created_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{t.Name, t.Phone, t.Address, t.Type, t.Expertise, t.ID, t.Version}
	return r.dbpool.QueryRowContext(ctx, query, args...).Scan(&t.CreatedAt, &t.Version)
}

func (r *Repository) DeleteTechnician(id int64) error {
	query := `DELETE FROM technicians WHERE id = $1`

	ctx, cancel := r.queryContext()
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	return err
}
