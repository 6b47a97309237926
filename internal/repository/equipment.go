package repository

import (
	"github.com/clasnet-dev/field-service/backend/internal/domain"
)

func (r *Repository) GetAllEquipment(search string) ([]*domain.Equipment, error) {
	query := `
		SELECT id, name, unit, stock_quantity, created_at, version
		FROM equipment
		WHERE name ILIKE $1
		ORDER BY name
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, likePattern(search))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	equipment := make([]*domain.Equipment, 0)
	for rows.Next() {
		e := &domain.Equipment{}
		dst := []any{&e.ID, &e.Name, &e.Unit, &e.StockQuantity, &e.CreatedAt, &e.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		equipment = append(equipment, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return equipment, nil
}

func (r *Repository) GetEquipmentByID(id int64) (*domain.Equipment, error) {
	query := `
		SELECT name, unit, stock_quantity, created_at, version
		FROM equipment
		WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	e := &domain.Equipment{ID: id}
	dst := []any{&e.Name, &e.Unit, &e.StockQuantity, &e.CreatedAt, &e.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return e, nil
}

func (r *Repository) CreateEquipment(e *domain.Equipment) error {
	query := `
		INSERT INTO equipment (name, unit, stock_quantity)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	return r.dbpool.QueryRowContext(ctx, query, e.Name, e.Unit, e.StockQuantity).Scan(&e.ID, &e.CreatedAt, &e.Version)
}

func (r *Repository) UpdateEquipment(e *domain.Equipment) error {
	query := `
		UPDATE equipment
		SET
			name = $1,
			unit = $2,
			stock_quantity = $3,
			version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING created_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{e.Name, e.Unit, e.StockQuantity, e.ID, e.Version}
	return r.dbpool.QueryRowContext(ctx, query, args...).Scan(&e.CreatedAt, &e.Version)
}

func (r *Repository) DeleteEquipment(id int64) error {
	query := `DELETE FROM equipment WHERE id = $1`

	ctx, cancel := r.queryContext()
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	return err
}
