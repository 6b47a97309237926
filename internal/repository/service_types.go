package repository

import (
	"database/sql"

	"github.com/clasnet-dev/field-service/backend/internal/domain"
)

func scanPrice(st *domain.ServiceType, price sql.NullFloat64) {
	st.Price = nil
	if price.Valid {
		p := price.Float64
		st.Price = &p
	}
}

func (r *Repository) GetAllServiceTypes(category string, search string) ([]*domain.ServiceType, error) {
	query := `
		SELECT id, name, category, description, price, created_at, version
		FROM service_types
		WHERE ($1 = '' OR category = $1)
		  AND (name ILIKE $2 OR description ILIKE $2)
		ORDER BY category, name
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, category, likePattern(search))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	serviceTypes := make([]*domain.ServiceType, 0)
	for rows.Next() {
		st := &domain.ServiceType{}
		var price sql.NullFloat64
		dst := []any{&st.ID, &st.Name, &st.Category, &st.Description, &price, &st.CreatedAt, &st.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		scanPrice(st, price)
		serviceTypes = append(serviceTypes, st)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return serviceTypes, nil
}

func (r *Repository) GetServiceTypeByID(id int64) (*domain.ServiceType, error) {
	query := `
		SELECT name, category, description, price, created_at, version
		FROM service_types
		WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	st := &domain.ServiceType{ID: id}
	var price sql.NullFloat64
	dst := []any{&st.Name, &st.Category, &st.Description, &price, &st.CreatedAt, &st.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}
	scanPrice(st, price)

	return st, nil
}

func (r *Repository) CreateServiceType(st *domain.ServiceType) error {
	query := `
		INSERT INTO service_types (name, category, description, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{st.Name, st.Category, st.Description, st.Price}
	return r.dbpool.QueryRowContext(ctx, query, args...).Scan(&st.ID, &st.CreatedAt, &st.Version)
}

func (r *Repository) UpdateServiceType(st *domain.ServiceType) error {
	query := `
		UPDATE service_types
		SET
			name = $1,
			category = $2,
			description = $3,
			price = $4,
			version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING created_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{st.Name, st.Category, st.Description, st.Price, st.ID, st.Version}
	return r.dbpool.QueryRowContext(ctx, query, args...).Scan(&st.CreatedAt, &st.Version)
}

func (r *Repository) DeleteServiceType(id int64) error {
	query := `DELETE FROM service_types WHERE id = $1`

	ctx, cancel := r.queryContext()
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	return err
}
