package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/clasnet-dev/field-service/backend/internal/domain"
)

const assignmentColumns = `
	a.id,
	a.client_id,
	a.service_type_id,
	a.lead_technician_id,
	a.start_date,
	a.end_date,
	a.status,
	a.notes,
	a.work_location,
	a.transport_cost,
	a.accommodation_cost,
	a.incidental_equipment_cost,
	a.total_cost,
	a.manual_cost_override,
	a.created_at,
	a.version
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAssignment(s rowScanner) (*domain.Assignment, error) {
	a := &domain.Assignment{
		AssistantIDs: make([]int64, 0),
		Equipment:    make([]domain.AssignmentEquipment, 0),
	}
	var clientID, serviceTypeID, leadID sql.NullInt64

	dst := []any{
		&a.ID,
		&clientID,
		&serviceTypeID,
		&leadID,
		&a.StartDate,
		&a.EndDate,
		&a.Status,
		&a.Notes,
		&a.WorkLocation,
		&a.Expenses.Transport,
		&a.Expenses.Accommodation,
		&a.Expenses.IncidentalEquipment,
		&a.TotalCost,
		&a.ManualCostOverride,
		&a.CreatedAt,
		&a.Version,
	}
	if err := s.Scan(dst...); err != nil {
		return nil, err
	}

	// a deleted relation reads as id 0
	a.ClientID = clientID.Int64
	a.ServiceTypeID = serviceTypeID.Int64
	a.LeadTechnicianID = leadID.Int64

	return a, nil
}

func (r *Repository) loadAssignmentChildren(ctx context.Context, assignments map[int64]*domain.Assignment) error {
	if len(assignments) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(assignments))
	for id := range assignments {
		ids = append(ids, id)
	}

	query := `
		SELECT assignment_id, technician_id
		FROM assignment_assistants
		WHERE assignment_id = ANY($1)
		ORDER BY assignment_id, position
	`
	rows, err := r.dbpool.QueryContext(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var assignmentID, technicianID int64
		if err := rows.Scan(&assignmentID, &technicianID); err != nil {
			return err
		}
		a := assignments[assignmentID]
		a.AssistantIDs = append(a.AssistantIDs, technicianID)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	query = `
		SELECT assignment_id, equipment_id, quantity
		FROM assignment_equipment
		WHERE assignment_id = ANY($1)
		ORDER BY assignment_id, position
	`
	equipmentRows, err := r.dbpool.QueryContext(ctx, query, ids)
	if err != nil {
		return err
	}
	defer equipmentRows.Close()

	for equipmentRows.Next() {
		var assignmentID int64
		var item domain.AssignmentEquipment
		if err := equipmentRows.Scan(&assignmentID, &item.EquipmentID, &item.Quantity); err != nil {
			return err
		}
		a := assignments[assignmentID]
		a.Equipment = append(a.Equipment, item)
	}

	return equipmentRows.Err()
}

func assignmentWhere(f domain.AssignmentFilter) (string, []any) {
	conditions := []string{"TRUE"}
	args := []any{}

	if f.Status != "" {
		args = append(args, string(f.Status))
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", len(args)))
	}
	if f.ClientID > 0 {
		args = append(args, f.ClientID)
		conditions = append(conditions, fmt.Sprintf("a.client_id = $%d", len(args)))
	}
	if f.ServiceTypeID > 0 {
		args = append(args, f.ServiceTypeID)
		conditions = append(conditions, fmt.Sprintf("a.service_type_id = $%d", len(args)))
	}

	return strings.Join(conditions, " AND "), args
}

func (r *Repository) GetAssignments(f domain.AssignmentFilter) (*domain.AssignmentPage, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	where, args := assignmentWhere(f)

	page := &domain.AssignmentPage{
		Assignments: make([]*domain.Assignment, 0),
		Limit:       f.Limit,
		Offset:      f.Offset,
	}

	countQuery := `SELECT COUNT(*) FROM assignments a WHERE ` + where
	if err := r.dbpool.QueryRowContext(ctx, countQuery, args...).Scan(&page.Total); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM assignments a
		WHERE %s
		ORDER BY a.created_at DESC, a.id DESC
		LIMIT $%d OFFSET $%d
	`, assignmentColumns, where, len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[int64]*domain.Assignment)
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		page.Assignments = append(page.Assignments, a)
		byID[a.ID] = a
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadAssignmentChildren(ctx, byID); err != nil {
		return nil, err
	}

	return page, nil
}

func (r *Repository) GetAssignmentByID(id int64) (*domain.Assignment, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `SELECT ` + assignmentColumns + ` FROM assignments a WHERE a.id = $1`
	a, err := scanAssignment(r.dbpool.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}

	if err := r.loadAssignmentChildren(ctx, map[int64]*domain.Assignment{a.ID: a}); err != nil {
		return nil, err
	}

	return a, nil
}

func nullableID(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: id > 0}
}

func insertAssignmentChildren(ctx context.Context, tx *sql.Tx, a *domain.Assignment) error {
	for i, technicianID := range a.AssistantIDs {
		query := `
			INSERT INTO assignment_assistants (assignment_id, technician_id, position)
			VALUES ($1, $2, $3)
		`
		if _, err := tx.ExecContext(ctx, query, a.ID, technicianID, i); err != nil {
			return err
		}
	}

	for i, item := range a.Equipment {
		query := `
			INSERT INTO assignment_equipment (assignment_id, equipment_id, quantity, position)
			VALUES ($1, $2, $3, $4)
		`
		if _, err := tx.ExecContext(ctx, query, a.ID, item.EquipmentID, item.Quantity, i); err != nil {
			return err
		}
	}

	return nil
}

func (r *Repository) CreateAssignment(a *domain.Assignment) error {
	ctx, cancel := r.transactionContext()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO assignments (
			client_id, service_type_id, lead_technician_id, start_date, end_date, status, notes,
			work_location, transport_cost, accommodation_cost, incidental_equipment_cost,
			total_cost, manual_cost_override
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, version
	`
	args := []any{
		nullableID(a.ClientID),
		nullableID(a.ServiceTypeID),
		nullableID(a.LeadTechnicianID),
		a.StartDate,
		a.EndDate,
		a.Status,
		a.Notes,
		a.WorkLocation,
		a.Expenses.Transport,
		a.Expenses.Accommodation,
		a.Expenses.IncidentalEquipment,
		a.TotalCost,
		a.ManualCostOverride,
	}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&a.ID, &a.CreatedAt, &a.Version); err != nil {
		return err
	}

	if err := insertAssignmentChildren(ctx, tx, a); err != nil {
		return err
	}

	return tx.Commit()
}

// UpdateAssignment replaces the assistants and equipment of the assignment
// wholesale. It returns sql.ErrNoRows when the version no longer matches.
func (r *Repository) UpdateAssignment(a *domain.Assignment) error {
	ctx, cancel := r.transactionContext()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		UPDATE assignments
		SET
			client_id = $1,
			service_type_id = $2,
			lead_technician_id = $3,
			start_date = $4,
			end_date = $5,
			status = $6,
			notes = $7,
			work_location = $8,
			transport_cost = $9,
			accommodation_cost = $10,
			incidental_equipment_cost = $11,
			total_cost = $12,
			manual_cost_override = $13,
			version = version + 1
		WHERE id = $14 AND version = $15
		RETURNING created_at, version
	`
	args := []any{
		nullableID(a.ClientID),
		nullableID(a.ServiceTypeID),
		nullableID(a.LeadTechnicianID),
		a.StartDate,
		a.EndDate,
		a.Status,
		a.Notes,
		a.WorkLocation,
		a.Expenses.Transport,
		a.Expenses.Accommodation,
		a.Expenses.IncidentalEquipment,
		a.TotalCost,
		a.ManualCostOverride,
		a.ID,
		a.Version,
	}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&a.CreatedAt, &a.Version); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM assignment_assistants WHERE assignment_id = $1`, a.ID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM assignment_equipment WHERE assignment_id = $1`, a.ID); err != nil {
		return err
	}

	if err := insertAssignmentChildren(ctx, tx, a); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteAssignment removes the assignment; assistants and equipment lines go
// with it through ON DELETE CASCADE.
func (r *Repository) DeleteAssignment(id int64) error {
	query := `DELETE FROM assignments WHERE id = $1`

	ctx, cancel := r.queryContext()
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	return err
}

// GetAssignmentDocument loads everything a printed document shows about an
// assignment. Relations that no longer exist are left nil.
func (r *Repository) GetAssignmentDocument(id int64) (*domain.AssignmentDocument, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT
			a.version,
			a.start_date,
			a.end_date,
			a.status,
			a.notes,
			a.work_location,
			a.transport_cost,
			a.accommodation_cost,
			a.incidental_equipment_cost,
			a.total_cost,
			a.manual_cost_override,
			c.id,
			c.name,
			c.contact_person,
			c.phone,
			c.email,
			c.address,
			st.id,
			st.name,
			st.category,
			st.description,
			st.price,
			t.id,
			t.name,
			t.phone,
			t.address,
			t.type,
			t.expertise
		FROM assignments a
		LEFT JOIN clients c ON c.id = a.client_id
		LEFT JOIN service_types st ON st.id = a.service_type_id
		LEFT JOIN technicians t ON t.id = a.lead_technician_id
		WHERE a.id = $1
	`

	d := &domain.AssignmentDocument{ID: id}
	var row struct {
		ClientID            sql.NullInt64
		ClientName          sql.NullString
		ClientContact       sql.NullString
		ClientPhone         sql.NullString
		ClientEmail         sql.NullString
		ClientAddress       sql.NullString
		ServiceTypeID       sql.NullInt64
		ServiceName         sql.NullString
		ServiceCategory     sql.NullString
		ServiceDescription  sql.NullString
		ServicePrice        sql.NullFloat64
		TechnicianID        sql.NullInt64
		TechnicianName      sql.NullString
		TechnicianPhone     sql.NullString
		TechnicianAddress   sql.NullString
		TechnicianType      sql.NullString
		TechnicianExpertise sql.NullString
	}

	dst := []any{
		&d.Version,
		&d.StartDate,
		&d.EndDate,
		&d.Status,
		&d.Notes,
		&d.WorkLocation,
		&d.Expenses.Transport,
		&d.Expenses.Accommodation,
		&d.Expenses.IncidentalEquipment,
		&d.TotalCost,
		&d.ManualCostOverride,
		&row.ClientID,
		&row.ClientName,
		&row.ClientContact,
		&row.ClientPhone,
		&row.ClientEmail,
		&row.ClientAddress,
		&row.ServiceTypeID,
		&row.ServiceName,
		&row.ServiceCategory,
		&row.ServiceDescription,
		&row.ServicePrice,
		&row.TechnicianID,
		&row.TechnicianName,
		&row.TechnicianPhone,
		&row.TechnicianAddress,
		&row.TechnicianType,
		&row.TechnicianExpertise,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	if row.ClientID.Valid {
		d.Client = &domain.Client{
			ID:            row.ClientID.Int64,
			Name:          row.ClientName.String,
			ContactPerson: row.ClientContact.String,
			Phone:         row.ClientPhone.String,
			Email:         row.ClientEmail.String,
			Address:       row.ClientAddress.String,
		}
	}
	if row.ServiceTypeID.Valid {
		d.ServiceType = &domain.ServiceType{
			ID:          row.ServiceTypeID.Int64,
			Name:        row.ServiceName.String,
			Category:    row.ServiceCategory.String,
			Description: row.ServiceDescription.String,
		}
		scanPrice(d.ServiceType, row.ServicePrice)
	}
	if row.TechnicianID.Valid {
		d.LeadTechnician = &domain.Technician{
			ID:        row.TechnicianID.Int64,
			Name:      row.TechnicianName.String,
			Phone:     row.TechnicianPhone.String,
			Address:   row.TechnicianAddress.String,
			Type:      domain.TechnicianType(row.TechnicianType.String),
			Expertise: row.TechnicianExpertise.String,
		}
	}

	query = `
		SELECT t.id, t.name, t.phone, t.address, t.type, t.expertise
		FROM assignment_assistants aa
		JOIN technicians t ON t.id = aa.technician_id
		WHERE aa.assignment_id = $1
		ORDER BY aa.position
	`
	rows, err := r.dbpool.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	d.Assistants = make([]domain.Technician, 0)
	for rows.Next() {
		var t domain.Technician
		if err := rows.Scan(&t.ID, &t.Name, &t.Phone, &t.Address, &t.Type, &t.Expertise); err != nil {
			return nil, err
		}
		d.Assistants = append(d.Assistants, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	query = `
		SELECT e.name, e.unit, ae.quantity
		FROM assignment_equipment ae
		JOIN equipment e ON e.id = ae.equipment_id
		WHERE ae.assignment_id = $1
		ORDER BY ae.position
	`
	equipmentRows, err := r.dbpool.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer equipmentRows.Close()

	d.Equipment = make([]domain.EquipmentLine, 0)
	for equipmentRows.Next() {
		var line domain.EquipmentLine
		if err := equipmentRows.Scan(&line.Name, &line.Unit, &line.Quantity); err != nil {
			return nil, err
		}
		d.Equipment = append(d.Equipment, line)
	}

	return d, equipmentRows.Err()
}

// GetDocumentFingerprint is the freshness check used by the document cache.
// Besides the assignment version it returns a digest over the ids and
// versions of every row printed on the documents, so editing the client, the
// service type, a technician or an equipment item changes it too.
func (r *Repository) GetDocumentFingerprint(id int64) (int32, string, error) {
	query := `
		SELECT
			a.version,
			md5(concat_ws('|',
				a.version,
				COALESCE(a.client_id, 0) || '.' || COALESCE(c.version, 0),
				COALESCE(a.service_type_id, 0) || '.' || COALESCE(st.version, 0),
				COALESCE(a.lead_technician_id, 0) || '.' || COALESCE(t.version, 0),
				(
					SELECT COALESCE(string_agg(aa.technician_id || '.' || tt.version, ',' ORDER BY aa.position, aa.technician_id), '')
					FROM assignment_assistants aa
					JOIN technicians tt ON tt.id = aa.technician_id
					WHERE aa.assignment_id = a.id
				),
				(
					SELECT COALESCE(string_agg(ae.equipment_id || '.' || e.version, ',' ORDER BY ae.position, ae.equipment_id), '')
					FROM assignment_equipment ae
					JOIN equipment e ON e.id = ae.equipment_id
					WHERE ae.assignment_id = a.id
				)
			))
		FROM assignments a
		LEFT JOIN clients c ON c.id = a.client_id
		LEFT JOIN service_types st ON st.id = a.service_type_id
		LEFT JOIN technicians t ON t.id = a.lead_technician_id
		WHERE a.id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	var (
		version     int32
		fingerprint string
	)
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(&version, &fingerprint); err != nil {
		return 0, "", err
	}

	return version, fingerprint, nil
}
