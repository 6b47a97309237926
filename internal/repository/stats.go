package repository

import (
	"time"

	"github.com/clasnet-dev/field-service/backend/internal/domain"
)

func (r *Repository) GetDashboardStats(now time.Time) (*domain.DashboardStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM technicians),
			(SELECT COUNT(*) FROM technicians WHERE type = 'FREELANCE'),
			(SELECT COUNT(*) FROM assignments WHERE status = 'IN_PROGRESS'),
			(SELECT COUNT(*) FROM assignments WHERE status = 'PENDING'),
			(SELECT COUNT(*) FROM assignments WHERE status = 'COMPLETED'),
			(SELECT COUNT(*) FROM clients),
			(SELECT COUNT(*) FROM assignments WHERE start_date >= $1 AND status IN ('PENDING', 'IN_PROGRESS'))
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	s := &domain.DashboardStats{}
	dst := []any{
		&s.TotalTechnicians,
		&s.FreelanceTechnicians,
		&s.ActiveAssignments,
		&s.PendingAssignments,
		&s.CompletedAssignments,
		&s.TotalClients,
		&s.UpcomingJobs,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, now).Scan(dst...); err != nil {
		return nil, err
	}

	return s, nil
}
