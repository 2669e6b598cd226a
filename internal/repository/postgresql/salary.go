package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/siteworks/siteops-backend-go/internal/domain/salary"
	"github.com/siteworks/siteops-backend-go/internal/pkg/database"
)

type salaryRepository struct {
	db *database.DB
}

func NewSalaryRepository(db *database.DB) salary.SalaryRepository {
	return &salaryRepository{db: db}
}

const salaryColumns = `id, worker_id, project_id, week, base_salary, overtime, overtime_hours,
	bonus, penalty, days_worked, total, status, approved_by, approved_at, created_at, updated_at`

func scanSalaryRecord(row pgx.Row) (salary.SalaryRecord, error) {
	var s salary.SalaryRecord
	err := row.Scan(
		&s.ID, &s.WorkerID, &s.ProjectID, &s.Week,
		&s.Breakdown.BaseSalary, &s.Breakdown.Overtime, &s.Breakdown.OvertimeHours,
		&s.Breakdown.Bonus, &s.Breakdown.Penalty, &s.Breakdown.DaysWorked,
		&s.Total, &s.Status, &s.ApprovedBy, &s.ApprovedAt, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

// Create inserts a snapshot. The uk_salary_worker_week unique constraint
// maps to ErrSalaryRecordExists so concurrent first computations collapse
// to one stored record.
func (r *salaryRepository) Create(ctx context.Context, record salary.SalaryRecord) (salary.SalaryRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_records (worker_id, project_id, week, base_salary, overtime, overtime_hours,
			bonus, penalty, days_worked, total, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + salaryColumns

	saved, err := scanSalaryRecord(q.QueryRow(ctx, query,
		record.WorkerID, record.ProjectID, record.Week,
		record.Breakdown.BaseSalary, record.Breakdown.Overtime, record.Breakdown.OvertimeHours,
		record.Breakdown.Bonus, record.Breakdown.Penalty, record.Breakdown.DaysWorked,
		record.Total, record.Status,
	))
	if err != nil {
		if strings.Contains(err.Error(), "uk_salary_worker_week") {
			return salary.SalaryRecord{}, salary.ErrSalaryRecordExists
		}
		return salary.SalaryRecord{}, fmt.Errorf("failed to create salary record: %w", err)
	}

	return saved, nil
}

func (r *salaryRepository) GetByID(ctx context.Context, id string) (salary.SalaryRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + salaryColumns + ` FROM salary_records WHERE id = $1`

	s, err := scanSalaryRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return salary.SalaryRecord{}, salary.ErrSalaryRecordNotFound
		}
		return salary.SalaryRecord{}, fmt.Errorf("failed to get salary record: %w", err)
	}

	return s, nil
}

func (r *salaryRepository) GetByWorkerAndWeek(ctx context.Context, workerID, week string) (salary.SalaryRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + salaryColumns + ` FROM salary_records WHERE worker_id = $1 AND week = $2`

	s, err := scanSalaryRecord(q.QueryRow(ctx, query, workerID, week))
	if err != nil {
		if err == pgx.ErrNoRows {
			return salary.SalaryRecord{}, salary.ErrSalaryRecordNotFound
		}
		return salary.SalaryRecord{}, fmt.Errorf("failed to get salary record: %w", err)
	}

	return s, nil
}

func (r *salaryRepository) ListByProjectAndWeek(ctx context.Context, projectID, week string) ([]salary.SalaryRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + salaryColumns + `
		FROM salary_records
		WHERE project_id = $1 AND week = $2
		ORDER BY created_at ASC
	`

	rows, err := q.Query(ctx, query, projectID, week)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary records: %w", err)
	}
	defer rows.Close()

	var records []salary.SalaryRecord
	for rows.Next() {
		s, err := scanSalaryRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary record: %w", err)
		}
		records = append(records, s)
	}

	return records, rows.Err()
}

// Approve transitions pending -> approved. The status guard in the WHERE
// clause makes the transition one way even under concurrent approvals.
func (r *salaryRepository) Approve(ctx context.Context, id, approvedBy string) (salary.SalaryRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE salary_records
		SET status = $2, approved_by = $3, approved_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = $4
		RETURNING ` + salaryColumns

	s, err := scanSalaryRecord(q.QueryRow(ctx, query, id, salary.SalaryStatusApproved, approvedBy, salary.SalaryStatusPending))
	if err != nil {
		if err == pgx.ErrNoRows {
			// Distinguish a missing record from one already approved.
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return salary.SalaryRecord{}, getErr
			}
			return salary.SalaryRecord{}, salary.ErrAlreadyApproved
		}
		return salary.SalaryRecord{}, fmt.Errorf("failed to approve salary record: %w", err)
	}

	return s, nil
}
