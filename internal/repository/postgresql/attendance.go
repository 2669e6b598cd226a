package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/siteworks/siteops-backend-go/internal/domain/attendance"
	"github.com/siteworks/siteops-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `id, worker_id, project_id, date, present, day_value, overtime_hours,
	bonus, penalty, notes, marked_by, created_at, updated_at`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var a attendance.Attendance
	err := row.Scan(
		&a.ID, &a.WorkerID, &a.ProjectID, &a.Date, &a.Present, &a.DayValue, &a.OvertimeHours,
		&a.Bonus, &a.Penalty, &a.Notes, &a.MarkedBy, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

// Upsert replaces the record for (worker_id, date); re-marking a day is an
// overwrite, never an append.
func (r *attendanceRepository) Upsert(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (worker_id, project_id, date, present, day_value, overtime_hours, bonus, penalty, notes, marked_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (worker_id, date) DO UPDATE SET
			project_id = EXCLUDED.project_id,
			present = EXCLUDED.present,
			day_value = EXCLUDED.day_value,
			overtime_hours = EXCLUDED.overtime_hours,
			bonus = EXCLUDED.bonus,
			penalty = EXCLUDED.penalty,
			notes = EXCLUDED.notes,
			marked_by = EXCLUDED.marked_by,
			updated_at = NOW()
		RETURNING ` + attendanceColumns

	saved, err := scanAttendance(q.QueryRow(ctx, query,
		att.WorkerID, att.ProjectID, att.Date, att.Present, att.DayValue, att.OvertimeHours,
		att.Bonus, att.Penalty, att.Notes, att.MarkedBy,
	))
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to upsert attendance: %w", err)
	}

	return saved, nil
}

func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances WHERE id = $1`

	a, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return a, nil
}

func (r *attendanceRepository) GetByWorkerAndDate(ctx context.Context, workerID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances WHERE worker_id = $1 AND date = $2`

	a, err := scanAttendance(q.QueryRow(ctx, query, workerID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance: %w", err)
	}

	return &a, nil
}

func (r *attendanceRepository) ListByWorkerAndRange(ctx context.Context, workerID, projectID string, start, end time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE worker_id = $1 AND project_id = $2 AND date >= $3 AND date <= $4
		ORDER BY date ASC, created_at ASC
	`

	rows, err := q.Query(ctx, query, workerID, projectID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, a)
	}

	return records, rows.Err()
}

func (r *attendanceRepository) ListByProjectAndDate(ctx context.Context, projectID string, date time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE project_id = $1 AND date = $2
		ORDER BY created_at ASC
	`

	rows, err := q.Query(ctx, query, projectID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, a)
	}

	return records, rows.Err()
}
