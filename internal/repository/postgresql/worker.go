package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/siteworks/siteops-backend-go/internal/domain/worker"
	"github.com/siteworks/siteops-backend-go/internal/pkg/database"
)

type workerRepository struct {
	db *database.DB
}

func NewWorkerRepository(db *database.DB) worker.WorkerRepository {
	return &workerRepository{db: db}
}

func (r *workerRepository) Create(ctx context.Context, w worker.Worker) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO workers (project_id, full_name, phone_number, trade, daily_salary, active, supervisor_id, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, project_id, full_name, phone_number, trade, daily_salary, active, supervisor_id, created_by, created_at, updated_at
	`

	var created worker.Worker
	err := q.QueryRow(ctx, query,
		w.ProjectID, w.FullName, w.PhoneNumber, w.Trade, w.DailySalary, w.Active, w.SupervisorID, w.CreatedBy,
	).Scan(
		&created.ID, &created.ProjectID, &created.FullName, &created.PhoneNumber, &created.Trade,
		&created.DailySalary, &created.Active, &created.SupervisorID, &created.CreatedBy,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return worker.Worker{}, fmt.Errorf("failed to create worker: %w", err)
	}

	return created, nil
}

func (r *workerRepository) GetByID(ctx context.Context, id string) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, project_id, full_name, phone_number, trade, daily_salary, active, supervisor_id, created_by, created_at, updated_at
		FROM workers
		WHERE id = $1
	`

	var w worker.Worker
	err := q.QueryRow(ctx, query, id).Scan(
		&w.ID, &w.ProjectID, &w.FullName, &w.PhoneNumber, &w.Trade,
		&w.DailySalary, &w.Active, &w.SupervisorID, &w.CreatedBy,
		&w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return worker.Worker{}, worker.ErrWorkerNotFound
		}
		return worker.Worker{}, fmt.Errorf("failed to get worker: %w", err)
	}

	return w, nil
}

func (r *workerRepository) GetByProjectID(ctx context.Context, projectID string, activeOnly bool) ([]worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, project_id, full_name, phone_number, trade, daily_salary, active, supervisor_id, created_by, created_at, updated_at
		FROM workers
		WHERE project_id = $1
	`
	if activeOnly {
		query += ` AND active = TRUE`
	}
	query += ` ORDER BY full_name ASC`

	rows, err := q.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	defer rows.Close()

	var workers []worker.Worker
	for rows.Next() {
		var w worker.Worker
		if err := rows.Scan(
			&w.ID, &w.ProjectID, &w.FullName, &w.PhoneNumber, &w.Trade,
			&w.DailySalary, &w.Active, &w.SupervisorID, &w.CreatedBy,
			&w.CreatedAt, &w.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan worker: %w", err)
		}
		workers = append(workers, w)
	}

	return workers, rows.Err()
}

func (r *workerRepository) Update(ctx context.Context, w worker.Worker) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE workers
		SET full_name = $2, phone_number = $3, trade = $4, daily_salary = $5,
			supervisor_id = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING id, project_id, full_name, phone_number, trade, daily_salary, active, supervisor_id, created_by, created_at, updated_at
	`

	var updated worker.Worker
	err := q.QueryRow(ctx, query,
		w.ID, w.FullName, w.PhoneNumber, w.Trade, w.DailySalary, w.SupervisorID,
	).Scan(
		&updated.ID, &updated.ProjectID, &updated.FullName, &updated.PhoneNumber, &updated.Trade,
		&updated.DailySalary, &updated.Active, &updated.SupervisorID, &updated.CreatedBy,
		&updated.CreatedAt, &updated.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return worker.Worker{}, worker.ErrWorkerNotFound
		}
		return worker.Worker{}, fmt.Errorf("failed to update worker: %w", err)
	}

	return updated, nil
}

func (r *workerRepository) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE workers
		SET active = FALSE, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate worker: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return worker.ErrWorkerNotFound
	}

	return nil
}
