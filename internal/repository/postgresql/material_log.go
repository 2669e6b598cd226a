package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/siteworks/siteops-backend-go/internal/domain/material"
	"github.com/siteworks/siteops-backend-go/internal/pkg/database"
)

type materialLogRepository struct {
	db *database.DB
}

func NewMaterialLogRepository(db *database.DB) material.MaterialLogRepository {
	return &materialLogRepository{db: db}
}

const materialLogColumns = `id, material_id, type, quantity, date, logged_by, cost, supplier,
	delivered_by, photo_urls, task_id, worker_id, notes, created_at, updated_at`

func scanMaterialLog(row pgx.Row) (material.MaterialLog, error) {
	var l material.MaterialLog
	err := row.Scan(
		&l.ID, &l.MaterialID, &l.Type, &l.Quantity, &l.Date, &l.LoggedBy, &l.Cost, &l.Supplier,
		&l.DeliveredBy, &l.PhotoURLs, &l.TaskID, &l.WorkerID, &l.Notes, &l.CreatedAt, &l.UpdatedAt,
	)
	return l, err
}

func (r *materialLogRepository) Create(ctx context.Context, l material.MaterialLog) (material.MaterialLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO material_logs (material_id, type, quantity, date, logged_by, cost, supplier,
			delivered_by, photo_urls, task_id, worker_id, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + materialLogColumns

	saved, err := scanMaterialLog(q.QueryRow(ctx, query,
		l.MaterialID, l.Type, l.Quantity, l.Date, l.LoggedBy, l.Cost, l.Supplier,
		l.DeliveredBy, l.PhotoURLs, l.TaskID, l.WorkerID, l.Notes,
	))
	if err != nil {
		return material.MaterialLog{}, fmt.Errorf("failed to create material log: %w", err)
	}

	return saved, nil
}

func (r *materialLogRepository) GetByID(ctx context.Context, id string) (material.MaterialLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + materialLogColumns + ` FROM material_logs WHERE id = $1`

	l, err := scanMaterialLog(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return material.MaterialLog{}, material.ErrLogNotFound
		}
		return material.MaterialLog{}, fmt.Errorf("failed to get material log: %w", err)
	}

	return l, nil
}

func (r *materialLogRepository) Update(ctx context.Context, l material.MaterialLog) (material.MaterialLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE material_logs
		SET quantity = $2, cost = $3, supplier = $4, delivered_by = $5, notes = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + materialLogColumns

	saved, err := scanMaterialLog(q.QueryRow(ctx, query,
		l.ID, l.Quantity, l.Cost, l.Supplier, l.DeliveredBy, l.Notes,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return material.MaterialLog{}, material.ErrLogNotFound
		}
		return material.MaterialLog{}, fmt.Errorf("failed to update material log: %w", err)
	}

	return saved, nil
}

func (r *materialLogRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM material_logs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete material log: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return material.ErrLogNotFound
	}

	return nil
}

func logWindowClause(from, to *time.Time, args []interface{}) (string, []interface{}) {
	var conditions []string
	if from != nil {
		args = append(args, *from)
		conditions = append(conditions, fmt.Sprintf("date >= $%d", len(args)))
	}
	if to != nil {
		args = append(args, *to)
		conditions = append(conditions, fmt.Sprintf("date <= $%d", len(args)))
	}
	if len(conditions) == 0 {
		return "", args
	}
	return " AND " + strings.Join(conditions, " AND "), args
}

func (r *materialLogRepository) ListByMaterial(ctx context.Context, materialID string, from, to *time.Time) ([]material.MaterialLog, error) {
	q := GetQuerier(ctx, r.db)

	args := []interface{}{materialID}
	window, args := logWindowClause(from, to, args)

	query := `SELECT ` + materialLogColumns + ` FROM material_logs WHERE material_id = $1` +
		window + ` ORDER BY date DESC, created_at DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list material logs: %w", err)
	}
	defer rows.Close()

	var logs []material.MaterialLog
	for rows.Next() {
		l, err := scanMaterialLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan material log: %w", err)
		}
		logs = append(logs, l)
	}

	return logs, rows.Err()
}

// Summarize recomputes period totals from the ledger entries themselves,
// never from the cached stock balance.
func (r *materialLogRepository) Summarize(ctx context.Context, materialID string, from, to *time.Time) (material.LogSummary, error) {
	q := GetQuerier(ctx, r.db)

	args := []interface{}{materialID}
	window, args := logWindowClause(from, to, args)

	query := `
		SELECT
			COALESCE(SUM(quantity) FILTER (WHERE type = 'IN'), 0),
			COALESCE(SUM(quantity) FILTER (WHERE type = 'OUT'), 0),
			COUNT(*)
		FROM material_logs
		WHERE material_id = $1` + window

	summary := material.LogSummary{MaterialID: materialID}
	err := q.QueryRow(ctx, query, args...).Scan(&summary.TotalIn, &summary.TotalOut, &summary.EntryCount)
	if err != nil {
		return material.LogSummary{}, fmt.Errorf("failed to summarize material logs: %w", err)
	}

	return summary, nil
}
