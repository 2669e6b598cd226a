package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/siteworks/siteops-backend-go/internal/domain/material"
	"github.com/siteworks/siteops-backend-go/internal/pkg/database"
)

type materialRequestRepository struct {
	db *database.DB
}

func NewMaterialRequestRepository(db *database.DB) material.MaterialRequestRepository {
	return &materialRequestRepository{db: db}
}

const materialRequestColumns = `id, requester_id, project_id, material_id, material_name, unit, quantity,
	status, admin_notes, received_quantity, received_cost, source, delivered_by,
	received_at, delivery_proof_url, created_at, updated_at`

func scanMaterialRequest(row pgx.Row) (material.MaterialRequest, error) {
	var r material.MaterialRequest
	err := row.Scan(
		&r.ID, &r.RequesterID, &r.ProjectID, &r.MaterialID, &r.MaterialName, &r.Unit, &r.Quantity,
		&r.Status, &r.AdminNotes, &r.ReceivedQuantity, &r.ReceivedCost, &r.Source, &r.DeliveredBy,
		&r.ReceivedAt, &r.DeliveryProofURL, &r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

func (r *materialRequestRepository) Create(ctx context.Context, req material.MaterialRequest) (material.MaterialRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO material_requests (requester_id, project_id, material_id, material_name, unit, quantity, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + materialRequestColumns

	saved, err := scanMaterialRequest(q.QueryRow(ctx, query,
		req.RequesterID, req.ProjectID, req.MaterialID, req.MaterialName, req.Unit, req.Quantity, req.Status,
	))
	if err != nil {
		return material.MaterialRequest{}, fmt.Errorf("failed to create material request: %w", err)
	}

	return saved, nil
}

func (r *materialRequestRepository) getByID(ctx context.Context, id string, forUpdate bool) (material.MaterialRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + materialRequestColumns + ` FROM material_requests WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	req, err := scanMaterialRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return material.MaterialRequest{}, material.ErrRequestNotFound
		}
		return material.MaterialRequest{}, fmt.Errorf("failed to get material request: %w", err)
	}

	return req, nil
}

func (r *materialRequestRepository) GetByID(ctx context.Context, id string) (material.MaterialRequest, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate locks the request row so concurrent status transitions
// on the same request serialize within their transactions.
func (r *materialRequestRepository) GetByIDForUpdate(ctx context.Context, id string) (material.MaterialRequest, error) {
	return r.getByID(ctx, id, true)
}

func (r *materialRequestRepository) Update(ctx context.Context, req material.MaterialRequest) (material.MaterialRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE material_requests
		SET status = $2, admin_notes = $3, received_quantity = $4, received_cost = $5,
			source = $6, delivered_by = $7, received_at = $8, delivery_proof_url = $9,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + materialRequestColumns

	saved, err := scanMaterialRequest(q.QueryRow(ctx, query,
		req.ID, req.Status, req.AdminNotes, req.ReceivedQuantity, req.ReceivedCost,
		req.Source, req.DeliveredBy, req.ReceivedAt, req.DeliveryProofURL,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return material.MaterialRequest{}, material.ErrRequestNotFound
		}
		return material.MaterialRequest{}, fmt.Errorf("failed to update material request: %w", err)
	}

	return saved, nil
}

func (r *materialRequestRepository) ListByProject(ctx context.Context, projectID string, status *material.RequestStatus) ([]material.MaterialRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + materialRequestColumns + ` FROM material_requests WHERE project_id = $1`
	args := []interface{}{projectID}
	if status != nil {
		args = append(args, *status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list material requests: %w", err)
	}
	defer rows.Close()

	var requests []material.MaterialRequest
	for rows.Next() {
		req, err := scanMaterialRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan material request: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, rows.Err()
}
