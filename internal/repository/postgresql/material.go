package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/siteworks/siteops-backend-go/internal/domain/material"
	"github.com/siteworks/siteops-backend-go/internal/pkg/database"
)

type materialRepository struct {
	db *database.DB
}

func NewMaterialRepository(db *database.DB) material.MaterialRepository {
	return &materialRepository{db: db}
}

const materialColumns = `id, name, unit, price, project_id, stock_quantity, category, supplier, created_by, created_at, updated_at`

// scanMaterial maps the nullable project_id column onto the Location type;
// NULL means the depot pool.
func scanMaterial(row pgx.Row) (material.Material, error) {
	var m material.Material
	var projectID *string
	err := row.Scan(
		&m.ID, &m.Name, &m.Unit, &m.Price, &projectID, &m.StockQuantity,
		&m.Category, &m.Supplier, &m.CreatedBy, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return material.Material{}, err
	}
	if projectID != nil {
		m.Location = material.AtProject(*projectID)
	} else {
		m.Location = material.Depot()
	}
	return m, nil
}

func locationProjectID(loc material.Location) *string {
	if id, ok := loc.Project(); ok {
		return &id
	}
	return nil
}

func (r *materialRepository) Create(ctx context.Context, m material.Material) (material.Material, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO materials (name, unit, price, project_id, stock_quantity, category, supplier, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + materialColumns

	created, err := scanMaterial(q.QueryRow(ctx, query,
		m.Name, m.Unit, m.Price, locationProjectID(m.Location), m.StockQuantity,
		m.Category, m.Supplier, m.CreatedBy,
	))
	if err != nil {
		return material.Material{}, fmt.Errorf("failed to create material: %w", err)
	}

	return created, nil
}

func (r *materialRepository) getByID(ctx context.Context, id string, forUpdate bool) (material.Material, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + materialColumns + ` FROM materials WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	m, err := scanMaterial(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return material.Material{}, material.ErrMaterialNotFound
		}
		return material.Material{}, fmt.Errorf("failed to get material: %w", err)
	}

	return m, nil
}

func (r *materialRepository) GetByID(ctx context.Context, id string) (material.Material, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate locks the material row so concurrent stock mutations on
// the same material serialize within their transactions.
func (r *materialRepository) GetByIDForUpdate(ctx context.Context, id string) (material.Material, error) {
	return r.getByID(ctx, id, true)
}

func (r *materialRepository) getByLocationAndName(ctx context.Context, loc material.Location, name string, forUpdate bool) (material.Material, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + materialColumns + ` FROM materials WHERE project_id IS NOT DISTINCT FROM $1 AND name = $2`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	m, err := scanMaterial(q.QueryRow(ctx, query, locationProjectID(loc), name))
	if err != nil {
		if err == pgx.ErrNoRows {
			return material.Material{}, material.ErrMaterialNotFound
		}
		return material.Material{}, fmt.Errorf("failed to get material by name: %w", err)
	}

	return m, nil
}

func (r *materialRepository) GetByLocationAndName(ctx context.Context, loc material.Location, name string) (material.Material, error) {
	return r.getByLocationAndName(ctx, loc, name, false)
}

func (r *materialRepository) GetByLocationNameForUpdate(ctx context.Context, loc material.Location, name string) (material.Material, error) {
	return r.getByLocationAndName(ctx, loc, name, true)
}

func (r *materialRepository) GetByLocationNameUnitForUpdate(ctx context.Context, loc material.Location, name, unit string) (material.Material, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + materialColumns + `
		FROM materials
		WHERE project_id IS NOT DISTINCT FROM $1 AND name = $2 AND unit = $3
		FOR UPDATE
	`

	m, err := scanMaterial(q.QueryRow(ctx, query, locationProjectID(loc), name, unit))
	if err != nil {
		if err == pgx.ErrNoRows {
			return material.Material{}, material.ErrMaterialNotFound
		}
		return material.Material{}, fmt.Errorf("failed to get material by name and unit: %w", err)
	}

	return m, nil
}

func (r *materialRepository) ListByLocation(ctx context.Context, loc material.Location) ([]material.Material, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + materialColumns + `
		FROM materials
		WHERE project_id IS NOT DISTINCT FROM $1
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query, locationProjectID(loc))
	if err != nil {
		return nil, fmt.Errorf("failed to list materials: %w", err)
	}
	defer rows.Close()

	var materials []material.Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan material: %w", err)
		}
		materials = append(materials, m)
	}

	return materials, rows.Err()
}

func (r *materialRepository) UpdateStock(ctx context.Context, id string, stock decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE materials
		SET stock_quantity = $2, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, stock)
	if err != nil {
		return fmt.Errorf("failed to update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return material.ErrMaterialNotFound
	}

	return nil
}
