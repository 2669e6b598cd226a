package material

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"

	"github.com/siteworks/siteops-backend-go/internal/domain/material"
	"github.com/siteworks/siteops-backend-go/internal/pkg/database"
	"github.com/siteworks/siteops-backend-go/internal/repository/postgresql"
)

type MaterialServiceImpl struct {
	materialRepo material.MaterialRepository
	logRepo      material.MaterialLogRepository
	requestRepo  material.MaterialRequestRepository

	// withTx runs fn inside one unit of work with the per-material row
	// locks the repositories take. Tests swap it for a passthrough.
	withTx func(ctx context.Context, fn func(ctx context.Context) error) error
}

func NewMaterialService(
	db *database.DB,
	materialRepo material.MaterialRepository,
	logRepo material.MaterialLogRepository,
	requestRepo material.MaterialRequestRepository,
) material.MaterialService {
	return &MaterialServiceImpl{
		materialRepo: materialRepo,
		logRepo:      logRepo,
		requestRepo:  requestRepo,
		withTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return postgresql.InTransaction(ctx, db, fn)
		},
	}
}

// Helper to get user_id from JWT context
func getClaimsFromContext(ctx context.Context) (userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}

	return userID, nil
}

// ========== MATERIALS ==========

func (s *MaterialServiceImpl) CreateMaterial(ctx context.Context, req material.CreateMaterialRequest) (material.MaterialResponse, error) {
	if err := req.Validate(); err != nil {
		return material.MaterialResponse{}, err
	}

	createdBy, err := getClaimsFromContext(ctx)
	if err != nil {
		return material.MaterialResponse{}, err
	}

	loc := material.Depot()
	if req.ProjectID != nil {
		loc = material.AtProject(*req.ProjectID)
	}

	created, err := s.materialRepo.Create(ctx, material.Material{
		Name:          req.Name,
		Unit:          req.Unit,
		Price:         req.Price,
		Location:      loc,
		StockQuantity: decimal.Zero,
		Category:      req.Category,
		Supplier:      req.Supplier,
		CreatedBy:     createdBy,
	})
	if err != nil {
		return material.MaterialResponse{}, fmt.Errorf("failed to create material: %w", err)
	}

	return mapToMaterialResponse(created), nil
}

func (s *MaterialServiceImpl) GetMaterial(ctx context.Context, id string) (material.MaterialResponse, error) {
	m, err := s.materialRepo.GetByID(ctx, id)
	if err != nil {
		return material.MaterialResponse{}, err
	}
	return mapToMaterialResponse(m), nil
}

func (s *MaterialServiceImpl) ListMaterials(ctx context.Context, projectID *string) ([]material.MaterialResponse, error) {
	loc := material.Depot()
	if projectID != nil {
		loc = material.AtProject(*projectID)
	}

	materials, err := s.materialRepo.ListByLocation(ctx, loc)
	if err != nil {
		return nil, fmt.Errorf("failed to list materials: %w", err)
	}

	result := make([]material.MaterialResponse, 0, len(materials))
	for _, m := range materials {
		result = append(result, mapToMaterialResponse(m))
	}
	return result, nil
}

// ========== LEDGER ==========

// AppendLog writes one movement and adjusts the owning material's cached
// stock in the same unit of work. OUT movements clamp at zero instead of
// failing; shortfall rejection belongs to the request-approval workflow.
func (s *MaterialServiceImpl) AppendLog(ctx context.Context, req material.AppendLogRequest) (material.MaterialLogResponse, error) {
	if err := req.Validate(); err != nil {
		return material.MaterialLogResponse{}, err
	}

	loggedBy, err := getClaimsFromContext(ctx)
	if err != nil {
		return material.MaterialLogResponse{}, err
	}

	date := time.Now()
	if req.Date != nil {
		date, _ = time.ParseInLocation("2006-01-02", *req.Date, time.Local)
	}

	var saved material.MaterialLog
	err = s.withTx(ctx, func(ctx context.Context) error {
		m, err := s.materialRepo.GetByIDForUpdate(ctx, req.MaterialID)
		if err != nil {
			return err
		}

		var newStock decimal.Decimal
		switch material.MovementType(req.Type) {
		case material.MovementIn:
			newStock = material.ApplyInMovement(m.StockQuantity, req.Quantity)
		case material.MovementOut:
			newStock = material.ApplyOutMovement(m.StockQuantity, req.Quantity)
		default:
			return material.ErrInvalidMovementType
		}

		if err := s.materialRepo.UpdateStock(ctx, m.ID, newStock); err != nil {
			return fmt.Errorf("failed to update stock: %w", err)
		}

		saved, err = s.logRepo.Create(ctx, material.MaterialLog{
			MaterialID:  m.ID,
			Type:        material.MovementType(req.Type),
			Quantity:    req.Quantity,
			Date:        date,
			LoggedBy:    loggedBy,
			Cost:        req.Cost,
			Supplier:    req.Supplier,
			DeliveredBy: req.DeliveredBy,
			PhotoURLs:   req.PhotoURLs,
			TaskID:      req.TaskID,
			WorkerID:    req.WorkerID,
			Notes:       req.Notes,
		})
		if err != nil {
			return fmt.Errorf("failed to create material log: %w", err)
		}
		return nil
	})
	if err != nil {
		return material.MaterialLogResponse{}, err
	}

	return mapToLogResponse(saved), nil
}

// UpdateLog changes a ledger entry and applies the quantity delta to the
// material's cached stock, keeping both writes in one unit of work.
func (s *MaterialServiceImpl) UpdateLog(ctx context.Context, req material.UpdateLogRequest) (material.MaterialLogResponse, error) {
	if err := req.Validate(); err != nil {
		return material.MaterialLogResponse{}, err
	}

	var saved material.MaterialLog
	err := s.withTx(ctx, func(ctx context.Context) error {
		l, err := s.logRepo.GetByID(ctx, req.LogID)
		if err != nil {
			return err
		}

		if req.Quantity != nil && !req.Quantity.Equal(l.Quantity) {
			m, err := s.materialRepo.GetByIDForUpdate(ctx, l.MaterialID)
			if err != nil {
				return err
			}

			delta := req.Quantity.Sub(l.Quantity)
			if l.Type == material.MovementOut {
				delta = delta.Neg()
			}

			newStock := material.ApplyDelta(m.StockQuantity, delta)
			if err := s.materialRepo.UpdateStock(ctx, m.ID, newStock); err != nil {
				return fmt.Errorf("failed to update stock: %w", err)
			}
			l.Quantity = *req.Quantity
		}

		if req.Cost != nil {
			l.Cost = req.Cost
		}
		if req.Supplier != nil {
			l.Supplier = req.Supplier
		}
		if req.DeliveredBy != nil {
			l.DeliveredBy = req.DeliveredBy
		}
		if req.Notes != nil {
			l.Notes = req.Notes
		}

		saved, err = s.logRepo.Update(ctx, l)
		if err != nil {
			return fmt.Errorf("failed to update material log: %w", err)
		}
		return nil
	})
	if err != nil {
		return material.MaterialLogResponse{}, err
	}

	return mapToLogResponse(saved), nil
}

// DeleteLog reverse-applies the entry's stock delta before removing it.
func (s *MaterialServiceImpl) DeleteLog(ctx context.Context, logID string) error {
	return s.withTx(ctx, func(ctx context.Context) error {
		l, err := s.logRepo.GetByID(ctx, logID)
		if err != nil {
			return err
		}

		m, err := s.materialRepo.GetByIDForUpdate(ctx, l.MaterialID)
		if err != nil {
			return err
		}

		newStock := material.ApplyDelta(m.StockQuantity, l.Delta().Neg())
		if err := s.materialRepo.UpdateStock(ctx, m.ID, newStock); err != nil {
			return fmt.Errorf("failed to update stock: %w", err)
		}

		if err := s.logRepo.Delete(ctx, logID); err != nil {
			return fmt.Errorf("failed to delete material log: %w", err)
		}
		return nil
	})
}

func (s *MaterialServiceImpl) ListLogs(ctx context.Context, materialID string, from, to *time.Time) ([]material.MaterialLogResponse, error) {
	if _, err := s.materialRepo.GetByID(ctx, materialID); err != nil {
		return nil, err
	}

	logs, err := s.logRepo.ListByMaterial(ctx, materialID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list material logs: %w", err)
	}

	result := make([]material.MaterialLogResponse, 0, len(logs))
	for _, l := range logs {
		result = append(result, mapToLogResponse(l))
	}
	return result, nil
}

// Summarize recomputes period totals from the ledger. The cached stock
// quantity is a lifetime balance and must not leak into window reports.
func (s *MaterialServiceImpl) Summarize(ctx context.Context, materialID string, from, to *time.Time) (material.LogSummaryResponse, error) {
	if _, err := s.materialRepo.GetByID(ctx, materialID); err != nil {
		return material.LogSummaryResponse{}, err
	}

	summary, err := s.logRepo.Summarize(ctx, materialID, from, to)
	if err != nil {
		return material.LogSummaryResponse{}, fmt.Errorf("failed to summarize material logs: %w", err)
	}

	resp := material.LogSummaryResponse{
		MaterialID: summary.MaterialID,
		TotalIn:    summary.TotalIn,
		TotalOut:   summary.TotalOut,
		EntryCount: summary.EntryCount,
	}
	if from != nil {
		str := from.Format("2006-01-02")
		resp.From = &str
	}
	if to != nil {
		str := to.Format("2006-01-02")
		resp.To = &str
	}
	return resp, nil
}

// ========== HELPERS ==========

func mapToMaterialResponse(m material.Material) material.MaterialResponse {
	var projectID *string
	if id, ok := m.Location.Project(); ok {
		projectID = &id
	}

	return material.MaterialResponse{
		ID:            m.ID,
		Name:          m.Name,
		Unit:          m.Unit,
		Price:         m.Price,
		ProjectID:     projectID,
		StockQuantity: m.StockQuantity,
		Category:      m.Category,
		Supplier:      m.Supplier,
	}
}

func mapToLogResponse(l material.MaterialLog) material.MaterialLogResponse {
	return material.MaterialLogResponse{
		ID:          l.ID,
		MaterialID:  l.MaterialID,
		Type:        string(l.Type),
		Quantity:    l.Quantity,
		Date:        l.Date.Format("2006-01-02"),
		LoggedBy:    l.LoggedBy,
		Cost:        l.Cost,
		Supplier:    l.Supplier,
		DeliveredBy: l.DeliveredBy,
		PhotoURLs:   l.PhotoURLs,
		TaskID:      l.TaskID,
		WorkerID:    l.WorkerID,
		Notes:       l.Notes,
	}
}
