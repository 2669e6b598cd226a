package material

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/siteworks/siteops-backend-go/internal/domain/material"
)

// Transfer moves stock between two projects' materials of the same name.
// The source must hold enough stock; the destination is created on first
// transfer, seeded from the source's unit, category and price. The source
// decrement, destination increment and both ledger entries commit together.
func (s *MaterialServiceImpl) Transfer(ctx context.Context, req material.TransferRequest) (material.TransferResponse, error) {
	if err := req.Validate(); err != nil {
		return material.TransferResponse{}, err
	}
	if req.SourceProjectID == req.TargetProjectID {
		return material.TransferResponse{}, material.ErrSameProjectTransfer
	}

	loggedBy, err := getClaimsFromContext(ctx)
	if err != nil {
		return material.TransferResponse{}, err
	}

	var resp material.TransferResponse
	err = s.withTx(ctx, func(ctx context.Context) error {
		source, err := s.materialRepo.GetByLocationNameForUpdate(ctx, material.AtProject(req.SourceProjectID), req.MaterialName)
		if err != nil {
			return err
		}

		if source.StockQuantity.LessThan(req.Quantity) {
			return fmt.Errorf("%w: %s has %s %s, requested %s",
				material.ErrInsufficientStock, source.Name, source.StockQuantity, source.Unit, req.Quantity)
		}

		target, err := s.materialRepo.GetByLocationNameForUpdate(ctx, material.AtProject(req.TargetProjectID), req.MaterialName)
		if errors.Is(err, material.ErrMaterialNotFound) {
			target, err = s.materialRepo.Create(ctx, material.Material{
				Name:          source.Name,
				Unit:          source.Unit,
				Price:         source.Price,
				Location:      material.AtProject(req.TargetProjectID),
				StockQuantity: decimal.Zero,
				Category:      source.Category,
				Supplier:      source.Supplier,
				CreatedBy:     loggedBy,
			})
		}
		if err != nil {
			return err
		}

		source.StockQuantity = source.StockQuantity.Sub(req.Quantity)
		if err := s.materialRepo.UpdateStock(ctx, source.ID, source.StockQuantity); err != nil {
			return fmt.Errorf("failed to decrement source stock: %w", err)
		}

		target.StockQuantity = material.ApplyInMovement(target.StockQuantity, req.Quantity)
		if err := s.materialRepo.UpdateStock(ctx, target.ID, target.StockQuantity); err != nil {
			return fmt.Errorf("failed to increment target stock: %w", err)
		}

		now := time.Now()
		outNotes := transferNotes(fmt.Sprintf("Transfer to project %s", req.TargetProjectID), req.Notes)
		sourceLog, err := s.logRepo.Create(ctx, material.MaterialLog{
			MaterialID: source.ID,
			Type:       material.MovementOut,
			Quantity:   req.Quantity,
			Date:       now,
			LoggedBy:   loggedBy,
			Notes:      &outNotes,
		})
		if err != nil {
			return fmt.Errorf("failed to create source log: %w", err)
		}

		inNotes := transferNotes(fmt.Sprintf("Transfer from project %s", req.SourceProjectID), req.Notes)
		targetLog, err := s.logRepo.Create(ctx, material.MaterialLog{
			MaterialID: target.ID,
			Type:       material.MovementIn,
			Quantity:   req.Quantity,
			Date:       now,
			LoggedBy:   loggedBy,
			Notes:      &inNotes,
		})
		if err != nil {
			return fmt.Errorf("failed to create target log: %w", err)
		}

		resp = material.TransferResponse{
			SourceMaterial: mapToMaterialResponse(source),
			TargetMaterial: mapToMaterialResponse(target),
			SourceLog:      mapToLogResponse(sourceLog),
			TargetLog:      mapToLogResponse(targetLog),
		}
		return nil
	})
	if err != nil {
		return material.TransferResponse{}, err
	}

	return resp, nil
}

func transferNotes(reference string, notes *string) string {
	if notes == nil || *notes == "" {
		return reference
	}
	return reference + ": " + *notes
}
