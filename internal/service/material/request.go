package material

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/siteworks/siteops-backend-go/internal/domain/event"
	"github.com/siteworks/siteops-backend-go/internal/domain/material"
	"github.com/siteworks/siteops-backend-go/internal/pkg/validator"
)

// CreateRequest opens a pending material request against a depot material or
// a free-form name/unit. The returned events are the admin fan-out the
// caller delivers after the request is stored.
func (s *MaterialServiceImpl) CreateRequest(ctx context.Context, req material.CreateRequestRequest) (material.MaterialRequestResponse, []event.Event, error) {
	if err := req.Validate(); err != nil {
		return material.MaterialRequestResponse{}, nil, err
	}

	requesterID, err := getClaimsFromContext(ctx)
	if err != nil {
		return material.MaterialRequestResponse{}, nil, err
	}

	name := req.MaterialName
	unit := req.Unit
	if req.MaterialID != nil {
		depot, err := s.materialRepo.GetByID(ctx, *req.MaterialID)
		if err != nil {
			return material.MaterialRequestResponse{}, nil, err
		}
		if !depot.Location.IsDepot() {
			return material.MaterialRequestResponse{}, nil, validator.ValidationErrors{{
				Field:   "material_id",
				Message: "material_id must reference a depot material",
			}}
		}
		name = depot.Name
		unit = depot.Unit
	}

	created, err := s.requestRepo.Create(ctx, material.MaterialRequest{
		RequesterID:  requesterID,
		ProjectID:    req.ProjectID,
		MaterialID:   req.MaterialID,
		MaterialName: name,
		Unit:         unit,
		Quantity:     req.Quantity,
		Status:       material.RequestStatusPending,
	})
	if err != nil {
		return material.MaterialRequestResponse{}, nil, fmt.Errorf("failed to create material request: %w", err)
	}

	events := []event.Event{{
		ID:         event.NewID(),
		Type:       event.TypeRequestCreated,
		Audience:   event.AudienceAdmins,
		RequestID:  created.ID,
		ProjectID:  created.ProjectID,
		Message:    fmt.Sprintf("New material request: %s %s of %s", created.Quantity, created.Unit, created.MaterialName),
		OccurredAt: created.CreatedAt,
	}}

	return mapToRequestResponse(created), events, nil
}

// UpdateRequestStatus moves a pending request to approved or rejected.
// Approving a depot-linked request reserves the stock immediately: the depot
// balance is decremented here, before physical receipt, and exactly once
// because only a pending request can be approved.
func (s *MaterialServiceImpl) UpdateRequestStatus(ctx context.Context, req material.UpdateRequestStatusRequest) (material.MaterialRequestResponse, []event.Event, error) {
	if err := req.Validate(); err != nil {
		return material.MaterialRequestResponse{}, nil, err
	}

	if _, err := getClaimsFromContext(ctx); err != nil {
		return material.MaterialRequestResponse{}, nil, err
	}

	newStatus := material.RequestStatus(req.Status)

	var saved material.MaterialRequest
	err := s.withTx(ctx, func(ctx context.Context) error {
		r, err := s.requestRepo.GetByIDForUpdate(ctx, req.RequestID)
		if err != nil {
			return err
		}

		if r.Status != material.RequestStatusPending {
			return material.StateTransitionError(r.Status, newStatus)
		}

		if newStatus == material.RequestStatusApproved && r.MaterialID != nil {
			depot, err := s.materialRepo.GetByIDForUpdate(ctx, *r.MaterialID)
			if err != nil {
				return err
			}
			if depot.StockQuantity.LessThan(r.Quantity) {
				return fmt.Errorf("%w: depot has %s %s of %s, requested %s",
					material.ErrInsufficientStock, depot.StockQuantity, depot.Unit, depot.Name, r.Quantity)
			}
			if err := s.materialRepo.UpdateStock(ctx, depot.ID, depot.StockQuantity.Sub(r.Quantity)); err != nil {
				return fmt.Errorf("failed to decrement depot stock: %w", err)
			}
		}

		r.Status = newStatus
		if req.AdminNotes != nil {
			r.AdminNotes = req.AdminNotes
		}

		saved, err = s.requestRepo.Update(ctx, r)
		if err != nil {
			return fmt.Errorf("failed to update material request: %w", err)
		}
		return nil
	})
	if err != nil {
		return material.MaterialRequestResponse{}, nil, err
	}

	eventType := event.TypeRequestApproved
	verb := "approved"
	if newStatus == material.RequestStatusRejected {
		eventType = event.TypeRequestRejected
		verb = "rejected"
	}
	events := []event.Event{{
		ID:          event.NewID(),
		Type:        eventType,
		Audience:    event.AudienceRequester,
		RecipientID: saved.RequesterID,
		RequestID:   saved.ID,
		ProjectID:   saved.ProjectID,
		Message:     fmt.Sprintf("Your request for %s was %s", saved.MaterialName, verb),
		OccurredAt:  time.Now(),
	}}

	return mapToRequestResponse(saved), events, nil
}

// ReceiveRequest books physical receipt of an approved request into the
// project's stock. The received quantity may differ from the approved one.
// Receiving an already-received request is an idempotent no-op;
// any other non-approved status is a state error.
func (s *MaterialServiceImpl) ReceiveRequest(ctx context.Context, req material.ReceiveRequestRequest) (material.ReceiveResponse, []event.Event, error) {
	if err := req.Validate(); err != nil {
		return material.ReceiveResponse{}, nil, err
	}

	receivedBy, err := getClaimsFromContext(ctx)
	if err != nil {
		return material.ReceiveResponse{}, nil, err
	}

	var resp material.ReceiveResponse
	var events []event.Event
	err = s.withTx(ctx, func(ctx context.Context) error {
		r, err := s.requestRepo.GetByIDForUpdate(ctx, req.RequestID)
		if err != nil {
			return err
		}

		switch r.Status {
		case material.RequestStatusReceived:
			// Duplicate delivery confirmation from the field app; ack
			// without touching stock again.
			resp = material.ReceiveResponse{Request: mapToRequestResponse(r)}
			return nil
		case material.RequestStatusApproved:
			// proceed
		default:
			return material.StateTransitionError(r.Status, material.RequestStatusReceived)
		}

		name, unit, price, category, err := s.resolveReceivedIdentity(ctx, r, req)
		if err != nil {
			return err
		}

		projMat, err := s.materialRepo.GetByLocationNameUnitForUpdate(ctx, material.AtProject(r.ProjectID), name, unit)
		if errors.Is(err, material.ErrMaterialNotFound) {
			projMat, err = s.materialRepo.Create(ctx, material.Material{
				Name:          name,
				Unit:          unit,
				Price:         price,
				Location:      material.AtProject(r.ProjectID),
				StockQuantity: decimal.Zero,
				Category:      category,
				CreatedBy:     receivedBy,
			})
		}
		if err != nil {
			return err
		}

		projMat.StockQuantity = material.ApplyInMovement(projMat.StockQuantity, req.ReceivedQuantity)
		if err := s.materialRepo.UpdateStock(ctx, projMat.ID, projMat.StockQuantity); err != nil {
			return fmt.Errorf("failed to increment project stock: %w", err)
		}

		now := time.Now()
		notes := fmt.Sprintf("Received via material request %s", r.ID)
		inLog, err := s.logRepo.Create(ctx, material.MaterialLog{
			MaterialID:  projMat.ID,
			Type:        material.MovementIn,
			Quantity:    req.ReceivedQuantity,
			Date:        now,
			LoggedBy:    receivedBy,
			Cost:        req.ReceivedCost,
			Supplier:    req.Source,
			DeliveredBy: req.DeliveredBy,
			Notes:       &notes,
		})
		if err != nil {
			return fmt.Errorf("failed to create reception log: %w", err)
		}

		r.Status = material.RequestStatusReceived
		r.ReceivedQuantity = &req.ReceivedQuantity
		r.ReceivedCost = req.ReceivedCost
		r.Source = req.Source
		r.DeliveredBy = req.DeliveredBy
		r.ReceivedAt = &now
		r.DeliveryProofURL = req.DeliveryProofURL

		saved, err := s.requestRepo.Update(ctx, r)
		if err != nil {
			return fmt.Errorf("failed to update material request: %w", err)
		}

		resp = material.ReceiveResponse{
			Request:  mapToRequestResponse(saved),
			Material: mapToMaterialResponse(projMat),
			Log:      mapToLogResponse(inLog),
		}
		events = append(events, event.Event{
			ID:          event.NewID(),
			Type:        event.TypeRequestReceived,
			Audience:    event.AudienceRequester,
			RecipientID: saved.RequesterID,
			RequestID:   saved.ID,
			ProjectID:   saved.ProjectID,
			Message:     fmt.Sprintf("Delivery of %s %s of %s confirmed", req.ReceivedQuantity, unit, name),
			OccurredAt:  now,
		})
		return nil
	})
	if err != nil {
		return material.ReceiveResponse{}, nil, err
	}

	return resp, events, nil
}

func (s *MaterialServiceImpl) ListRequests(ctx context.Context, projectID string, status *material.RequestStatus) ([]material.MaterialRequestResponse, error) {
	requests, err := s.requestRepo.ListByProject(ctx, projectID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list material requests: %w", err)
	}

	result := make([]material.MaterialRequestResponse, 0, len(requests))
	for _, r := range requests {
		result = append(result, mapToRequestResponse(r))
	}
	return result, nil
}

// resolveReceivedIdentity picks the effective name/unit/price/category for
// the project-local material: the linked depot material when present, the
// request's custom fields otherwise. For custom requests with a known cost
// the unit price is estimated as cost / received quantity.
func (s *MaterialServiceImpl) resolveReceivedIdentity(ctx context.Context, r material.MaterialRequest, req material.ReceiveRequestRequest) (name, unit string, price decimal.Decimal, category *string, err error) {
	if r.MaterialID != nil {
		depot, err := s.materialRepo.GetByID(ctx, *r.MaterialID)
		if err != nil {
			return "", "", decimal.Zero, nil, err
		}
		return depot.Name, depot.Unit, depot.Price, depot.Category, nil
	}

	price = decimal.Zero
	if req.ReceivedCost != nil && req.ReceivedQuantity.IsPositive() {
		price = req.ReceivedCost.Div(req.ReceivedQuantity)
	}
	return r.MaterialName, r.Unit, price, nil, nil
}

func mapToRequestResponse(r material.MaterialRequest) material.MaterialRequestResponse {
	var receivedAtStr *string
	if r.ReceivedAt != nil {
		str := r.ReceivedAt.Format(time.RFC3339)
		receivedAtStr = &str
	}

	return material.MaterialRequestResponse{
		ID:               r.ID,
		RequesterID:      r.RequesterID,
		ProjectID:        r.ProjectID,
		MaterialID:       r.MaterialID,
		MaterialName:     r.MaterialName,
		Unit:             r.Unit,
		Quantity:         r.Quantity,
		Status:           string(r.Status),
		AdminNotes:       r.AdminNotes,
		ReceivedQuantity: r.ReceivedQuantity,
		ReceivedCost:     r.ReceivedCost,
		Source:           r.Source,
		DeliveredBy:      r.DeliveredBy,
		ReceivedAt:       receivedAtStr,
		DeliveryProofURL: r.DeliveryProofURL,
	}
}
