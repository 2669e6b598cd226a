package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/siteworks/siteops-backend-go/internal/domain/material"
	"github.com/siteworks/siteops-backend-go/internal/handler/http/response"
	"github.com/siteworks/siteops-backend-go/internal/pkg/notifier"
)

type MaterialHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)

	AppendLog(w http.ResponseWriter, r *http.Request)
	UpdateLog(w http.ResponseWriter, r *http.Request)
	DeleteLog(w http.ResponseWriter, r *http.Request)
	ListLogs(w http.ResponseWriter, r *http.Request)
	Summarize(w http.ResponseWriter, r *http.Request)

	Transfer(w http.ResponseWriter, r *http.Request)

	CreateRequest(w http.ResponseWriter, r *http.Request)
	UpdateRequestStatus(w http.ResponseWriter, r *http.Request)
	ReceiveRequest(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
}

type MaterialHandlerImpl struct {
	materialService material.MaterialService
	notifier        *notifier.Notifier
}

func NewMaterialHandler(materialService material.MaterialService, n *notifier.Notifier) MaterialHandler {
	return &MaterialHandlerImpl{materialService: materialService, notifier: n}
}

func (h *MaterialHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req material.CreateMaterialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateMaterial decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.materialService.CreateMaterial(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Material created successfully", resp)
}

func (h *MaterialHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	materialID := chi.URLParam(r, "id")
	if materialID == "" {
		response.BadRequest(w, "Material ID is required", nil)
		return
	}

	resp, err := h.materialService.GetMaterial(r.Context(), materialID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// List returns depot materials by default; pass ?project_id= for a project's
// stock.
func (h *MaterialHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var projectID *string
	if id := r.URL.Query().Get("project_id"); id != "" {
		projectID = &id
	}

	resp, err := h.materialService.ListMaterials(r.Context(), projectID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

func (h *MaterialHandlerImpl) AppendLog(w http.ResponseWriter, r *http.Request) {
	var req material.AppendLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("AppendLog decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.MaterialID = chi.URLParam(r, "id")

	resp, err := h.materialService.AppendLog(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Material log created successfully", resp)
}

func (h *MaterialHandlerImpl) UpdateLog(w http.ResponseWriter, r *http.Request) {
	var req material.UpdateLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateLog decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.LogID = chi.URLParam(r, "logID")

	resp, err := h.materialService.UpdateLog(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Material log updated successfully", resp)
}

func (h *MaterialHandlerImpl) DeleteLog(w http.ResponseWriter, r *http.Request) {
	logID := chi.URLParam(r, "logID")
	if logID == "" {
		response.BadRequest(w, "Log ID is required", nil)
		return
	}

	if err := h.materialService.DeleteLog(r.Context(), logID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Material log deleted successfully", nil)
}

func parseLogWindow(r *http.Request) (from, to *time.Time, err error) {
	if s := r.URL.Query().Get("from"); s != "" {
		t, parseErr := time.ParseInLocation("2006-01-02", s, time.Local)
		if parseErr != nil {
			return nil, nil, parseErr
		}
		from = &t
	}
	if s := r.URL.Query().Get("to"); s != "" {
		t, parseErr := time.ParseInLocation("2006-01-02", s, time.Local)
		if parseErr != nil {
			return nil, nil, parseErr
		}
		// Closed interval: include the whole end day.
		t = t.Add(24*time.Hour - time.Nanosecond)
		to = &t
	}
	return from, to, nil
}

func (h *MaterialHandlerImpl) ListLogs(w http.ResponseWriter, r *http.Request) {
	materialID := chi.URLParam(r, "id")
	if materialID == "" {
		response.BadRequest(w, "Material ID is required", nil)
		return
	}

	from, to, err := parseLogWindow(r)
	if err != nil {
		response.BadRequest(w, "from/to must be in YYYY-MM-DD format", nil)
		return
	}

	resp, err := h.materialService.ListLogs(r.Context(), materialID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

func (h *MaterialHandlerImpl) Summarize(w http.ResponseWriter, r *http.Request) {
	materialID := chi.URLParam(r, "id")
	if materialID == "" {
		response.BadRequest(w, "Material ID is required", nil)
		return
	}

	from, to, err := parseLogWindow(r)
	if err != nil {
		response.BadRequest(w, "from/to must be in YYYY-MM-DD format", nil)
		return
	}

	resp, err := h.materialService.Summarize(r.Context(), materialID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

func (h *MaterialHandlerImpl) Transfer(w http.ResponseWriter, r *http.Request) {
	var req material.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Transfer decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.materialService.Transfer(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Material transferred successfully", resp)
}

func (h *MaterialHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req material.CreateRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateMaterialRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, events, err := h.materialService.CreateRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	h.notifier.Dispatch(r.Context(), events)

	response.Created(w, "Material request created successfully", resp)
}

func (h *MaterialHandlerImpl) UpdateRequestStatus(w http.ResponseWriter, r *http.Request) {
	var req material.UpdateRequestStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateRequestStatus decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RequestID = chi.URLParam(r, "id")

	resp, events, err := h.materialService.UpdateRequestStatus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	h.notifier.Dispatch(r.Context(), events)

	response.SuccessWithMessage(w, "Material request updated successfully", resp)
}

func (h *MaterialHandlerImpl) ReceiveRequest(w http.ResponseWriter, r *http.Request) {
	var req material.ReceiveRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ReceiveRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RequestID = chi.URLParam(r, "id")

	resp, events, err := h.materialService.ReceiveRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	h.notifier.Dispatch(r.Context(), events)

	response.SuccessWithMessage(w, "Material request received successfully", resp)
}

func (h *MaterialHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")
	if projectID == "" {
		response.BadRequest(w, "Project ID is required", nil)
		return
	}

	var status *material.RequestStatus
	if s := r.URL.Query().Get("status"); s != "" {
		st := material.RequestStatus(s)
		status = &st
	}

	resp, err := h.materialService.ListRequests(r.Context(), projectID, status)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}
