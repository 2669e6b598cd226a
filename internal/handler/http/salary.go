package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/siteworks/siteops-backend-go/internal/domain/salary"
	"github.com/siteworks/siteops-backend-go/internal/handler/http/response"
)

type SalaryHandler interface {
	ComputeWeekly(w http.ResponseWriter, r *http.Request)
	ListWeekly(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
}

type SalaryHandlerImpl struct {
	salaryService salary.SalaryService
}

func NewSalaryHandler(salaryService salary.SalaryService) SalaryHandler {
	return &SalaryHandlerImpl{salaryService: salaryService}
}

func (h *SalaryHandlerImpl) ComputeWeekly(w http.ResponseWriter, r *http.Request) {
	var req salary.ComputeWeeklyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ComputeWeekly decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.salaryService.ComputeWeekly(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

func (h *SalaryHandlerImpl) ListWeekly(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")
	week := r.URL.Query().Get("week")
	if projectID == "" || week == "" {
		response.BadRequest(w, "Project ID and week are required", nil)
		return
	}

	records, err := h.salaryService.ListWeekly(r.Context(), projectID, week)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

func (h *SalaryHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "id")
	if recordID == "" {
		response.BadRequest(w, "Salary record ID is required", nil)
		return
	}

	resp, err := h.salaryService.Approve(r.Context(), recordID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary record approved successfully", resp)
}
