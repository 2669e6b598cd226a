package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/siteworks/siteops-backend-go/internal/domain/attendance"
	"github.com/siteworks/siteops-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	Mark(w http.ResponseWriter, r *http.Request)
	Aggregate(w http.ResponseWriter, r *http.Request)
	ListByProjectAndDate(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

func (h *AttendanceHandlerImpl) Mark(w http.ResponseWriter, r *http.Request) {
	var req attendance.MarkAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("MarkAttendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.attendanceService.Mark(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance marked successfully", resp)
}

func (h *AttendanceHandlerImpl) Aggregate(w http.ResponseWriter, r *http.Request) {
	workerID := chi.URLParam(r, "id")
	projectID := r.URL.Query().Get("project_id")
	if workerID == "" || projectID == "" {
		response.BadRequest(w, "Worker ID and project_id are required", nil)
		return
	}

	start, err := time.ParseInLocation("2006-01-02", r.URL.Query().Get("start"), time.Local)
	if err != nil {
		response.BadRequest(w, "start must be in YYYY-MM-DD format", nil)
		return
	}
	end, err := time.ParseInLocation("2006-01-02", r.URL.Query().Get("end"), time.Local)
	if err != nil {
		response.BadRequest(w, "end must be in YYYY-MM-DD format", nil)
		return
	}

	summary, err := h.attendanceService.Aggregate(r.Context(), workerID, projectID, start, end)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

func (h *AttendanceHandlerImpl) ListByProjectAndDate(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")
	if projectID == "" {
		response.BadRequest(w, "Project ID is required", nil)
		return
	}

	date, err := time.ParseInLocation("2006-01-02", r.URL.Query().Get("date"), time.Local)
	if err != nil {
		response.BadRequest(w, "date must be in YYYY-MM-DD format", nil)
		return
	}

	records, err := h.attendanceService.ListByProjectAndDate(r.Context(), projectID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}
