package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"

	"github.com/siteworks/siteops-backend-go/internal/domain/attendance"
	"github.com/siteworks/siteops-backend-go/internal/domain/worker"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	workerRepo     worker.WorkerRepository
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	workerRepo worker.WorkerRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		workerRepo:     workerRepo,
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

// Mark implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Mark(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	markedBy, err := getClaimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	w, err := s.workerRepo.GetByID(ctx, req.WorkerID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !w.Active {
		return attendance.AttendanceResponse{}, worker.ErrWorkerInactive
	}

	date, _ := time.ParseInLocation("2006-01-02", req.Date, time.Local)

	dayValue := decimal.NewFromInt(1)
	if req.DayValue != nil {
		dayValue = *req.DayValue
	}

	rec := attendance.Attendance{
		WorkerID:      req.WorkerID,
		ProjectID:     req.ProjectID,
		Date:          attendance.NormalizeDay(date),
		Present:       req.Present,
		DayValue:      dayValue,
		OvertimeHours: valueOrZero(req.OvertimeHours),
		Bonus:         valueOrZero(req.Bonus),
		Penalty:       valueOrZero(req.Penalty),
		Notes:         req.Notes,
		MarkedBy:      markedBy,
	}

	saved, err := s.attendanceRepo.Upsert(ctx, rec)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to mark attendance: %w", err)
	}

	return mapToResponse(saved), nil
}

// Aggregate implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Aggregate(ctx context.Context, workerID, projectID string, start, end time.Time) (attendance.Summary, error) {
	if start.After(end) {
		return attendance.Summary{}, attendance.ErrInvalidDateRange
	}

	records, err := s.attendanceRepo.ListByWorkerAndRange(ctx, workerID, projectID, start, end)
	if err != nil {
		return attendance.Summary{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	total, byDate := SumDayValue(records)
	return attendance.Summary{
		DaysWorked: total,
		ByDate:     byDate,
	}, nil
}

// ListByProjectAndDate implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListByProjectAndDate(ctx context.Context, projectID string, date time.Time) ([]attendance.AttendanceResponse, error) {
	records, err := s.attendanceRepo.ListByProjectAndDate(ctx, projectID, attendance.NormalizeDay(date))
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	result := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		result = append(result, mapToResponse(rec))
	}
	return result, nil
}

func valueOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

func mapToResponse(rec attendance.Attendance) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:            rec.ID,
		WorkerID:      rec.WorkerID,
		ProjectID:     rec.ProjectID,
		Date:          attendance.DayKey(rec.Date),
		Present:       rec.Present,
		DayValue:      rec.DayValue,
		OvertimeHours: rec.OvertimeHours,
		Bonus:         rec.Bonus,
		Penalty:       rec.Penalty,
		Notes:         rec.Notes,
		MarkedBy:      rec.MarkedBy,
	}
}
