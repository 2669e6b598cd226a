package salary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"

	"github.com/siteworks/siteops-backend-go/internal/domain/attendance"
	"github.com/siteworks/siteops-backend-go/internal/domain/salary"
	"github.com/siteworks/siteops-backend-go/internal/domain/worker"
	"github.com/siteworks/siteops-backend-go/internal/pkg/week"
	attendanceagg "github.com/siteworks/siteops-backend-go/internal/service/attendance"
)

// Overtime is paid time-and-a-half on an assumed 8-hour day.
var overtimeMultiplier = decimal.NewFromFloat(1.5)

type SalaryServiceImpl struct {
	salaryRepo     salary.SalaryRepository
	workerRepo     worker.WorkerRepository
	attendanceRepo attendance.AttendanceRepository
}

func NewSalaryService(
	salaryRepo salary.SalaryRepository,
	workerRepo worker.WorkerRepository,
	attendanceRepo attendance.AttendanceRepository,
) salary.SalaryService {
	return &SalaryServiceImpl{
		salaryRepo:     salaryRepo,
		workerRepo:     workerRepo,
		attendanceRepo: attendanceRepo,
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

// ComputeWeekly implements salary.SalaryService.
func (s *SalaryServiceImpl) ComputeWeekly(ctx context.Context, req salary.ComputeWeeklyRequest) (salary.SalaryRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.SalaryRecordResponse{}, err
	}

	// A stored snapshot short-circuits recomputation, even when attendance
	// changed after it was written.
	existing, err := s.salaryRepo.GetByWorkerAndWeek(ctx, req.WorkerID, req.Week)
	if err == nil {
		return mapToRecordResponse(existing), nil
	}
	if !errors.Is(err, salary.ErrSalaryRecordNotFound) {
		return salary.SalaryRecordResponse{}, fmt.Errorf("failed to check existing salary record: %w", err)
	}

	start, end, err := week.Dates(req.Week)
	if err != nil {
		return salary.SalaryRecordResponse{}, err
	}

	w, err := s.workerRepo.GetByID(ctx, req.WorkerID)
	if err != nil {
		return salary.SalaryRecordResponse{}, err
	}

	records, err := s.attendanceRepo.ListByWorkerAndRange(ctx, req.WorkerID, req.ProjectID, start, endOfDay(end))
	if err != nil {
		return salary.SalaryRecordResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	breakdown := computeBreakdown(w, records)

	record := salary.SalaryRecord{
		WorkerID:  req.WorkerID,
		ProjectID: req.ProjectID,
		Week:      req.Week,
		Breakdown: breakdown,
		Total:     breakdown.Total(),
		Status:    salary.SalaryStatusPending,
	}

	created, err := s.salaryRepo.Create(ctx, record)
	if err != nil {
		if errors.Is(err, salary.ErrSalaryRecordExists) {
			// Lost the race to another computation; the stored snapshot wins.
			stored, err := s.salaryRepo.GetByWorkerAndWeek(ctx, req.WorkerID, req.Week)
			if err != nil {
				return salary.SalaryRecordResponse{}, err
			}
			return mapToRecordResponse(stored), nil
		}
		return salary.SalaryRecordResponse{}, fmt.Errorf("failed to create salary record: %w", err)
	}

	return mapToRecordResponse(created), nil
}

// ListWeekly implements salary.SalaryService.
func (s *SalaryServiceImpl) ListWeekly(ctx context.Context, projectID, weekStr string) ([]salary.SalaryRecordResponse, error) {
	if _, _, err := week.Dates(weekStr); err != nil {
		return nil, err
	}

	workers, err := s.workerRepo.GetByProjectID(ctx, projectID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}

	result := make([]salary.SalaryRecordResponse, 0, len(workers))
	for _, w := range workers {
		resp, err := s.ComputeWeekly(ctx, salary.ComputeWeeklyRequest{
			WorkerID:  w.ID,
			ProjectID: projectID,
			Week:      weekStr,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to compute salary for worker %s: %w", w.ID, err)
		}
		resp.WorkerName = &w.FullName
		result = append(result, resp)
	}

	return result, nil
}

// Approve implements salary.SalaryService.
func (s *SalaryServiceImpl) Approve(ctx context.Context, recordID string) (salary.SalaryRecordResponse, error) {
	approvedBy, err := getClaimsFromContext(ctx)
	if err != nil {
		return salary.SalaryRecordResponse{}, err
	}

	approved, err := s.salaryRepo.Approve(ctx, recordID, approvedBy)
	if err != nil {
		return salary.SalaryRecordResponse{}, err
	}

	return mapToRecordResponse(approved), nil
}

// computeBreakdown walks the week's attendance once. Base pay counts present
// records (see attendanceagg.CountPresentDays); the dayValue-weighted total
// used by attendance reports is a different measure on purpose.
func computeBreakdown(w worker.Worker, records []attendance.Attendance) salary.Breakdown {
	daysWorked := attendanceagg.CountPresentDays(records)

	overtimeHours := decimal.Zero
	bonus := decimal.Zero
	penalty := decimal.Zero
	for _, rec := range records {
		if !rec.Present {
			continue
		}
		overtimeHours = overtimeHours.Add(rec.OvertimeHours)
		bonus = bonus.Add(rec.Bonus)
		penalty = penalty.Add(rec.Penalty)
	}

	baseSalary := w.DailySalary.Mul(decimal.NewFromInt(int64(daysWorked)))
	overtimePay := overtimeHours.Mul(w.HourlyRate()).Mul(overtimeMultiplier)

	return salary.Breakdown{
		BaseSalary:    baseSalary,
		Overtime:      overtimePay,
		OvertimeHours: overtimeHours,
		Bonus:         bonus,
		Penalty:       penalty,
		DaysWorked:    daysWorked,
	}
}

// endOfDay pushes a start-of-day boundary to the last instant of that day so
// Sunday's records fall inside the closed week interval.
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

func mapToRecordResponse(r salary.SalaryRecord) salary.SalaryRecordResponse {
	var approvedAtStr *string
	if r.ApprovedAt != nil {
		str := r.ApprovedAt.Format(time.RFC3339)
		approvedAtStr = &str
	}

	return salary.SalaryRecordResponse{
		ID:        r.ID,
		WorkerID:  r.WorkerID,
		ProjectID: r.ProjectID,
		Week:      r.Week,
		Breakdown: salary.BreakdownResponse{
			BaseSalary:    r.Breakdown.BaseSalary,
			Overtime:      r.Breakdown.Overtime,
			OvertimeHours: r.Breakdown.OvertimeHours,
			Bonus:         r.Breakdown.Bonus,
			Penalty:       r.Breakdown.Penalty,
			DaysWorked:    r.Breakdown.DaysWorked,
		},
		TotalSalary: r.Total,
		Status:      string(r.Status),
		ApprovedBy:  r.ApprovedBy,
		ApprovedAt:  approvedAtStr,
	}
}
