package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/siteworks/siteops-backend-go/internal/config"
	appHTTP "github.com/siteworks/siteops-backend-go/internal/handler/http"
	"github.com/siteworks/siteops-backend-go/internal/pkg/database"
	"github.com/siteworks/siteops-backend-go/internal/pkg/jwt"
	"github.com/siteworks/siteops-backend-go/internal/pkg/notifier"
	"github.com/siteworks/siteops-backend-go/internal/repository/postgresql"
	attendanceService "github.com/siteworks/siteops-backend-go/internal/service/attendance"
	materialService "github.com/siteworks/siteops-backend-go/internal/service/material"
	salaryService "github.com/siteworks/siteops-backend-go/internal/service/salary"
	workerService "github.com/siteworks/siteops-backend-go/internal/service/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	workerRepo := postgresql.NewWorkerRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	salaryRepo := postgresql.NewSalaryRepository(db)
	materialRepo := postgresql.NewMaterialRepository(db)
	materialLogRepo := postgresql.NewMaterialLogRepository(db)
	materialRequestRepo := postgresql.NewMaterialRequestRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	eventNotifier := notifier.New(slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("component", "notifier"),
	))

	workerSvc := workerService.NewWorkerService(workerRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, workerRepo)
	salarySvc := salaryService.NewSalaryService(salaryRepo, workerRepo, attendanceRepo)
	materialSvc := materialService.NewMaterialService(db, materialRepo, materialLogRepo, materialRequestRepo)

	workerHandler := appHTTP.NewWorkerHandler(workerSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	salaryHandler := appHTTP.NewSalaryHandler(salarySvc)
	materialHandler := appHTTP.NewMaterialHandler(materialSvc, eventNotifier)

	router := appHTTP.NewRouter(
		jwtService,
		cfg.App.FrontendURL,
		workerHandler,
		attendanceHandler,
		salaryHandler,
		materialHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
