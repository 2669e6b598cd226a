package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/siteworks/siteops-backend-go/internal/handler/http/middleware"
	"github.com/siteworks/siteops-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	frontendURL string,
	workerHandler WorkerHandler,
	attendanceHandler AttendanceHandler,
	salaryHandler SalaryHandler,
	materialHandler MaterialHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "siteops"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/workers", func(r chi.Router) {
				r.Post("/", workerHandler.Create)
				r.Get("/{id}", workerHandler.Get)
				r.Put("/{id}", workerHandler.Update)
				r.Delete("/{id}", workerHandler.Deactivate)
				r.Get("/{id}/attendance/summary", attendanceHandler.Aggregate)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/", attendanceHandler.Mark)
			})

			r.Route("/salaries", func(r chi.Router) {
				r.Post("/compute", salaryHandler.ComputeWeekly)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Patch("/{id}/approve", salaryHandler.Approve)
				})
			})

			r.Route("/materials", func(r chi.Router) {
				r.Get("/", materialHandler.List)
				r.Post("/", materialHandler.Create)
				r.Get("/{id}", materialHandler.Get)

				r.Route("/{id}/logs", func(r chi.Router) {
					r.Get("/", materialHandler.ListLogs)
					r.Post("/", materialHandler.AppendLog)
					r.Put("/{logID}", materialHandler.UpdateLog)
					r.Delete("/{logID}", materialHandler.DeleteLog)
				})
				r.Get("/{id}/summary", materialHandler.Summarize)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/transfer", materialHandler.Transfer)
				})
			})

			r.Route("/material-requests", func(r chi.Router) {
				r.Post("/", materialHandler.CreateRequest)
				r.Patch("/{id}/receive", materialHandler.ReceiveRequest)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Patch("/{id}/status", materialHandler.UpdateRequestStatus)
				})
			})

			r.Route("/projects/{projectID}", func(r chi.Router) {
				r.Get("/workers", workerHandler.ListByProject)
				r.Get("/attendance", attendanceHandler.ListByProjectAndDate)
				r.Get("/salaries", salaryHandler.ListWeekly)
				r.Get("/material-requests", materialHandler.ListRequests)
			})
		})
	})
	return r
}
