package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stafftrack/hrms-backend-go/internal/domain/identity"
	"github.com/stafftrack/hrms-backend-go/internal/domain/request"
	"github.com/stafftrack/hrms-backend-go/internal/handler/http/middleware"
	"github.com/stafftrack/hrms-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	authHandler AuthHandler,
	identityHandler IdentityHandler,
	attendanceHandler AttendanceHandler,
	requestHandler RequestHandler,
	notificationHandler NotificationHandler,
	reportHandler ReportHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hrms-backend"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
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

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/send-otp", authHandler.SendOTP)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/identities", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRoles(identity.RoleAdmin, identity.RoleHR))
					r.Post("/", identityHandler.Create)
					r.Get("/", identityHandler.List)
					r.Put("/{id}/salary", reportHandler.UpdateSalary)
				})
				r.Get("/{id}", identityHandler.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRoles(identity.RoleAdmin))
					r.Delete("/{id}", identityHandler.Deactivate)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", attendanceHandler.List)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRoles(identity.RoleSupervisor, identity.RoleHR, identity.RoleAdmin))
					r.Post("/", attendanceHandler.Mark)
					r.Put("/{id}", attendanceHandler.Update)
				})

				r.Route("/modifications", func(r chi.Router) {
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireRoles(identity.RoleSupervisor))
						r.Post("/", attendanceHandler.RequestModification)
					})

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireRoles(identity.RoleHR, identity.RoleAdmin))
						r.Get("/", attendanceHandler.ListModifications)
						r.Put("/{id}", attendanceHandler.DecideModification)
					})
				})
			})

			requestRoutes := func(r chi.Router, kind request.Kind, submit http.HandlerFunc) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRoles(identity.RoleEmployee, identity.RoleSupervisor))
					r.Post("/apply", submit)
				})
				r.Get("/my", requestHandler.Mine(kind))

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRoles(identity.RoleSupervisor))
					r.Get("/requests", requestHandler.SupervisorQueue(kind))
					r.Put("/update/{id}", requestHandler.Decide(kind, request.StageSupervisor))
					r.Put("/seen/{id}", requestHandler.MarkSeen(kind))
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRoles(identity.RoleHR))
					r.Get("/hr", requestHandler.HRQueue(kind))
					r.Put("/hr/update/{id}", requestHandler.Decide(kind, request.StageHR))
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRoles(identity.RoleAdmin))
					r.Get("/admin", requestHandler.AdminQueue(kind))
					r.Put("/admin/update/{id}", requestHandler.Decide(kind, request.StageAdmin))
				})
			}

			r.Route("/leave", func(r chi.Router) {
				requestRoutes(r, request.KindLeave, requestHandler.SubmitLeave)
			})

			r.Route("/advance", func(r chi.Router) {
				requestRoutes(r, request.KindAdvance, requestHandler.SubmitAdvance)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.List)
				r.Put("/{id}/seen", notificationHandler.MarkSeen)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.RequireRoles(identity.RoleHR, identity.RoleAdmin))
				r.Get("/attendance-monthly", reportHandler.Monthly)
				r.Get("/attendance-monthly/export", reportHandler.ExportXLSX)
				r.Get("/payslip/{id}", reportHandler.Payslip)
			})
		})
	})
	return r
}
