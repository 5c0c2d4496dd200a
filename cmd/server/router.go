package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gymdesk/gym-api/internal/api"
	apiMiddleware "github.com/gymdesk/gym-api/internal/api/middleware"
	"github.com/gymdesk/gym-api/internal/domain"
)

// setupRouter creates the router with every route and middleware.
//
// Role policy: reads are open to any authenticated user; student, class and
// routine writes need admin or profe; teacher writes and everything under
// /api/admins need admin. Enrollment is open to students for themselves.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.Trace(app.logger))
	r.Use(app.metrics.Middleware)
	r.Use(middleware.Recoverer)

	authHandler := api.NewAuthHandler(app.authService, app.metrics)
	studentHandler := api.NewStudentHandler(app.studentService, app.metrics)
	teacherHandler := api.NewTeacherHandler(app.teacherService, app.metrics)
	adminHandler := api.NewAdminHandler(app.adminService, app.metrics)
	classHandler := api.NewClassHandler(app.classService, app.metrics)
	routineHandler := api.NewRoutineHandler(app.routineService, app.metrics)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	staff := apiMiddleware.RequireRole(domain.RoleAdmin, domain.RoleTeacher)
	adminOnly := apiMiddleware.RequireRole(domain.RoleAdmin)

	r.Route("/api", func(r chi.Router) {
		r.With(apiMiddleware.RateLimit(app.loginLimiter, "login", authHandler.LoginRateLimited)).
			Post("/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Route("/alumnos", func(r chi.Router) {
				r.Get("/", studentHandler.List)
				r.Get("/{id}", studentHandler.Get)
				r.With(staff).Post("/", studentHandler.Create)
				r.With(staff).Put("/{id}", studentHandler.Update)
				r.With(staff).Delete("/{id}", studentHandler.Delete)
			})

			r.Route("/profesores", func(r chi.Router) {
				r.Get("/", teacherHandler.List)
				r.Get("/{id}", teacherHandler.Get)
				r.With(adminOnly).Post("/", teacherHandler.Create)
				r.With(adminOnly).Put("/{id}", teacherHandler.Update)
				r.With(adminOnly).Delete("/{id}", teacherHandler.Delete)
			})

			r.Route("/admins", func(r chi.Router) {
				r.Use(adminOnly)
				r.Get("/", adminHandler.List)
				r.Get("/{id}", adminHandler.Get)
				r.Post("/", adminHandler.Create)
				r.Put("/{id}", adminHandler.Update)
				r.Delete("/{id}", adminHandler.Delete)
			})

			r.Route("/clases", func(r chi.Router) {
				r.Get("/", classHandler.List)
				r.Get("/{id}", classHandler.Get)
				r.Get("/{id}/alumnos", classHandler.Roster)
				r.With(staff).Get("/{id}/alumnos/export", classHandler.ExportRoster)
				r.With(staff).Post("/", classHandler.Create)
				r.With(staff).Put("/{id}", classHandler.Update)
				r.With(staff).Delete("/{id}", classHandler.Delete)
				r.Post("/{id}/inscribir/{alumnoID}", classHandler.Enroll)
				r.Post("/{id}/desinscribir/{alumnoID}", classHandler.Unenroll)
			})

			r.Route("/rutinas", func(r chi.Router) {
				r.Get("/", routineHandler.List)
				r.Get("/{id}", routineHandler.Get)
				r.With(staff).Post("/", routineHandler.Create)
				r.With(staff).Put("/{id}", routineHandler.Update)
				r.With(staff).Delete("/{id}", routineHandler.Delete)
			})
		})
	})

	r.Method(http.MethodGet, "/metrics", app.metrics.Handler())

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status, body := http.StatusOK, "OK"
		if err := app.backend.Ping(ctx); err != nil {
			app.logger.Warn("Health check failed", "error", err)
			status, body = http.StatusServiceUnavailable, "database unavailable"
		}
		w.WriteHeader(status)
		if _, err := w.Write([]byte(body)); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
