// Copyright (c) 2025-2026 Sitekit Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/sitekit-cms/sitekit-go/internal/middleware"
)

// RouterConfig tunes the HTTP middleware stack.
type RouterConfig struct {
	IsDev          bool
	RequestTimeout time.Duration
	PublicRPS      float64
	PublicBurst    int
}

// DefaultRouterConfig returns production middleware settings.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RequestTimeout: 30 * time.Second,
		PublicRPS:      50,
		PublicBurst:    100,
	}
}

// Routes builds the API router.
func (h *Handler) Routes(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDev)))
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	publicLimiter := middleware.NewGlobalRateLimiter(cfg.PublicRPS, cfg.PublicBurst)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", h.Health)

		// Public read surface and form submissions.
		r.Group(func(r chi.Router) {
			r.Use(publicLimiter.Middleware())

			r.Get("/pages/{page}", h.GetPageSections)
			r.Get("/services", h.ListServices)
			r.Get("/services/{slug}", h.GetServiceBySlug)
			r.Get("/projects", h.ListProjects)
			r.Get("/projects/{slug}", h.GetProjectBySlug)
			r.Get("/posts", h.ListPosts)
			r.Get("/posts/{slug}", h.GetPostBySlug)
			r.Get("/team", h.ListTeamMembers)
			r.Get("/vacancies", h.ListVacancies)
			r.Get("/vacancies/{slug}", h.GetVacancyBySlug)
			r.Post("/vacancies/{id}/apply", h.ApplyToVacancy)
			r.Post("/contact", h.SubmitContact)
		})

		r.Route("/admin", func(r chi.Router) {
			// Credential endpoints sit outside the token check.
			r.Group(func(r chi.Router) {
				if h.prot != nil {
					r.Use(h.prot.Middleware())
				}
				r.Post("/signup", h.Signup)
				r.Post("/login", h.Login)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(h.issuer, h.db))
				r.Use(middleware.RequireAdmin())

				r.Get("/me", h.Me)
				r.Post("/change-password", h.ChangePassword)

				r.Get("/pages", h.ListSections)
				r.Post("/pages", h.UpsertSection)
				r.Delete("/pages/{id}", h.DeleteSection)

				r.Get("/services", h.AdminListServices)
				r.Post("/services", h.CreateService)
				r.Put("/services/{id}", h.UpdateService)
				r.Delete("/services/{id}", h.DeleteService)

				r.Get("/projects", h.AdminListProjects)
				r.Post("/projects", h.CreateProject)
				r.Put("/projects/{id}", h.UpdateProject)
				r.Delete("/projects/{id}", h.DeleteProject)

				r.Get("/posts", h.AdminListPosts)
				r.Post("/posts", h.CreatePost)
				r.Put("/posts/{id}", h.UpdatePost)
				r.Delete("/posts/{id}", h.DeletePost)

				r.Get("/team", h.ListTeamMembers)
				r.Post("/team", h.CreateTeamMember)
				r.Put("/team/{id}", h.UpdateTeamMember)
				r.Delete("/team/{id}", h.DeleteTeamMember)

				r.Get("/vacancies", h.AdminListVacancies)
				r.Post("/vacancies", h.CreateVacancy)
				r.Put("/vacancies/{id}", h.UpdateVacancy)
				r.Delete("/vacancies/{id}", h.DeleteVacancy)

				r.Get("/contact", h.AdminListContactSubmissions)
				r.Post("/contact/{id}/read", h.MarkContactSubmissionRead)
				r.Delete("/contact/{id}", h.DeleteContactSubmission)

				r.Get("/applications", h.AdminListApplications)
				r.Get("/applications/{id}", h.AdminGetApplication)
				r.Put("/applications/{id}/status", h.UpdateApplicationStatus)
				r.Delete("/applications/{id}", h.DeleteApplication)

				r.Get("/events", h.AdminListEvents)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, "Resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed", nil)
	})

	return r
}
