// Copyright (c) 2025-2026 Sitekit Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sitekit-cms/sitekit-go/internal/model"
	"github.com/sitekit-cms/sitekit-go/internal/store"
	"github.com/sitekit-cms/sitekit-go/internal/util"
)

// ServiceRequest is the request body for creating or updating a service.
type ServiceRequest struct {
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	Summary   string `json:"summary"`
	Body      string `json:"body"`
	Icon      string `json:"icon"`
	SortOrder int64  `json:"sort_order"`
	IsActive  bool   `json:"is_active"`
}

// ServiceResponse is a service with the markdown body rendered.
type ServiceResponse struct {
	model.Service
	BodyHTML string `json:"body_html,omitempty"`
}

func (sr *ServiceRequest) validate() map[string]string {
	fieldErrors := map[string]string{}
	sr.Title = strings.TrimSpace(sr.Title)
	if sr.Title == "" {
		fieldErrors["title"] = "Title is required"
	}
	if sr.Slug == "" {
		sr.Slug = util.Slugify(sr.Title)
	}
	if !util.IsValidSlug(sr.Slug) {
		fieldErrors["slug"] = "Invalid slug format (use lowercase letters, numbers, and hyphens)"
	}
	return fieldErrors
}

func (sr *ServiceRequest) toParams() store.CreateServiceParams {
	return store.CreateServiceParams{
		Title:     sr.Title,
		Slug:      sr.Slug,
		Summary:   strings.TrimSpace(sr.Summary),
		Body:      sr.Body,
		Icon:      sr.Icon,
		SortOrder: sr.SortOrder,
		IsActive:  sr.IsActive,
	}
}

func (h *Handler) serviceToResponse(s model.Service) ServiceResponse {
	return ServiceResponse{Service: s, BodyHTML: h.renderMarkdown(s.Body)}
}

// ListServices handles GET /api/v1/services (public, active only).
func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.queries.ListServices(r.Context(), true)
	if err != nil {
		slog.Error("failed to list services", "error", err)
		WriteInternalError(w, "Failed to list services")
		return
	}

	out := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		out = append(out, h.serviceToResponse(s))
	}
	WriteSuccess(w, out, &Meta{Total: int64(len(out))})
}

// GetServiceBySlug handles GET /api/v1/services/{slug} (public).
func (h *Handler) GetServiceBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	service, err := h.queries.GetServiceBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Service not found")
			return
		}
		slog.Error("service lookup failed", "slug", slug, "error", err)
		WriteInternalError(w, "Failed to load service")
		return
	}

	if !service.IsActive {
		WriteNotFound(w, "Service not found")
		return
	}

	WriteSuccess(w, h.serviceToResponse(service), nil)
}

// AdminListServices handles GET /api/v1/admin/services (includes inactive).
func (h *Handler) AdminListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.queries.ListServices(r.Context(), false)
	if err != nil {
		slog.Error("failed to list services", "error", err)
		WriteInternalError(w, "Failed to list services")
		return
	}
	WriteSuccess(w, services, &Meta{Total: int64(len(services))})
}

// CreateService handles POST /api/v1/admin/services.
func (h *Handler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req ServiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fieldErrors := req.validate(); len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	service, err := h.queries.CreateService(r.Context(), req.toParams())
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			WriteConflict(w, "A service with this slug already exists")
			return
		}
		slog.Error("service create failed", "error", err)
		WriteInternalError(w, "Failed to create service")
		return
	}

	WriteCreated(w, service)
}

// UpdateService handles PUT /api/v1/admin/services/{id}.
func (h *Handler) UpdateService(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "service")
	if !ok {
		return
	}

	var req ServiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fieldErrors := req.validate(); len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	service, err := h.queries.UpdateService(r.Context(), id, req.toParams())
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			WriteNotFound(w, "Service not found")
		case strings.Contains(err.Error(), "UNIQUE constraint"):
			WriteConflict(w, "A service with this slug already exists")
		default:
			slog.Error("service update failed", "id", id, "error", err)
			WriteInternalError(w, "Failed to update service")
		}
		return
	}

	WriteSuccess(w, service, nil)
}

// DeleteService handles DELETE /api/v1/admin/services/{id}.
func (h *Handler) DeleteService(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "service")
	if !ok {
		return
	}

	if err := h.queries.DeleteService(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Service not found")
			return
		}
		slog.Error("service delete failed", "id", id, "error", err)
		WriteInternalError(w, "Failed to delete service")
		return
	}

	WriteSuccess(w, map[string]string{"status": "deleted"}, nil)
}
