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

// VacancyRequest is the request body for creating or updating a vacancy.
type VacancyRequest struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Location    string `json:"location"`
	Employment  string `json:"employment"`
	Description string `json:"description"`
	IsOpen      bool   `json:"is_open"`
}

// VacancyResponse is a vacancy with the markdown description rendered.
type VacancyResponse struct {
	model.Vacancy
	DescriptionHTML string `json:"description_html,omitempty"`
}

func (vr *VacancyRequest) validate() map[string]string {
	fieldErrors := map[string]string{}
	vr.Title = strings.TrimSpace(vr.Title)
	if vr.Title == "" {
		fieldErrors["title"] = "Title is required"
	}
	if vr.Slug == "" {
		vr.Slug = util.Slugify(vr.Title)
	}
	if !util.IsValidSlug(vr.Slug) {
		fieldErrors["slug"] = "Invalid slug format (use lowercase letters, numbers, and hyphens)"
	}
	return fieldErrors
}

func (vr *VacancyRequest) toParams() store.CreateVacancyParams {
	return store.CreateVacancyParams{
		Title:       vr.Title,
		Slug:        vr.Slug,
		Location:    strings.TrimSpace(vr.Location),
		Employment:  strings.TrimSpace(vr.Employment),
		Description: vr.Description,
		IsOpen:      vr.IsOpen,
	}
}

func (h *Handler) vacancyToResponse(v model.Vacancy) VacancyResponse {
	return VacancyResponse{Vacancy: v, DescriptionHTML: h.renderMarkdown(v.Description)}
}

// ListVacancies handles GET /api/v1/vacancies (public, open only).
func (h *Handler) ListVacancies(w http.ResponseWriter, r *http.Request) {
	vacancies, err := h.queries.ListVacancies(r.Context(), true)
	if err != nil {
		slog.Error("failed to list vacancies", "error", err)
		WriteInternalError(w, "Failed to list vacancies")
		return
	}

	out := make([]VacancyResponse, 0, len(vacancies))
	for _, v := range vacancies {
		out = append(out, h.vacancyToResponse(v))
	}
	WriteSuccess(w, out, &Meta{Total: int64(len(out))})
}

// GetVacancyBySlug handles GET /api/v1/vacancies/{slug} (public).
func (h *Handler) GetVacancyBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	vacancy, err := h.queries.GetVacancyBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Vacancy not found")
			return
		}
		slog.Error("vacancy lookup failed", "slug", slug, "error", err)
		WriteInternalError(w, "Failed to load vacancy")
		return
	}

	if !vacancy.IsOpen {
		WriteNotFound(w, "Vacancy not found")
		return
	}

	WriteSuccess(w, h.vacancyToResponse(vacancy), nil)
}

// AdminListVacancies handles GET /api/v1/admin/vacancies (includes closed).
func (h *Handler) AdminListVacancies(w http.ResponseWriter, r *http.Request) {
	vacancies, err := h.queries.ListVacancies(r.Context(), false)
	if err != nil {
		slog.Error("failed to list vacancies", "error", err)
		WriteInternalError(w, "Failed to list vacancies")
		return
	}
	WriteSuccess(w, vacancies, &Meta{Total: int64(len(vacancies))})
}

// CreateVacancy handles POST /api/v1/admin/vacancies.
func (h *Handler) CreateVacancy(w http.ResponseWriter, r *http.Request) {
	var req VacancyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fieldErrors := req.validate(); len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	vacancy, err := h.queries.CreateVacancy(r.Context(), req.toParams())
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			WriteConflict(w, "A vacancy with this slug already exists")
			return
		}
		slog.Error("vacancy create failed", "error", err)
		WriteInternalError(w, "Failed to create vacancy")
		return
	}

	WriteCreated(w, vacancy)
}

// UpdateVacancy handles PUT /api/v1/admin/vacancies/{id}.
func (h *Handler) UpdateVacancy(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "vacancy")
	if !ok {
		return
	}

	var req VacancyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fieldErrors := req.validate(); len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	vacancy, err := h.queries.UpdateVacancy(r.Context(), id, req.toParams())
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			WriteNotFound(w, "Vacancy not found")
		case strings.Contains(err.Error(), "UNIQUE constraint"):
			WriteConflict(w, "A vacancy with this slug already exists")
		default:
			slog.Error("vacancy update failed", "id", id, "error", err)
			WriteInternalError(w, "Failed to update vacancy")
		}
		return
	}

	WriteSuccess(w, vacancy, nil)
}

// DeleteVacancy handles DELETE /api/v1/admin/vacancies/{id}.
func (h *Handler) DeleteVacancy(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "vacancy")
	if !ok {
		return
	}

	if err := h.queries.DeleteVacancy(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Vacancy not found")
			return
		}
		slog.Error("vacancy delete failed", "id", id, "error", err)
		WriteInternalError(w, "Failed to delete vacancy")
		return
	}

	WriteSuccess(w, map[string]string{"status": "deleted"}, nil)
}
