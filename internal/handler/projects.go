// Copyright (c) 2025-2026 Sitekit Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sitekit-cms/sitekit-go/internal/model"
	"github.com/sitekit-cms/sitekit-go/internal/store"
	"github.com/sitekit-cms/sitekit-go/internal/util"
)

// ProjectRequest is the request body for creating or updating a project.
type ProjectRequest struct {
	Title       string          `json:"title"`
	Slug        string          `json:"slug"`
	Client      string          `json:"client"`
	Summary     string          `json:"summary"`
	Body        string          `json:"body"`
	CoverURL    string          `json:"cover_url"`
	Tags        json.RawMessage `json:"tags"`
	IsPublished bool            `json:"is_published"`
}

// ProjectResponse is a project with the markdown body rendered.
type ProjectResponse struct {
	model.Project
	BodyHTML string `json:"body_html,omitempty"`
}

func (pr *ProjectRequest) validate() map[string]string {
	fieldErrors := map[string]string{}
	pr.Title = strings.TrimSpace(pr.Title)
	if pr.Title == "" {
		fieldErrors["title"] = "Title is required"
	}
	if pr.Slug == "" {
		pr.Slug = util.Slugify(pr.Title)
	}
	if !util.IsValidSlug(pr.Slug) {
		fieldErrors["slug"] = "Invalid slug format (use lowercase letters, numbers, and hyphens)"
	}
	if len(pr.Tags) > 0 && !json.Valid(pr.Tags) {
		fieldErrors["tags"] = "Tags must be valid JSON"
	}
	return fieldErrors
}

func (pr *ProjectRequest) toParams() store.CreateProjectParams {
	tags := pr.Tags
	if len(tags) == 0 {
		tags = json.RawMessage(`[]`)
	}
	return store.CreateProjectParams{
		Title:       pr.Title,
		Slug:        pr.Slug,
		Client:      strings.TrimSpace(pr.Client),
		Summary:     strings.TrimSpace(pr.Summary),
		Body:        pr.Body,
		CoverURL:    pr.CoverURL,
		Tags:        tags,
		IsPublished: pr.IsPublished,
	}
}

func (h *Handler) projectToResponse(p model.Project) ProjectResponse {
	return ProjectResponse{Project: p, BodyHTML: h.renderMarkdown(p.Body)}
}

// ListProjects handles GET /api/v1/projects (public, published only).
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.queries.ListProjects(r.Context(), true)
	if err != nil {
		slog.Error("failed to list projects", "error", err)
		WriteInternalError(w, "Failed to list projects")
		return
	}

	out := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, h.projectToResponse(p))
	}
	WriteSuccess(w, out, &Meta{Total: int64(len(out))})
}

// GetProjectBySlug handles GET /api/v1/projects/{slug} (public).
func (h *Handler) GetProjectBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	project, err := h.queries.GetProjectBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Project not found")
			return
		}
		slog.Error("project lookup failed", "slug", slug, "error", err)
		WriteInternalError(w, "Failed to load project")
		return
	}

	if !project.IsPublished {
		WriteNotFound(w, "Project not found")
		return
	}

	WriteSuccess(w, h.projectToResponse(project), nil)
}

// AdminListProjects handles GET /api/v1/admin/projects (includes drafts).
func (h *Handler) AdminListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.queries.ListProjects(r.Context(), false)
	if err != nil {
		slog.Error("failed to list projects", "error", err)
		WriteInternalError(w, "Failed to list projects")
		return
	}
	WriteSuccess(w, projects, &Meta{Total: int64(len(projects))})
}

// CreateProject handles POST /api/v1/admin/projects.
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req ProjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fieldErrors := req.validate(); len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	project, err := h.queries.CreateProject(r.Context(), req.toParams())
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			WriteConflict(w, "A project with this slug already exists")
			return
		}
		slog.Error("project create failed", "error", err)
		WriteInternalError(w, "Failed to create project")
		return
	}

	WriteCreated(w, project)
}

// UpdateProject handles PUT /api/v1/admin/projects/{id}.
func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "project")
	if !ok {
		return
	}

	var req ProjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fieldErrors := req.validate(); len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	project, err := h.queries.UpdateProject(r.Context(), id, req.toParams())
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			WriteNotFound(w, "Project not found")
		case strings.Contains(err.Error(), "UNIQUE constraint"):
			WriteConflict(w, "A project with this slug already exists")
		default:
			slog.Error("project update failed", "id", id, "error", err)
			WriteInternalError(w, "Failed to update project")
		}
		return
	}

	WriteSuccess(w, project, nil)
}

// DeleteProject handles DELETE /api/v1/admin/projects/{id}.
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "project")
	if !ok {
		return
	}

	if err := h.queries.DeleteProject(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Project not found")
			return
		}
		slog.Error("project delete failed", "id", id, "error", err)
		WriteInternalError(w, "Failed to delete project")
		return
	}

	WriteSuccess(w, map[string]string{"status": "deleted"}, nil)
}
