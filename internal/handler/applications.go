// Copyright (c) 2025-2026 Sitekit Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/sitekit-cms/sitekit-go/internal/model"
	"github.com/sitekit-cms/sitekit-go/internal/store"
)

// ApplyRequest is the public job application payload.
type ApplyRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	CoverLetter string `json:"cover_letter"`
	ResumeURL   string `json:"resume_url"`
}

func (ar *ApplyRequest) validate() map[string]string {
	fieldErrors := map[string]string{}
	if msg := ValidateName(ar.Name); msg != "" {
		fieldErrors["name"] = msg
	}
	if msg := ValidateEmail(NormalizeEmail(ar.Email)); msg != "" {
		fieldErrors["email"] = msg
	}
	return fieldErrors
}

// ApplyToVacancy handles POST /api/v1/vacancies/{id}/apply (public). The
// vacancy must exist and still be open. The candidate gets back an opaque
// reference code for follow-up.
func (h *Handler) ApplyToVacancy(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "vacancy")
	if !ok {
		return
	}

	vacancy, err := h.queries.GetVacancyByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Vacancy not found")
			return
		}
		slog.Error("vacancy lookup failed", "id", id, "error", err)
		WriteInternalError(w, "Failed to load vacancy")
		return
	}
	if !vacancy.IsOpen {
		WriteConflict(w, "This position is no longer accepting applications")
		return
	}

	var req ApplyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fieldErrors := req.validate(); len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	application, err := h.queries.CreateJobApplication(r.Context(), store.CreateJobApplicationParams{
		VacancyID:   vacancy.ID,
		Reference:   uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Email:       NormalizeEmail(req.Email),
		Phone:       strings.TrimSpace(req.Phone),
		CoverLetter: req.CoverLetter,
		ResumeURL:   strings.TrimSpace(req.ResumeURL),
	})
	if err != nil {
		slog.Error("job application failed", "vacancy_id", vacancy.ID, "error", err)
		WriteInternalError(w, "Failed to submit application")
		return
	}

	WriteCreated(w, map[string]any{
		"id":        application.ID,
		"reference": application.Reference,
		"status":    application.Status,
	})
}

// AdminListApplications handles GET /api/v1/admin/applications. The optional
// vacancy_id query parameter narrows the list to one position.
func (h *Handler) AdminListApplications(w http.ResponseWriter, r *http.Request) {
	var vacancyID int64
	if raw := r.URL.Query().Get("vacancy_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			WriteBadRequest(w, "Invalid vacancy_id parameter", nil)
			return
		}
		vacancyID = parsed
	}

	applications, err := h.queries.ListJobApplications(r.Context(), vacancyID)
	if err != nil {
		slog.Error("failed to list applications", "error", err)
		WriteInternalError(w, "Failed to list applications")
		return
	}
	WriteSuccess(w, applications, &Meta{Total: int64(len(applications))})
}

// AdminGetApplication handles GET /api/v1/admin/applications/{id}.
func (h *Handler) AdminGetApplication(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "application")
	if !ok {
		return
	}

	application, err := h.queries.GetJobApplicationByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Application not found")
			return
		}
		slog.Error("application lookup failed", "id", id, "error", err)
		WriteInternalError(w, "Failed to load application")
		return
	}

	WriteSuccess(w, application, nil)
}

// ApplicationStatusRequest carries the new review status.
type ApplicationStatusRequest struct {
	Status string `json:"status"`
}

// UpdateApplicationStatus handles PUT /api/v1/admin/applications/{id}/status.
func (h *Handler) UpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "application")
	if !ok {
		return
	}

	var req ApplicationStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !model.ValidApplicationStatus(req.Status) {
		WriteValidationError(w, map[string]string{
			"status": "Status must be one of: new, reviewing, accepted, rejected",
		})
		return
	}

	if err := h.queries.UpdateJobApplicationStatus(r.Context(), id, req.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Application not found")
			return
		}
		slog.Error("application status update failed", "id", id, "error", err)
		WriteInternalError(w, "Failed to update application")
		return
	}

	WriteSuccess(w, map[string]string{"status": req.Status}, nil)
}

// DeleteApplication handles DELETE /api/v1/admin/applications/{id}.
func (h *Handler) DeleteApplication(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "application")
	if !ok {
		return
	}

	if err := h.queries.DeleteJobApplication(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Application not found")
			return
		}
		slog.Error("application delete failed", "id", id, "error", err)
		WriteInternalError(w, "Failed to delete application")
		return
	}

	WriteSuccess(w, map[string]string{"status": "deleted"}, nil)
}
