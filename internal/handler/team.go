// Copyright (c) 2025-2026 Sitekit Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sitekit-cms/sitekit-go/internal/store"
)

// TeamMemberRequest is the request body for creating or updating a team member.
type TeamMemberRequest struct {
	Name      string `json:"name"`
	RoleTitle string `json:"role_title"`
	Bio       string `json:"bio"`
	PhotoURL  string `json:"photo_url"`
	SortOrder int64  `json:"sort_order"`
}

func (tr *TeamMemberRequest) validate() map[string]string {
	fieldErrors := map[string]string{}
	tr.Name = strings.TrimSpace(tr.Name)
	if tr.Name == "" {
		fieldErrors["name"] = "Name is required"
	}
	tr.RoleTitle = strings.TrimSpace(tr.RoleTitle)
	if tr.RoleTitle == "" {
		fieldErrors["role_title"] = "Role title is required"
	}
	return fieldErrors
}

func (tr *TeamMemberRequest) toParams() store.CreateTeamMemberParams {
	return store.CreateTeamMemberParams{
		Name:      tr.Name,
		RoleTitle: tr.RoleTitle,
		Bio:       tr.Bio,
		PhotoURL:  tr.PhotoURL,
		SortOrder: tr.SortOrder,
	}
}

// ListTeamMembers handles GET /api/v1/team (public).
func (h *Handler) ListTeamMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.queries.ListTeamMembers(r.Context())
	if err != nil {
		slog.Error("failed to list team members", "error", err)
		WriteInternalError(w, "Failed to list team members")
		return
	}
	WriteSuccess(w, members, &Meta{Total: int64(len(members))})
}

// CreateTeamMember handles POST /api/v1/admin/team.
func (h *Handler) CreateTeamMember(w http.ResponseWriter, r *http.Request) {
	var req TeamMemberRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fieldErrors := req.validate(); len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	member, err := h.queries.CreateTeamMember(r.Context(), req.toParams())
	if err != nil {
		slog.Error("team member create failed", "error", err)
		WriteInternalError(w, "Failed to create team member")
		return
	}

	WriteCreated(w, member)
}

// UpdateTeamMember handles PUT /api/v1/admin/team/{id}.
func (h *Handler) UpdateTeamMember(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "team member")
	if !ok {
		return
	}

	var req TeamMemberRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fieldErrors := req.validate(); len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	member, err := h.queries.UpdateTeamMember(r.Context(), id, req.toParams())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Team member not found")
			return
		}
		slog.Error("team member update failed", "id", id, "error", err)
		WriteInternalError(w, "Failed to update team member")
		return
	}

	WriteSuccess(w, member, nil)
}

// DeleteTeamMember handles DELETE /api/v1/admin/team/{id}.
func (h *Handler) DeleteTeamMember(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "team member")
	if !ok {
		return
	}

	if err := h.queries.DeleteTeamMember(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Team member not found")
			return
		}
		slog.Error("team member delete failed", "id", id, "error", err)
		WriteInternalError(w, "Failed to delete team member")
		return
	}

	WriteSuccess(w, map[string]string{"status": "deleted"}, nil)
}
