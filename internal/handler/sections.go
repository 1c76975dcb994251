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
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sitekit-cms/sitekit-go/internal/model"
	"github.com/sitekit-cms/sitekit-go/internal/store"
)

// maxSectionKeyLength bounds the page and key natural-key components.
const maxSectionKeyLength = 100

// SectionResponse represents a page section in API responses.
type SectionResponse struct {
	ID        int64           `json:"id"`
	Page      string          `json:"page"`
	Key       string          `json:"key"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// PageResponse is the public shape of a page: its name plus sections.
type PageResponse struct {
	Page     string            `json:"page"`
	Sections []SectionResponse `json:"sections"`
}

// UpsertSectionRequest is the request body for POST /admin/pages.
type UpsertSectionRequest struct {
	Page string          `json:"page"`
	Key  string          `json:"key"`
	Data json.RawMessage `json:"data"`
}

// UpsertSectionResponse reports the outcome of an upsert.
// UpsertedID carries the new row id on create and is null on update.
type UpsertSectionResponse struct {
	Status     string `json:"status"`
	UpsertedID *int64 `json:"upserted_id"`
}

func sectionToResponse(s model.Section) SectionResponse {
	return SectionResponse{
		ID:        s.ID,
		Page:      s.Page,
		Key:       s.Key,
		Data:      s.Data,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func sectionsToResponses(sections []model.Section) []SectionResponse {
	out := make([]SectionResponse, 0, len(sections))
	for _, s := range sections {
		out = append(out, sectionToResponse(s))
	}
	return out
}

// GetPageSections handles GET /api/v1/pages/{page}.
// Unknown pages return an empty section list, not a 404: the public site
// renders whatever sections exist.
func (h *Handler) GetPageSections(w http.ResponseWriter, r *http.Request) {
	page := strings.TrimSpace(chi.URLParam(r, "page"))
	if page == "" || len(page) > maxSectionKeyLength {
		WriteBadRequest(w, "Invalid page name", nil)
		return
	}

	if h.sections != nil {
		if cached, ok := h.sections.GetPage(r.Context(), page); ok {
			WriteSuccess(w, PageResponse{Page: page, Sections: sectionsToResponses(cached)}, nil)
			return
		}
	}

	sections, err := h.queries.GetSectionsByPage(r.Context(), page)
	if err != nil {
		slog.Error("failed to load page sections", "page", page, "error", err)
		WriteInternalError(w, "Failed to load page")
		return
	}

	if h.sections != nil {
		h.sections.SetPage(r.Context(), page, sections)
	}

	WriteSuccess(w, PageResponse{Page: page, Sections: sectionsToResponses(sections)}, nil)
}

// ListSections handles GET /api/v1/admin/pages.
// Returns every section across all pages, ordered by (page, key).
func (h *Handler) ListSections(w http.ResponseWriter, r *http.Request) {
	sections, err := h.queries.ListSections(r.Context())
	if err != nil {
		slog.Error("failed to list sections", "error", err)
		WriteInternalError(w, "Failed to list sections")
		return
	}

	WriteSuccess(w, sectionsToResponses(sections), &Meta{Total: int64(len(sections))})
}

// UpsertSection handles POST /api/v1/admin/pages.
func (h *Handler) UpsertSection(w http.ResponseWriter, r *http.Request) {
	var req UpsertSectionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	req.Page = strings.TrimSpace(req.Page)
	req.Key = strings.TrimSpace(req.Key)

	fieldErrors := map[string]string{}
	if req.Page == "" {
		fieldErrors["page"] = "Page is required"
	} else if len(req.Page) > maxSectionKeyLength {
		fieldErrors["page"] = "Page name too long"
	}
	if req.Key == "" {
		fieldErrors["key"] = "Key is required"
	} else if len(req.Key) > maxSectionKeyLength {
		fieldErrors["key"] = "Key too long"
	}
	if len(req.Data) == 0 || !json.Valid(req.Data) {
		fieldErrors["data"] = "Data must be a JSON value"
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	upsertedID, err := h.queries.UpsertSection(r.Context(), store.UpsertSectionParams{
		Page: req.Page,
		Key:  req.Key,
		Data: req.Data,
	})
	if err != nil {
		slog.Error("section upsert failed", "page", req.Page, "key", req.Key, "error", err)
		WriteInternalError(w, "Failed to save section")
		return
	}

	if h.sections != nil {
		h.sections.InvalidatePage(r.Context(), req.Page)
	}

	status := "updated"
	if upsertedID != nil {
		status = "created"
	}
	WriteSuccess(w, UpsertSectionResponse{Status: status, UpsertedID: upsertedID}, nil)
}

// DeleteSection handles DELETE /api/v1/admin/pages/{id}.
func (h *Handler) DeleteSection(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "section")
	if !ok {
		return
	}

	// Fetch first so the page cache entry can be invalidated.
	section, err := h.queries.GetSectionByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Section not found")
			return
		}
		slog.Error("section lookup failed", "id", id, "error", err)
		WriteInternalError(w, "Failed to delete section")
		return
	}

	if err := h.queries.DeleteSection(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Section not found")
			return
		}
		slog.Error("section delete failed", "id", id, "error", err)
		WriteInternalError(w, "Failed to delete section")
		return
	}

	if h.sections != nil {
		h.sections.InvalidatePage(r.Context(), section.Page)
	}

	WriteSuccess(w, map[string]string{"status": "deleted"}, nil)
}
