// Copyright (c) 2025-2026 Sitekit Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/sitekit-cms/sitekit-go/internal/model"
)

const (
	defaultEventLimit = 100
	maxEventLimit     = 1000
)

// EventResponse flattens the event log entry for JSON output.
type EventResponse struct {
	ID        int64     `json:"id"`
	Level     string    `json:"level"`
	Category  string    `json:"category"`
	Message   string    `json:"message"`
	UserID    *int64    `json:"user_id,omitempty"`
	Metadata  string    `json:"metadata,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func eventToResponse(e model.Event) EventResponse {
	resp := EventResponse{
		ID:        e.ID,
		Level:     e.Level,
		Category:  e.Category,
		Message:   e.Message,
		Metadata:  e.Metadata,
		CreatedAt: e.CreatedAt,
	}
	if e.UserID.Valid {
		uid := e.UserID.Int64
		resp.UserID = &uid
	}
	return resp
}

// AdminListEvents handles GET /api/v1/admin/events. The optional limit query
// parameter caps the number of entries returned, newest first.
func (h *Handler) AdminListEvents(w http.ResponseWriter, r *http.Request) {
	limit := int64(defaultEventLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			WriteBadRequest(w, "Invalid limit parameter", nil)
			return
		}
		if parsed > maxEventLimit {
			parsed = maxEventLimit
		}
		limit = parsed
	}

	events, err := h.queries.ListEvents(r.Context(), limit)
	if err != nil {
		slog.Error("failed to list events", "error", err)
		WriteInternalError(w, "Failed to list events")
		return
	}

	out := make([]EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, eventToResponse(e))
	}
	WriteSuccess(w, out, &Meta{Total: int64(len(out))})
}
