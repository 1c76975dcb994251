// Copyright (c) 2025-2026 Sitekit Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sitekit-cms/sitekit-go/internal/mailer"
	"github.com/sitekit-cms/sitekit-go/internal/store"
)

// ContactRequest is the public contact form payload.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

const maxMessageLength = 10000

func (cr *ContactRequest) validate() map[string]string {
	fieldErrors := map[string]string{}
	if msg := ValidateName(cr.Name); msg != "" {
		fieldErrors["name"] = msg
	}
	if msg := ValidateEmail(NormalizeEmail(cr.Email)); msg != "" {
		fieldErrors["email"] = msg
	}
	cr.Message = strings.TrimSpace(cr.Message)
	if cr.Message == "" {
		fieldErrors["message"] = "Message is required"
	} else if len(cr.Message) > maxMessageLength {
		fieldErrors["message"] = "Message is too long"
	}
	return fieldErrors
}

// SubmitContact handles POST /api/v1/contact (public). The submission is
// stored first; notification mail is best effort and never blocks the
// response.
func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fieldErrors := req.validate(); len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	submission, err := h.queries.CreateContactSubmission(r.Context(), store.CreateContactSubmissionParams{
		Name:    strings.TrimSpace(req.Name),
		Email:   NormalizeEmail(req.Email),
		Subject: strings.TrimSpace(req.Subject),
		Message: req.Message,
	})
	if err != nil {
		slog.Error("contact submission failed", "error", err)
		WriteInternalError(w, "Failed to submit message")
		return
	}

	if h.contactTo != "" {
		subject := fmt.Sprintf("New contact message from %s", submission.Name)
		body := fmt.Sprintf("From: %s <%s>\nSubject: %s\n\n%s",
			submission.Name, submission.Email, submission.Subject, submission.Message)
		mailer.SendAsync(h.mailer, h.contactTo, subject, body)
	}

	WriteCreated(w, map[string]any{"id": submission.ID, "status": "received"})
}

// AdminListContactSubmissions handles GET /api/v1/admin/contact.
func (h *Handler) AdminListContactSubmissions(w http.ResponseWriter, r *http.Request) {
	submissions, err := h.queries.ListContactSubmissions(r.Context())
	if err != nil {
		slog.Error("failed to list contact submissions", "error", err)
		WriteInternalError(w, "Failed to list messages")
		return
	}
	WriteSuccess(w, submissions, &Meta{Total: int64(len(submissions))})
}

// MarkContactSubmissionRead handles POST /api/v1/admin/contact/{id}/read.
func (h *Handler) MarkContactSubmissionRead(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "message")
	if !ok {
		return
	}

	if err := h.queries.MarkContactSubmissionRead(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Message not found")
			return
		}
		slog.Error("mark read failed", "id", id, "error", err)
		WriteInternalError(w, "Failed to update message")
		return
	}

	WriteSuccess(w, map[string]string{"status": "read"}, nil)
}

// DeleteContactSubmission handles DELETE /api/v1/admin/contact/{id}.
func (h *Handler) DeleteContactSubmission(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "message")
	if !ok {
		return
	}

	if err := h.queries.DeleteContactSubmission(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Message not found")
			return
		}
		slog.Error("contact submission delete failed", "id", id, "error", err)
		WriteInternalError(w, "Failed to delete message")
		return
	}

	WriteSuccess(w, map[string]string{"status": "deleted"}, nil)
}
