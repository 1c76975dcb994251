// Copyright (c) 2025-2026 Sitekit Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/sitekit-cms/sitekit-go/internal/auth"
	"github.com/sitekit-cms/sitekit-go/internal/cache"
	"github.com/sitekit-cms/sitekit-go/internal/mailer"
	"github.com/sitekit-cms/sitekit-go/internal/middleware"
	"github.com/sitekit-cms/sitekit-go/internal/store"
	"github.com/sitekit-cms/sitekit-go/internal/version"
)

// Options carries the dependencies shared by all handlers.
type Options struct {
	DB             *sql.DB
	Issuer         *auth.TokenIssuer
	Sections       *cache.SectionCache
	Mailer         mailer.Mailer
	Protection     *middleware.LoginProtection
	Version        version.Info
	ContactToEmail string

	// BootstrapEmail/BootstrapPassword allow a first login while the
	// credential store is still empty. Ignored once any user exists.
	BootstrapEmail    string
	BootstrapPassword string
}

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	db       *sql.DB
	queries  *store.Queries
	issuer   *auth.TokenIssuer
	sections *cache.SectionCache
	mailer   mailer.Mailer
	prot     *middleware.LoginProtection
	version  version.Info

	contactTo         string
	bootstrapEmail    string
	bootstrapPassword string

	markdown  goldmark.Markdown
	sanitizer *bluemonday.Policy
}

// New creates the API handler set.
func New(opts Options) *Handler {
	return &Handler{
		db:                opts.DB,
		queries:           store.New(opts.DB),
		issuer:            opts.Issuer,
		sections:          opts.Sections,
		mailer:            opts.Mailer,
		prot:              opts.Protection,
		version:           opts.Version,
		contactTo:         opts.ContactToEmail,
		bootstrapEmail:    opts.BootstrapEmail,
		bootstrapPassword: opts.BootstrapPassword,
		markdown: goldmark.New(
			goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
		),
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// renderMarkdown converts markdown to sanitized HTML.
// Returns an empty string on render failure; the raw markdown is still
// available in the response body field.
func (h *Handler) renderMarkdown(src string) string {
	if src == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := h.markdown.Convert([]byte(src), &buf); err != nil {
		slog.Warn("markdown render failed", "error", err)
		return ""
	}
	return h.sanitizer.Sanitize(buf.String())
}

// HealthResponse contains service health information.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Health handles GET /api/v1/health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		slog.Error("health check database ping failed", "error", err)
		WriteError(w, http.StatusServiceUnavailable, "unavailable", "Database unavailable", nil)
		return
	}

	v := h.version.Version
	if v == "" {
		v = "dev"
	}
	WriteSuccess(w, HealthResponse{Status: "ok", Version: v}, nil)
}
