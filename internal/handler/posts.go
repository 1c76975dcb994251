// Copyright (c) 2025-2026 Sitekit Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sitekit-cms/sitekit-go/internal/middleware"
	"github.com/sitekit-cms/sitekit-go/internal/model"
	"github.com/sitekit-cms/sitekit-go/internal/store"
	"github.com/sitekit-cms/sitekit-go/internal/util"
)

// PostRequest is the request body for creating or updating a blog post.
type PostRequest struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Excerpt     string `json:"excerpt"`
	Body        string `json:"body"`
	IsPublished bool   `json:"is_published"`
}

// PostResponse is a post with the markdown body rendered and the publish
// time exposed when set.
type PostResponse struct {
	model.Post
	BodyHTML    string     `json:"body_html,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

func (pr *PostRequest) validate() map[string]string {
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
	return fieldErrors
}

func (pr *PostRequest) toParams(authorID int64) store.CreatePostParams {
	return store.CreatePostParams{
		Title:       pr.Title,
		Slug:        pr.Slug,
		Excerpt:     strings.TrimSpace(pr.Excerpt),
		Body:        pr.Body,
		AuthorID:    authorID,
		IsPublished: pr.IsPublished,
	}
}

func (h *Handler) postToResponse(p model.Post) PostResponse {
	resp := PostResponse{Post: p, BodyHTML: h.renderMarkdown(p.Body)}
	if p.PublishedAt.Valid {
		t := p.PublishedAt.Time
		resp.PublishedAt = &t
	}
	return resp
}

// ListPosts handles GET /api/v1/posts (public, published only).
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.queries.ListPosts(r.Context(), true)
	if err != nil {
		slog.Error("failed to list posts", "error", err)
		WriteInternalError(w, "Failed to list posts")
		return
	}

	out := make([]PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, h.postToResponse(p))
	}
	WriteSuccess(w, out, &Meta{Total: int64(len(out))})
}

// GetPostBySlug handles GET /api/v1/posts/{slug} (public).
func (h *Handler) GetPostBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	post, err := h.queries.GetPostBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Post not found")
			return
		}
		slog.Error("post lookup failed", "slug", slug, "error", err)
		WriteInternalError(w, "Failed to load post")
		return
	}

	if !post.IsPublished {
		WriteNotFound(w, "Post not found")
		return
	}

	WriteSuccess(w, h.postToResponse(post), nil)
}

// AdminListPosts handles GET /api/v1/admin/posts (includes drafts).
func (h *Handler) AdminListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.queries.ListPosts(r.Context(), false)
	if err != nil {
		slog.Error("failed to list posts", "error", err)
		WriteInternalError(w, "Failed to list posts")
		return
	}
	WriteSuccess(w, posts, &Meta{Total: int64(len(posts))})
}

// CreatePost handles POST /api/v1/admin/posts. The authenticated admin
// becomes the author.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	authorID := middleware.GetUserID(r)
	if authorID == 0 {
		WriteUnauthorized(w, "Authentication required")
		return
	}

	var req PostRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fieldErrors := req.validate(); len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	post, err := h.queries.CreatePost(r.Context(), req.toParams(authorID))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			WriteConflict(w, "A post with this slug already exists")
			return
		}
		slog.Error("post create failed", "error", err)
		WriteInternalError(w, "Failed to create post")
		return
	}

	WriteCreated(w, post)
}

// UpdatePost handles PUT /api/v1/admin/posts/{id}. Authorship is preserved
// across edits.
func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "post")
	if !ok {
		return
	}

	existing, err := h.queries.GetPostByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Post not found")
			return
		}
		slog.Error("post lookup failed", "id", id, "error", err)
		WriteInternalError(w, "Failed to load post")
		return
	}

	var req PostRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fieldErrors := req.validate(); len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	post, err := h.queries.UpdatePost(r.Context(), id, req.toParams(existing.AuthorID))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			WriteNotFound(w, "Post not found")
		case strings.Contains(err.Error(), "UNIQUE constraint"):
			WriteConflict(w, "A post with this slug already exists")
		default:
			slog.Error("post update failed", "id", id, "error", err)
			WriteInternalError(w, "Failed to update post")
		}
		return
	}

	WriteSuccess(w, post, nil)
}

// DeletePost handles DELETE /api/v1/admin/posts/{id}.
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "post")
	if !ok {
		return
	}

	if err := h.queries.DeletePost(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Post not found")
			return
		}
		slog.Error("post delete failed", "id", id, "error", err)
		WriteInternalError(w, "Failed to delete post")
		return
	}

	WriteSuccess(w, map[string]string{"status": "deleted"}, nil)
}
