// Copyright (c) 2025-2026 Sitekit Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestServiceCRUD(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createAdmin(t, "admin@example.com", "Abcdef1")

	// Create: slug is derived from the title when omitted.
	rec := env.request(t, http.MethodPost, "/api/v1/admin/services", token, ServiceRequest{
		Title:    "Cloud & DevOps Services",
		Summary:  "Infrastructure automation",
		Body:     "We run your **cloud**.",
		IsActive: true,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		ID   int64  `json:"id"`
		Slug string `json:"slug"`
	}
	decodeData(t, rec, &created)
	if created.Slug != "cloud-devops-services" {
		t.Errorf("expected generated slug, got %q", created.Slug)
	}

	// Duplicate slug is a conflict.
	rec = env.request(t, http.MethodPost, "/api/v1/admin/services", token, ServiceRequest{
		Title: "Cloud DevOps Services", Slug: created.Slug, IsActive: true,
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate: expected 409, got %d", rec.Code)
	}

	// Public read renders the markdown body.
	rec = env.request(t, http.MethodGet, "/api/v1/services/"+created.Slug, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("public get: expected 200, got %d", rec.Code)
	}
	var svc ServiceResponse
	decodeData(t, rec, &svc)
	if !strings.Contains(svc.BodyHTML, "<strong>cloud</strong>") {
		t.Errorf("expected rendered markdown, got %q", svc.BodyHTML)
	}

	// Deactivate via update: still in the admin list, gone from public.
	rec = env.request(t, http.MethodPut, fmt.Sprintf("/api/v1/admin/services/%d", created.ID), token, ServiceRequest{
		Title: "Cloud & DevOps Services", Slug: created.Slug, IsActive: false,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = env.request(t, http.MethodGet, "/api/v1/services", "", nil)
	var publicList []ServiceResponse
	decodeData(t, rec, &publicList)
	if len(publicList) != 0 {
		t.Errorf("expected no public services, got %d", len(publicList))
	}

	rec = env.request(t, http.MethodGet, "/api/v1/services/"+created.Slug, "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("inactive public get: expected 404, got %d", rec.Code)
	}

	rec = env.request(t, http.MethodGet, "/api/v1/admin/services", token, nil)
	var adminList []ServiceResponse
	decodeData(t, rec, &adminList)
	if len(adminList) != 1 {
		t.Errorf("expected 1 admin service, got %d", len(adminList))
	}

	// Delete.
	rec = env.request(t, http.MethodDelete, fmt.Sprintf("/api/v1/admin/services/%d", created.ID), token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", rec.Code)
	}
	rec = env.request(t, http.MethodDelete, fmt.Sprintf("/api/v1/admin/services/%d", created.ID), token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", rec.Code)
	}
}

func TestPost_DraftsHiddenFromPublic(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.createAdmin(t, "author@example.com", "Abcdef1")

	rec := env.request(t, http.MethodPost, "/api/v1/admin/posts", token, PostRequest{
		Title: "Draft Notes", Body: "wip",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create draft: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = env.request(t, http.MethodPost, "/api/v1/admin/posts", token, PostRequest{
		Title: "Launch Announcement", Body: "We shipped.", IsPublished: true,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create published: expected 201, got %d", rec.Code)
	}
	var published struct {
		ID       int64 `json:"id"`
		AuthorID int64 `json:"author_id"`
	}
	decodeData(t, rec, &published)
	if published.AuthorID != user.ID {
		t.Errorf("expected author %d, got %d", user.ID, published.AuthorID)
	}

	rec = env.request(t, http.MethodGet, "/api/v1/posts", "", nil)
	var publicPosts []PostResponse
	decodeData(t, rec, &publicPosts)
	if len(publicPosts) != 1 {
		t.Fatalf("expected 1 public post, got %d", len(publicPosts))
	}
	if publicPosts[0].PublishedAt == nil {
		t.Error("expected published_at on a published post")
	}

	rec = env.request(t, http.MethodGet, "/api/v1/posts/draft-notes", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("draft by slug: expected 404, got %d", rec.Code)
	}

	rec = env.request(t, http.MethodGet, "/api/v1/admin/posts", token, nil)
	var adminPosts []PostResponse
	decodeData(t, rec, &adminPosts)
	if len(adminPosts) != 2 {
		t.Errorf("expected 2 admin posts, got %d", len(adminPosts))
	}
}

func TestVacancyApply(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createAdmin(t, "admin@example.com", "Abcdef1")

	rec := env.request(t, http.MethodPost, "/api/v1/admin/vacancies", token, VacancyRequest{
		Title: "Go Developer", Location: "Remote", Employment: "full-time",
		Description: "Build backends.", IsOpen: true,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create vacancy: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var vacancy struct {
		ID int64 `json:"id"`
	}
	decodeData(t, rec, &vacancy)

	rec = env.request(t, http.MethodPost, fmt.Sprintf("/api/v1/vacancies/%d/apply", vacancy.ID), "", ApplyRequest{
		Name:  "Alex Smith",
		Email: "alex@example.com",
		Phone: "+1 555 0100",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("apply: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var applied struct {
		ID        int64  `json:"id"`
		Reference string `json:"reference"`
		Status    string `json:"status"`
	}
	decodeData(t, rec, &applied)
	if applied.Reference == "" {
		t.Error("expected a reference code")
	}
	if applied.Status != "new" {
		t.Errorf("expected status new, got %q", applied.Status)
	}

	// Unknown vacancy
	rec = env.request(t, http.MethodPost, "/api/v1/vacancies/9999/apply", "", ApplyRequest{
		Name: "Alex Smith", Email: "alex@example.com",
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown vacancy: expected 404, got %d", rec.Code)
	}

	// Closed vacancy
	rec = env.request(t, http.MethodPut, fmt.Sprintf("/api/v1/admin/vacancies/%d", vacancy.ID), token, VacancyRequest{
		Title: "Go Developer", Slug: "go-developer", Location: "Remote",
		Employment: "full-time", Description: "Build backends.", IsOpen: false,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("close vacancy: expected 200, got %d", rec.Code)
	}
	rec = env.request(t, http.MethodPost, fmt.Sprintf("/api/v1/vacancies/%d/apply", vacancy.ID), "", ApplyRequest{
		Name: "Alex Smith", Email: "alex@example.com",
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("closed vacancy: expected 409, got %d", rec.Code)
	}

	// Admin review flow
	rec = env.request(t, http.MethodPut, fmt.Sprintf("/api/v1/admin/applications/%d/status", applied.ID), token,
		ApplicationStatusRequest{Status: "reviewing"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status update: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = env.request(t, http.MethodPut, fmt.Sprintf("/api/v1/admin/applications/%d/status", applied.ID), token,
		ApplicationStatusRequest{Status: "bogus"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad status: expected 400, got %d", rec.Code)
	}

	rec = env.request(t, http.MethodGet, fmt.Sprintf("/api/v1/admin/applications?vacancy_id=%d", vacancy.ID), token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list applications: expected 200, got %d", rec.Code)
	}
	var apps []struct {
		Status string `json:"status"`
	}
	decodeData(t, rec, &apps)
	if len(apps) != 1 || apps[0].Status != "reviewing" {
		t.Errorf("expected 1 reviewing application, got %+v", apps)
	}
}

func TestContactSubmission(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createAdmin(t, "admin@example.com", "Abcdef1")

	rec := env.request(t, http.MethodPost, "/api/v1/contact", "", ContactRequest{
		Name:    "Pat Jones",
		Email:   "pat@example.com",
		Subject: "Project inquiry",
		Message: "We need a new website.",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("submit: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var submitted struct {
		ID int64 `json:"id"`
	}
	decodeData(t, rec, &submitted)

	// Missing message is a validation error.
	rec = env.request(t, http.MethodPost, "/api/v1/contact", "", ContactRequest{
		Name: "Pat Jones", Email: "pat@example.com",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty message: expected 400, got %d", rec.Code)
	}

	rec = env.request(t, http.MethodGet, "/api/v1/admin/contact", token, nil)
	var inbox []struct {
		ID     int64 `json:"id"`
		IsRead bool  `json:"is_read"`
	}
	decodeData(t, rec, &inbox)
	if len(inbox) != 1 {
		t.Fatalf("expected 1 submission, got %d", len(inbox))
	}
	if inbox[0].IsRead {
		t.Error("expected submission to start unread")
	}

	rec = env.request(t, http.MethodPost, fmt.Sprintf("/api/v1/admin/contact/%d/read", submitted.ID), token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("mark read: expected 200, got %d", rec.Code)
	}

	rec = env.request(t, http.MethodDelete, fmt.Sprintf("/api/v1/admin/contact/%d", submitted.ID), token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", rec.Code)
	}
	rec = env.request(t, http.MethodDelete, fmt.Sprintf("/api/v1/admin/contact/%d", submitted.ID), token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", rec.Code)
	}
}

func TestTeamMembers(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createAdmin(t, "admin@example.com", "Abcdef1")

	rec := env.request(t, http.MethodPost, "/api/v1/admin/team", token, TeamMemberRequest{
		Name: "Ada Lovelace", RoleTitle: "Lead Engineer", SortOrder: 1,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = env.request(t, http.MethodPost, "/api/v1/admin/team", token, TeamMemberRequest{
		Name: "No Role",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing role: expected 400, got %d", rec.Code)
	}

	rec = env.request(t, http.MethodGet, "/api/v1/team", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("public list: expected 200, got %d", rec.Code)
	}
	var members []struct {
		Name string `json:"name"`
	}
	decodeData(t, rec, &members)
	if len(members) != 1 || members[0].Name != "Ada Lovelace" {
		t.Errorf("unexpected team list: %+v", members)
	}
}

func TestAdminEvents(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createAdmin(t, "admin@example.com", "Abcdef1")

	rec := env.request(t, http.MethodGet, "/api/v1/admin/events?limit=10", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = env.request(t, http.MethodGet, "/api/v1/admin/events?limit=abc", token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad limit: expected 400, got %d", rec.Code)
	}
}
