// Copyright (c) 2025-2026 Sitekit Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
)

func TestUpsertSection_CreateThenUpdate(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createAdmin(t, "admin@example.com", "Abcdef1")

	body := UpsertSectionRequest{
		Page: "home",
		Key:  "hero",
		Data: json.RawMessage(`{"title":"Welcome","subtitle":"We build software"}`),
	}

	rec := env.request(t, http.MethodPost, "/api/v1/admin/pages", token, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var first UpsertSectionResponse
	decodeData(t, rec, &first)
	if first.Status != "created" {
		t.Errorf("expected status created, got %q", first.Status)
	}
	if first.UpsertedID == nil {
		t.Fatal("expected upserted_id on first insert")
	}

	// Same (page, key) again: the row is updated in place.
	body.Data = json.RawMessage(`{"title":"Changed"}`)
	rec = env.request(t, http.MethodPost, "/api/v1/admin/pages", token, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on second upsert, got %d: %s", rec.Code, rec.Body.String())
	}

	var second UpsertSectionResponse
	decodeData(t, rec, &second)
	if second.Status != "updated" {
		t.Errorf("expected status updated, got %q", second.Status)
	}
	if second.UpsertedID != nil {
		t.Errorf("expected null upserted_id on update, got %d", *second.UpsertedID)
	}

	// The public page read reflects the update.
	rec = env.request(t, http.MethodGet, "/api/v1/pages/home", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var page PageResponse
	decodeData(t, rec, &page)
	if len(page.Sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(page.Sections))
	}
	if string(page.Sections[0].Data) != `{"title":"Changed"}` {
		t.Errorf("expected updated data, got %s", page.Sections[0].Data)
	}
}

func TestUpsertSection_Validation(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createAdmin(t, "admin@example.com", "Abcdef1")

	tests := []struct {
		name string
		req  UpsertSectionRequest
	}{
		{"missing page", UpsertSectionRequest{Key: "hero", Data: json.RawMessage(`{}`)}},
		{"missing key", UpsertSectionRequest{Page: "home", Data: json.RawMessage(`{}`)}},
		{"invalid data", UpsertSectionRequest{Page: "home", Key: "hero", Data: json.RawMessage(`{broken`)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.request(t, http.MethodPost, "/api/v1/admin/pages", token, tt.req)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
			if detail := decodeError(t, rec); detail.Code != "validation_error" {
				t.Errorf("expected code validation_error, got %q", detail.Code)
			}
		})
	}
}

func TestGetPageSections_UnknownPageIsEmpty(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodGet, "/api/v1/pages/no-such-page", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var page PageResponse
	decodeData(t, rec, &page)
	if len(page.Sections) != 0 {
		t.Errorf("expected no sections, got %d", len(page.Sections))
	}
}

func TestListSections(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createAdmin(t, "admin@example.com", "Abcdef1")

	for i, key := range []string{"hero", "cta", "footer"} {
		req := UpsertSectionRequest{
			Page: "home",
			Key:  key,
			Data: json.RawMessage(fmt.Sprintf(`{"n":%d}`, i)),
		}
		rec := env.request(t, http.MethodPost, "/api/v1/admin/pages", token, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("upsert %s: expected 200, got %d", key, rec.Code)
		}
	}

	rec := env.request(t, http.MethodGet, "/api/v1/admin/pages", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var sections []SectionResponse
	decodeData(t, rec, &sections)
	if len(sections) != 3 {
		t.Errorf("expected 3 sections, got %d", len(sections))
	}
}

func TestDeleteSection(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createAdmin(t, "admin@example.com", "Abcdef1")

	rec := env.request(t, http.MethodPost, "/api/v1/admin/pages", token, UpsertSectionRequest{
		Page: "about",
		Key:  "intro",
		Data: json.RawMessage(`{"text":"hello"}`),
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("upsert: expected 200, got %d", rec.Code)
	}
	var upserted UpsertSectionResponse
	decodeData(t, rec, &upserted)
	if upserted.UpsertedID == nil {
		t.Fatal("expected upserted_id")
	}
	id := *upserted.UpsertedID

	rec = env.request(t, http.MethodDelete, fmt.Sprintf("/api/v1/admin/pages/%d", id), token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// Deleting the same id again is a 404.
	rec = env.request(t, http.MethodDelete, fmt.Sprintf("/api/v1/admin/pages/%d", id), token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", rec.Code)
	}

	// The public read no longer shows the section.
	rec = env.request(t, http.MethodGet, "/api/v1/pages/about", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var page PageResponse
	decodeData(t, rec, &page)
	if len(page.Sections) != 0 {
		t.Errorf("expected no sections after delete, got %d", len(page.Sections))
	}
}

func TestDeleteSection_UnknownID(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createAdmin(t, "admin@example.com", "Abcdef1")

	rec := env.request(t, http.MethodDelete, "/api/v1/admin/pages/9999", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
	if detail := decodeError(t, rec); detail.Code != "not_found" {
		t.Errorf("expected code not_found, got %q", detail.Code)
	}
}
