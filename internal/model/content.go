// Copyright (c) 2025-2026 Sitekit Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"encoding/json"
	"time"
)

// Service is one entry of the services catalogue.
type Service struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Summary   string    `json:"summary"`
	Body      string    `json:"body"` // markdown source
	Icon      string    `json:"icon,omitempty"`
	SortOrder int64     `json:"sort_order"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Project is a portfolio entry. CoverURL points at externally hosted
// media and is stored opaquely.
type Project struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Slug        string          `json:"slug"`
	Client      string          `json:"client,omitempty"`
	Summary     string          `json:"summary"`
	Body        string          `json:"body"`
	CoverURL    string          `json:"cover_url,omitempty"`
	Tags        json.RawMessage `json:"tags,omitempty"`
	IsPublished bool            `json:"is_published"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Post is a blog entry. Body holds markdown; rendering to sanitized HTML
// happens at the API boundary, not in the store.
type Post struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Slug        string       `json:"slug"`
	Excerpt     string       `json:"excerpt,omitempty"`
	Body        string       `json:"body"`
	AuthorID    int64        `json:"author_id"`
	IsPublished bool         `json:"is_published"`
	PublishedAt sql.NullTime `json:"-"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// TeamMember is one person on the team page.
type TeamMember struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	RoleTitle string    `json:"role_title"`
	Bio       string    `json:"bio,omitempty"`
	PhotoURL  string    `json:"photo_url,omitempty"`
	SortOrder int64     `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Vacancy is an open (or closed) job position.
type Vacancy struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Location    string    `json:"location,omitempty"`
	Employment  string    `json:"employment,omitempty"` // full-time, part-time, contract
	Description string    `json:"description"`
	IsOpen      bool      `json:"is_open"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
