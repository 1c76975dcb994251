// Copyright (c) 2025-2026 Sitekit Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/sitekit-cms/sitekit-go/internal/model"
)

// deleteByID removes one row from the named table, translating a missed
// delete into sql.ErrNoRows.
func (q *Queries) deleteByID(ctx context.Context, query string, id int64) error {
	res, err := q.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// --- services ---

const serviceColumns = `id, title, slug, summary, body, icon, sort_order, is_active, created_at, updated_at`

func scanService(row interface{ Scan(...any) error }) (model.Service, error) {
	var s model.Service
	err := row.Scan(&s.ID, &s.Title, &s.Slug, &s.Summary, &s.Body, &s.Icon,
		&s.SortOrder, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// ListServices returns services ordered for display. When activeOnly is
// set, inactive entries are filtered out (the public catalogue view).
func (q *Queries) ListServices(ctx context.Context, activeOnly bool) ([]model.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services`
	if activeOnly {
		query += ` WHERE is_active = 1`
	}
	query += ` ORDER BY sort_order ASC, title ASC`

	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var services []model.Service
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, s)
	}
	return services, rows.Err()
}

// GetServiceByID looks up one service.
func (q *Queries) GetServiceByID(ctx context.Context, id int64) (model.Service, error) {
	return scanService(q.db.QueryRowContext(ctx,
		`SELECT `+serviceColumns+` FROM services WHERE id = ?`, id))
}

// GetServiceBySlug looks up one service by slug.
func (q *Queries) GetServiceBySlug(ctx context.Context, slug string) (model.Service, error) {
	return scanService(q.db.QueryRowContext(ctx,
		`SELECT `+serviceColumns+` FROM services WHERE slug = ?`, slug))
}

// CreateServiceParams holds the fields for CreateService.
type CreateServiceParams struct {
	Title     string
	Slug      string
	Summary   string
	Body      string
	Icon      string
	SortOrder int64
	IsActive  bool
}

// CreateService inserts a service catalogue entry.
func (q *Queries) CreateService(ctx context.Context, arg CreateServiceParams) (model.Service, error) {
	now := time.Now()
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO services (title, slug, summary, body, icon, sort_order, is_active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.Title, arg.Slug, arg.Summary, arg.Body, arg.Icon, arg.SortOrder, arg.IsActive, now, now)
	if err != nil {
		return model.Service{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Service{}, err
	}
	return q.GetServiceByID(ctx, id)
}

// UpdateService replaces the mutable fields of a service.
func (q *Queries) UpdateService(ctx context.Context, id int64, arg CreateServiceParams) (model.Service, error) {
	res, err := q.db.ExecContext(ctx,
		`UPDATE services SET title = ?, slug = ?, summary = ?, body = ?, icon = ?,
		 sort_order = ?, is_active = ?, updated_at = ? WHERE id = ?`,
		arg.Title, arg.Slug, arg.Summary, arg.Body, arg.Icon, arg.SortOrder, arg.IsActive, time.Now(), id)
	if err != nil {
		return model.Service{}, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return model.Service{}, err
	} else if n == 0 {
		return model.Service{}, sql.ErrNoRows
	}
	return q.GetServiceByID(ctx, id)
}

// DeleteService removes a service by id.
func (q *Queries) DeleteService(ctx context.Context, id int64) error {
	return q.deleteByID(ctx, `DELETE FROM services WHERE id = ?`, id)
}

// --- projects ---

const projectColumns = `id, title, slug, client, summary, body, cover_url, tags, is_published, created_at, updated_at`

func scanProject(row interface{ Scan(...any) error }) (model.Project, error) {
	var p model.Project
	var tags string
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Client, &p.Summary, &p.Body,
		&p.CoverURL, &tags, &p.IsPublished, &p.CreatedAt, &p.UpdatedAt)
	p.Tags = []byte(tags)
	return p, err
}

// ListProjects returns portfolio entries, newest first. When publishedOnly
// is set, drafts are filtered out.
func (q *Queries) ListProjects(ctx context.Context, publishedOnly bool) ([]model.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects`
	if publishedOnly {
		query += ` WHERE is_published = 1`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var projects []model.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// GetProjectByID looks up one project.
func (q *Queries) GetProjectByID(ctx context.Context, id int64) (model.Project, error) {
	return scanProject(q.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = ?`, id))
}

// GetProjectBySlug looks up one project by slug.
func (q *Queries) GetProjectBySlug(ctx context.Context, slug string) (model.Project, error) {
	return scanProject(q.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE slug = ?`, slug))
}

// CreateProjectParams holds the fields for CreateProject.
type CreateProjectParams struct {
	Title       string
	Slug        string
	Client      string
	Summary     string
	Body        string
	CoverURL    string
	Tags        []byte
	IsPublished bool
}

// CreateProject inserts a portfolio entry.
func (q *Queries) CreateProject(ctx context.Context, arg CreateProjectParams) (model.Project, error) {
	now := time.Now()
	tags := string(arg.Tags)
	if tags == "" {
		tags = "[]"
	}
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO projects (title, slug, client, summary, body, cover_url, tags, is_published, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.Title, arg.Slug, arg.Client, arg.Summary, arg.Body, arg.CoverURL, tags, arg.IsPublished, now, now)
	if err != nil {
		return model.Project{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Project{}, err
	}
	return q.GetProjectByID(ctx, id)
}

// UpdateProject replaces the mutable fields of a project.
func (q *Queries) UpdateProject(ctx context.Context, id int64, arg CreateProjectParams) (model.Project, error) {
	tags := string(arg.Tags)
	if tags == "" {
		tags = "[]"
	}
	res, err := q.db.ExecContext(ctx,
		`UPDATE projects SET title = ?, slug = ?, client = ?, summary = ?, body = ?,
		 cover_url = ?, tags = ?, is_published = ?, updated_at = ? WHERE id = ?`,
		arg.Title, arg.Slug, arg.Client, arg.Summary, arg.Body, arg.CoverURL, tags,
		arg.IsPublished, time.Now(), id)
	if err != nil {
		return model.Project{}, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return model.Project{}, err
	} else if n == 0 {
		return model.Project{}, sql.ErrNoRows
	}
	return q.GetProjectByID(ctx, id)
}

// DeleteProject removes a project by id.
func (q *Queries) DeleteProject(ctx context.Context, id int64) error {
	return q.deleteByID(ctx, `DELETE FROM projects WHERE id = ?`, id)
}

// --- posts ---

const postColumns = `id, title, slug, excerpt, body, author_id, is_published, published_at, created_at, updated_at`

func scanPost(row interface{ Scan(...any) error }) (model.Post, error) {
	var p model.Post
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Body, &p.AuthorID,
		&p.IsPublished, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// ListPosts returns blog posts, newest published first. When publishedOnly
// is set, drafts are filtered out.
func (q *Queries) ListPosts(ctx context.Context, publishedOnly bool) ([]model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts`
	if publishedOnly {
		query += ` WHERE is_published = 1`
	}
	query += ` ORDER BY published_at DESC, created_at DESC`

	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var posts []model.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// GetPostByID looks up one post.
func (q *Queries) GetPostByID(ctx context.Context, id int64) (model.Post, error) {
	return scanPost(q.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts WHERE id = ?`, id))
}

// GetPostBySlug looks up one post by slug.
func (q *Queries) GetPostBySlug(ctx context.Context, slug string) (model.Post, error) {
	return scanPost(q.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts WHERE slug = ?`, slug))
}

// CreatePostParams holds the fields for CreatePost.
type CreatePostParams struct {
	Title       string
	Slug        string
	Excerpt     string
	Body        string
	AuthorID    int64
	IsPublished bool
}

// CreatePost inserts a blog post. published_at is stamped when the post is
// created already published.
func (q *Queries) CreatePost(ctx context.Context, arg CreatePostParams) (model.Post, error) {
	now := time.Now()
	var publishedAt sql.NullTime
	if arg.IsPublished {
		publishedAt = sql.NullTime{Time: now, Valid: true}
	}
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO posts (title, slug, excerpt, body, author_id, is_published, published_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.Title, arg.Slug, arg.Excerpt, arg.Body, arg.AuthorID, arg.IsPublished, publishedAt, now, now)
	if err != nil {
		return model.Post{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Post{}, err
	}
	return q.GetPostByID(ctx, id)
}

// UpdatePost replaces the mutable fields of a post. The first transition
// to published stamps published_at; unpublishing leaves it untouched.
func (q *Queries) UpdatePost(ctx context.Context, id int64, arg CreatePostParams) (model.Post, error) {
	current, err := q.GetPostByID(ctx, id)
	if err != nil {
		return model.Post{}, err
	}

	publishedAt := current.PublishedAt
	if arg.IsPublished && !current.PublishedAt.Valid {
		publishedAt = sql.NullTime{Time: time.Now(), Valid: true}
	}

	_, err = q.db.ExecContext(ctx,
		`UPDATE posts SET title = ?, slug = ?, excerpt = ?, body = ?, is_published = ?,
		 published_at = ?, updated_at = ? WHERE id = ?`,
		arg.Title, arg.Slug, arg.Excerpt, arg.Body, arg.IsPublished, publishedAt, time.Now(), id)
	if err != nil {
		return model.Post{}, err
	}
	return q.GetPostByID(ctx, id)
}

// DeletePost removes a post by id.
func (q *Queries) DeletePost(ctx context.Context, id int64) error {
	return q.deleteByID(ctx, `DELETE FROM posts WHERE id = ?`, id)
}

// --- team members ---

const teamMemberColumns = `id, name, role_title, bio, photo_url, sort_order, created_at, updated_at`

func scanTeamMember(row interface{ Scan(...any) error }) (model.TeamMember, error) {
	var m model.TeamMember
	err := row.Scan(&m.ID, &m.Name, &m.RoleTitle, &m.Bio, &m.PhotoURL,
		&m.SortOrder, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

// ListTeamMembers returns the team in display order.
func (q *Queries) ListTeamMembers(ctx context.Context) ([]model.TeamMember, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+teamMemberColumns+` FROM team_members ORDER BY sort_order ASC, name ASC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var members []model.TeamMember
	for rows.Next() {
		m, err := scanTeamMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// GetTeamMemberByID looks up one team member.
func (q *Queries) GetTeamMemberByID(ctx context.Context, id int64) (model.TeamMember, error) {
	return scanTeamMember(q.db.QueryRowContext(ctx,
		`SELECT `+teamMemberColumns+` FROM team_members WHERE id = ?`, id))
}

// CreateTeamMemberParams holds the fields for CreateTeamMember.
type CreateTeamMemberParams struct {
	Name      string
	RoleTitle string
	Bio       string
	PhotoURL  string
	SortOrder int64
}

// CreateTeamMember inserts a team page entry.
func (q *Queries) CreateTeamMember(ctx context.Context, arg CreateTeamMemberParams) (model.TeamMember, error) {
	now := time.Now()
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO team_members (name, role_title, bio, photo_url, sort_order, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		arg.Name, arg.RoleTitle, arg.Bio, arg.PhotoURL, arg.SortOrder, now, now)
	if err != nil {
		return model.TeamMember{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.TeamMember{}, err
	}
	return q.GetTeamMemberByID(ctx, id)
}

// UpdateTeamMember replaces the mutable fields of a team member.
func (q *Queries) UpdateTeamMember(ctx context.Context, id int64, arg CreateTeamMemberParams) (model.TeamMember, error) {
	res, err := q.db.ExecContext(ctx,
		`UPDATE team_members SET name = ?, role_title = ?, bio = ?, photo_url = ?,
		 sort_order = ?, updated_at = ? WHERE id = ?`,
		arg.Name, arg.RoleTitle, arg.Bio, arg.PhotoURL, arg.SortOrder, time.Now(), id)
	if err != nil {
		return model.TeamMember{}, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return model.TeamMember{}, err
	} else if n == 0 {
		return model.TeamMember{}, sql.ErrNoRows
	}
	return q.GetTeamMemberByID(ctx, id)
}

// DeleteTeamMember removes a team member by id.
func (q *Queries) DeleteTeamMember(ctx context.Context, id int64) error {
	return q.deleteByID(ctx, `DELETE FROM team_members WHERE id = ?`, id)
}

// --- vacancies ---

const vacancyColumns = `id, title, slug, location, employment, description, is_open, created_at, updated_at`

func scanVacancy(row interface{ Scan(...any) error }) (model.Vacancy, error) {
	var v model.Vacancy
	err := row.Scan(&v.ID, &v.Title, &v.Slug, &v.Location, &v.Employment,
		&v.Description, &v.IsOpen, &v.CreatedAt, &v.UpdatedAt)
	return v, err
}

// ListVacancies returns job positions, newest first. When openOnly is set,
// closed positions are filtered out.
func (q *Queries) ListVacancies(ctx context.Context, openOnly bool) ([]model.Vacancy, error) {
	query := `SELECT ` + vacancyColumns + ` FROM vacancies`
	if openOnly {
		query += ` WHERE is_open = 1`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var vacancies []model.Vacancy
	for rows.Next() {
		v, err := scanVacancy(rows)
		if err != nil {
			return nil, err
		}
		vacancies = append(vacancies, v)
	}
	return vacancies, rows.Err()
}

// GetVacancyByID looks up one vacancy.
func (q *Queries) GetVacancyByID(ctx context.Context, id int64) (model.Vacancy, error) {
	return scanVacancy(q.db.QueryRowContext(ctx,
		`SELECT `+vacancyColumns+` FROM vacancies WHERE id = ?`, id))
}

// GetVacancyBySlug looks up one vacancy by its slug.
func (q *Queries) GetVacancyBySlug(ctx context.Context, slug string) (model.Vacancy, error) {
	return scanVacancy(q.db.QueryRowContext(ctx,
		`SELECT `+vacancyColumns+` FROM vacancies WHERE slug = ?`, slug))
}

// CreateVacancyParams holds the fields for CreateVacancy.
type CreateVacancyParams struct {
	Title       string
	Slug        string
	Location    string
	Employment  string
	Description string
	IsOpen      bool
}

// CreateVacancy inserts a job position.
func (q *Queries) CreateVacancy(ctx context.Context, arg CreateVacancyParams) (model.Vacancy, error) {
	now := time.Now()
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO vacancies (title, slug, location, employment, description, is_open, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.Title, arg.Slug, arg.Location, arg.Employment, arg.Description, arg.IsOpen, now, now)
	if err != nil {
		return model.Vacancy{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Vacancy{}, err
	}
	return q.GetVacancyByID(ctx, id)
}

// UpdateVacancy replaces the mutable fields of a vacancy.
func (q *Queries) UpdateVacancy(ctx context.Context, id int64, arg CreateVacancyParams) (model.Vacancy, error) {
	res, err := q.db.ExecContext(ctx,
		`UPDATE vacancies SET title = ?, slug = ?, location = ?, employment = ?,
		 description = ?, is_open = ?, updated_at = ? WHERE id = ?`,
		arg.Title, arg.Slug, arg.Location, arg.Employment, arg.Description, arg.IsOpen, time.Now(), id)
	if err != nil {
		return model.Vacancy{}, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return model.Vacancy{}, err
	} else if n == 0 {
		return model.Vacancy{}, sql.ErrNoRows
	}
	return q.GetVacancyByID(ctx, id)
}

// DeleteVacancy removes a vacancy by id.
func (q *Queries) DeleteVacancy(ctx context.Context, id int64) error {
	return q.deleteByID(ctx, `DELETE FROM vacancies WHERE id = ?`, id)
}
