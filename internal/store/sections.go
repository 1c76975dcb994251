// Copyright (c) 2025-2026 Sitekit Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/sitekit-cms/sitekit-go/internal/model"
)

const sectionColumns = `id, page, section_key, data, created_at, updated_at`

func scanSection(row interface{ Scan(...any) error }) (model.Section, error) {
	var s model.Section
	var data string
	err := row.Scan(&s.ID, &s.Page, &s.Key, &data, &s.CreatedAt, &s.UpdatedAt)
	s.Data = []byte(data)
	return s, err
}

func collectSections(rows *sql.Rows) ([]model.Section, error) {
	defer func() { _ = rows.Close() }()
	var sections []model.Section
	for rows.Next() {
		s, err := scanSection(rows)
		if err != nil {
			return nil, err
		}
		sections = append(sections, s)
	}
	return sections, rows.Err()
}

// UpsertSectionParams holds the fields for UpsertSection.
type UpsertSectionParams struct {
	Page string
	Key  string
	Data []byte
}

// UpsertSection inserts a section if the (page, key) pair is absent, or
// replaces its data otherwise. created_at is only written on first insert.
// Returns the new row id on insert and nil on update; callers branch on
// this to tell a create from an update.
//
// The insert relies on the unique index over (page, section_key): when two
// writers race, one insert wins and the other falls through to the UPDATE,
// so the pair can never yield two rows.
func (q *Queries) UpsertSection(ctx context.Context, arg UpsertSectionParams) (*int64, error) {
	now := time.Now()
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO sections (page, section_key, data, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(page, section_key) DO NOTHING`,
		arg.Page, arg.Key, string(arg.Data), now, now)
	if err != nil {
		return nil, err
	}

	if n, err := res.RowsAffected(); err != nil {
		return nil, err
	} else if n == 1 {
		id, err := res.LastInsertId()
		if err != nil {
			return nil, err
		}
		return &id, nil
	}

	_, err = q.db.ExecContext(ctx,
		`UPDATE sections SET data = ?, updated_at = ? WHERE page = ? AND section_key = ?`,
		string(arg.Data), now, arg.Page, arg.Key)
	return nil, err
}

// GetSectionsByPage returns all sections of one page in store order.
func (q *Queries) GetSectionsByPage(ctx context.Context, page string) ([]model.Section, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+sectionColumns+` FROM sections WHERE page = ?`, page)
	if err != nil {
		return nil, err
	}
	return collectSections(rows)
}

// ListSections returns every section ordered by (page, key) for
// deterministic admin rendering.
func (q *Queries) ListSections(ctx context.Context) ([]model.Section, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+sectionColumns+` FROM sections ORDER BY page ASC, section_key ASC`)
	if err != nil {
		return nil, err
	}
	return collectSections(rows)
}

// GetSectionByID looks up one section by row id.
func (q *Queries) GetSectionByID(ctx context.Context, id int64) (model.Section, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+sectionColumns+` FROM sections WHERE id = ?`, id)
	return scanSection(row)
}

// DeleteSection removes a section by id. Returns sql.ErrNoRows if no row
// had that id.
func (q *Queries) DeleteSection(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM sections WHERE id = ?`, id)
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
