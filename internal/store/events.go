// Copyright (c) 2025-2026 Sitekit Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/sitekit-cms/sitekit-go/internal/model"
)

// CreateEventParams holds the fields for CreateEvent.
type CreateEventParams struct {
	Level     string
	Category  string
	Message   string
	UserID    *int64
	Metadata  string
	CreatedAt time.Time
}

// CreateEvent appends an entry to the event log.
func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) (int64, error) {
	metadata := arg.Metadata
	if metadata == "" {
		metadata = "{}"
	}
	createdAt := arg.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO events (level, category, message, user_id, metadata, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		arg.Level, arg.Category, arg.Message, arg.UserID, metadata, createdAt)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListEvents returns the most recent event log entries.
func (q *Queries) ListEvents(ctx context.Context, limit int64) ([]model.Event, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, level, category, message, user_id, metadata, created_at
		 FROM events ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var events []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.Level, &e.Category, &e.Message,
			&e.UserID, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// PurgeEventsBefore deletes event log entries created before the cutoff.
// Returns the number of rows removed.
func (q *Queries) PurgeEventsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`DELETE FROM events WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
