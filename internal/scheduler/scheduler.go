// Copyright (c) 2025-2026 Sitekit Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the nightly retention sweep that purges
// contact submissions, closed job applications, and event log rows
// past their retention window.
package scheduler

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/sitekit-cms/sitekit-go/internal/model"
	"github.com/sitekit-cms/sitekit-go/internal/store"
)

// Scheduler handles periodic maintenance tasks.
type Scheduler struct {
	db            *sql.DB
	cron          *cron.Cron
	logger        *slog.Logger
	retentionDays int
}

// New creates a new scheduler instance. retentionDays controls how long
// contact submissions and closed job applications are kept.
func New(db *sql.DB, logger *slog.Logger, retentionDays int) *Scheduler {
	if retentionDays <= 0 {
		retentionDays = 365
	}
	return &Scheduler{
		db:            db,
		cron:          cron.New(),
		logger:        logger,
		retentionDays: retentionDays,
	}
}

// Start registers the cron jobs and begins running them.
func (s *Scheduler) Start() error {
	// Retention sweep once a day at 03:30
	if _, err := s.cron.AddFunc("30 3 * * *", func() {
		if err := s.RunRetentionSweep(context.Background()); err != nil {
			s.logger.Error("retention sweep failed", "error", err)
		}
	}); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()), "retention_days", s.retentionDays)
	return nil
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// RunRetentionSweep deletes contact submissions, closed job applications,
// and event log entries older than the retention window.
func (s *Scheduler) RunRetentionSweep(ctx context.Context) error {
	queries := store.New(s.db)
	cutoff := time.Now().AddDate(0, 0, -s.retentionDays)

	submissions, err := queries.PurgeContactSubmissionsBefore(ctx, cutoff)
	if err != nil {
		return err
	}

	applications, err := queries.PurgeClosedApplicationsBefore(ctx, cutoff)
	if err != nil {
		return err
	}

	events, err := queries.PurgeEventsBefore(ctx, cutoff)
	if err != nil {
		return err
	}

	if submissions == 0 && applications == 0 && events == 0 {
		return nil
	}

	s.logger.Info("retention sweep completed",
		"submissions", submissions,
		"applications", applications,
		"events", events,
	)

	metadata, _ := json.Marshal(map[string]any{
		"submissions":  submissions,
		"applications": applications,
		"events":       events,
		"cutoff":       cutoff.Format(time.RFC3339),
	})
	if _, err := queries.CreateEvent(ctx, store.CreateEventParams{
		Level:    model.EventLevelInfo,
		Category: model.EventCategorySystem,
		Message:  "Retention sweep removed expired records",
		Metadata: string(metadata),
	}); err != nil {
		s.logger.Warn("failed to log retention sweep event", "error", err)
	}

	return nil
}
