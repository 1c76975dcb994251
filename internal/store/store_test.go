// Copyright (c) 2025-2026 Sitekit Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package store_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/sitekit-cms/sitekit-go/internal/model"
	"github.com/sitekit-cms/sitekit-go/internal/store"
	"github.com/sitekit-cms/sitekit-go/internal/testutil"
)

func TestCreateAndGetUser(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()
	queries := store.New(db)

	user, err := queries.CreateUser(ctx, store.CreateUserParams{
		Email:        "jane@example.com",
		PasswordHash: "$argon2id$fake",
		Name:         "Jane Doe",
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("CreateUser returned zero id")
	}
	if !user.IsActive {
		t.Error("new user not active")
	}
	if user.LastLoginAt.Valid {
		t.Error("new user has last_login_at set")
	}

	got, err := queries.GetUserByEmail(ctx, "jane@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("GetUserByEmail id = %d, want %d", got.ID, user.ID)
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()
	queries := store.New(db)

	params := store.CreateUserParams{
		Email:        "jane@example.com",
		PasswordHash: "x",
		Name:         "Jane",
	}
	if _, err := queries.CreateUser(ctx, params); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if _, err := queries.CreateUser(ctx, params); err == nil {
		t.Fatal("duplicate email insert succeeded, want unique constraint error")
	}
}

func TestUpdateUserLastLogin(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()
	queries := store.New(db)

	user, err := queries.CreateUser(ctx, store.CreateUserParams{
		Email: "jane@example.com", PasswordHash: "x", Name: "Jane",
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	if err := queries.UpdateUserLastLogin(ctx, user.ID); err != nil {
		t.Fatalf("UpdateUserLastLogin: %v", err)
	}

	got, err := queries.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if !got.LastLoginAt.Valid {
		t.Error("last_login_at not set after login")
	}
}

func TestSetUserActive(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()
	queries := store.New(db)

	user, err := queries.CreateUser(ctx, store.CreateUserParams{
		Email: "jane@example.com", PasswordHash: "x", Name: "Jane",
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	if err := queries.SetUserActive(ctx, user.ID, false); err != nil {
		t.Fatalf("SetUserActive: %v", err)
	}
	got, err := queries.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if got.IsActive {
		t.Error("user still active after deactivation")
	}
}

func TestSeed_Idempotent(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()

	if err := store.Seed(ctx, db, true); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if err := store.Seed(ctx, db, true); err != nil {
		t.Fatalf("Seed (second run): %v", err)
	}

	n, err := store.New(db).CountUsers(ctx)
	if err != nil {
		t.Fatalf("CountUsers: %v", err)
	}
	if n != 1 {
		t.Fatalf("CountUsers = %d after two seed runs, want 1", n)
	}
}

func TestSeed_Disabled(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()
	if err := store.Seed(ctx, db, false); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	n, err := store.New(db).CountUsers(ctx)
	if err != nil {
		t.Fatalf("CountUsers: %v", err)
	}
	if n != 0 {
		t.Fatalf("CountUsers = %d with seeding disabled, want 0", n)
	}
}

func TestContactSubmission_Lifecycle(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()
	queries := store.New(db)

	sub, err := queries.CreateContactSubmission(ctx, store.CreateContactSubmissionParams{
		Name:    "Visitor",
		Email:   "visitor@example.com",
		Subject: "Hello",
		Message: "We need a website.",
	})
	if err != nil {
		t.Fatalf("CreateContactSubmission: %v", err)
	}
	if sub.IsRead {
		t.Error("new submission marked read")
	}

	if err := queries.MarkContactSubmissionRead(ctx, sub.ID); err != nil {
		t.Fatalf("MarkContactSubmissionRead: %v", err)
	}

	subs, err := queries.ListContactSubmissions(ctx)
	if err != nil {
		t.Fatalf("ListContactSubmissions: %v", err)
	}
	if len(subs) != 1 || !subs[0].IsRead {
		t.Fatalf("unexpected list result: %+v", subs)
	}

	if err := queries.DeleteContactSubmission(ctx, sub.ID); err != nil {
		t.Fatalf("DeleteContactSubmission: %v", err)
	}
	if err := queries.DeleteContactSubmission(ctx, sub.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("second delete error = %v, want sql.ErrNoRows", err)
	}
}

func TestPurgeContactSubmissionsBefore(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()
	queries := store.New(db)

	if _, err := queries.CreateContactSubmission(ctx, store.CreateContactSubmissionParams{
		Name: "Recent", Email: "r@example.com", Message: "hi",
	}); err != nil {
		t.Fatalf("CreateContactSubmission: %v", err)
	}

	// Nothing is old enough to purge.
	n, err := queries.PurgeContactSubmissionsBefore(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("PurgeContactSubmissionsBefore: %v", err)
	}
	if n != 0 {
		t.Errorf("purged %d rows, want 0", n)
	}

	// Everything is older than a future cutoff.
	n, err = queries.PurgeContactSubmissionsBefore(ctx, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("PurgeContactSubmissionsBefore: %v", err)
	}
	if n != 1 {
		t.Errorf("purged %d rows, want 1", n)
	}
}

func TestJobApplication_Lifecycle(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()
	queries := store.New(db)

	vacancy, err := queries.CreateVacancy(ctx, store.CreateVacancyParams{
		Title: "Go Engineer", Slug: "go-engineer", Description: "Build things.", IsOpen: true,
	})
	if err != nil {
		t.Fatalf("CreateVacancy: %v", err)
	}

	app, err := queries.CreateJobApplication(ctx, store.CreateJobApplicationParams{
		VacancyID: vacancy.ID,
		Reference: "ref-123",
		Name:      "Candidate",
		Email:     "cand@example.com",
	})
	if err != nil {
		t.Fatalf("CreateJobApplication: %v", err)
	}
	if app.Status != model.ApplicationStatusNew {
		t.Errorf("Status = %q, want %q", app.Status, model.ApplicationStatusNew)
	}

	if err := queries.UpdateJobApplicationStatus(ctx, app.ID, model.ApplicationStatusReviewing); err != nil {
		t.Fatalf("UpdateJobApplicationStatus: %v", err)
	}

	apps, err := queries.ListJobApplications(ctx, vacancy.ID)
	if err != nil {
		t.Fatalf("ListJobApplications: %v", err)
	}
	if len(apps) != 1 || apps[0].Status != model.ApplicationStatusReviewing {
		t.Fatalf("unexpected list result: %+v", apps)
	}

	if err := queries.UpdateJobApplicationStatus(ctx, 9999, model.ApplicationStatusAccepted); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("status update on missing row error = %v, want sql.ErrNoRows", err)
	}
}

func TestContentCRUD_Smoke(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()
	queries := store.New(db)

	svc, err := queries.CreateService(ctx, store.CreateServiceParams{
		Title: "Web Development", Slug: "web-development", Summary: "Sites", IsActive: true,
	})
	if err != nil {
		t.Fatalf("CreateService: %v", err)
	}

	svc, err = queries.UpdateService(ctx, svc.ID, store.CreateServiceParams{
		Title: "Web Dev", Slug: "web-development", Summary: "Sites", IsActive: false,
	})
	if err != nil {
		t.Fatalf("UpdateService: %v", err)
	}
	if svc.Title != "Web Dev" || svc.IsActive {
		t.Errorf("unexpected service after update: %+v", svc)
	}

	active, err := queries.ListServices(ctx, true)
	if err != nil {
		t.Fatalf("ListServices: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("active list has %d entries, want 0", len(active))
	}

	if err := queries.DeleteService(ctx, svc.ID); err != nil {
		t.Fatalf("DeleteService: %v", err)
	}
	if _, err := queries.GetServiceByID(ctx, svc.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("GetServiceByID after delete error = %v, want sql.ErrNoRows", err)
	}
}

func TestPostPublishedAt_SetOnce(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()
	queries := store.New(db)

	user, err := queries.CreateUser(ctx, store.CreateUserParams{
		Email: "author@example.com", PasswordHash: "x", Name: "Author",
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	post, err := queries.CreatePost(ctx, store.CreatePostParams{
		Title: "Draft", Slug: "draft", Body: "text", AuthorID: user.ID,
	})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if post.PublishedAt.Valid {
		t.Error("draft has published_at set")
	}

	post, err = queries.UpdatePost(ctx, post.ID, store.CreatePostParams{
		Title: "Draft", Slug: "draft", Body: "text", AuthorID: user.ID, IsPublished: true,
	})
	if err != nil {
		t.Fatalf("UpdatePost (publish): %v", err)
	}
	if !post.PublishedAt.Valid {
		t.Fatal("published_at not stamped on publish")
	}
	firstPublished := post.PublishedAt.Time

	post, err = queries.UpdatePost(ctx, post.ID, store.CreatePostParams{
		Title: "Draft v2", Slug: "draft", Body: "text", AuthorID: user.ID, IsPublished: true,
	})
	if err != nil {
		t.Fatalf("UpdatePost (edit): %v", err)
	}
	if !post.PublishedAt.Time.Equal(firstPublished) {
		t.Errorf("published_at changed on edit: %v -> %v", firstPublished, post.PublishedAt.Time)
	}
}
