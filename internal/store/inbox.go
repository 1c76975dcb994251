// Copyright (c) 2025-2026 Sitekit Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/sitekit-cms/sitekit-go/internal/model"
)

// --- contact submissions ---

const contactColumns = `id, name, email, subject, message, is_read, created_at`

func scanContactSubmission(row interface{ Scan(...any) error }) (model.ContactSubmission, error) {
	var c model.ContactSubmission
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Subject, &c.Message, &c.IsRead, &c.CreatedAt)
	return c, err
}

// CreateContactSubmissionParams holds the fields for CreateContactSubmission.
type CreateContactSubmissionParams struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// CreateContactSubmission stores a public contact form message.
func (q *Queries) CreateContactSubmission(ctx context.Context, arg CreateContactSubmissionParams) (model.ContactSubmission, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO contact_submissions (name, email, subject, message, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		arg.Name, arg.Email, arg.Subject, arg.Message, time.Now())
	if err != nil {
		return model.ContactSubmission{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.ContactSubmission{}, err
	}
	return q.GetContactSubmissionByID(ctx, id)
}

// GetContactSubmissionByID looks up one submission.
func (q *Queries) GetContactSubmissionByID(ctx context.Context, id int64) (model.ContactSubmission, error) {
	return scanContactSubmission(q.db.QueryRowContext(ctx,
		`SELECT `+contactColumns+` FROM contact_submissions WHERE id = ?`, id))
}

// ListContactSubmissions returns submissions, newest first.
func (q *Queries) ListContactSubmissions(ctx context.Context) ([]model.ContactSubmission, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+contactColumns+` FROM contact_submissions ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var submissions []model.ContactSubmission
	for rows.Next() {
		c, err := scanContactSubmission(rows)
		if err != nil {
			return nil, err
		}
		submissions = append(submissions, c)
	}
	return submissions, rows.Err()
}

// MarkContactSubmissionRead flags a submission as read.
func (q *Queries) MarkContactSubmissionRead(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx,
		`UPDATE contact_submissions SET is_read = 1 WHERE id = ?`, id)
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

// DeleteContactSubmission removes a submission by id.
func (q *Queries) DeleteContactSubmission(ctx context.Context, id int64) error {
	return q.deleteByID(ctx, `DELETE FROM contact_submissions WHERE id = ?`, id)
}

// PurgeContactSubmissionsBefore deletes submissions created before the
// cutoff. Returns the number of rows removed.
func (q *Queries) PurgeContactSubmissionsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`DELETE FROM contact_submissions WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// --- job applications ---

const applicationColumns = `id, vacancy_id, reference, name, email, phone, cover_letter, resume_url, status, created_at, updated_at`

func scanJobApplication(row interface{ Scan(...any) error }) (model.JobApplication, error) {
	var a model.JobApplication
	err := row.Scan(&a.ID, &a.VacancyID, &a.Reference, &a.Name, &a.Email, &a.Phone,
		&a.CoverLetter, &a.ResumeURL, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

// CreateJobApplicationParams holds the fields for CreateJobApplication.
type CreateJobApplicationParams struct {
	VacancyID   int64
	Reference   string
	Name        string
	Email       string
	Phone       string
	CoverLetter string
	ResumeURL   string
}

// CreateJobApplication stores a candidate submission.
func (q *Queries) CreateJobApplication(ctx context.Context, arg CreateJobApplicationParams) (model.JobApplication, error) {
	now := time.Now()
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO job_applications (vacancy_id, reference, name, email, phone, cover_letter, resume_url, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.VacancyID, arg.Reference, arg.Name, arg.Email, arg.Phone,
		arg.CoverLetter, arg.ResumeURL, model.ApplicationStatusNew, now, now)
	if err != nil {
		return model.JobApplication{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.JobApplication{}, err
	}
	return q.GetJobApplicationByID(ctx, id)
}

// GetJobApplicationByID looks up one application.
func (q *Queries) GetJobApplicationByID(ctx context.Context, id int64) (model.JobApplication, error) {
	return scanJobApplication(q.db.QueryRowContext(ctx,
		`SELECT `+applicationColumns+` FROM job_applications WHERE id = ?`, id))
}

// ListJobApplications returns applications, newest first. vacancyID 0
// lists across all vacancies.
func (q *Queries) ListJobApplications(ctx context.Context, vacancyID int64) ([]model.JobApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM job_applications`
	var args []any
	if vacancyID != 0 {
		query += ` WHERE vacancy_id = ?`
		args = append(args, vacancyID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var applications []model.JobApplication
	for rows.Next() {
		a, err := scanJobApplication(rows)
		if err != nil {
			return nil, err
		}
		applications = append(applications, a)
	}
	return applications, rows.Err()
}

// UpdateJobApplicationStatus moves an application through the review flow.
func (q *Queries) UpdateJobApplicationStatus(ctx context.Context, id int64, status string) error {
	res, err := q.db.ExecContext(ctx,
		`UPDATE job_applications SET status = ?, updated_at = ? WHERE id = ?`,
		status, time.Now(), id)
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

// DeleteJobApplication removes an application by id.
func (q *Queries) DeleteJobApplication(ctx context.Context, id int64) error {
	return q.deleteByID(ctx, `DELETE FROM job_applications WHERE id = ?`, id)
}

// PurgeClosedApplicationsBefore deletes accepted/rejected applications
// last touched before the cutoff. Returns the number of rows removed.
func (q *Queries) PurgeClosedApplicationsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`DELETE FROM job_applications WHERE status IN (?, ?) AND updated_at < ?`,
		model.ApplicationStatusAccepted, model.ApplicationStatusRejected, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
