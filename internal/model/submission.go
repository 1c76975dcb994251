// Copyright (c) 2025-2026 Sitekit Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Job application statuses.
const (
	ApplicationStatusNew       = "new"
	ApplicationStatusReviewing = "reviewing"
	ApplicationStatusAccepted  = "accepted"
	ApplicationStatusRejected  = "rejected"
)

// ValidApplicationStatus reports whether s is a known application status.
func ValidApplicationStatus(s string) bool {
	switch s {
	case ApplicationStatusNew, ApplicationStatusReviewing,
		ApplicationStatusAccepted, ApplicationStatusRejected:
		return true
	}
	return false
}

// ContactSubmission is a message sent through the public contact form.
type ContactSubmission struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject,omitempty"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// JobApplication is a candidate submission for a vacancy. Reference is an
// opaque code handed to the candidate for follow-up correspondence.
type JobApplication struct {
	ID          int64     `json:"id"`
	VacancyID   int64     `json:"vacancy_id"`
	Reference   string    `json:"reference"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	CoverLetter string    `json:"cover_letter,omitempty"`
	ResumeURL   string    `json:"resume_url,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
