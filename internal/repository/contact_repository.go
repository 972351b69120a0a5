package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Sobilo34/Tyma-server/internal/models"
)

type ContactRepository struct {
	db DBTX
}

func NewContactRepository(db DBTX) *ContactRepository {
	return &ContactRepository{db: db}
}

// ContactFilter narrows ListSubmissions results.
type ContactFilter struct {
	Email   string
	Subject string
	Limit   int
	Offset  int
}

// CreateSubmission inserts a new contact submission.
func (r *ContactRepository) CreateSubmission(ctx context.Context, submission *models.ContactSubmission) error {
	if submission.ID == "" {
		submission.ID = uuid.New().String()
	}

	query := `
		INSERT INTO contact_submissions (id, name, email, phone, subject, message, is_responded, response_notes, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, 0, '', NOW())
	`

	_, err := r.db.ExecContext(ctx, query,
		submission.ID,
		submission.Name,
		submission.Email,
		submission.Phone,
		submission.Subject,
		submission.Message,
	)
	if err != nil {
		return fmt.Errorf("failed to create contact submission: %w", err)
	}

	return nil
}

// ListSubmissions retrieves submissions matching the filter, newest first,
// along with the total count.
func (r *ContactRepository) ListSubmissions(ctx context.Context, filter ContactFilter) ([]*models.ContactSubmission, int, error) {
	where := " WHERE 1=1"
	args := []interface{}{}

	if filter.Email != "" {
		where += " AND email LIKE ?"
		args = append(args, "%"+filter.Email+"%")
	}
	if filter.Subject != "" {
		where += " AND subject = ?"
		args = append(args, filter.Subject)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM contact_submissions"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count contact submissions: %w", err)
	}

	query := `SELECT id, name, email, phone, subject, message, is_responded, response_notes, submitted_at
		FROM contact_submissions` + where + " ORDER BY submitted_at DESC LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list contact submissions: %w", err)
	}
	defer rows.Close()

	var submissions []*models.ContactSubmission
	for rows.Next() {
		var submission models.ContactSubmission
		if err := rows.Scan(
			&submission.ID,
			&submission.Name,
			&submission.Email,
			&submission.Phone,
			&submission.Subject,
			&submission.Message,
			&submission.IsResponded,
			&submission.ResponseNotes,
			&submission.SubmittedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan contact submission: %w", err)
		}
		submissions = append(submissions, &submission)
	}

	return submissions, total, nil
}
