package service

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/Sobilo34/Tyma-server/internal/errs"
	"github.com/Sobilo34/Tyma-server/internal/models"
	"github.com/Sobilo34/Tyma-server/internal/repository"
	"github.com/Sobilo34/Tyma-server/pkg/logger"
	"github.com/Sobilo34/Tyma-server/pkg/validation"
)

type ContactService struct {
	contacts *repository.ContactRepository
	validate *validation.Validator
	log      *logger.Logger
}

func NewContactService(contacts *repository.ContactRepository, validate *validation.Validator, log *logger.Logger) *ContactService {
	return &ContactService{contacts: contacts, validate: validate, log: log}
}

type ContactInput struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

// SubmitContact validates and records a contact-form submission. Free-text
// fields are HTML-escaped before storage.
func (s *ContactService) SubmitContact(ctx context.Context, input ContactInput) (*models.ContactSubmission, error) {
	fields := map[string]string{}
	if len(strings.TrimSpace(input.Name)) < 2 {
		fields["name"] = "name must be at least 2 characters"
	}
	if !s.validate.IsEmail(input.Email) {
		fields["email"] = "invalid email address"
	}
	if !models.ValidContactSubject(input.Subject) {
		fields["subject"] = fmt.Sprintf("unknown subject %q", input.Subject)
	}
	if len(strings.TrimSpace(input.Message)) < 10 {
		fields["message"] = "message must be at least 10 characters"
	}
	if len(fields) > 0 {
		return nil, errs.ValidationFields(fields)
	}

	submission := &models.ContactSubmission{
		Name:    html.EscapeString(strings.TrimSpace(input.Name)),
		Email:   strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:   strings.TrimSpace(input.Phone),
		Subject: input.Subject,
		Message: html.EscapeString(strings.TrimSpace(input.Message)),
	}
	if err := s.contacts.CreateSubmission(ctx, submission); err != nil {
		return nil, err
	}

	s.log.Infof("recorded contact submission %s (%s)", submission.ID, submission.Subject)
	return submission, nil
}

// ListSubmissions retrieves submissions for administrators, newest first.
func (s *ContactService) ListSubmissions(ctx context.Context, filter repository.ContactFilter, page, perPage int) ([]*models.ContactSubmission, int, int, int, error) {
	if filter.Subject != "" && !models.ValidContactSubject(filter.Subject) {
		return nil, 0, 0, 0, errs.Validation("subject", fmt.Sprintf("unknown subject %q", filter.Subject))
	}

	page, perPage, offset := normalizePage(page, perPage)
	filter.Limit = perPage
	filter.Offset = offset

	submissions, total, err := s.contacts.ListSubmissions(ctx, filter)
	if err != nil {
		return nil, 0, 0, 0, err
	}
	if len(submissions) == 0 && total > 0 && offset >= total {
		page = lastPage(total, perPage)
		filter.Offset = (page - 1) * perPage
		submissions, total, err = s.contacts.ListSubmissions(ctx, filter)
		if err != nil {
			return nil, 0, 0, 0, err
		}
	}
	return submissions, total, page, perPage, nil
}

// SubjectChoices returns the accepted contact subjects with display labels.
func (s *ContactService) SubjectChoices() interface{} {
	return models.ContactSubjects
}
