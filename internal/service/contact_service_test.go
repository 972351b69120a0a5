package service

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sobilo34/Tyma-server/internal/errs"
	"github.com/Sobilo34/Tyma-server/internal/repository"
	"github.com/Sobilo34/Tyma-server/pkg/logger"
	"github.com/Sobilo34/Tyma-server/pkg/validation"
)

func newContactService(t *testing.T) (*ContactService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := NewContactService(repository.NewContactRepository(db), validation.NewValidator(), logger.NewLogger("test"))
	return svc, mock
}

func validContactInput() ContactInput {
	return ContactInput{
		Name:    "Ada Obi",
		Email:   "Ada@Example.com",
		Phone:   "+2348012345678",
		Subject: "GENERAL",
		Message: "I would like to know more about your programs.",
	}
}

func TestSubmitContact(t *testing.T) {
	t.Run("records a valid submission", func(t *testing.T) {
		svc, mock := newContactService(t)

		mock.ExpectExec("INSERT INTO contact_submissions").
			WillReturnResult(sqlmock.NewResult(1, 1))

		submission, err := svc.SubmitContact(context.Background(), validContactInput())
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", submission.Email)
		assert.NotEmpty(t, submission.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("escapes HTML in free-text fields", func(t *testing.T) {
		svc, mock := newContactService(t)

		mock.ExpectExec("INSERT INTO contact_submissions").
			WillReturnResult(sqlmock.NewResult(1, 1))

		input := validContactInput()
		input.Message = "<script>alert('x')</script> tell me more please"
		submission, err := svc.SubmitContact(context.Background(), input)
		require.NoError(t, err)
		assert.NotContains(t, submission.Message, "<script>")
		assert.Contains(t, submission.Message, "&lt;script&gt;")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects invalid fields together", func(t *testing.T) {
		svc, _ := newContactService(t)

		_, err := svc.SubmitContact(context.Background(), ContactInput{
			Name:    "A",
			Email:   "bad",
			Subject: "NOPE",
			Message: "short",
		})
		require.True(t, errs.IsValidation(err))

		var validationErr *errs.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Len(t, validationErr.Fields, 4)
	})

	t.Run("rejects unknown subject", func(t *testing.T) {
		svc, _ := newContactService(t)

		input := validContactInput()
		input.Subject = "SOMETHING_ELSE"
		_, err := svc.SubmitContact(context.Background(), input)
		require.True(t, errs.IsValidation(err))
	})
}
