package service

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sobilo34/Tyma-server/internal/errs"
	"github.com/Sobilo34/Tyma-server/internal/repository"
	"github.com/Sobilo34/Tyma-server/pkg/logger"
	"github.com/Sobilo34/Tyma-server/pkg/validation"
)

func newNewsletterService(t *testing.T) (*NewsletterService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := NewNewsletterService(repository.NewNewsletterRepository(db), validation.NewValidator(), logger.NewLogger("test"))
	return svc, mock
}

func subscriberColumns() []string {
	return []string{"id", "email", "is_active", "subscribed_at", "unsubscribed_at"}
}

func TestSubscribe(t *testing.T) {
	t.Run("creates a new subscription", func(t *testing.T) {
		svc, mock := newNewsletterService(t)

		mock.ExpectQuery("SELECT (.+) FROM newsletter_subscribers WHERE email").
			WithArgs("ada@example.com").
			WillReturnRows(sqlmock.NewRows(subscriberColumns()))
		mock.ExpectExec("INSERT INTO newsletter_subscribers").
			WillReturnResult(sqlmock.NewResult(1, 1))

		subscriber, reactivated, err := svc.Subscribe(context.Background(), "  Ada@Example.com ")
		require.NoError(t, err)
		assert.False(t, reactivated)
		assert.Equal(t, "ada@example.com", subscriber.Email)
		assert.True(t, subscriber.IsActive)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reactivates an inactive subscription", func(t *testing.T) {
		svc, mock := newNewsletterService(t)

		unsubscribed := time.Now().Add(-24 * time.Hour)
		mock.ExpectQuery("SELECT (.+) FROM newsletter_subscribers WHERE email").
			WithArgs("ada@example.com").
			WillReturnRows(sqlmock.NewRows(subscriberColumns()).
				AddRow("sub-1", "ada@example.com", false, time.Now().Add(-48*time.Hour), unsubscribed))
		mock.ExpectExec("UPDATE newsletter_subscribers").
			WithArgs("sub-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		subscriber, reactivated, err := svc.Subscribe(context.Background(), "ada@example.com")
		require.NoError(t, err)
		assert.True(t, reactivated)
		assert.True(t, subscriber.IsActive)
		assert.Nil(t, subscriber.UnsubscribedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects an already active subscription", func(t *testing.T) {
		svc, mock := newNewsletterService(t)

		mock.ExpectQuery("SELECT (.+) FROM newsletter_subscribers WHERE email").
			WithArgs("ada@example.com").
			WillReturnRows(sqlmock.NewRows(subscriberColumns()).
				AddRow("sub-1", "ada@example.com", true, time.Now(), nil))

		_, _, err := svc.Subscribe(context.Background(), "ada@example.com")
		require.True(t, errs.IsConflict(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects an invalid email", func(t *testing.T) {
		svc, _ := newNewsletterService(t)
		_, _, err := svc.Subscribe(context.Background(), "not-an-email")
		require.True(t, errs.IsValidation(err))
	})
}

func TestUnsubscribe(t *testing.T) {
	t.Run("deactivates an active subscription", func(t *testing.T) {
		svc, mock := newNewsletterService(t)

		mock.ExpectQuery("SELECT (.+) FROM newsletter_subscribers WHERE email").
			WithArgs("ada@example.com").
			WillReturnRows(sqlmock.NewRows(subscriberColumns()).
				AddRow("sub-1", "ada@example.com", true, time.Now(), nil))
		mock.ExpectExec("UPDATE newsletter_subscribers").
			WithArgs("sub-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, svc.Unsubscribe(context.Background(), "ada@example.com"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for an unknown email", func(t *testing.T) {
		svc, mock := newNewsletterService(t)

		mock.ExpectQuery("SELECT (.+) FROM newsletter_subscribers WHERE email").
			WithArgs("ghost@example.com").
			WillReturnRows(sqlmock.NewRows(subscriberColumns()))

		err := svc.Unsubscribe(context.Background(), "ghost@example.com")
		require.True(t, errs.IsNotFound(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for an already inactive subscription", func(t *testing.T) {
		svc, mock := newNewsletterService(t)

		mock.ExpectQuery("SELECT (.+) FROM newsletter_subscribers WHERE email").
			WithArgs("ada@example.com").
			WillReturnRows(sqlmock.NewRows(subscriberColumns()).
				AddRow("sub-1", "ada@example.com", false, time.Now(), time.Now()))

		err := svc.Unsubscribe(context.Background(), "ada@example.com")
		require.True(t, errs.IsNotFound(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
