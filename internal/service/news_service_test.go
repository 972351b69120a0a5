package service

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sobilo34/Tyma-server/internal/errs"
	"github.com/Sobilo34/Tyma-server/internal/models"
	"github.com/Sobilo34/Tyma-server/internal/repository"
	"github.com/Sobilo34/Tyma-server/internal/storage"
	"github.com/Sobilo34/Tyma-server/pkg/logger"
)

func newNewsService(t *testing.T) (*NewsService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := logger.NewLogger("test")
	store := storage.NewLocalStore(t.TempDir(), "http://localhost/media")
	svc := NewNewsService(
		repository.NewNewsRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewOfficialRepository(db),
		repository.NewImageRepository(db),
		NewAttachmentService(db, store, log),
		log,
	)
	return svc, mock
}

func newsColumnsList() []string {
	return []string{
		"id", "title", "slug", "author_id", "news_type", "short_description", "content",
		"featured_image_id", "is_featured", "event_date", "event_location", "published_at",
		"views", "created_at", "updated_at",
	}
}

func TestCreateNewsSlug(t *testing.T) {
	t.Run("slugifies the title", func(t *testing.T) {
		svc, mock := newNewsService(t)

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM news_events WHERE slug`).
			WithArgs("community-town-hall").
			WillReturnRows(countRow(0))
		mock.ExpectExec("INSERT INTO news_events").
			WillReturnResult(sqlmock.NewResult(1, 1))

		news, err := svc.CreateNews(context.Background(), CreateNewsInput{
			Title:    "Community Town Hall!",
			NewsType: models.NewsTypeNews,
			Content:  "Details to follow.",
		})
		require.NoError(t, err)
		assert.Equal(t, "community-town-hall", news.Slug)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("appends a counter when the slug is taken", func(t *testing.T) {
		svc, mock := newNewsService(t)

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM news_events WHERE slug`).
			WithArgs("town-hall").
			WillReturnRows(countRow(1))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM news_events WHERE slug`).
			WithArgs("town-hall-1").
			WillReturnRows(countRow(1))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM news_events WHERE slug`).
			WithArgs("town-hall-2").
			WillReturnRows(countRow(0))
		mock.ExpectExec("INSERT INTO news_events").
			WillReturnResult(sqlmock.NewResult(1, 1))

		news, err := svc.CreateNews(context.Background(), CreateNewsInput{
			Title:    "Town Hall",
			NewsType: models.NewsTypeAnnouncement,
			Content:  "Again.",
		})
		require.NoError(t, err)
		assert.Equal(t, "town-hall-2", news.Slug)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects unknown news type", func(t *testing.T) {
		svc, _ := newNewsService(t)
		_, err := svc.CreateNews(context.Background(), CreateNewsInput{
			Title:    "Whatever",
			NewsType: "GOSSIP",
		})
		require.True(t, errs.IsValidation(err))
	})

	t.Run("requires an event date for events", func(t *testing.T) {
		svc, _ := newNewsService(t)
		_, err := svc.CreateNews(context.Background(), CreateNewsInput{
			Title:    "Annual Picnic",
			NewsType: models.NewsTypeEvent,
		})
		require.True(t, errs.IsValidation(err))
	})
}

func TestGetNews(t *testing.T) {
	t.Run("counts the view", func(t *testing.T) {
		svc, mock := newNewsService(t)

		now := time.Now()
		mock.ExpectQuery("SELECT (.+) FROM news_events WHERE slug").
			WithArgs("town-hall").
			WillReturnRows(sqlmock.NewRows(newsColumnsList()).
				AddRow("news-1", "Town Hall", "town-hall", nil, "NEWS", "", "Details.",
					nil, false, nil, "", now, 4, now, now))
		mock.ExpectExec("UPDATE news_events SET views").
			WithArgs("news-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT (.+) FROM news_categories").
			WithArgs("news-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "description", "created_at", "updated_at"}))

		news, err := svc.GetNews(context.Background(), "town-hall")
		require.NoError(t, err)
		assert.Equal(t, uint64(5), news.Views)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for unknown slug", func(t *testing.T) {
		svc, mock := newNewsService(t)

		mock.ExpectQuery("SELECT (.+) FROM news_events WHERE slug").
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows(newsColumnsList()))

		_, err := svc.GetNews(context.Background(), "ghost")
		require.True(t, errs.IsNotFound(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
