package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sobilo34/Tyma-server/internal/errs"
	"github.com/Sobilo34/Tyma-server/internal/models"
	"github.com/Sobilo34/Tyma-server/internal/storage"
	"github.com/Sobilo34/Tyma-server/pkg/logger"
)

func newAttachmentService(t *testing.T) (*AttachmentService, sqlmock.Sqlmock, string) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	dir := t.TempDir()
	store := storage.NewLocalStore(dir, "http://localhost/media")
	return NewAttachmentService(db, store, logger.NewLogger("test")), mock, dir
}

func jpegUpload(content string) *Upload {
	return &Upload{
		Filename:    "photo.jpg",
		ContentType: "image/jpeg",
		Size:        int64(len(content)),
		Data:        strings.NewReader(content),
	}
}

func imageRows(id string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "title", "path", "url", "alt_text", "caption", "image_type",
		"owner_kind", "owner_id", "created_at", "updated_at",
	}).AddRow(id, "Library image", "tyma_images/"+id+".jpg", "http://localhost/media/x.jpg", "", "", "OTHER", nil, nil, now, now)
}

func TestAttachNew(t *testing.T) {
	ref := models.OwnerRef{Kind: models.OwnerOfficial, ID: "official-1"}

	t.Run("creates and links image in one transaction", func(t *testing.T) {
		svc, mock, dir := newAttachmentService(t)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT profile_image_id FROM officials").
			WithArgs("official-1").
			WillReturnRows(sqlmock.NewRows([]string{"profile_image_id"}).AddRow(nil))
		mock.ExpectExec("INSERT INTO images").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("UPDATE officials SET profile_image_id").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		image, err := svc.AttachNew(context.Background(), ref, jpegUpload("payload"), ImageMeta{Title: "Portrait"})
		require.NoError(t, err)
		assert.Equal(t, models.ImageTypeProfile, image.ImageType)
		require.NotNil(t, image.OwnerKind)
		assert.Equal(t, models.OwnerOfficial, *image.OwnerKind)
		assert.Equal(t, "official-1", *image.OwnerID)

		// File landed in storage.
		_, statErr := os.Stat(filepath.Join(dir, image.Path))
		assert.NoError(t, statErr)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("detaches previous image before linking the new one", func(t *testing.T) {
		svc, mock, _ := newAttachmentService(t)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT profile_image_id FROM officials").
			WithArgs("official-1").
			WillReturnRows(sqlmock.NewRows([]string{"profile_image_id"}).AddRow("old-image"))
		mock.ExpectExec("UPDATE images").
			WithArgs("old-image").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO images").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("UPDATE officials SET profile_image_id").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		_, err := svc.Replace(context.Background(), ref, jpegUpload("payload"), ImageMeta{})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects unsupported content type before any write", func(t *testing.T) {
		svc, mock, dir := newAttachmentService(t)

		upload := &Upload{Filename: "doc.pdf", ContentType: "application/pdf", Size: 10, Data: strings.NewReader("x")}
		_, err := svc.AttachNew(context.Background(), ref, upload, ImageMeta{})
		require.True(t, errs.IsValidation(err))

		entries, _ := os.ReadDir(dir)
		assert.Empty(t, entries)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects oversized payload before any write", func(t *testing.T) {
		svc, mock, dir := newAttachmentService(t)

		upload := jpegUpload("x")
		upload.Size = MaxUploadSize + 1
		_, err := svc.AttachNew(context.Background(), ref, upload, ImageMeta{})
		require.True(t, errs.IsValidation(err))

		entries, _ := os.ReadDir(dir)
		assert.Empty(t, entries)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("fails and cleans up when owner is missing", func(t *testing.T) {
		svc, mock, dir := newAttachmentService(t)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT profile_image_id FROM officials").
			WithArgs("official-1").
			WillReturnRows(sqlmock.NewRows([]string{"profile_image_id"}))
		mock.ExpectRollback()

		_, err := svc.AttachNew(context.Background(), ref, jpegUpload("payload"), ImageMeta{})
		require.True(t, errs.IsNotFound(err))

		// The stored file is removed when the transaction fails.
		entries, _ := os.ReadDir(filepath.Join(dir, "tyma_images"))
		assert.Empty(t, entries)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDetach(t *testing.T) {
	ref := models.OwnerRef{Kind: models.OwnerNewsEvent, ID: "news-1"}

	t.Run("clears both sides of the link", func(t *testing.T) {
		svc, mock, _ := newAttachmentService(t)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT featured_image_id FROM news_events").
			WithArgs("news-1").
			WillReturnRows(sqlmock.NewRows([]string{"featured_image_id"}).AddRow("image-1"))
		mock.ExpectExec("UPDATE images").
			WithArgs("image-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE news_events SET featured_image_id").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, svc.Detach(context.Background(), ref))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("is a no-op when no image is linked", func(t *testing.T) {
		svc, mock, _ := newAttachmentService(t)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT featured_image_id FROM news_events").
			WithArgs("news-1").
			WillReturnRows(sqlmock.NewRows([]string{"featured_image_id"}).AddRow(nil))
		mock.ExpectCommit()

		require.NoError(t, svc.Detach(context.Background(), ref))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("fails when the owner does not exist", func(t *testing.T) {
		svc, mock, _ := newAttachmentService(t)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT featured_image_id FROM news_events").
			WithArgs("news-1").
			WillReturnRows(sqlmock.NewRows([]string{"featured_image_id"}))
		mock.ExpectRollback()

		err := svc.Detach(context.Background(), ref)
		require.True(t, errs.IsNotFound(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLinkExisting(t *testing.T) {
	ref := models.OwnerRef{Kind: models.OwnerOfficial, ID: "official-1"}

	t.Run("links a library image to the owner", func(t *testing.T) {
		svc, mock, _ := newAttachmentService(t)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM images").
			WithArgs("image-7").
			WillReturnRows(imageRows("image-7"))
		mock.ExpectQuery("SELECT profile_image_id FROM officials").
			WithArgs("official-1").
			WillReturnRows(sqlmock.NewRows([]string{"profile_image_id"}).AddRow(nil))
		mock.ExpectExec("UPDATE images").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE officials SET profile_image_id").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		image, err := svc.LinkExisting(context.Background(), ref, "image-7")
		require.NoError(t, err)
		assert.Equal(t, models.ImageTypeProfile, image.ImageType)
		require.NotNil(t, image.OwnerID)
		assert.Equal(t, "official-1", *image.OwnerID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("fails without mutation when the image is missing", func(t *testing.T) {
		svc, mock, _ := newAttachmentService(t)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM images").
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "title", "path", "url", "alt_text", "caption", "image_type",
				"owner_kind", "owner_id", "created_at", "updated_at",
			}))
		mock.ExpectRollback()

		_, err := svc.LinkExisting(context.Background(), ref, "ghost")
		require.True(t, errs.IsNotFound(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("fails without mutation when the owner is missing", func(t *testing.T) {
		svc, mock, _ := newAttachmentService(t)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM images").
			WithArgs("image-7").
			WillReturnRows(imageRows("image-7"))
		mock.ExpectQuery("SELECT profile_image_id FROM officials").
			WithArgs("official-1").
			WillReturnRows(sqlmock.NewRows([]string{"profile_image_id"}))
		mock.ExpectRollback()

		_, err := svc.LinkExisting(context.Background(), ref, "image-7")
		require.True(t, errs.IsNotFound(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
