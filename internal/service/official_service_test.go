package service

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sobilo34/Tyma-server/internal/errs"
	"github.com/Sobilo34/Tyma-server/internal/repository"
	"github.com/Sobilo34/Tyma-server/internal/storage"
	"github.com/Sobilo34/Tyma-server/pkg/identifier"
	"github.com/Sobilo34/Tyma-server/pkg/logger"
)

func newOfficialService(t *testing.T) (*OfficialService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := logger.NewLogger("test")
	store := storage.NewLocalStore(t.TempDir(), "http://localhost/media")
	svc := NewOfficialService(
		repository.NewOfficialRepository(db),
		repository.NewZoneRepository(db),
		repository.NewImageRepository(db),
		NewAttachmentService(db, store, log),
		identifier.NewGenerator(),
		log,
	)
	return svc, mock
}

func validOfficialInput() CreateOfficialInput {
	return CreateOfficialInput{
		FirstName:    "adewale",
		LastName:     "lawal",
		ZoneName:     "Ikeja",
		Phone:        "+2348012345678",
		Email:        "Adewale@Example.com",
		Position:     "CHAIRMAN",
		OfficialType: "BOARD",
	}
}

func TestCreateOfficial(t *testing.T) {
	t.Run("creates official with generated identifier", func(t *testing.T) {
		svc, mock := newOfficialService(t)

		mock.ExpectQuery("SELECT (.+) FROM zones WHERE LOWER").
			WithArgs("Ikeja").
			WillReturnRows(zoneRow("zone-1", "Ikeja", "ikeja"))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM officials WHERE LOWER`).
			WithArgs("Adewale Lawal", "Adewale@Example.com").
			WillReturnRows(countRow(0))
		mock.ExpectExec("INSERT INTO officials").
			WillReturnResult(sqlmock.NewResult(1, 1))

		official, err := svc.CreateOfficial(context.Background(), validOfficialInput())
		require.NoError(t, err)
		assert.Equal(t, "Adewale Lawal", official.Name)
		assert.Equal(t, "adewale@example.com", official.Email)
		assert.Regexp(t, regexp.MustCompile(`^AL\d{4}$`), official.OfficialID)
		assert.True(t, official.IsActive)
		require.NotNil(t, official.Zone)
		assert.Equal(t, "ikeja", official.Zone.Slug)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("fails when the zone does not exist", func(t *testing.T) {
		svc, mock := newOfficialService(t)

		mock.ExpectQuery("SELECT (.+) FROM zones WHERE LOWER").
			WithArgs("Atlantis").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "description", "created_at", "updated_at"}))

		input := validOfficialInput()
		input.ZoneName = "Atlantis"
		_, err := svc.CreateOfficial(context.Background(), input)
		require.True(t, errs.IsNotFound(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects duplicate name and email", func(t *testing.T) {
		svc, mock := newOfficialService(t)

		mock.ExpectQuery("SELECT (.+) FROM zones WHERE LOWER").
			WithArgs("Ikeja").
			WillReturnRows(zoneRow("zone-1", "Ikeja", "ikeja"))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM officials WHERE LOWER`).
			WillReturnRows(countRow(1))

		_, err := svc.CreateOfficial(context.Background(), validOfficialInput())
		require.True(t, errs.IsConflict(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects unknown position and official type", func(t *testing.T) {
		svc, _ := newOfficialService(t)

		input := validOfficialInput()
		input.Position = "KING"
		input.OfficialType = "ROYALTY"
		_, err := svc.CreateOfficial(context.Background(), input)
		require.True(t, errs.IsValidation(err))

		var validationErr *errs.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Fields, "position")
		assert.Contains(t, validationErr.Fields, "official_type")
	})
}

func TestDeleteOfficial(t *testing.T) {
	t.Run("detaches profile image then deletes", func(t *testing.T) {
		svc, mock := newOfficialService(t)

		officialCols := []string{
			"id", "official_id", "zone_id", "name", "phone", "email", "position", "official_type",
			"bio", "profile_image_id", "is_active", "display_order", "start_date", "end_date",
			"created_at", "updated_at",
		}
		now := time.Now()
		mock.ExpectQuery("SELECT (.+) FROM officials WHERE official_id").
			WithArgs("AL1234").
			WillReturnRows(sqlmock.NewRows(officialCols).
				AddRow("official-1", "AL1234", "zone-1", "Adewale Lawal", "", "a@b.c", "CHAIRMAN", "BOARD",
					"", "image-1", true, 0, nil, nil, now, now))
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT profile_image_id FROM officials").
			WithArgs("official-1").
			WillReturnRows(sqlmock.NewRows([]string{"profile_image_id"}).AddRow("image-1"))
		mock.ExpectExec("UPDATE images").
			WithArgs("image-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE officials SET profile_image_id").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
		mock.ExpectExec("DELETE FROM officials").
			WithArgs("official-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, svc.DeleteOfficial(context.Background(), "AL1234"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for unknown identifier", func(t *testing.T) {
		svc, mock := newOfficialService(t)

		mock.ExpectQuery("SELECT (.+) FROM officials WHERE official_id").
			WithArgs("ZZ9999").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		err := svc.DeleteOfficial(context.Background(), "ZZ9999")
		require.True(t, errs.IsNotFound(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
