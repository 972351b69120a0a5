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
	"github.com/Sobilo34/Tyma-server/pkg/identifier"
	"github.com/Sobilo34/Tyma-server/pkg/logger"
)

func newZoneService(t *testing.T) (*ZoneService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := NewZoneService(repository.NewZoneRepository(db), identifier.NewGenerator(), logger.NewLogger("test"))
	return svc, mock
}

func countRow(n int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"count"}).AddRow(n)
}

func zoneRow(id, name, slug string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "name", "slug", "description", "created_at", "updated_at"}).
		AddRow(id, name, slug, "", now, now)
}

func TestCreateZone(t *testing.T) {
	t.Run("creates zone with generated slug and title-cased name", func(t *testing.T) {
		svc, mock := newZoneService(t)

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM zones WHERE LOWER\(name\)`).
			WithArgs("ibadan north").
			WillReturnRows(countRow(0))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM zones WHERE slug`).
			WithArgs("ibadan-north").
			WillReturnRows(countRow(0))
		mock.ExpectExec("INSERT INTO zones").
			WillReturnResult(sqlmock.NewResult(1, 1))

		zone, err := svc.CreateZone(context.Background(), "ibadan north", "the north side")
		require.NoError(t, err)
		assert.Equal(t, "Ibadan North", zone.Name)
		assert.Equal(t, "ibadan-north", zone.Slug)
		assert.NotEmpty(t, zone.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("falls back to initials when the full slug is taken", func(t *testing.T) {
		svc, mock := newZoneService(t)

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM zones WHERE LOWER\(name\)`).
			WithArgs("Ibadan South").
			WillReturnRows(countRow(0))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM zones WHERE slug`).
			WithArgs("ibadan-south").
			WillReturnRows(countRow(1))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM zones WHERE slug`).
			WithArgs("is").
			WillReturnRows(countRow(0))
		mock.ExpectExec("INSERT INTO zones").
			WillReturnResult(sqlmock.NewResult(1, 1))

		zone, err := svc.CreateZone(context.Background(), "Ibadan South", "")
		require.NoError(t, err)
		assert.Equal(t, "is", zone.Slug)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects duplicate name", func(t *testing.T) {
		svc, mock := newZoneService(t)

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM zones WHERE LOWER\(name\)`).
			WithArgs("Ikeja").
			WillReturnRows(countRow(1))

		_, err := svc.CreateZone(context.Background(), "Ikeja", "")
		require.True(t, errs.IsConflict(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects too-short name", func(t *testing.T) {
		svc, _ := newZoneService(t)
		_, err := svc.CreateZone(context.Background(), "A", "")
		require.True(t, errs.IsValidation(err))
	})
}

func TestGetZone(t *testing.T) {
	t.Run("returns not found for unknown slug", func(t *testing.T) {
		svc, mock := newZoneService(t)

		mock.ExpectQuery("SELECT (.+) FROM zones WHERE slug").
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "description", "created_at", "updated_at"}))

		_, err := svc.GetZone(context.Background(), "ghost")
		require.True(t, errs.IsNotFound(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeleteZone(t *testing.T) {
	t.Run("refuses to delete a zone with officials", func(t *testing.T) {
		svc, mock := newZoneService(t)

		mock.ExpectQuery("SELECT (.+) FROM zones WHERE slug").
			WithArgs("ikeja").
			WillReturnRows(zoneRow("zone-1", "Ikeja", "ikeja"))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM officials WHERE zone_id`).
			WithArgs("zone-1").
			WillReturnRows(countRow(3))

		err := svc.DeleteZone(context.Background(), "ikeja")
		require.True(t, errs.IsConflict(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("deletes an empty zone", func(t *testing.T) {
		svc, mock := newZoneService(t)

		mock.ExpectQuery("SELECT (.+) FROM zones WHERE slug").
			WithArgs("ikeja").
			WillReturnRows(zoneRow("zone-1", "Ikeja", "ikeja"))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM officials WHERE zone_id`).
			WithArgs("zone-1").
			WillReturnRows(countRow(0))
		mock.ExpectExec("DELETE FROM zones").
			WithArgs("zone-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, svc.DeleteZone(context.Background(), "ikeja"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
