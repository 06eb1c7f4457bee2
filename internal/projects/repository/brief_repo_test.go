package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adcraft-app/adcraft-backend/internal/db/dbtest"
	"github.com/adcraft-app/adcraft-backend/internal/projects/domain"
)

var briefCols = []string{"id", "project_id", "business_type", "niche", "buyer_type", "angle", "created_at", "updated_at"}

func setupMockBriefRepo(t *testing.T) (*BriefRepository, sqlmock.Sqlmock) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return NewBriefRepository(sqlx.NewDb(conn, "postgres")), mock
}

func hvac(angle domain.Angle) domain.BriefInput {
	return domain.BriefInput{
		BusinessType: domain.BusinessEcommerce,
		Niche:        "HVAC",
		BuyerType:    domain.BuyerOperator,
		Angle:        angle,
	}
}

func TestBriefRepository_UpsertOwned_SQL(t *testing.T) {
	ctx := context.Background()

	t.Run("owner check then upsert then read back", func(t *testing.T) {
		repo, mock := setupMockBriefRepo(t)
		now := time.Now()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT id FROM projects WHERE id = \$1 AND owner_id = \$2`).
			WithArgs("prj-1", "u-1").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("prj-1"))
		mock.ExpectExec(`INSERT INTO project_briefs (.+) ON CONFLICT \(project_id\) DO UPDATE`).
			WithArgs(sqlmock.AnyArg(), "prj-1", "ECOMMERCE", "HVAC", "OPERATOR", "CASHFLOW", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT (.+) FROM project_briefs WHERE project_id = \$1`).
			WithArgs("prj-1").
			WillReturnRows(sqlmock.NewRows(briefCols).
				AddRow("brf-1", "prj-1", "ECOMMERCE", "HVAC", "OPERATOR", "CASHFLOW", now, now))
		mock.ExpectCommit()

		b, err := repo.UpsertOwned(ctx, "u-1", "prj-1", hvac(domain.AngleCashflow))
		require.NoError(t, err)
		assert.Equal(t, "brf-1", b.ID)
		assert.Equal(t, domain.AngleCashflow, b.Angle)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("foreign project writes nothing", func(t *testing.T) {
		repo, mock := setupMockBriefRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT id FROM projects`).
			WithArgs("prj-1", "u-2").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectRollback()

		_, err := repo.UpsertOwned(ctx, "u-2", "prj-1", hvac(domain.AngleCashflow))
		assert.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("write failure rolls back", func(t *testing.T) {
		repo, mock := setupMockBriefRepo(t)
		boom := errors.New("pq: deadlock detected")

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT id FROM projects`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("prj-1"))
		mock.ExpectExec(`INSERT INTO project_briefs`).WillReturnError(boom)
		mock.ExpectRollback()

		_, err := repo.UpsertOwned(ctx, "u-1", "prj-1", hvac(domain.AngleCashflow))
		assert.ErrorIs(t, err, boom)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBriefRepository_UpsertOwned_Store(t *testing.T) {
	ctx := context.Background()
	conn := dbtest.NewSQLite(t)
	repo := NewBriefRepository(conn)

	owner := dbtest.SeedUser(t, conn, "fb-1")
	other := dbtest.SeedUser(t, conn, "fb-2")
	projectID := dbtest.SeedProject(t, conn, owner, "Acme")

	t.Run("second payload replaces the first", func(t *testing.T) {
		first, err := repo.UpsertOwned(ctx, owner, projectID, hvac(domain.AngleCashflow))
		require.NoError(t, err)

		p2 := domain.BriefInput{BusinessType: domain.BusinessService, Niche: "Plumbing", BuyerType: domain.BuyerInvestor, Angle: domain.AngleGrowth}
		second, err := repo.UpsertOwned(ctx, owner, projectID, p2)
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID, "the brief row is updated in place")
		assert.Equal(t, domain.BusinessService, second.BusinessType)
		assert.Equal(t, "Plumbing", second.Niche)
		assert.Equal(t, domain.BuyerInvestor, second.BuyerType)
		assert.Equal(t, domain.AngleGrowth, second.Angle)
		assert.False(t, second.UpdatedAt.Before(first.UpdatedAt))
		assert.Equal(t, first.CreatedAt.Unix(), second.CreatedAt.Unix())
	})

	t.Run("same payload twice keeps one row", func(t *testing.T) {
		a, err := repo.UpsertOwned(ctx, owner, projectID, hvac(domain.AngleLifestyle))
		require.NoError(t, err)
		b, err := repo.UpsertOwned(ctx, owner, projectID, hvac(domain.AngleLifestyle))
		require.NoError(t, err)

		assert.Equal(t, a.ID, b.ID)
		assert.Equal(t, a.BusinessType, b.BusinessType)
		assert.Equal(t, a.Niche, b.Niche)
		assert.Equal(t, a.BuyerType, b.BuyerType)
		assert.Equal(t, a.Angle, b.Angle)
		assert.Equal(t, 1, dbtest.CountRows(t, conn, "project_briefs", "project_id = ?", projectID))
	})

	t.Run("foreign owner is indistinguishable from missing project", func(t *testing.T) {
		fresh := dbtest.SeedProject(t, conn, owner, "Untouched")

		_, errForeign := repo.UpsertOwned(ctx, other, fresh, hvac(domain.AngleCashflow))
		_, errMissing := repo.UpsertOwned(ctx, other, "does-not-exist", hvac(domain.AngleCashflow))

		assert.ErrorIs(t, errForeign, domain.ErrNotFound)
		assert.ErrorIs(t, errMissing, domain.ErrNotFound)
		assert.Equal(t, errMissing.Error(), errForeign.Error())
		assert.Zero(t, dbtest.CountRows(t, conn, "project_briefs", "project_id = ?", fresh))
	})

	t.Run("get returns the stored brief or nil", func(t *testing.T) {
		b, err := repo.GetByProjectID(ctx, projectID)
		require.NoError(t, err)
		require.NotNil(t, b)
		assert.Equal(t, domain.AngleLifestyle, b.Angle)

		none, err := repo.GetByProjectID(ctx, "no-brief")
		require.NoError(t, err)
		assert.Nil(t, none)
	})
}

func TestBriefRepository_UpsertOwned_ContextDeadline(t *testing.T) {
	conn := dbtest.NewSQLite(t)
	repo := NewBriefRepository(conn)
	owner := dbtest.SeedUser(t, conn, "fb-1")
	projectID := dbtest.SeedProject(t, conn, owner, "Acme")

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	_, err := repo.UpsertOwned(ctx, owner, projectID, hvac(domain.AngleCashflow))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Zero(t, dbtest.CountRows(t, conn, "project_briefs", ""))
}
