package repository

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

// The page select and its count must read the same snapshot, so List wraps
// the pair in a transaction of its own when the context does not carry one.
func TestListSharesOneTransaction(t *testing.T) {
	t.Run("ListOpensItsOwnTransaction", func(t *testing.T) {
		db, mock := newMockGorm(t)
		repo := NewOrganizationRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT count\(\*\) FROM "app_organizations"`).
			WithArgs(true).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`SELECT app_organizations\..* FROM "app_organizations"`).
			WithArgs(true).
			WillReturnRows(sqlmock.NewRows([]string{"org_id"}))
		mock.ExpectCommit()

		orgs, total, err := repo.List(context.Background(), ListQuery{})
		require.NoError(t, err)
		require.Empty(t, orgs)
		require.Zero(t, total)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ListJoinsTheAmbientTransaction", func(t *testing.T) {
		db, mock := newMockGorm(t)
		repo := NewOrganizationRepository(db)

		// exactly one BEGIN for the whole unit of work
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT count\(\*\) FROM "app_organizations"`).
			WithArgs(true).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`SELECT app_organizations\..* FROM "app_organizations"`).
			WithArgs(true).
			WillReturnRows(sqlmock.NewRows([]string{"org_id"}))
		mock.ExpectCommit()

		err := WithTransaction(context.Background(), db, func(ctx context.Context) error {
			_, _, listErr := repo.List(ctx, ListQuery{})
			return listErr
		})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
