package postgres_test

import (
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"navhub/pkg/domain"
	"navhub/pkg/storage/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// newMockStorage builds a PgSQL handle backed by sqlmock. goqu interpolates
// arguments into the SQL it generates, so expectations match on SQL fragments
// rather than on bound arguments.
func newMockStorage(t *testing.T) (*postgres.PgSQL, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})

	return &postgres.PgSQL{
		DB:      db,
		Builder: goqu.Dialect("postgres").DB(db),
	}, mock
}

func requireMet(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	require.NoError(t, mock.ExpectationsWereMet())
}

var testTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func nullTime(t time.Time) sql.NullTime { return sql.NullTime{Time: t, Valid: true} }

func sqlmockResult(rowsAffected int64) driver.Result {
	return sqlmock.NewResult(0, rowsAffected)
}

func newCategoryID(t *testing.T) domain.CategoryID {
	t.Helper()

	return domain.CategoryID(uuid.New())
}

func newWebsiteID(t *testing.T) domain.WebsiteID {
	t.Helper()

	return domain.WebsiteID(uuid.New())
}

func domainCategory(name, icon string, sortOrder int) domain.Category {
	return domain.Category{
		ID:        domain.CategoryID(uuid.New()),
		Name:      name,
		Icon:      icon,
		SortOrder: sortOrder,
	}
}
