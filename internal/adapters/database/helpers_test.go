package database

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/coachplan/internal/infrastructure/clients/postgres"
)

func setupMockClient(t *testing.T) (*postgres.Client, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return postgres.NewClientFromDB(db), mock
}

// q turns a literal SQL fragment into a sqlmock expectation pattern.
func q(fragment string) string {
	return regexp.QuoteMeta(fragment)
}
