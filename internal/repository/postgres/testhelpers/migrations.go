package testhelpers

import (
	"github.com/store-search-service/internal/repository/postgres"
)

// ApplyMigrations applies the embedded schema to the test database
func (tdb *TestDB) ApplyMigrations() error {
	return postgres.Migrate(tdb.URL, tdb.Logger)
}
