// Package sqlite opens SQLite databases through one of two drivers.
//
// Build modes:
//   - Default: pure Go modernc.org/sqlite (driver name "sqlite")
//   - CGO_ENABLED=1 -tags cgo_sqlite: mattn/go-sqlite3 (driver name "sqlite3")
//
// Use Open() instead of sql.Open() so the driver matching the build is used
// and foreign keys are enforced.
package sqlite

import (
	"database/sql"
	"os"

	"github.com/FocuswithJustin/ScriptureLinks/core/errors"
)

// DriverName returns the SQL driver name to use.
func DriverName() string {
	return driverName
}

// DriverType returns "cgo" for mattn/go-sqlite3 and "purego" for
// modernc.org/sqlite.
func DriverType() string {
	return driverType
}

// dsn builds a file URI for path. The foreign key parameter is spelled
// differently by each driver.
func dsn(path, mode string) string {
	s := "file:" + path + "?" + foreignKeysParam
	if mode != "" {
		s += "&mode=" + mode
	}
	return s
}

// Open opens or creates the database file at path.
func Open(path string) (*sql.DB, error) {
	return sql.Open(driverName, dsn(path, "rwc"))
}

// OpenReadOnly opens an existing database file without write access.
func OpenReadOnly(path string) (*sql.DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	return sql.Open(driverName, dsn(path, "ro"))
}
