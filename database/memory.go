package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// OpenInMemory opens a migrated, private SQLite database that lives as long as
// the returned handle. Used by tests and by DATABASE_URL=":memory:" runs.
func OpenInMemory(name string) (*gorm.DB, error) {
	name = strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(name)
	db, err := Initialize("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// A single connection keeps the in-memory database alive and serialises
	// writers, which SQLite requires anyway.
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
