package database

import (
	"fmt"
	"log"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"pacearena-api/models"
)

// Initialize opens a gorm connection for driver: mysql, postgres or sqlite.
func Initialize(driver, databaseURL string) (*gorm.DB, error) {
	dialector, err := dialectorFor(driver, databaseURL)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Warn),
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func dialectorFor(driver, databaseURL string) (gorm.Dialector, error) {
	switch driver {
	case "mysql":
		return mysql.Open(databaseURL), nil
	case "postgres":
		return postgres.Open(databaseURL), nil
	case "sqlite":
		return sqlite.Open(databaseURL), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Club{},
		&models.Event{},
		&models.Like{},
		&models.Comment{},
		&models.EventRegistration{},
		&models.Post{},
		&models.RunSubmission{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	addCustomIndexes(db)
	return nil
}

// addCustomIndexes adds composite indexes the struct tags can't express.
// Failures are logged, not fatal: MySQL rejects IF NOT EXISTS on indexes.
func addCustomIndexes(db *gorm.DB) {
	statements := map[string]string{
		"events category/date": "CREATE INDEX IF NOT EXISTS idx_events_club_date ON events(is_club_event, date)",
		"events coordinates":   "CREATE INDEX IF NOT EXISTS idx_events_lat_lng ON events(latitude, longitude)",
		"posts club feed":      "CREATE INDEX IF NOT EXISTS idx_posts_club_created ON posts(club_id, created_at DESC)",
		"runs club/date":       "CREATE INDEX IF NOT EXISTS idx_runs_club_submitted ON run_submissions(club_id, submitted_at)",
	}
	for name, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			log.Printf("Warning: Could not create index for %s: %v", name, err)
		}
	}
}
