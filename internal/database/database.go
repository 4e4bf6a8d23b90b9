// Package database implements the relational backend of store.Store on an
// embedded sqlite file via gorm.
//
// Schema management is forward-only: AutoMigrate creates missing tables and
// indexes on every start (safe to repeat), then a versioned migration
// ladder is applied against sqlite's user_version pragma. The schema never
// downgrades.
package database

import (
	"fmt"
	"log/slog"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ndtprep/examtrainer/internal/entities"
)

// schemaVersion is the code-defined schema version recorded in the
// user_version pragma after a successful migration run.
const schemaVersion = 2

type migration struct {
	version int
	name    string
	run     func(tx *gorm.DB) error
}

var migrations = []migration{
	{
		// Rows written before option ordering was persisted carry a zero
		// option_order for every option of a question. Backfill from the
		// physical insertion order.
		version: 2,
		name:    "backfill option_order from insertion order",
		run: func(tx *gorm.DB) error {
			return tx.Exec(`
				UPDATE options SET option_order = (
					SELECT COUNT(*) FROM options o2
					WHERE o2.question_id = options.question_id AND o2.rowid < options.rowid
				)
				WHERE (SELECT MAX(option_order) FROM options o3 WHERE o3.question_id = options.question_id) = 0
			`).Error
		},
	},
}

// Database owns the single gorm handle to the sqlite file.
type Database struct {
	DB     *gorm.DB
	logger *slog.Logger
}

// Open creates or opens the database file, migrates the schema and returns
// the handle. Safe to call on every app start.
func Open(path string, log *slog.Logger) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	d := &Database{DB: db, logger: log}
	if err := d.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Info("database initialized", "path", path, "schema_version", schemaVersion)
	return d, nil
}

func (d *Database) migrate() error {
	err := d.DB.AutoMigrate(
		&entities.Category{},
		&entities.Subcategory{},
		&entities.Question{},
		&entities.Option{},
		&entities.User{},
		&entities.UserProgress{},
		&entities.TestSession{},
		&entities.TestQuestion{},
		&entities.Bookmark{},
		&entities.DailyAnalytics{},
	)
	if err != nil {
		return err
	}

	if err := d.createIndexes(); err != nil {
		return err
	}

	var current int
	if err := d.DB.Raw("PRAGMA user_version").Scan(&current).Error; err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}
	if current >= schemaVersion {
		return nil
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		d.logger.Info("applying migration", "version", m.version, "name", m.name)
		if err := d.DB.Transaction(m.run); err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
		}
	}

	return d.DB.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)).Error
}

// createIndexes adds the lookup indexes the query paths depend on. All
// statements are idempotent.
func (d *Database) createIndexes() error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_questions_category ON questions(category_id)",
		"CREATE INDEX IF NOT EXISTS idx_options_question ON options(question_id)",
		"CREATE INDEX IF NOT EXISTS idx_test_sessions_user ON test_sessions(user_id)",
		"CREATE INDEX IF NOT EXISTS idx_test_questions_session ON test_questions(session_id)",
		"CREATE INDEX IF NOT EXISTS idx_analytics_user_day ON analytics(user_id, day)",
	}
	for _, idx := range indexes {
		if err := d.DB.Exec(idx).Error; err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying sqlite handle.
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
