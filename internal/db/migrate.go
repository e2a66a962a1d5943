package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies every schema statement. Statements are idempotent so the
// full list runs on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS project_history (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		project_uid TEXT NOT NULL,
		brd_no      TEXT NOT NULL DEFAULT '',
		action      TEXT NOT NULL
		            CHECK(action IN ('create','update','delete','import_append','import_replace','gantt_update')),
		from_status TEXT NOT NULL DEFAULT '',
		to_status   TEXT NOT NULL DEFAULT '',
		detail      TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_project_history_uid ON project_history(project_uid)`,
	`CREATE INDEX IF NOT EXISTS idx_project_history_created ON project_history(created_at)`,
}
