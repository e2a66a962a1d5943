package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/brdtrack/internal/db"
	"github.com/alexanderramin/brdtrack/internal/domain"
)

// historyTimeLayout is fixed width so created_at sorts as text.
const historyTimeLayout = "2006-01-02T15:04:05.000000000Z"

const historyColumns = `id, project_uid, brd_no, action, from_status, to_status, detail, created_at`

// SQLiteHistoryRepo implements HistoryRepo on the project_history table.
type SQLiteHistoryRepo struct {
	db db.DBTX
}

func NewSQLiteHistoryRepo(db db.DBTX) *SQLiteHistoryRepo {
	return &SQLiteHistoryRepo{db: db}
}

// Create inserts e and sets its ID. A zero CreatedAt is stamped with the
// current time.
func (r *SQLiteHistoryRepo) Create(ctx context.Context, e *domain.HistoryEntry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = nowUTC()
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO project_history (project_uid, brd_no, action, from_status, to_status, detail, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ProjectUID,
		e.BRDNo,
		string(e.Action),
		string(e.FromStatus),
		string(e.ToStatus),
		e.Detail,
		e.CreatedAt.UTC().Format(historyTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting history entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading history entry id: %w", err)
	}
	e.ID = id
	return nil
}

// List returns entries newest first. An empty projectUID lists every
// project; a non-positive limit returns everything.
func (r *SQLiteHistoryRepo) List(ctx context.Context, projectUID string, limit int) ([]*domain.HistoryEntry, error) {
	query := `SELECT ` + historyColumns + ` FROM project_history`
	var args []any
	if projectUID != "" {
		query += ` WHERE project_uid = ?`
		args = append(args, projectUID)
	}
	query += ` ORDER BY created_at DESC, id DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	defer rows.Close()

	entries := make([]*domain.HistoryEntry, 0)
	for rows.Next() {
		e, err := scanHistory(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history: %w", err)
	}
	return entries, nil
}

func scanHistory(rows *sql.Rows) (*domain.HistoryEntry, error) {
	var (
		e                          domain.HistoryEntry
		action, fromStatus, toStat string
		createdAt                  sql.NullString
	)
	if err := rows.Scan(&e.ID, &e.ProjectUID, &e.BRDNo, &action, &fromStatus, &toStat, &e.Detail, &createdAt); err != nil {
		return nil, fmt.Errorf("scanning history entry: %w", err)
	}
	e.Action = domain.HistoryAction(action)
	e.FromStatus = domain.Status(fromStatus)
	e.ToStatus = domain.Status(toStat)
	e.CreatedAt = parseNullableTime(createdAt, historyTimeLayout)
	return &e, nil
}
