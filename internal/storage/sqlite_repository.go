package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const (
	// Fixed-width fraction keeps lexical text order equal to chronological
	// order; RFC3339Nano trims trailing zeros and breaks that.
	sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"
	sqliteDayLayout  = "2006-01-02"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection serializes writers; sqlite has one writer anyway.
	db.SetMaxOpenConns(1)
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) Migrate() error {
	return MigrateUp(r.db)
}

func (r *SQLiteRepository) CreateTask(ctx context.Context, in Task) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (id, owner_id, title, status, is_priority, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		in.ID, in.OwnerID, in.Title, in.Status, boolInt(in.IsPriority), mustTime(in.CreatedAt),
	)
	return err
}

func (r *SQLiteRepository) FindTaskByID(ctx context.Context, id, ownerID string) (Task, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner_id, title, status, is_priority, created_at
		FROM tasks WHERE id = ? AND owner_id = ?`, id, ownerID)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Task{}, ErrNotFound
		}
		return Task{}, err
	}
	return task, nil
}

func (r *SQLiteRepository) UpdateTask(ctx context.Context, in Task) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET title = ?, status = ?, is_priority = ?
		WHERE id = ? AND owner_id = ?`,
		in.Title, in.Status, boolInt(in.IsPriority), in.ID, in.OwnerID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteTask(ctx context.Context, id, ownerID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

// FindTasksByOwner returns tasks already in presentation order: priority
// bucket first, newest first within each bucket, and rowid breaks exact
// creation-time ties in favor of the later insert.
func (r *SQLiteRepository) FindTasksByOwner(ctx context.Context, ownerID string) ([]Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_id, title, status, is_priority, created_at
		FROM tasks WHERE owner_id = ?
		ORDER BY is_priority DESC, created_at DESC, rowid DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Task, 0)
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, task)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CountPriorityActiveTasks(ctx context.Context, ownerID, excludeID string) (int, error) {
	query := `SELECT COUNT(*) FROM tasks WHERE owner_id = ? AND is_priority = 1 AND status != 'DONE'`
	args := []any{ownerID}
	if excludeID != "" {
		query += ` AND id != ?`
		args = append(args, excludeID)
	}
	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *SQLiteRepository) FindDailyRecord(ctx context.Context, ownerID string, day time.Time) (DailySession, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT owner_id, day, focus_minutes, cycles_completed
		FROM daily_sessions WHERE owner_id = ? AND day = ?`,
		ownerID, day.Format(sqliteDayLayout))
	rec, err := scanDailySession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return DailySession{}, ErrNotFound
		}
		return DailySession{}, err
	}
	return rec, nil
}

// UpsertDailyRecord applies one report in a single statement: the UNIQUE
// (owner_id, day) index serializes concurrent first reports, focus minutes
// accumulate, and the cycle count is replaced by the incoming run total.
func (r *SQLiteRepository) UpsertDailyRecord(ctx context.Context, in DailySession) (DailySession, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO daily_sessions (owner_id, day, focus_minutes, cycles_completed)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(owner_id, day) DO UPDATE SET
			focus_minutes = focus_minutes + excluded.focus_minutes,
			cycles_completed = excluded.cycles_completed`,
		in.OwnerID, in.Day.Format(sqliteDayLayout), in.FocusMinutes, in.CyclesCompleted,
	)
	if err != nil {
		return DailySession{}, err
	}
	return r.FindDailyRecord(ctx, in.OwnerID, in.Day)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (Task, error) {
	var out Task
	var priority int
	var createdAt string
	if err := row.Scan(&out.ID, &out.OwnerID, &out.Title, &out.Status, &priority, &createdAt); err != nil {
		return Task{}, err
	}
	out.IsPriority = priority != 0
	parsed, err := time.Parse(sqliteTimeLayout, createdAt)
	if err != nil {
		return Task{}, fmt.Errorf("parse created_at: %w", err)
	}
	out.CreatedAt = parsed
	return out, nil
}

func scanDailySession(row rowScanner) (DailySession, error) {
	var out DailySession
	var day string
	if err := row.Scan(&out.OwnerID, &day, &out.FocusMinutes, &out.CyclesCompleted); err != nil {
		return DailySession{}, err
	}
	parsed, err := time.ParseInLocation(sqliteDayLayout, day, time.Local)
	if err != nil {
		return DailySession{}, fmt.Errorf("parse day: %w", err)
	}
	out.Day = parsed
	return out, nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func mustTime(t time.Time) string {
	return t.UTC().Format(sqliteTimeLayout)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
